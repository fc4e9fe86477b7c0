package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-bridge/internal/capi"
	"github.com/ironsheep/image-bridge/internal/imaging"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

var errEmptyResult = errors.New("bridge returned an empty image")

// printInfo opens the image at path and prints its dimensions.
func printInfo(w io.Writer, path string) error {
	img, err := imgio.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	b := img.Bounds()
	fmt.Fprintf(w, "Image dimensions: %dx%d\n", b.Dx(), b.Dy())
	return nil
}

// rotateAll rotates every image in cfg.ImageDir through the bridge and saves
// the results as PNG files in cfg.ResultsDir. Images that fail to load or
// convert are reported and skipped. It returns the number of images saved.
func rotateAll(w io.Writer, br *capi.Bridge, cfg Config) (int, error) {
	if st, err := os.Stat(cfg.ImageDir); err != nil || !st.IsDir() {
		return 0, fmt.Errorf("image directory not found: %s", cfg.ImageDir)
	}
	if err := cleanAndCreateDir(cfg.ResultsDir); err != nil {
		return 0, err
	}

	paths, err := listImagePaths(cfg.ImageDir)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(w, "Found %d images in %s\n", len(paths), cfg.ImageDir)

	saved := 0
	for _, path := range paths {
		fmt.Fprintf(w, "-----------------------------\nProcessing: %s\n", filepath.Base(path))

		img, err := imgio.Open(path)
		if err != nil {
			log.Printf("Failed to load image %s: %v", path, err)
			continue
		}

		rotated, err := rotateImage(w, br, img)
		if err != nil {
			log.Printf("Failed to rotate image %s: %v", path, err)
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		savePath := filepath.Join(cfg.ResultsDir, stem+"-rotated.png")
		if err := imgio.Save(savePath, rotated, imgio.PNGEncoder()); err != nil {
			return saved, fmt.Errorf("failed to save %s: %w", savePath, err)
		}
		fmt.Fprintf(w, " Saved rotated image to: %s\n", savePath)
		saved++
	}

	fmt.Fprintf(w, "\nProcessing complete. Results saved to: %s\n", cfg.ResultsDir)
	return saved, nil
}

// rotateImage hands img to the bridge as raw bytes, rotates it and rebuilds
// an image from the exported bytes. Both handles are released on return.
func rotateImage(w io.Writer, br *capi.Bridge, img image.Image) (image.Image, error) {
	raw := imaging.RawFromImage(img)
	fmt.Fprintf(w, "  Source - Dimensions: %dx%d, Channels: %d\n", raw.Width, raw.Height, raw.Channels)

	var pixels unsafe.Pointer
	if len(raw.Pix) > 0 {
		pixels = unsafe.Pointer(&raw.Pix[0])
	}
	h := br.FromPixels(pixels, raw.Width, raw.Height, raw.Channels)
	defer br.Release(h)
	printBridgeInfo(w, br.Info(h))

	r := br.Rotate90(h)
	defer br.Release(r)
	fmt.Fprintln(w, " After rotate90:")
	info := br.Info(r)
	printBridgeInfo(w, info)

	if br.IsEmpty(r) {
		return nil, errEmptyResult
	}
	return imaging.ImageFromRaw(br.Bytes(r), info.Width, info.Height, info.Channels)
}

func printBridgeInfo(w io.Writer, info imaging.Info) {
	fmt.Fprintf(w, "  Bridge - Dimensions: %dx%d, Channels: %d\n", info.Width, info.Height, info.Channels)
}

// listImagePaths returns the image files directly inside dir, sorted by name.
func listImagePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

func cleanAndCreateDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clean %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}
