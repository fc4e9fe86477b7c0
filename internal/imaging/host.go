package imaging

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// RawImage is a decoded image flattened to the byte layout the bridge
// accepts: row-major, channel-interleaved, no row padding.
type RawImage struct {
	Pix      []byte
	Width    uint32
	Height   uint32
	Channels uint32
}

// RawFromImage flattens a decoded image into raw bytes the way a host hands
// them across the boundary.
//
// The channel count follows the source:
//   - *image.Gray and *image.Gray16 -> 1 (16-bit samples are truncated)
//   - images with any non-opaque pixel -> 4 (straight alpha)
//   - everything else -> 3
func RawFromImage(img image.Image) RawImage {
	r := img.Bounds()
	raw := RawImage{Width: uint32(r.Dx()), Height: uint32(r.Dy())}

	switch m := img.(type) {
	case *image.Gray:
		raw.Channels = 1
		raw.Pix = packRows(m.Pix, m.Stride, m.Rect, 1)
		return raw
	case *image.Gray16:
		g := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.Draw(g, g.Rect, m, r.Min, draw.Src)
		raw.Channels = 1
		raw.Pix = g.Pix
		return raw
	}

	n := imaging.Clone(img)
	if n.Opaque() {
		raw.Channels = 3
		raw.Pix = packPixels(fromNRGBA(n, FormatRGB8))
		return raw
	}
	raw.Channels = 4
	raw.Pix = packRows(n.Pix, n.Stride, n.Rect, 4)
	return raw
}

// ImageFromRaw rebuilds an image.Image from bytes exported by the bridge.
//
// The concrete type is *image.Gray, *RGB or *image.NRGBA depending on
// channels. A zero width or height yields an empty *image.NRGBA, the same
// zero-size value Empty holds, so callers never receive a nil image.
func ImageFromRaw(pix []byte, width, height, channels uint32) (image.Image, error) {
	if width == 0 || height == 0 {
		return image.NewNRGBA(image.Rectangle{}), nil
	}
	n, err := RawLen(width, height, channels)
	if err != nil {
		return nil, err
	}
	if len(pix) != n {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrLengthMismatch, len(pix), n)
	}
	format, _ := FormatForChannels(channels)
	return newImage(format, int(width), int(height), pix), nil
}
