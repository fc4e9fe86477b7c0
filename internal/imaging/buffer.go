package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// Contract violations reported by NewBuffer and RawLen.
var (
	ErrUnsupportedChannels = errors.New("unsupported channel count")
	ErrLengthMismatch      = errors.New("pixel data length mismatch")
	ErrTooLarge            = errors.New("image too large")
)

const maxInt = int(^uint(0) >> 1)

// Info is the metadata triple reported for a Buffer.
type Info struct {
	// Width is the image width in pixels.
	Width uint32 `json:"width"`

	// Height is the image height in pixels.
	Height uint32 `json:"height"`

	// Channels is the number of bytes per pixel in the exported layout.
	Channels uint32 `json:"channels"`
}

// Buffer is an exclusively owned, format-tagged pixel buffer.
//
// A Buffer never shares pixel memory with its creator: every constructor
// copies, and Rotate90 returns a new Buffer. The zero-size Buffer returned by
// Empty stands in for "no image" and flows through every operation.
type Buffer struct {
	img image.Image
}

// Empty returns the empty sentinel: 0x0 pixels, no bytes, RGBA8 format.
func Empty() *Buffer {
	return &Buffer{img: image.NewNRGBA(image.Rectangle{})}
}

// RawLen returns the number of bytes a raw pixel buffer of the given shape
// must hold.
//
// Returns ErrUnsupportedChannels unless channels is 1, 3 or 4, and
// ErrTooLarge if the byte count does not fit in an int.
func RawLen(width, height, channels uint32) (int, error) {
	if _, ok := FormatForChannels(channels); !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}
	px := uint64(width) * uint64(height)
	if px > uint64(maxInt)/uint64(channels) {
		return 0, fmt.Errorf("%w: %dx%dx%d", ErrTooLarge, width, height, channels)
	}
	return int(px * uint64(channels)), nil
}

// NewBuffer builds a Buffer from raw, row-major, channel-interleaved bytes.
//
// Parameters:
//   - pix: Pixel bytes. Copied; the caller keeps ownership of the slice.
//   - width, height: Dimensions in pixels.
//   - channels: 1 (Gray8), 3 (RGB8) or 4 (RGBA8).
//
// Returns:
//   - *Buffer: A newly owned buffer.
//   - error: ErrUnsupportedChannels, ErrLengthMismatch or ErrTooLarge.
//
// # Empty Images
//
// If width or height is zero the result is the empty sentinel. pix and
// channels are ignored in that case and no error is returned.
func NewBuffer(pix []byte, width, height, channels uint32) (*Buffer, error) {
	if width == 0 || height == 0 {
		return Empty(), nil
	}
	n, err := RawLen(width, height, channels)
	if err != nil {
		return nil, err
	}
	if len(pix) != n {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%dx%d",
			ErrLengthMismatch, len(pix), n, width, height, channels)
	}
	format, _ := FormatForChannels(channels)
	return &Buffer{img: newImage(format, int(width), int(height), pix)}, nil
}

// Wrap builds a Buffer from an already decoded image.
//
// Gray, RGB and NRGBA images are copied into a native layout. Any other
// representation is deep-copied and reports FormatOther, so later edits to
// img never reach the Buffer.
func Wrap(img image.Image) *Buffer {
	if img == nil || img.Bounds().Empty() {
		return Empty()
	}
	format := formatOf(img)
	if format == FormatOther {
		return &Buffer{img: cloneImage(img)}
	}
	r := img.Bounds()
	return &Buffer{img: newImage(format, r.Dx(), r.Dy(), packPixels(img))}
}

// Format returns the pixel layout tag.
func (b *Buffer) Format() Format { return formatOf(b.img) }

// Width returns the width in pixels.
func (b *Buffer) Width() int { return b.img.Bounds().Dx() }

// Height returns the height in pixels.
func (b *Buffer) Height() int { return b.img.Bounds().Dy() }

// IsEmpty reports whether the buffer has zero width or zero height.
func (b *Buffer) IsEmpty() bool {
	return b.Width() == 0 || b.Height() == 0
}

// Info returns the buffer's width, height and channel count.
func (b *Buffer) Info() Info {
	return Info{
		Width:    uint32(b.Width()),
		Height:   uint32(b.Height()),
		Channels: uint32(b.Format().Channels()),
	}
}

// Bytes returns a copy of the pixel data in row-major, channel-interleaved
// order.
//
// The empty sentinel yields a zero-length slice. A FormatOther buffer is
// normalized to RGB8 first, so the result always holds
// Width*Height*Info().Channels bytes.
func (b *Buffer) Bytes() []byte {
	if b.IsEmpty() {
		return []byte{}
	}
	return packPixels(b.img)
}

// Rotate90 returns a new Buffer holding the image rotated 90 degrees
// clockwise. The receiver is not modified.
//
// The pixel at (x, y) of the result is the source pixel at
// (y, srcHeight-1-x). Native formats are preserved; a FormatOther buffer
// rotates into RGB8.
func (b *Buffer) Rotate90() *Buffer {
	if b.IsEmpty() {
		return Empty()
	}
	// Rotate270 turns counter-clockwise.
	rotated := imaging.Rotate270(b.img)
	return &Buffer{img: fromNRGBA(rotated, b.Format())}
}

// newImage copies tightly packed pixels into a fresh image of the format.
func newImage(format Format, w, h int, pix []byte) image.Image {
	r := image.Rect(0, 0, w, h)
	switch format {
	case FormatGray8:
		m := image.NewGray(r)
		copy(m.Pix, pix)
		return m
	case FormatRGBA8:
		m := image.NewNRGBA(r)
		copy(m.Pix, pix)
		return m
	default:
		m := NewRGB(r)
		copy(m.Pix, pix)
		return m
	}
}

// packPixels returns the image's pixels without row padding, normalizing
// non-native representations to RGB8.
func packPixels(img image.Image) []byte {
	switch m := img.(type) {
	case *image.Gray:
		return packRows(m.Pix, m.Stride, m.Rect, 1)
	case *RGB:
		return packRows(m.Pix, m.Stride, m.Rect, 3)
	case *image.NRGBA:
		return packRows(m.Pix, m.Stride, m.Rect, 4)
	default:
		return packPixels(fromNRGBA(imaging.Clone(img), FormatRGB8))
	}
}

func packRows(pix []uint8, stride int, r image.Rectangle, channels int) []byte {
	rowLen := r.Dx() * channels
	out := make([]byte, rowLen*r.Dy())
	for y := 0; y < r.Dy(); y++ {
		copy(out[y*rowLen:(y+1)*rowLen], pix[y*stride:y*stride+rowLen])
	}
	return out
}

// fromNRGBA converts an NRGBA image produced by the imaging library back to
// the given format. Gray8 takes the red channel, which equals the source
// luminance for images that started out gray. FormatOther maps to RGB8.
func fromNRGBA(src *image.NRGBA, format Format) image.Image {
	r := image.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy())
	switch format {
	case FormatRGBA8:
		if src.Rect.Min == (image.Point{}) && src.Stride == 4*r.Dx() {
			return src
		}
		m := image.NewNRGBA(r)
		copy(m.Pix, packRows(src.Pix, src.Stride, src.Rect, 4))
		return m
	case FormatGray8:
		m := image.NewGray(r)
		for y := 0; y < r.Dy(); y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < r.Dx(); x++ {
				m.Pix[y*m.Stride+x] = row[x*4]
			}
		}
		return m
	default:
		m := NewRGB(r)
		for y := 0; y < r.Dy(); y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < r.Dx(); x++ {
				copy(m.Pix[y*m.Stride+x*3:y*m.Stride+x*3+3], row[x*4:x*4+3])
			}
		}
		return m
	}
}

// cloneImage returns a deep copy of img, keeping the concrete type for the
// standard library image types. Anything else is drawn into an RGBA64, which
// holds every color.Color without loss.
func cloneImage(img image.Image) image.Image {
	r := img.Bounds()
	switch src := img.(type) {
	case *image.RGBA:
		dst := *src
		dst.Pix = append([]uint8(nil), src.Pix...)
		return &dst
	case *image.RGBA64:
		dst := *src
		dst.Pix = append([]uint8(nil), src.Pix...)
		return &dst
	case *image.NRGBA64:
		dst := *src
		dst.Pix = append([]uint8(nil), src.Pix...)
		return &dst
	case *image.Gray16:
		dst := *src
		dst.Pix = append([]uint8(nil), src.Pix...)
		return &dst
	case *image.Alpha:
		dst := *src
		dst.Pix = append([]uint8(nil), src.Pix...)
		return &dst
	case *image.Alpha16:
		dst := *src
		dst.Pix = append([]uint8(nil), src.Pix...)
		return &dst
	case *image.CMYK:
		dst := *src
		dst.Pix = append([]uint8(nil), src.Pix...)
		return &dst
	case *image.Paletted:
		dst := *src
		dst.Pix = append([]uint8(nil), src.Pix...)
		dst.Palette = append(src.Palette[:0:0], src.Palette...)
		return &dst
	case *image.YCbCr:
		dst := *src
		dst.Y = append([]uint8(nil), src.Y...)
		dst.Cb = append([]uint8(nil), src.Cb...)
		dst.Cr = append([]uint8(nil), src.Cr...)
		return &dst
	case *image.NYCbCrA:
		dst := *src
		dst.Y = append([]uint8(nil), src.Y...)
		dst.Cb = append([]uint8(nil), src.Cb...)
		dst.Cr = append([]uint8(nil), src.Cr...)
		dst.A = append([]uint8(nil), src.A...)
		return &dst
	}
	dst := image.NewRGBA64(r)
	draw.Draw(dst, r, img, r.Min, draw.Src)
	return dst
}
