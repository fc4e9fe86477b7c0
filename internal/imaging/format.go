package imaging

import "image"

// Format identifies the pixel layout of a Buffer.
//
// Only three layouts are supported natively. Any other image representation
// held by a Buffer reports FormatOther and is normalized to RGB8 on export.
type Format int

const (
	// FormatOther marks a representation outside the three native layouts.
	FormatOther Format = iota

	// FormatGray8 is one 8-bit luminance channel per pixel.
	FormatGray8

	// FormatRGB8 is three interleaved 8-bit channels per pixel, no alpha.
	FormatRGB8

	// FormatRGBA8 is four interleaved 8-bit channels per pixel with straight
	// (non-premultiplied) alpha.
	FormatRGBA8
)

// String returns the format name as used in log output.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "gray8"
	case FormatRGB8:
		return "rgb8"
	case FormatRGBA8:
		return "rgba8"
	default:
		return "other"
	}
}

// Channels returns the number of bytes per pixel for the format.
// FormatOther reports 3 because it is exported as RGB8.
func (f Format) Channels() int {
	switch f {
	case FormatGray8:
		return 1
	case FormatRGBA8:
		return 4
	default:
		return 3
	}
}

// FormatForChannels maps a channel count to its native format.
// The second result is false for anything but 1, 3 or 4.
func FormatForChannels(channels uint32) (Format, bool) {
	switch channels {
	case 1:
		return FormatGray8, true
	case 3:
		return FormatRGB8, true
	case 4:
		return FormatRGBA8, true
	}
	return FormatOther, false
}

// formatOf classifies an in-memory image by its concrete type.
func formatOf(img image.Image) Format {
	switch img.(type) {
	case *image.Gray:
		return FormatGray8
	case *RGB:
		return FormatRGB8
	case *image.NRGBA:
		return FormatRGBA8
	default:
		return FormatOther
	}
}
