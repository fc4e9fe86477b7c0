package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestRawFromImage_Channels(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range opaque.Pix {
		opaque.Pix[i] = 0xff
	}
	translucent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	translucent.Set(1, 1, color.NRGBA{10, 20, 30, 40})

	tests := []struct {
		name string
		img  image.Image
		want uint32
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 3, 3)), 1},
		{"gray16", image.NewGray16(image.Rect(0, 0, 3, 3)), 1},
		{"opaque rgba", opaque, 3},
		{"translucent nrgba", translucent, 4},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawFromImage(tt.img)
			if raw.Channels != tt.want {
				t.Errorf("Channels: got %d, want %d", raw.Channels, tt.want)
			}
			b := tt.img.Bounds()
			if raw.Width != uint32(b.Dx()) || raw.Height != uint32(b.Dy()) {
				t.Errorf("dims: got %dx%d, want %dx%d", raw.Width, raw.Height, b.Dx(), b.Dy())
			}
			if want := int(raw.Width * raw.Height * raw.Channels); len(raw.Pix) != want {
				t.Errorf("len(Pix): got %d, want %d", len(raw.Pix), want)
			}
		})
	}
}

func TestRawFromImage_PixelValues(t *testing.T) {
	img := quadrantImage(4, 4)

	raw := RawFromImage(img)
	if raw.Channels != 3 {
		t.Fatalf("Channels: got %d, want 3", raw.Channels)
	}

	// Red top-left, white bottom-right.
	if got := pixelAt(raw.Pix, 4, 3, 0, 0); !bytes.Equal(got, []byte{255, 0, 0}) {
		t.Errorf("top-left: got %v, want [255 0 0]", got)
	}
	if got := pixelAt(raw.Pix, 4, 3, 3, 3); !bytes.Equal(got, []byte{255, 255, 255}) {
		t.Errorf("bottom-right: got %v, want [255 255 255]", got)
	}
}

func TestImageFromRaw(t *testing.T) {
	tests := []struct {
		name string
		c    uint32
		want string
	}{
		{"gray", 1, "*image.Gray"},
		{"rgb", 3, "*imaging.RGB"},
		{"rgba", 4, "*image.NRGBA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix := sequentialPixels(int(3 * 2 * tt.c))
			img, err := ImageFromRaw(pix, 3, 2, tt.c)
			if err != nil {
				t.Fatalf("ImageFromRaw failed: %v", err)
			}
			if got := typeName(img); got != tt.want {
				t.Errorf("type: got %s, want %s", got, tt.want)
			}
			if got := packPixels(img); !bytes.Equal(got, pix) {
				t.Errorf("pixels: got %v, want %v", got, pix)
			}
		})
	}
}

func TestImageFromRaw_Empty(t *testing.T) {
	img, err := ImageFromRaw(nil, 0, 0, 4)
	if err != nil {
		t.Fatalf("ImageFromRaw failed: %v", err)
	}
	m, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("got %T, want *image.NRGBA", img)
	}
	if !m.Bounds().Empty() {
		t.Errorf("Bounds: got %v, want empty", m.Bounds())
	}
	if got := Wrap(img); !got.IsEmpty() {
		t.Errorf("Wrap of the empty result: got %+v, want empty", got.Info())
	}
}

func TestImageFromRaw_Errors(t *testing.T) {
	if _, err := ImageFromRaw(make([]byte, 8), 2, 2, 2); !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("channels=2: got %v, want ErrUnsupportedChannels", err)
	}
	if _, err := ImageFromRaw(make([]byte, 7), 2, 2, 3); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("short data: got %v, want ErrLengthMismatch", err)
	}
}

func TestRGB_SetAt(t *testing.T) {
	m := NewRGB(image.Rect(0, 0, 2, 2))
	m.Set(1, 0, color.NRGBA{1, 2, 3, 0})
	m.Set(5, 5, color.White) // out of bounds, ignored

	if got := m.At(1, 0); got != (color.RGBA{1, 2, 3, 0xff}) {
		t.Errorf("At(1,0): got %v, want {1 2 3 255}", got)
	}
	if got := m.At(-1, 0); got != (color.RGBA{}) {
		t.Errorf("At(-1,0): got %v, want zero color", got)
	}
	if !m.Opaque() {
		t.Error("RGB image should report opaque")
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *image.Gray:
		return "*image.Gray"
	case *RGB:
		return "*imaging.RGB"
	case *image.NRGBA:
		return "*image.NRGBA"
	}
	return "unknown"
}

// quadrantImage creates an in-memory quadrant pattern:
// red top-left, green top-right, blue bottom-left, white bottom-right.
func quadrantImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255}
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255}
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255}
			} else {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}
