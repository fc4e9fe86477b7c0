//go:build cgo

package main

import (
	"bytes"
	"testing"

	"github.com/ironsheep/image-bridge/internal/capi"
)

func TestCABI_RotateRGB(t *testing.T) {
	live := capi.Default.Live()
	src := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 0,
	}

	h := fromBytes(src, 2, 2, 3)
	if h == 0 {
		t.Fatal("imgbridge_from_pixels returned the zero handle")
	}
	if got := isEmpty(h); got != 0 {
		t.Errorf("imgbridge_is_empty: got %d, want 0", got)
	}
	if w, ht, c := info(h); w != 2 || ht != 2 || c != 3 {
		t.Errorf("imgbridge_info: got {%d %d %d}, want {2 2 3}", w, ht, c)
	}

	data, n, null := toBytes(h)
	if null {
		t.Fatal("imgbridge_to_bytes returned NULL for a 2x2 image")
	}
	if n != 12 {
		t.Errorf("length: got %d, want 12", n)
	}
	if !bytes.Equal(data, src) {
		t.Errorf("bytes: got %v, want %v", data, src)
	}
	if !bytes.Equal(data, capi.Default.Bytes(capi.Handle(h))) {
		t.Error("C copy differs from Bridge.Bytes")
	}

	r := rotate90(h)
	if r == 0 || r == h {
		t.Fatalf("imgbridge_rotate90: got handle %d from %d, want a new non-zero handle", r, h)
	}
	want := []byte{0, 0, 255, 255, 0, 0, 255, 255, 0, 0, 255, 0}
	if data, n, _ := toBytes(r); !bytes.Equal(data, want) || n != 12 {
		t.Errorf("rotated bytes: got %v (len %d), want %v", data, n, want)
	}
	if w, ht, c := info(r); w != 2 || ht != 2 || c != 3 {
		t.Errorf("rotated info: got {%d %d %d}, want {2 2 3}", w, ht, c)
	}

	// The source is untouched by the rotation.
	if data, _, _ := toBytes(h); !bytes.Equal(data, src) {
		t.Errorf("source after rotation: got %v, want %v", data, src)
	}

	release(h)
	release(r)
	if got := capi.Default.Live(); got != live {
		t.Errorf("live handles: got %d, want %d", got, live)
	}
}

func TestCABI_DimensionsSwap(t *testing.T) {
	pix := make([]byte, 3*1*4)
	h := fromBytes(pix, 3, 1, 4)
	r := rotate90(h)
	defer release(h)
	defer release(r)

	if w, ht, c := info(r); w != 1 || ht != 3 || c != 4 {
		t.Errorf("imgbridge_info: got {%d %d %d}, want {1 3 4}", w, ht, c)
	}
}

func TestCABI_EmptySentinel(t *testing.T) {
	h := fromBytes(nil, 0, 0, 0)
	defer release(h)

	if h == 0 {
		t.Fatal("the empty image still gets a non-zero handle")
	}
	if got := isEmpty(h); got != 1 {
		t.Errorf("imgbridge_is_empty: got %d, want 1", got)
	}
	if w, ht, c := info(h); w != 0 || ht != 0 || c != 4 {
		t.Errorf("imgbridge_info: got {%d %d %d}, want {0 0 4}", w, ht, c)
	}

	data, n, null := toBytes(h)
	if !null {
		t.Errorf("imgbridge_to_bytes: got %v, want NULL", data)
	}
	if n != 0 {
		t.Errorf("length: got %d, want 0", n)
	}

	r := rotate90(h)
	defer release(r)
	if got := isEmpty(r); got != 1 {
		t.Errorf("rotated imgbridge_is_empty: got %d, want 1", got)
	}
	if _, n, null := toBytes(r); !null || n != 0 {
		t.Errorf("rotated imgbridge_to_bytes: got null=%v len=%d, want NULL and 0", null, n)
	}
}

func TestCABI_NullLengthPointer(t *testing.T) {
	h := fromBytes([]byte{7, 8, 9, 10}, 2, 2, 1)
	defer release(h)

	if !toBytesNoLength(h) {
		t.Error("imgbridge_to_bytes with a NULL length: got NULL, want a copy")
	}
}

func TestCABI_ReleaseZeroIsNoop(t *testing.T) {
	live := capi.Default.Live()
	release(0)
	if got := capi.Default.Live(); got != live {
		t.Errorf("live handles: got %d, want %d", got, live)
	}
}
