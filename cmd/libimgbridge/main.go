// Command libimgbridge builds the image bridge as a C shared library.
//
//	go build -buildmode=c-shared -o libimgbridge.so ./cmd/libimgbridge
//
// Hosts include imgbridge.h from this directory. Set IMGBRIDGE_LOG_LEVEL=debug
// to log handle traffic and contract violations to stderr.
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef struct {
    uint32_t width;
    uint32_t height;
    uint32_t channels;
} imgbridge_info_t;
*/
import "C"

import (
	"log/slog"
	"os"
	"unsafe"

	"github.com/ironsheep/image-bridge/internal/capi"
)

func init() {
	if os.Getenv("IMGBRIDGE_LOG_LEVEL") == "debug" {
		capi.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
}

//export imgbridge_from_pixels
func imgbridge_from_pixels(pixels *C.uint8_t, width, height, channels C.uint32_t) C.uintptr_t {
	h := capi.Default.FromPixels(unsafe.Pointer(pixels), uint32(width), uint32(height), uint32(channels))
	return C.uintptr_t(h)
}

//export imgbridge_to_bytes
func imgbridge_to_bytes(image C.uintptr_t, length *C.size_t) *C.uint8_t {
	b := capi.Default.Bytes(capi.Handle(image))
	if length != nil {
		*length = C.size_t(len(b))
	}
	if len(b) == 0 {
		return nil
	}
	// The host owns the copy and frees it with imgbridge_free_bytes.
	return (*C.uint8_t)(C.CBytes(b))
}

//export imgbridge_free_bytes
func imgbridge_free_bytes(bytes *C.uint8_t) {
	C.free(unsafe.Pointer(bytes))
}

//export imgbridge_info
func imgbridge_info(image C.uintptr_t) C.imgbridge_info_t {
	info := capi.Default.Info(capi.Handle(image))
	return C.imgbridge_info_t{
		width:    C.uint32_t(info.Width),
		height:   C.uint32_t(info.Height),
		channels: C.uint32_t(info.Channels),
	}
}

//export imgbridge_is_empty
func imgbridge_is_empty(image C.uintptr_t) C.int {
	if capi.Default.IsEmpty(capi.Handle(image)) {
		return 1
	}
	return 0
}

//export imgbridge_rotate90
func imgbridge_rotate90(image C.uintptr_t) C.uintptr_t {
	return C.uintptr_t(capi.Default.Rotate90(capi.Handle(image)))
}

//export imgbridge_release
func imgbridge_release(image C.uintptr_t) {
	capi.Default.Release(capi.Handle(image))
}

func main() {}
