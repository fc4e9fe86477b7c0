package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import "unsafe"

// Go-typed wrappers over the exported functions. Test files cannot use cgo,
// so they reach the C ABI through these, with every argument and result
// crossing the same C types a host would use.

// fromBytes copies pix into C memory, builds an image from it, and frees the
// C copy again. An empty pix passes a NULL pointer.
func fromBytes(pix []byte, width, height, channels uint32) uintptr {
	var p *C.uint8_t
	if len(pix) > 0 {
		p = (*C.uint8_t)(C.CBytes(pix))
		defer C.free(unsafe.Pointer(p))
	}
	return uintptr(imgbridge_from_pixels(p, C.uint32_t(width), C.uint32_t(height), C.uint32_t(channels)))
}

// toBytes calls imgbridge_to_bytes and copies the result back into Go
// memory before freeing it. null reports whether the C pointer was NULL;
// length is what the library wrote through its size_t out-parameter.
func toBytes(h uintptr) (data []byte, length uint64, null bool) {
	n := C.size_t(0xdead)
	p := imgbridge_to_bytes(C.uintptr_t(h), &n)
	if p == nil {
		return nil, uint64(n), true
	}
	defer imgbridge_free_bytes(p)
	return C.GoBytes(unsafe.Pointer(p), C.int(n)), uint64(n), false
}

// toBytesNoLength calls imgbridge_to_bytes with a NULL length pointer.
func toBytesNoLength(h uintptr) bool {
	p := imgbridge_to_bytes(C.uintptr_t(h), nil)
	if p == nil {
		return false
	}
	imgbridge_free_bytes(p)
	return true
}

func info(h uintptr) (width, height, channels uint32) {
	i := imgbridge_info(C.uintptr_t(h))
	return uint32(i.width), uint32(i.height), uint32(i.channels)
}

func isEmpty(h uintptr) int {
	return int(imgbridge_is_empty(C.uintptr_t(h)))
}

func rotate90(h uintptr) uintptr {
	return uintptr(imgbridge_rotate90(C.uintptr_t(h)))
}

func release(h uintptr) {
	imgbridge_release(C.uintptr_t(h))
}
