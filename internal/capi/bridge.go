package capi

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/ironsheep/image-bridge/internal/imaging"
)

// Contract violations that have no counterpart in package imaging.
var (
	ErrNullPointer   = errors.New("null pixel pointer")
	ErrUnknownHandle = errors.New("unknown or released handle")
)

// ContractViolation is the panic value raised when a host breaks the
// boundary contract. It is never returned as an error: the boundary cannot
// continue safely once a caller has passed bad memory or a stale handle.
type ContractViolation struct {
	// Op is the boundary operation that detected the violation.
	Op string

	// Err is the underlying cause. Use errors.Is to match it against
	// ErrNullPointer, ErrUnknownHandle or the imaging sentinel errors.
	Err error
}

func (v *ContractViolation) Error() string {
	return fmt.Sprintf("imgbridge: %s: contract violation: %v", v.Op, v.Err)
}

func (v *ContractViolation) Unwrap() error { return v.Err }

func violate(op string, err error) {
	logger().Error("imgbridge: contract violation", "op", op, "err", err)
	panic(&ContractViolation{Op: op, Err: err})
}

// BufferFromPointer copies width*height*channels bytes starting at pixels
// into a newly owned Buffer.
//
// Parameters:
//   - pixels: Start of the host's pixel memory. It must stay valid and
//     unmodified for the duration of the call only; it is not retained.
//   - width, height: Dimensions in pixels.
//   - channels: 1, 3 or 4.
//
// If width or height is zero the empty sentinel is returned and pixels is
// never dereferenced. Otherwise a nil pointer, an unsupported channel count or
// an unrepresentable size panics with a *ContractViolation before any memory
// is read.
func BufferFromPointer(pixels unsafe.Pointer, width, height, channels uint32) *imaging.Buffer {
	const op = "from_pixels"

	if width == 0 || height == 0 {
		return imaging.Empty()
	}
	if pixels == nil {
		violate(op, ErrNullPointer)
	}
	n, err := imaging.RawLen(width, height, channels)
	if err != nil {
		violate(op, err)
	}

	b, err := imaging.NewBuffer(unsafe.Slice((*byte)(pixels), n), width, height, channels)
	if err != nil {
		violate(op, err)
	}
	return b
}

// Bridge exposes the boundary operations over a handle registry.
type Bridge struct {
	reg *Registry
}

// New creates a Bridge with its own registry.
func New() *Bridge {
	return &Bridge{reg: NewRegistry()}
}

// FromPixels builds a Buffer with BufferFromPointer and returns a new handle
// to it.
func (br *Bridge) FromPixels(pixels unsafe.Pointer, width, height, channels uint32) Handle {
	return br.reg.Put(BufferFromPointer(pixels, width, height, channels))
}

// Bytes returns a copy of the pixels behind h. The empty sentinel yields a
// zero-length slice.
func (br *Bridge) Bytes(h Handle) []byte {
	return br.get("to_bytes", h).Bytes()
}

// Info returns the width, height and channel count behind h.
func (br *Bridge) Info(h Handle) imaging.Info {
	return br.get("info", h).Info()
}

// IsEmpty reports whether h refers to the empty sentinel or any other
// zero-size buffer.
func (br *Bridge) IsEmpty(h Handle) bool {
	return br.get("is_empty", h).IsEmpty()
}

// Rotate90 returns a new handle to h's image rotated 90 degrees clockwise.
// h stays valid and unchanged.
func (br *Bridge) Rotate90(h Handle) Handle {
	return br.reg.Put(br.get("rotate90", h).Rotate90())
}

// Release destroys the Buffer behind h. Releasing the zero handle is a
// no-op; releasing an unknown or already released handle is a contract
// violation.
func (br *Bridge) Release(h Handle) {
	if h == 0 {
		return
	}
	if !br.reg.Release(h) {
		violate("release", fmt.Errorf("%w: %d", ErrUnknownHandle, uint64(h)))
	}
}

// Live returns the number of handles not yet released.
func (br *Bridge) Live() int {
	return br.reg.Len()
}

func (br *Bridge) get(op string, h Handle) *imaging.Buffer {
	b, ok := br.reg.Get(h)
	if !ok {
		violate(op, fmt.Errorf("%w: %d", ErrUnknownHandle, uint64(h)))
	}
	return b
}

// Default is the Bridge behind the shared library's exported functions.
var Default = New()
