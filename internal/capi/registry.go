package capi

import (
	"sync"

	"github.com/ironsheep/image-bridge/internal/imaging"
)

// Handle is the opaque reference a host holds for a Buffer.
//
// Handles are plain integers so that no Go pointer ever crosses into C.
// The zero Handle is never issued.
type Handle uintptr

// Registry owns every Buffer a host currently holds a handle to.
//
// Each Put issues a fresh handle, so two live handles never refer to the
// same Buffer. Registry is safe for concurrent use; the lock only guards the
// handle map, since Buffers are never mutated after construction.
type Registry struct {
	mu      sync.RWMutex
	next    Handle
	buffers map[Handle]*imaging.Buffer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		buffers: make(map[Handle]*imaging.Buffer),
	}
}

// Put takes ownership of b and returns a new handle for it.
//
// When the counter wraps it skips zero and any handle still live, so an
// issued handle is never zero and never shared.
func (r *Registry) Put(b *imaging.Buffer) Handle {
	r.mu.Lock()
	r.next++
	for r.next == 0 || r.buffers[r.next] != nil {
		r.next++
	}
	h := r.next
	r.buffers[h] = b
	r.mu.Unlock()

	logger().Debug("imgbridge: handle issued",
		"handle", uint64(h), "width", b.Width(), "height", b.Height(), "format", b.Format().String())
	return h
}

// Get returns the Buffer behind h. The second result is false if h was
// never issued or has been released.
func (r *Registry) Get(h Handle) (*imaging.Buffer, bool) {
	r.mu.RLock()
	b, ok := r.buffers[h]
	r.mu.RUnlock()
	return b, ok
}

// Release drops the Buffer behind h. It reports whether h was live.
func (r *Registry) Release(h Handle) bool {
	r.mu.Lock()
	_, ok := r.buffers[h]
	delete(r.buffers, h)
	r.mu.Unlock()

	if ok {
		logger().Debug("imgbridge: handle released", "handle", uint64(h))
	}
	return ok
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buffers)
}
