// handle.go — shared, reference-counted cause handle.
//
// A public failure must hold an arbitrary cause and still be duplicable.
// Handle solves that by duplicating the reference, never the referent:
//
//	h1 := NewHandle(cause)   // refs=1
//	h2 := h1.Clone()         // refs=2, same shared cause
//	h1.Release()             // refs=1
//	h2.Release()             // refs=0, cause slot cleared, drop hook runs
//
// Counting is atomic so handles may be cloned and released from any
// goroutine. Each Handle releases at most once.
package xgxboundary

import (
	"go.uber.org/atomic"
)

// sharedCause is the single allocation every clone of a Handle points at.
type sharedCause struct {
	err    *atomic.Error
	refs   *atomic.Int64
	onDrop func(error)
}

// Handle is one owner's reference to a shared cause.
type Handle struct {
	shared   *sharedCause
	released *atomic.Bool
}

// HandleOption configures a Handle at creation.
type HandleOption func(*sharedCause)

// OnDrop registers fn to run once, with the cause, when the last reference
// is released.
func OnDrop(fn func(error)) HandleOption {
	return func(s *sharedCause) { s.onDrop = fn }
}

// NewHandle wraps err in a new shared cause holding one reference.
func NewHandle(err error, opts ...HandleOption) *Handle {
	s := &sharedCause{
		err:  atomic.NewError(err),
		refs: atomic.NewInt64(1),
	}
	for _, o := range opts {
		o(s)
	}
	return &Handle{shared: s, released: atomic.NewBool(false)}
}

// Clone adds one reference to the shared cause and returns the new owner's
// handle. Cloning a nil or released handle returns nil, and so does cloning
// after the last reference is gone: a dropped cause is never revived.
func (h *Handle) Clone() *Handle {
	if h == nil || h.released.Load() {
		return nil
	}
	for {
		n := h.shared.refs.Load()
		if n <= 0 {
			return nil
		}
		if h.shared.refs.CompareAndSwap(n, n+1) {
			return &Handle{shared: h.shared, released: atomic.NewBool(false)}
		}
	}
}

// Release drops this handle's reference. Repeated calls are no-ops. It
// reports whether this call dropped the last reference.
func (h *Handle) Release() bool {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return false
	}
	if h.shared.refs.Dec() != 0 {
		return false
	}
	cause := h.shared.err.Swap(nil)
	if h.shared.onDrop != nil {
		h.shared.onDrop(cause)
	}
	return true
}

// Err returns the shared cause, or nil once the last reference is gone.
func (h *Handle) Err() error {
	if h == nil {
		return nil
	}
	return h.shared.err.Load()
}

// Refs is the number of live references to the shared cause.
func (h *Handle) Refs() int64 {
	if h == nil {
		return 0
	}
	return h.shared.refs.Load()
}

// Released reports whether this handle has given up its reference.
func (h *Handle) Released() bool {
	return h == nil || h.released.Load()
}

// Same reports whether h and o point at the same shared cause.
func (h *Handle) Same(o *Handle) bool {
	if h == nil || o == nil {
		return false
	}
	return h.shared == o.shared
}
