// Package origin is the lowest layer: it raises internal failures.
//
// Internal failures are a closed set. Nothing outside this module can import
// the package, so an InternalFailure can only reach callers after the public
// boundary has translated it.
package origin

import (
	"fmt"

	xgxboundary "github.com/xgx-io/xgx-boundary"
)

// InternalFailure is the closed set of failures raised by this layer.
type InternalFailure interface {
	xgxboundary.Classified
	xgxboundary.Traced

	// Clone returns a structural copy sharing any trace.
	Clone() InternalFailure

	internalFailure()
}

// VariantFooBar tags FooBar.
const VariantFooBar xgxboundary.Variant = "FooBar"

// FooBar is raised when the low-level computation fails. Trace is nil when
// the failure site was not asked to capture a stack.
type FooBar struct {
	trace *xgxboundary.Trace
}

// NewFooBar builds a FooBar holding trace (may be nil).
func NewFooBar(trace *xgxboundary.Trace) FooBar { return FooBar{trace: trace} }

func (FooBar) Error() string                   { return "This is my internal error." }
func (FooBar) Variant() xgxboundary.Variant    { return VariantFooBar }
func (FooBar) Layer() xgxboundary.Layer        { return xgxboundary.LayerInternal }
func (f FooBar) Trace() *xgxboundary.Trace     { return f.trace }
func (f FooBar) Clone() InternalFailure        { return f }
func (f FooBar) Format(s fmt.State, verb rune) { xgxboundary.Format(s, verb, f) }
func (FooBar) internalFailure()                {}

// Cases handles every InternalFailure variant. Adding a variant adds a
// method here, so each converter stops compiling until it handles it.
type Cases[R any] interface {
	FooBar(FooBar) R
}

// Match dispatches f to the method of c for its variant.
func Match[R any](f InternalFailure, c Cases[R]) R {
	switch v := f.(type) {
	case FooBar:
		return c.FooBar(v)
	default:
		// unreachable: the set is sealed by internalFailure.
		panic(fmt.Sprintf("origin: unhandled internal failure %T", f))
	}
}

// Variants returns one instance of every variant, each with an empty trace.
func Variants() []InternalFailure {
	return []InternalFailure{
		NewFooBar(xgxboundary.NewTrace(nil)),
	}
}

var _ InternalFailure = FooBar{}
