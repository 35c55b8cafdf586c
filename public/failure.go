// Package public is the boundary layer: the only failures this module
// returns to its callers.
//
// Every public failure wraps its cause through a shared, reference-counted
// handle. Clone a failure to keep it (for logging and propagating at once);
// Release a duplicate when done with it.
package public

import (
	"fmt"

	xgxboundary "github.com/xgx-io/xgx-boundary"
)

// PublicFailure is the closed set of failures exposed across the boundary.
type PublicFailure interface {
	xgxboundary.Classified
	xgxboundary.Traced

	// Clone returns a duplicate holding a new reference to the same cause.
	Clone() PublicFailure

	// Release gives up this value's reference to the cause. It reports
	// whether the cause was dropped.
	Release() bool

	// Cause returns the wrapped cause, or nil after it was dropped.
	Cause() error

	Unwrap() error

	publicFailure()
}

// VariantFredBob tags FredBob.
const VariantFredBob xgxboundary.Variant = "FredBob"

// DefaultFormat renders a public failure from the description of its cause.
const DefaultFormat = "Public Error: %s"

// FredBob wraps any failure raised below the boundary.
type FredBob struct {
	cause  *xgxboundary.Handle
	trace  *xgxboundary.Trace
	format string
}

// Error renders the failure with its cause's description, e.g.
// "Public Error: FooBar".
func (f FredBob) Error() string {
	format := f.format
	if format == "" {
		format = DefaultFormat
	}
	return fmt.Sprintf(format, describe(f.cause.Err()))
}

func (FredBob) Variant() xgxboundary.Variant    { return VariantFredBob }
func (FredBob) Layer() xgxboundary.Layer        { return xgxboundary.LayerPublic }
func (f FredBob) Trace() *xgxboundary.Trace     { return f.trace }
func (f FredBob) Cause() error                  { return f.cause.Err() }
func (f FredBob) Unwrap() error                 { return f.cause.Err() }
func (f FredBob) Release() bool                 { return f.cause.Release() }
func (f FredBob) Format(s fmt.State, verb rune) { xgxboundary.Format(s, verb, f) }
func (FredBob) publicFailure()                  {}

// Handle exposes the cause handle, for diagnostics such as reference counts.
func (f FredBob) Handle() *xgxboundary.Handle { return f.cause }

// Clone duplicates f. The duplicate shares the trace and takes a new
// reference on the cause; the cause itself is not copied.
func (f FredBob) Clone() PublicFailure {
	n := f
	n.cause = f.cause.Clone()
	return n
}

// describe is the short form of a cause embedded in public renderings: its
// variant tag when it has one, its message otherwise.
func describe(err error) string {
	if err == nil {
		return "<released>"
	}
	if c, ok := err.(xgxboundary.Classified); ok {
		return string(c.Variant())
	}
	return err.Error()
}

var _ PublicFailure = FredBob{}
