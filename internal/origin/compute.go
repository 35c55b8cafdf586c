package origin

import (
	xgxboundary "github.com/xgx-io/xgx-boundary"
)

// Compute is the low-level operation. It always fails with FooBar, built at
// the failure site so a trace (taken when c is non-nil) starts in Compute.
func Compute(c xgxboundary.Capturer) (int, InternalFailure) {
	var trace *xgxboundary.Trace
	if c != nil {
		trace = c.Capture(0)
	}
	return 0, NewFooBar(trace)
}
