// doc.go — package documentation for xgx-boundary
//
// Package xgxboundary translates internal failures into public ones at a
// module boundary without losing the cause or where it was raised.
//
// # Two layers
//
//   - Internal failures are raised by the lowest layer. They form a closed
//     set of variants, may carry a captured Trace, and are cheap to Clone
//     (a copy shares the trace).
//   - Public failures are what a module returns. Each wraps exactly one cause
//     through a Handle, a shared reference-counted pointer to any error.
//
// # Converting
//
// A Boundary owns the conversion. It clones the input, chooses a trace,
// moves the original into a new Handle and lets a translator pick the public
// variant:
//
//	b := xgxboundary.New(translate, xgxboundary.WithTracePolicy(xgxboundary.TraceInherit))
//	pub := b.Convert(internal)
//
// Do wraps a whole operation: success passes through, failure is converted.
//
//	v, err := xgxboundary.Do(b, lowLevelOp)
//
// # When Are Stacks Captured?
//
// Stacks are captured at the failure site, by an explicitly passed Capturer.
//
//	+----------------------+--------------------------------------------+
//	| Capturer             | Behaviour                                  |
//	+----------------------+--------------------------------------------+
//	| RuntimeCapturer      | runtime.Callers, default depth 64          |
//	| PkgErrorsCapturer    | github.com/pkg/errors stack, depth 32      |
//	| NopCapturer          | empty placeholder trace                    |
//	+----------------------+--------------------------------------------+
//
// The public failure's own trace follows the Boundary's TracePolicy:
// TraceInherit shares the cause's trace, TraceCapture records a new one at
// the boundary, TraceOmit drops it.
//
// # Duplicating
//
// Cloning a public failure clones its Handle: the reference count goes up by
// one and the cause is not copied. Release gives the reference back; the
// cause is dropped when the last duplicate releases it. Counting is atomic.
//
// # Formatting
//
//   - `%v`, `%s`   → concise, single-line `Error()`
//   - `%+v`        → variant, layer, message, cause and stack
//   - `%q`         → quoted `Error()`
package xgxboundary
