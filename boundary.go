// boundary.go — generic internal-to-public conversion and operation wrapper.
//
// Conversion steps (Convert):
//  1. Duplicate the input. The copy shares any trace with the original.
//  2. Take the trace from the duplicate according to the TracePolicy.
//  3. Move the original into a fresh shared cause Handle.
//  4. Let the translator pick the public variant from the duplicate.
//
// The duplicate exists because the translator needs concrete-typed access to
// the input after the original has been erased behind the Handle.
package xgxboundary

import (
	"reflect"

	"github.com/pkg/errors"
)

// ErrNilTranslation is returned by Do when the translator yields a nil
// public failure for a real internal one.
var ErrNilTranslation = errors.New("xgxboundary: translator returned a nil public failure")

// TracePolicy decides what trace a public failure carries.
type TracePolicy uint8

const (
	// TraceInherit shares the cause's own trace (nil if it has none).
	TraceInherit TracePolicy = iota
	// TraceCapture takes a fresh capture at the boundary.
	TraceCapture
	// TraceOmit attaches no trace to the public failure.
	TraceOmit
)

var tracePolicyNames = map[TracePolicy]string{
	TraceInherit: "inherit",
	TraceCapture: "capture",
	TraceOmit:    "omit",
}

func (p TracePolicy) String() string {
	if s, ok := tracePolicyNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParseTracePolicy maps "inherit", "capture" or "omit" to a TracePolicy.
func ParseTracePolicy(s string) (TracePolicy, bool) {
	for p, name := range tracePolicyNames {
		if name == s {
			return p, true
		}
	}
	return TraceInherit, false
}

// Translate builds the public failure from a duplicate of the internal one,
// the handle that now owns the original, and the trace chosen by the policy.
// It must not return a nil P; Do reports ErrNilTranslation if it does.
type Translate[I, P any] func(dup I, cause *Handle, trace *Trace) P

// Boundary converts internal failures of type I into public failures of
// type P. It is immutable and safe for concurrent use.
type Boundary[I Duplicable[I], P error] struct {
	translate  Translate[I, P]
	policy     TracePolicy
	capturer   Capturer
	handleOpts []HandleOption
}

// Option configures a Boundary.
type Option func(*options)

type options struct {
	policy     TracePolicy
	capturer   Capturer
	handleOpts []HandleOption
}

// WithTracePolicy sets the trace policy. Default: TraceInherit.
func WithTracePolicy(p TracePolicy) Option { return func(o *options) { o.policy = p } }

// WithCapturer sets the capturer used by TraceCapture.
// Default: RuntimeCapturer with the default depth.
func WithCapturer(c Capturer) Option { return func(o *options) { o.capturer = c } }

// WithDropHook registers fn on every cause handle the boundary creates; it
// runs when the last duplicate of a public failure releases its cause.
func WithDropHook(fn func(error)) Option {
	return func(o *options) { o.handleOpts = append(o.handleOpts, OnDrop(fn)) }
}

// New creates a Boundary around translate.
func New[I Duplicable[I], P error](translate Translate[I, P], opts ...Option) *Boundary[I, P] {
	o := options{policy: TraceInherit, capturer: RuntimeCapturer{}}
	for _, fn := range opts {
		fn(&o)
	}
	if o.capturer == nil {
		o.capturer = NopCapturer{}
	}
	return &Boundary[I, P]{
		translate:  translate,
		policy:     o.policy,
		capturer:   o.capturer,
		handleOpts: o.handleOpts,
	}
}

// Policy returns the configured trace policy.
func (b *Boundary[I, P]) Policy() TracePolicy { return b.policy }

// Convert translates in into its public counterpart. It cannot fail.
func (b *Boundary[I, P]) Convert(in I) P {
	return b.convert(in, 1)
}

// convert does the work of Convert; skip counts the exported frames above it
// so a boundary capture starts at the caller of Convert or Do.
func (b *Boundary[I, P]) convert(in I, skip int) P {
	dup := in.Clone()

	var trace *Trace
	switch b.policy {
	case TraceInherit:
		if t, ok := any(dup).(Traced); ok {
			trace = t.Trace()
		}
	case TraceCapture:
		trace = b.capturer.Capture(skip + 1)
	case TraceOmit:
	}

	cause := NewHandle(in, b.handleOpts...)
	return b.translate(dup, cause, trace)
}

// Do runs op and converts its failure, if any. The success value passes
// through unchanged; on failure the zero T is returned with the public
// failure. The internal failure itself never leaves Do, even when the
// translator misbehaves and yields nil.
func Do[T any, I Duplicable[I], P error](b *Boundary[I, P], op func() (T, I)) (T, error) {
	v, in := op()
	if isNil(in) {
		return v, nil
	}
	var zero T
	out := b.convert(in, 1)
	if isNil(out) {
		return zero, ErrNilTranslation
	}
	return zero, out
}

// isNil reports whether v is a nil interface or a typed nil of a nilable
// kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
