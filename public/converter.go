package public

import (
	"github.com/pkg/errors"

	xgxboundary "github.com/xgx-io/xgx-boundary"
	"github.com/xgx-io/xgx-boundary/internal/origin"
)

// Option configures a Converter.
type Option func(*settings)

type settings struct {
	format   string
	origin   xgxboundary.Capturer
	boundary []xgxboundary.Option
}

// WithFormat sets the format public failures render with. It must pass
// ValidateFormat; NewConverter keeps DefaultFormat otherwise.
// Default: DefaultFormat.
func WithFormat(format string) Option { return func(s *settings) { s.format = format } }

// WithOriginCapturer sets the capturer the low-level operation uses at the
// failure site. nil raises internal failures without a trace.
// Default: xgxboundary.RuntimeCapturer.
func WithOriginCapturer(c xgxboundary.Capturer) Option {
	return func(s *settings) { s.origin = c }
}

// WithBoundaryOptions passes options to the underlying Boundary (trace
// policy, boundary capturer, drop hook).
func WithBoundaryOptions(opts ...xgxboundary.Option) Option {
	return func(s *settings) { s.boundary = append(s.boundary, opts...) }
}

// Converter translates internal failures into public ones and wraps the
// low-level operation. It is immutable and safe for concurrent use.
type Converter struct {
	boundary *xgxboundary.Boundary[origin.InternalFailure, PublicFailure]
	format   string
	origin   xgxboundary.Capturer
}

// NewConverter builds a Converter from opts.
func NewConverter(opts ...Option) *Converter {
	s := settings{format: DefaultFormat, origin: xgxboundary.RuntimeCapturer{}}
	for _, o := range opts {
		o(&s)
	}
	if ValidateFormat(s.format) != nil {
		s.format = DefaultFormat
	}
	c := &Converter{format: s.format, origin: s.origin}
	c.boundary = xgxboundary.New[origin.InternalFailure, PublicFailure](c.translate, s.boundary...)
	return c
}

// Convert maps an internal failure onto its public variant. It is total.
func (c *Converter) Convert(in origin.InternalFailure) PublicFailure {
	return c.boundary.Convert(in)
}

// Raise runs the low-level operation. Its value passes through on success;
// its failure comes back as a PublicFailure.
func (c *Converter) Raise() (int, error) {
	return xgxboundary.Do(c.boundary, func() (int, origin.InternalFailure) {
		return origin.Compute(c.origin)
	})
}

// TracePolicy reports the trace policy of the underlying boundary.
func (c *Converter) TracePolicy() xgxboundary.TracePolicy { return c.boundary.Policy() }

func (c *Converter) translate(dup origin.InternalFailure, cause *xgxboundary.Handle, trace *xgxboundary.Trace) PublicFailure {
	return origin.Match[PublicFailure](dup, translator{cause: cause, trace: trace, format: c.format})
}

// translator picks the public variant for each internal one.
type translator struct {
	cause  *xgxboundary.Handle
	trace  *xgxboundary.Trace
	format string
}

func (t translator) FooBar(origin.FooBar) PublicFailure {
	return FredBob{cause: t.cause, trace: t.trace, format: t.format}
}

var _ origin.Cases[PublicFailure] = translator{}

// RaisePublicFailure runs the low-level operation behind a Converter built
// from opts.
func RaisePublicFailure(opts ...Option) (int, error) {
	return NewConverter(opts...).Raise()
}

// ValidateFormat checks that format holds exactly one formatting verb, %s
// or %v, for the cause description. Literal percents are written %%.
func ValidateFormat(format string) error {
	verbs := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		if i+1 >= len(format) {
			return errors.Errorf("format %q ends with a bare %%", format)
		}
		i++
		switch format[i] {
		case '%':
		case 's', 'v':
			verbs++
		default:
			return errors.Errorf("format %q uses unsupported verb %%%c", format, format[i])
		}
	}
	if verbs != 1 {
		return errors.Errorf("format %q must contain exactly one %%s or %%v, found %d", format, verbs)
	}
	return nil
}
