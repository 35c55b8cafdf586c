// stack.go — stack-capture facility for the boundary core.
//
// Design goals:
//   - Injected, not ambient: callers hold a Capturer and ask for a capture at
//     the failure site. There is no package-level toggle.
//   - Accurate frames: runtime.Callers + runtime.CallersFrames so inlined
//     calls resolve to the right function.
//   - Total: a capture never fails. When nothing can be recorded the result
//     is the empty placeholder trace.
//   - Shared, not copied: a *Trace is immutable once built, so duplicates of a
//     failure point at the same capture instead of re-capturing.
package xgxboundary

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Frame represents a single call site in a stack trace.
type Frame struct {
	PC       uintptr // program counter of the call return
	File     string  // absolute file path (as provided by runtime)
	Line     int     // line number
	Function string  // fully-qualified function name (pkg.Func or method)
}

// Stack is a slice of Frames from most recent call outward.
type Stack []Frame

const (
	// defaultMaxDepth bounds captures on failure paths.
	defaultMaxDepth = 64

	// MaxCaptureDepth is the hard ceiling on frames a RuntimeCapturer
	// records. Larger MaxDepth values are clamped to it.
	MaxCaptureDepth = 1024
)

// Trace is an immutable snapshot of the call stack at the moment a failure
// was constructed. A nil *Trace means "no trace was requested"; an empty
// non-nil Trace means "capture was requested but nothing could be recorded".
type Trace struct {
	frames Stack
}

// emptyTrace is the canonical placeholder returned when no frames exist.
var emptyTrace = &Trace{}

// NewTrace builds a Trace from already resolved frames. The slice is copied.
func NewTrace(frames Stack) *Trace {
	if len(frames) == 0 {
		return emptyTrace
	}
	out := make(Stack, len(frames))
	copy(out, frames)
	return &Trace{frames: out}
}

// Frames returns a copy of the recorded frames.
func (t *Trace) Frames() Stack {
	if t == nil || len(t.frames) == 0 {
		return nil
	}
	out := make(Stack, len(t.frames))
	copy(out, t.frames)
	return out
}

// Len is the number of recorded frames. Nil-safe.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.frames)
}

// Empty reports whether the trace holds no frames. Nil-safe.
func (t *Trace) Empty() bool { return t.Len() == 0 }

// String renders one frame per line as "function file:line".
func (t *Trace) String() string {
	if t.Empty() {
		return "<no stack>"
	}
	var b []byte
	for i, fr := range t.frames {
		if i > 0 {
			b = append(b, '\n')
		}
		b = fmt.Appendf(b, "%s %s:%d", fr.Function, fr.File, fr.Line)
	}
	return string(b)
}

// Format implements fmt.Formatter.
//
//	%s, %v → same as String()
//	%+v    → frames indented under a "stack:" header
func (t *Trace) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			writeFrames(s, t)
			return
		}
		_, _ = io.WriteString(s, t.String())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", t.String())
	default:
		_, _ = io.WriteString(s, t.String())
	}
}

// writeFrames writes the verbose stack section. Empty traces write nothing.
func writeFrames(w io.Writer, t *Trace) {
	if t.Empty() {
		return
	}
	_, _ = io.WriteString(w, "stack:")
	for _, fr := range t.frames {
		_, _ = fmt.Fprintf(w, "\n  %s %s:%d", fr.Function, fr.File, fr.Line)
	}
}

// Capturer produces a snapshot of the current call stack.
//
// skip counts frames above the caller of Capture: with skip=0 the first
// recorded frame is the function that called Capture.
// Implementations must not fail; they return the empty trace instead.
type Capturer interface {
	Capture(skip int) *Trace
}

// CapturerFunc adapts a function to the Capturer interface.
type CapturerFunc func(skip int) *Trace

// Capture calls f(skip+1) so the adapter itself is not recorded.
func (f CapturerFunc) Capture(skip int) *Trace { return f(skip + 1) }

// RuntimeCapturer captures with runtime.Callers. A zero MaxDepth uses the
// default depth; values above MaxCaptureDepth are clamped.
type RuntimeCapturer struct {
	MaxDepth int
}

// Capture implements Capturer.
func (c RuntimeCapturer) Capture(skip int) *Trace {
	return captureStack(skip, c.MaxDepth)
}

// captureStack captures up to maxDepth frames, skipping 'skip' frames above
// the caller of its caller.
//
// Skip accounting:
//   - +1 for runtime.Callers itself
//   - +1 for captureStack
//   - +1 for the Capturer method that called us
//
// so the first recorded frame is the caller of Capture.
func captureStack(skip, maxDepth int) *Trace {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	maxDepth = min(maxDepth, MaxCaptureDepth)
	if skip < 0 {
		skip = 0
	}

	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return emptyTrace
	}
	return &Trace{frames: resolve(pc[:n])}
}

// resolve turns return PCs into frames via CallersFrames, which expands
// inlined calls.
func resolve(pcs []uintptr) Stack {
	if len(pcs) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs)
	out := make(Stack, 0, len(pcs))
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}

// stackTracer is the interface pkg/errors values satisfy.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// PkgErrorsCapturer captures through github.com/pkg/errors. Its depth is
// fixed by that package (32 frames).
type PkgErrorsCapturer struct{}

// Capture implements Capturer.
func (PkgErrorsCapturer) Capture(skip int) *Trace {
	if skip < 0 {
		skip = 0
	}
	st, ok := errors.New("capture").(stackTracer)
	if !ok {
		return emptyTrace
	}
	trace := st.StackTrace()
	pcs := make([]uintptr, 0, len(trace))
	for _, f := range trace {
		// errors.Frame stores the raw return PC recorded by runtime.Callers.
		pcs = append(pcs, uintptr(f))
	}
	frames := resolve(pcs)

	// Trim through this method by name; a PC may expand to several frames
	// when calls were inlined, so indexes into trace are not reliable.
	start := 1
	for i, fr := range frames {
		if strings.HasSuffix(fr.Function, "PkgErrorsCapturer.Capture") {
			start = i + 1
			break
		}
	}
	start += skip
	if start >= len(frames) {
		return emptyTrace
	}
	return &Trace{frames: frames[start:]}
}

// NopCapturer never records frames. It stands in where capture is
// unsupported or unwanted and always yields the empty placeholder trace.
type NopCapturer struct{}

// Capture implements Capturer.
func (NopCapturer) Capture(int) *Trace { return emptyTrace }

var (
	_ Capturer = RuntimeCapturer{}
	_ Capturer = PkgErrorsCapturer{}
	_ Capturer = NopCapturer{}
	_ Capturer = CapturerFunc(nil)
)
