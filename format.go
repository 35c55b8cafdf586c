// format.go — fmt.Formatter support for boundary failures.
//
// Behavior:
//
//	%s, %v   → concise string (Error()).
//	%q       → quoted Error().
//	%+v      → verbose, structured multi-line format:
//	             variant=<variant> layer=<layer> msg="<message>"
//	             cause: <recursively formatted with %+v>
//	             stack:
//	               funcA file.go:123
//	               funcB other.go:45
//
// Variant types delegate their Format method to Format so every layer renders
// the same way.
package xgxboundary

import (
	"fmt"
	"io"
)

// Format renders e for verb. Classified failures get the verbose header,
// Traced failures get a stack section, and a cause found through Unwrap is
// rendered recursively with %+v.
func Format(s fmt.State, verb rune, e error) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			formatVerbose(s, e)
			return
		}
		formatConcise(s, e)
	case 's':
		formatConcise(s, e)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		formatConcise(s, e)
	}
}

// formatConcise writes the one-line message (delegates to Error()).
func formatConcise(w io.Writer, e error) {
	_, _ = io.WriteString(w, e.Error())
}

// formatVerbose writes a structured multi-line representation.
// Sections without content (no cause, no trace) are omitted.
func formatVerbose(w io.Writer, e error) {
	if c, ok := e.(Classified); ok {
		_, _ = fmt.Fprintf(w, "variant=%s layer=%s ", c.Variant(), c.Layer())
	}
	_, _ = fmt.Fprintf(w, "msg=%q", e.Error())

	var cause error
	if u, ok := e.(singleUnwrapper); ok {
		if cause = u.Unwrap(); cause != nil {
			_, _ = io.WriteString(w, "\ncause: ")
			// Recurse with %+v so nested traces render if available.
			_, _ = fmt.Fprintf(w, "%+v", cause)
		}
	}

	t, ok := e.(Traced)
	if !ok {
		return
	}
	trace := t.Trace()
	if trace.Empty() {
		return
	}
	// An inherited trace was already printed under the cause.
	if ct, ok := cause.(Traced); ok && ct.Trace() == trace {
		_, _ = io.WriteString(w, "\nstack: shared with cause")
		return
	}
	_, _ = io.WriteString(w, "\n")
	writeFrames(w, trace)
}
