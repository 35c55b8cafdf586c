// predicates.go — classification helpers over cause chains.
//
// Scope:
//   - Answer "which layer/variant is this?" without importing the concrete
//     variant types, which may live in internal packages.
//   - Interop-first: errors.As traverses Unwrap chains, so wrapped failures
//     (fmt.Errorf("%w"), pkg/errors.Wrap) are still recognised.
package xgxboundary

import (
	"errors"
)

// LayerOf returns the layer of the outermost Classified failure in err's
// chain, or LayerUnknown if there is none.
func LayerOf(err error) Layer {
	if err == nil {
		return LayerUnknown
	}
	var c Classified
	if errors.As(err, &c) {
		return c.Layer()
	}
	return LayerUnknown
}

// VariantOf returns the variant of the outermost Classified failure in
// err's chain, or "" if there is none.
func VariantOf(err error) Variant {
	if err == nil {
		return ""
	}
	var c Classified
	if errors.As(err, &c) {
		return c.Variant()
	}
	return ""
}

// HasVariant reports whether any failure in err's chain is variant v.
func HasVariant(err error, v Variant) bool {
	found := false
	Walk(err, func(e error) bool {
		if c, ok := e.(Classified); ok && c.Variant() == v {
			found = true
			return false
		}
		return true
	})
	return found
}

// Exposed reports whether err leaks an internal failure: the outermost
// layered failure in its chain is LayerInternal. A public failure wrapping an
// internal cause is not a leak.
func Exposed(err error) bool {
	return LayerOf(err) == LayerInternal
}

// TraceOf returns the first non-empty trace along err's chain, or nil.
func TraceOf(err error) *Trace {
	var out *Trace
	Walk(err, func(e error) bool {
		if t, ok := e.(Traced); ok {
			if tr := t.Trace(); !tr.Empty() {
				out = tr
				return false
			}
		}
		return true
	})
	return out
}
