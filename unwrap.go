// unwrap.go — stdlib-interop helpers for walking cause chains.
//
// Scope:
//   - Single-cause chains only (Unwrap() error). Boundary failures never
//     aggregate causes, so multi-error trees are not expanded here.
//   - Cycle-safe: a hand-written Unwrap that loops back is visited once.
//
// We must NOT use map[error] as a blanket "seen" set: interface values whose
// dynamic type is not comparable panic as map keys. markSeen uses a dual
// guard:
//   - seenErr (map[error]struct{})   — only for comparable dynamic types
//   - seenPtr (map[uintptr]struct{}) — pointer identity for pointer types
package xgxboundary

import (
	"errors"
	"reflect"
)

type singleUnwrapper interface{ Unwrap() error }

// maxChainDepth caps traversal of runaway chains.
const maxChainDepth = 1 << 12

// isComparable reports whether err's dynamic type is safe as a map key.
func isComparable(err error) bool {
	if err == nil {
		return false
	}
	return reflect.TypeOf(err).Comparable()
}

// ptrID returns a pointer identity for pointer-typed dynamic errors.
func ptrID(err error) (uintptr, bool) {
	if err == nil {
		return 0, false
	}
	rv := reflect.ValueOf(err)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Pointer(), true
	}
	return 0, false
}

// markSeen returns true if err was newly marked; false if already seen.
// Errors that are neither comparable nor pointers are always treated as new;
// the depth cap bounds them.
func markSeen(err error, seenErr map[error]struct{}, seenPtr map[uintptr]struct{}) bool {
	if err == nil {
		return false
	}
	if isComparable(err) {
		if _, ok := seenErr[err]; ok {
			return false
		}
		seenErr[err] = struct{}{}
		return true
	}
	if id, ok := ptrID(err); ok {
		if _, dup := seenPtr[id]; dup {
			return false
		}
		seenPtr[id] = struct{}{}
	}
	return true
}

// Walk visits err and each cause below it, outermost first. It stops when
// visit returns false, at the end of the chain, or on a cycle. Nil is a no-op.
func Walk(err error, visit func(error) bool) {
	if err == nil || visit == nil {
		return
	}
	seenErr := make(map[error]struct{}, 4)
	seenPtr := make(map[uintptr]struct{}, 4)

	cur := err
	_ = markSeen(cur, seenErr, seenPtr)
	for depth := 0; cur != nil && depth < maxChainDepth; depth++ {
		if !visit(cur) {
			return
		}
		u, ok := cur.(singleUnwrapper)
		if !ok {
			return
		}
		next := u.Unwrap()
		if next == nil || !markSeen(next, seenErr, seenPtr) {
			return
		}
		cur = next
	}
}

// Root returns the deepest cause in err's chain (err itself if it wraps
// nothing). If err is nil, Root returns nil.
func Root(err error) error {
	var last error
	Walk(err, func(e error) bool {
		last = e
		return true
	})
	return last
}

// Has reports whether target appears anywhere in err's chain.
// It wraps errors.Is with nil-safety.
func Has(err, target error) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.Is(err, target)
}
