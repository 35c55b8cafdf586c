// Package xgxboundary defines the translation boundary between internal,
// implementation-specific failures and the public failures a module exposes.
//
// Design tenets:
//   - Interop-first: every failure is a plain error and works with
//     errors.Is/As through Unwrap.
//   - Values, not side effects: nothing here logs, retries or aggregates.
//   - Duplicable causes: a public failure holds its cause through a shared,
//     reference-counted Handle, so duplicating it duplicates the reference
//     and never the referent.
package xgxboundary

// Failure is the minimal capability a cause must satisfy: it has a textual
// description. It may expose a further cause through Unwrap() error.
type Failure interface {
	error
}

// Duplicable is a failure that can produce a structural copy of itself.
// Copies share any trace they carry.
type Duplicable[T any] interface {
	Failure
	Clone() T
}

// Variant names one member of a closed failure set (e.g. "FooBar").
//
// Variants are stringly-typed so renderings stay stable across packages that
// cannot import each other's concrete types.
type Variant string

// Classified is implemented by every variant of a closed failure set.
type Classified interface {
	Failure

	// Variant returns the variant tag.
	Variant() Variant

	// Layer reports which side of the boundary the failure belongs to.
	Layer() Layer
}

// Traced is implemented by failures that may carry a captured stack.
// Trace returns nil when no capture was taken.
type Traced interface {
	Trace() *Trace
}
