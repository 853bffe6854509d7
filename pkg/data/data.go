// Package data defines the change-detection contract that application state
// must satisfy to participate in the widget tree, along with a shared
// container with copy-on-write semantics.
package data

// Value is the constraint every piece of application state must satisfy.
//
// Same reports whether two instances are equivalent for the purpose of
// skipping redundant work: unchanged subtrees do no update work. It must be
// reflexive - Same(x, x) always holds - but beyond that implementers are
// free to use structural, pointer, or domain-specific equality.
//
// Clone duplicates the value. Widget pods keep an independent snapshot of
// the last data they saw, not a reference, so Clone must produce a value
// that stays equal until the original actually changes.
type Value[T any] interface {
	Same(other T) bool
	Clone() T
}

// Shared is a reference-counted handle to a value with deferred cloning:
// retaining the handle shares the underlying value, and a deep copy happens
// only when a mutation diverges from the current value (see MakeUnique and
// lens.InShared).
//
// The widget tree is single-threaded by contract, so the reference count is
// a plain integer.
type Shared[T Value[T]] struct {
	value *T
	refs  *int
}

// NewShared wraps a value in a shared handle with a reference count of one.
func NewShared[T Value[T]](value T) Shared[T] {
	refs := 1
	return Shared[T]{value: &value, refs: &refs}
}

// Retain returns a new handle sharing the same underlying value.
func (s Shared[T]) Retain() Shared[T] {
	*s.refs++
	return s
}

// Value returns a read-only view of the underlying value. Callers must not
// mutate through the returned pointer; use MakeUnique for that.
func (s *Shared[T]) Value() *T {
	return s.value
}

// MakeUnique returns a mutable pointer to the underlying value, cloning it
// first if the handle is shared. After MakeUnique returns, this handle is
// the sole owner of the value it points to.
func (s *Shared[T]) MakeUnique() *T {
	if *s.refs > 1 {
		*s.refs--
		value := (*s.value).Clone()
		refs := 1
		s.value = &value
		s.refs = &refs
	}
	return s.value
}

// Ptr returns the identity of the underlying allocation. Two handles share
// state exactly when their Ptr values are equal.
func (s *Shared[T]) Ptr() *T {
	return s.value
}

// Same reports equivalence: handles to the same allocation are trivially
// the same; otherwise the underlying values are compared.
func (s Shared[T]) Same(other Shared[T]) bool {
	if s.value == other.value {
		return true
	}
	return (*s.value).Same(*other.value)
}

// Clone retains the handle; the underlying value stays shared until a
// mutation diverges.
func (s Shared[T]) Clone() Shared[T] {
	return s.Retain()
}
