// Package lens implements lenses: composable values that give a widget
// subtree access to a part of a larger data structure.
//
// A simple lens is a struct field accessor; another is a slice index, in
// which case the lens carries the index. Lenses compose end-to-end with
// Then, and InShared lifts a lens over a shared copy-on-write container so
// that writes which don't change the value never force a deep copy.
package lens

import "github.com/go-loom/loom/pkg/data"

// Lens gives access to a part B of a larger data structure A.
//
// Both operations run the supplied callback with a pointer to the part.
// They are structured this way, as opposed to returning a pointer, because
// the part may be synthesized on the fly (see Map) rather than stored
// inside A. Callbacks passed to With must not mutate through the pointer;
// WithMut is the mutating form.
type Lens[A, B any] interface {
	With(data *A, f func(*B))
	WithMut(data *A, f func(*B))
}

// Get copies the focused value out of data.
func Get[A, B any](l Lens[A, B], data *A) B {
	var out B
	l.With(data, func(b *B) { out = *b })
	return out
}

// Put sets the focused value in data.
func Put[A, B any](l Lens[A, B], data *A, value B) {
	l.WithMut(data, func(b *B) { *b = value })
}

// ID returns the identity lens, which exposes exactly the original value.
// Useful as the start of a combinator chain.
func ID[A any]() Lens[A, A] {
	return idLens[A]{}
}

type idLens[A any] struct{}

func (idLens[A]) With(data *A, f func(*A))    { f(data) }
func (idLens[A]) WithMut(data *A, f func(*A)) { f(data) }

// Field builds a lens from a pair of projection functions, typically both
// returning the address of the same struct field. The pair mirrors the
// read-only and mutating access paths; for a plain field they are the same
// function.
func Field[A, B any](get, getMut func(*A) *B) Lens[A, B] {
	return fieldLens[A, B]{get: get, getMut: getMut}
}

type fieldLens[A, B any] struct {
	get    func(*A) *B
	getMut func(*A) *B
}

func (l fieldLens[A, B]) With(data *A, f func(*B))    { f(l.get(data)) }
func (l fieldLens[A, B]) WithMut(data *A, f func(*B)) { f(l.getMut(data)) }

// Index returns a lens that accesses a particular slice element.
//
// Access panics if the index is out of bounds. That is deliberate: an
// invalid index indicates a logic error in lens construction, not a runtime
// condition to recover from. Only construct index lenses for indices known
// to be valid.
func Index[E any](index int) Lens[[]E, E] {
	return indexLens[E]{index: index}
}

type indexLens[E any] struct {
	index int
}

func (l indexLens[E]) With(data *[]E, f func(*E))    { f(&(*data)[l.index]) }
func (l indexLens[E]) WithMut(data *[]E, f func(*E)) { f(&(*data)[l.index]) }

// Map builds a lens from a getter and a setter over a computed value.
//
// Useful when the focused value doesn't physically exist in A but can be
// derived, for example rescaling a number into the range some widget
// expects. Mutation copies the computed value into a temporary, runs the
// callback on it, then writes it back through put.
func Map[A, B any](get func(*A) B, put func(*A, B)) Lens[A, B] {
	return mapLens[A, B]{get: get, put: put}
}

type mapLens[A, B any] struct {
	get func(*A) B
	put func(*A, B)
}

func (l mapLens[A, B]) With(data *A, f func(*B)) {
	temp := l.get(data)
	f(&temp)
}

func (l mapLens[A, B]) WithMut(data *A, f func(*B)) {
	temp := l.get(data)
	f(&temp)
	l.put(data, temp)
}

// Deref returns a lens that projects through a pointer to its referent.
func Deref[B any]() Lens[*B, B] {
	return derefLens[B]{}
}

type derefLens[B any] struct{}

func (derefLens[B]) With(data **B, f func(*B))    { f(*data) }
func (derefLens[B]) WithMut(data **B, f func(*B)) { f(*data) }

// Then composes a Lens[A, B] with a Lens[B, C] to produce a Lens[A, C].
// Composition is associative.
func Then[A, B, C any](left Lens[A, B], right Lens[B, C]) Lens[A, C] {
	return thenLens[A, B, C]{left: left, right: right}
}

type thenLens[A, B, C any] struct {
	left  Lens[A, B]
	right Lens[B, C]
}

func (l thenLens[A, B, C]) With(data *A, f func(*C)) {
	l.left.With(data, func(b *B) { l.right.With(b, f) })
}

func (l thenLens[A, B, C]) WithMut(data *A, f func(*C)) {
	l.left.WithMut(data, func(b *B) { l.right.WithMut(b, f) })
}

// InShared lifts a lens over the value inside a data.Shared container with
// copy-on-write semantics: mutation runs against a temporary copy of the
// focused value, and the shared value is cloned only if the temporary
// actually diverged. Read-only access and no-op writes never deep-copy the
// shared state.
func InShared[A data.Value[A], B data.Value[B]](inner Lens[A, B]) Lens[data.Shared[A], B] {
	return inSharedLens[A, B]{inner: inner}
}

type inSharedLens[A data.Value[A], B data.Value[B]] struct {
	inner Lens[A, B]
}

func (l inSharedLens[A, B]) With(shared *data.Shared[A], f func(*B)) {
	l.inner.With(shared.Value(), f)
}

func (l inSharedLens[A, B]) WithMut(shared *data.Shared[A], f func(*B)) {
	var temp B
	l.inner.With(shared.Value(), func(b *B) { temp = (*b).Clone() })
	f(&temp)
	changed := false
	l.inner.With(shared.Value(), func(b *B) { changed = !(*b).Same(temp) })
	if changed {
		l.inner.WithMut(shared.MakeUnique(), func(b *B) { *b = temp })
	}
}
