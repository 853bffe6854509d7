package lens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-loom/loom/pkg/data"
)

type num float64

func (n num) Same(other num) bool { return n == other }
func (n num) Clone() num          { return n }

type point struct {
	X num
	Y num
}

func (p point) Same(other point) bool { return p == other }
func (p point) Clone() point          { return p }

type state struct {
	Name   string
	Origin point
}

func (s state) Same(other state) bool { return s == other }
func (s state) Clone() state          { return s }

func originLens() Lens[state, point] {
	return Field(
		func(s *state) *point { return &s.Origin },
		func(s *state) *point { return &s.Origin },
	)
}

func TestFieldGetPut(t *testing.T) {
	s := state{Name: "a", Origin: point{X: 1, Y: 2}}

	l := originLens()
	assert.Equal(t, point{X: 1, Y: 2}, Get(l, &s))

	Put(l, &s, point{X: 3, Y: 4})
	assert.Equal(t, point{X: 3, Y: 4}, s.Origin)
	assert.Equal(t, "a", s.Name, "siblings of the focused field are untouched")
}

func TestThenComposes(t *testing.T) {
	s := state{Origin: point{X: 1, Y: 2}}

	l := Then(originLens(), Field(
		func(p *point) *num { return &p.X },
		func(p *point) *num { return &p.X },
	))
	assert.Equal(t, num(1), Get(l, &s))

	Put(l, &s, 9)
	assert.Equal(t, num(9), s.Origin.X)
	assert.Equal(t, num(2), s.Origin.Y)
}

func TestThenAssociative(t *testing.T) {
	type outer struct{ Inner state }
	o := outer{Inner: state{Origin: point{X: 5}}}

	innerLens := Field(
		func(v *outer) *state { return &v.Inner },
		func(v *outer) *state { return &v.Inner },
	)
	x := Field(
		func(p *point) *num { return &p.X },
		func(p *point) *num { return &p.X },
	)

	left := Then(Then(innerLens, originLens()), x)
	right := Then(innerLens, Then(originLens(), x))

	assert.Equal(t, Get(left, &o), Get(right, &o))
	Put(left, &o, 7)
	assert.Equal(t, num(7), Get(right, &o))
}

func TestGetThenPutIsNoOp(t *testing.T) {
	s := state{Name: "n", Origin: point{X: 1, Y: 2}}
	before := s.Clone()

	l := originLens()
	Put(l, &s, Get(l, &s))

	assert.True(t, before.Same(s))
}

func TestIDExposesWhole(t *testing.T) {
	s := state{Name: "whole"}
	l := ID[state]()

	assert.Equal(t, s, Get(l, &s))
	Put(l, &s, state{Name: "other"})
	assert.Equal(t, "other", s.Name)
}

func TestIndexAccessesElement(t *testing.T) {
	xs := []num{0, 1, 2, 3}
	l := Index[num](2)

	assert.Equal(t, num(2), Get(l, &xs))
	Put(l, &xs, 42)
	assert.Equal(t, []num{0, 1, 42, 3}, xs)
}

func TestIndexOutOfBoundsPanics(t *testing.T) {
	xs := []num{0, 1}
	l := Index[num](5)

	assert.Panics(t, func() { Get(l, &xs) })
	assert.Panics(t, func() { Put(l, &xs, 9) })
}

func TestMapSynthesizesValue(t *testing.T) {
	// Adapt a 0-2 range value for a widget that wants 0-1.
	p := point{X: 2}
	l := Map(
		func(p *point) num { return p.X / 2 },
		func(p *point, v num) { p.X = v * 2 },
	)

	assert.Equal(t, num(1), Get(l, &p))
	Put(l, &p, 0.5)
	assert.Equal(t, num(1), p.X)
}

func TestDerefProjectsThroughPointer(t *testing.T) {
	v := point{X: 4}
	p := &v
	l := Deref[point]()

	assert.Equal(t, point{X: 4}, Get(l, &p))
	Put(l, &p, point{X: 6})
	assert.Equal(t, num(6), v.X)
}

func TestInSharedNoOpWritePreservesIdentity(t *testing.T) {
	inner := Field(
		func(p *point) *num { return &p.X },
		func(p *point) *num { return &p.X },
	)
	l := InShared(inner)

	shared := data.NewShared(point{X: 2, Y: 0})
	original := shared.Retain()

	require.Equal(t, num(2), Get(l, &shared))

	Put(l, &shared, 2)
	assert.Equal(t, original.Ptr(), shared.Ptr(), "no-op writes don't cause a deep copy")

	Put(l, &shared, 42)
	assert.NotEqual(t, original.Ptr(), shared.Ptr())
	assert.Equal(t, num(42), shared.Value().X)
	assert.Equal(t, num(2), original.Value().X)
}

func TestInSharedReadNeverCopies(t *testing.T) {
	l := InShared(ID[point]())
	shared := data.NewShared(point{X: 1}).Retain()
	before := shared.Ptr()

	for i := 0; i < 3; i++ {
		_ = Get(l, &shared)
	}
	assert.Equal(t, before, shared.Ptr())
}
