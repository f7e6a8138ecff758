package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphOrder_NoEdgesKeepsForestOrder(t *testing.T) {
	f := New()
	register(t, f, "a.go",
		NewTest("one", "a.go", 1, func() {}, false),
		NewTest("two", "a.go", 2, func() {}, false),
	)
	register(t, f, "b.go", NewTest("three", "b.go", 1, func() {}, false))

	order, err := f.Graph().Order()
	require.NoError(t, err)
	assert.Equal(t, names(f.Descriptors()), names(order))
}

func TestGraphOrder_RespectsPrecedence(t *testing.T) {
	f := New()
	setup := NewSet("setupSuite", "a.go", 1)
	first := NewTest("first", "a.go", 2, func() {}, false)
	second := NewTest("second", "a.go", 3, func() {}, false)
	free := NewTest("free", "a.go", 4, func() {}, false)
	register(t, f, "a.go", setup, first, second, free)
	// Forest order is free, second, first, setupSuite.
	require.NoError(t, f.Precede(setup, first))
	require.NoError(t, f.Precede(first, second))

	order, err := f.Graph().Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"free", "setupSuite", "first", "second"}, names(order))
}

func TestGraph_DetectCycles(t *testing.T) {
	f := New()
	a := NewTest("a", "x.go", 1, func() {}, false)
	b := NewTest("b", "x.go", 2, func() {}, false)
	c := NewTest("c", "x.go", 3, func() {}, false)
	register(t, f, "x.go", a, b, c)
	require.NoError(t, f.Precede(a, b))
	require.NoError(t, f.Precede(b, c))
	require.NoError(t, f.Graph().DetectCycles())

	require.NoError(t, f.Precede(c, a))
	_, err := f.Graph().Order()
	assert.ErrorIs(t, err, ErrCycle)
}

func TestGraph_DepCounts(t *testing.T) {
	f := New()
	set := NewSet("s", "x.go", 1)
	a := NewTest("a", "x.go", 2, func() {}, false)
	b := NewTest("b", "x.go", 3, func() {}, false)
	register(t, f, "x.go", set, a, b)
	require.NoError(t, f.Precede(set, a))
	require.NoError(t, f.Precede(set, b))
	require.NoError(t, f.Precede(a, b))

	g := f.Graph()
	assert.Equal(t, 0, g.DepCount[set])
	assert.Equal(t, 1, g.DepCount[a])
	assert.Equal(t, 2, g.DepCount[b])
	assert.Equal(t, []string{"b", "a"}, names(g.Dependents[set]), "dependents follow forest order")
}
