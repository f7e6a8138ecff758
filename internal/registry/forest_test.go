package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scope/internal/domain"
)

func names(ds []*Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Name)
	}
	return out
}

func register(t *testing.T, f *Forest, group string, ds ...*Descriptor) {
	t.Helper()
	for _, d := range ds {
		require.NoError(t, f.Register(d, group))
	}
}

func TestRegister_LIFOWithinGroup(t *testing.T) {
	f := New()
	register(t, f, "test1.go",
		NewTest("simpleTest", "test1.go", 1, func() {}, false),
		NewTest("failTest", "test1.go", 2, func() {}, false),
	)
	register(t, f, "test2.go", NewTest("fix1", "test2.go", 1, func() {}, false))
	register(t, f, "test1.go", NewTest("knownBadTest", "test1.go", 3, func() {}, true))

	assert.Equal(t, []string{"knownBadTest", "failTest", "simpleTest", "fix1"}, names(f.Descriptors()))

	var groups []string
	f.ForEachGroup(func(g *Group) bool {
		groups = append(groups, g.Name)
		return true
	})
	assert.Equal(t, []string{"test1.go", "test2.go"}, groups)
}

func TestRegister_DuplicateName(t *testing.T) {
	f := New()
	register(t, f, "a.go", NewTest("dup", "a.go", 1, func() {}, false))

	err := f.Register(NewTest("dup", "a.go", 2, func() {}, false), "a.go")
	assert.ErrorIs(t, err, ErrDuplicateName)

	assert.NoError(t, f.Register(NewTest("dup", "b.go", 1, func() {}, false), "b.go"),
		"names only need to be unique within their group")
}

func TestRegister_Sealed(t *testing.T) {
	f := New()
	f.Seal()
	assert.True(t, f.Sealed())
	err := f.Register(NewTest("late", "a.go", 1, func() {}, false), "a.go")
	assert.ErrorIs(t, err, ErrSealed)
}

func TestCounts(t *testing.T) {
	f := New()
	register(t, f, "a.go",
		NewSet("suite", "a.go", 1),
		NewTest("one", "a.go", 2, func() {}, false),
		NewTest("two", "a.go", 3, func() {}, false),
	)
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, 2, f.NumTests())
}

func TestForEachDescriptor_StopsEarlyAndRestarts(t *testing.T) {
	f := New()
	register(t, f, "a.go",
		NewTest("one", "a.go", 1, func() {}, false),
		NewTest("two", "a.go", 2, func() {}, false),
		NewTest("three", "a.go", 3, func() {}, false),
	)

	var seen []string
	f.ForEachDescriptor(func(d *Descriptor) bool {
		seen = append(seen, d.Name)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"three", "two"}, seen)

	assert.Len(t, f.Descriptors(), 3, "traversal restarts from the beginning")
}

func TestPrecede(t *testing.T) {
	f := New()
	set := NewSet("suite", "a.go", 1)
	test := NewTest("member", "a.go", 2, func() {}, false)
	stranger := NewTest("stranger", "a.go", 3, func() {}, false)
	register(t, f, "a.go", set, test)

	require.NoError(t, f.Precede(set, test))
	require.NoError(t, f.Precede(set, test), "duplicate edges are ignored")
	assert.Len(t, f.Edges(), 1)

	assert.ErrorIs(t, f.Precede(set, stranger), ErrUnknownDescriptor)
	assert.ErrorIs(t, f.Precede(test, test), ErrCycle)

	group, ok := f.GroupOf(test)
	assert.True(t, ok)
	assert.Equal(t, "a.go", group)
}

func TestConstruct(t *testing.T) {
	ran := false
	d := NewTest("x", "a.go", 1, func() { ran = true }, false)
	tc := d.Construct()
	assert.Equal(t, "x", tc.Name())
	assert.Equal(t, "a.go", tc.Source())
	var msgs domain.MessageList
	tc.Run(&msgs)
	assert.True(t, ran)
	assert.Empty(t, msgs)
	assert.True(t, NewSet("s", "a.go", 1).Construct().Placeholder())
}
