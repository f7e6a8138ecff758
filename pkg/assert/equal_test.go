package assert_test

import (
	"container/list"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"scope/pkg/assert"
)

func TestCompare_Sequences(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		ok       bool
		diag     string
	}{
		{
			name:     "equal slices",
			expected: []int{1, 2, 3},
			actual:   []int{1, 2, 3},
			ok:       true,
		},
		{
			name:     "differs at last index",
			expected: []int{1, 2, 3},
			actual:   []int{1, 2, 4},
			diag:     "Mismatch at index 2. Expected: 3, Actual: 4. Expected size: 3, Actual size: 3.",
		},
		{
			name:     "actual truncated",
			expected: []int{1, 2, 3},
			actual:   []int{1, 2},
			diag:     "Mismatch at index 2. Expected: 3, Actual: *past end*. Expected size: 3, Actual size: 2.",
		},
		{
			name:     "expected truncated",
			expected: []string{"a"},
			actual:   []string{"a", "b"},
			diag:     "Mismatch at index 1. Expected: *past end*, Actual: b. Expected size: 1, Actual size: 2.",
		},
		{
			name:     "literal list against slice",
			expected: assert.List(1, 2, 3),
			actual:   []int{1, 2, 3},
			ok:       true,
		},
		{
			name:     "slice against linked list",
			expected: []int{1, 2, 3},
			actual:   newList(1, 2, 3),
			ok:       true,
		},
		{
			name:     "literal list against linked list",
			expected: assert.List(1, 2, 3),
			actual:   newList(1, 2, 5),
			diag:     "Mismatch at index 2. Expected: 3, Actual: 5. Expected size: 3, Actual size: 3.",
		},
		{
			name:     "iterator against slice",
			expected: slices.Values([]int{4, 5}),
			actual:   []int{4, 5},
			ok:       true,
		},
		{
			name:     "custom sequence",
			expected: ring{7, 8},
			actual:   []int{7, 8},
			ok:       true,
		},
		{
			name:     "nested sequences",
			expected: [][]int{{1}, {2, 3}},
			actual:   [][]int{{1}, {2, 4}},
			diag:     "Mismatch at index 1. Expected: [2 3], Actual: [2 4]. Expected size: 2, Actual size: 2.",
		},
		{
			name:     "empty and nil",
			expected: []int{},
			actual:   []int(nil),
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag, ok := assert.Compare(tt.expected, tt.actual)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.diag, diag)
		})
	}
}

func TestCompare_Tuples(t *testing.T) {
	diag, ok := assert.Compare([3]int{1, 2, 3}, assert.MakeTuple(1, 2, 3))
	require.True(t, ok, diag)

	diag, ok = assert.Compare(assert.MakeTuple(1, "two", 3.0), assert.MakeTuple(1, "three", 3.0))
	require.False(t, ok)
	require.Equal(t, "Tuple mismatch at index 1. Expected: two, Actual: three. Expected size: 3, Actual size: 3.", diag)

	diag, ok = assert.Compare(assert.MakeTuple(1, 2), assert.MakeTuple(1, 2, 3))
	require.False(t, ok)
	require.Equal(t, "Tuple mismatch at index 2. Expected: *past end*, Actual: 3. Expected size: 2, Actual size: 3.", diag)

	_, ok = assert.Compare([2]int{1, 2}, []int{1, 2})
	require.True(t, ok, "an array against a slice falls back to sequence comparison")
}

func TestCompare_Pairs(t *testing.T) {
	diag, ok := assert.Compare(assert.MakePair(5, "hello"), assert.MakePair(5, "hello, world"))
	require.False(t, ok)
	require.Equal(t, "Expected second: hello, Actual second: hello, world.", diag)
	require.NotContains(t, diag, "first")

	diag, ok = assert.Compare(assert.MakePair(1, 2), assert.MakePair(3, 4))
	require.False(t, ok)
	require.Equal(t, "Expected first: 1, Actual first: 3. Expected second: 2, Actual second: 4.", diag)

	_, ok = assert.Compare(assert.MakePair("k", []int{1}), assert.MakePair("k", assert.List(1)))
	require.True(t, ok)
}

func TestCompare_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		ok       bool
	}{
		{"ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"int and int64", 42, int64(42), true},
		{"negative int and uint", -1, uint(1), false},
		{"int and float", 2, 2.0, true},
		{"strings", "cool", "cool", true},
		{"named string", "cool", label("cool"), true},
		{"bools", true, false, false},
		{"nil and nil", nil, nil, true},
		{"nil and nil pointer", nil, (*int)(nil), true},
		{"nil and value", nil, 3, false},
		{"maps", map[string]int{"a": 1}, map[string]int{"a": 1}, true},
		{"structs", point{1, 2}, point{1, 2}, true},
		{"string and int", "1", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := assert.Compare(tt.expected, tt.actual)
			require.Equal(t, tt.ok, ok)
		})
	}

	diag, _ := assert.Compare(41, 42)
	require.Equal(t, "Expected: 41, Actual: 42", diag)
}

func TestEqualMsg(t *testing.T) {
	f := failureOf(func() { assert.EqualMsg(41, 42, "silly") })
	require.NotNil(t, f)
	require.Equal(t, "silly Expected: 41, Actual: 42", f.Message)
	require.Equal(t, "equal_test.go", baseName(f.File))

	f = failureOf(func() { assert.EqualMsg(41, 42, "") })
	require.Equal(t, "Expected: 41, Actual: 42", f.Message)

	require.Nil(t, failureOf(func() { assert.Equal([]int{1, 2, 3}, newList(1, 2, 3)) }))
}

type label string

type point struct{ x, y int }

type ring []int

func (r ring) Len() int     { return len(r) }
func (r ring) At(i int) any { return r[i] }

func newList(values ...int) *list.List {
	l := list.New()
	for _, v := range values {
		l.PushBack(v)
	}
	return l
}
