package assert_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"scope/pkg/assert"
)

func failureOf(fn func()) (f *assert.Failure) {
	defer func() {
		if r := recover(); r != nil {
			f = r.(*assert.Failure)
		}
	}()
	fn()
	return nil
}

func baseName(path string) string {
	return filepath.Base(path)
}

func TestTrue(t *testing.T) {
	require.Nil(t, failureOf(func() { assert.True(true) }))

	f := failureOf(func() { assert.True(false) })
	require.NotNil(t, f)
	require.Equal(t, "assertion failed", f.Message)
	require.Equal(t, "failure_test.go", baseName(f.File))
	require.Equal(t, 30, f.Line)

	f = failureOf(func() { assert.True(1 > 2, "one is not greater") })
	require.Equal(t, "one is not greater", f.Message)
}

func TestFalse(t *testing.T) {
	require.Nil(t, failureOf(func() { assert.False(false) }))
	require.Equal(t, "expected false", failureOf(func() { assert.False(true) }).Message)
}

func TestFail(t *testing.T) {
	f := failureOf(func() { assert.Failf("got %d", 3) })
	require.Equal(t, "got 3", f.Message)
	require.Equal(t, f.Error(), f.Message)
	require.Contains(t, f.Location(), "failure_test.go:")
}

func TestExpect(t *testing.T) {
	t.Run("matching panic is swallowed", func(t *testing.T) {
		require.Nil(t, failureOf(func() {
			assert.Expect[int](func() { panic(1) })
		}))
	})

	t.Run("interface target", func(t *testing.T) {
		require.Nil(t, failureOf(func() {
			assert.Expect[error](func() { panic(errors.New("x")) })
		}))
	})

	t.Run("no panic fails", func(t *testing.T) {
		f := failureOf(func() {
			assert.Expect[int](func() {})
		})
		require.NotNil(t, f)
		require.Equal(t, "Expected panic not caught", f.Message)
	})

	t.Run("other panic propagates", func(t *testing.T) {
		require.PanicsWithValue(t, "other", func() {
			assert.Expect[int](func() { panic("other") })
		})
	})
}
