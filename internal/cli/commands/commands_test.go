package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scope/internal/config"
	"scope/internal/domain"
	"scope/internal/registry"
	check "scope/pkg/assert"
)

func init() {
	color.NoColor = true
}

type fakeViewer struct {
	seen []domain.TestFailure
}

func (v *fakeViewer) View(failures []domain.TestFailure) error {
	v.seen = failures
	return nil
}

func testEnv(t *testing.T, ds ...*registry.Descriptor) (Env, *bytes.Buffer) {
	t.Helper()
	t.Setenv(config.ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	f := registry.New()
	for _, d := range ds {
		require.NoError(t, f.Register(d, d.Source))
	}
	var out bytes.Buffer
	return Env{
		Forest:     f,
		Stdout:     &out,
		Stderr:     &bytes.Buffer{},
		IsTerminal: func() bool { return false },
		Viewer:     &fakeViewer{},
	}, &out
}

func alphaBeta(betaFails bool) []*registry.Descriptor {
	beta := func() {}
	if betaFails {
		beta = func() { check.Fail("beta broke") }
	}
	return []*registry.Descriptor{
		registry.NewTest("alpha", "ab.go", 1, func() {}, false),
		registry.NewTest("beta", "ab.go", 2, beta, false),
	}
}

func TestExecute_Passing(t *testing.T) {
	env, out := testEnv(t, alphaBeta(false)...)
	assert.Equal(t, ExitOK, Execute(env, nil))
	assert.Equal(t, "OK (2 tests)\n", out.String())
}

func TestExecute_Failing(t *testing.T) {
	env, out := testEnv(t, alphaBeta(true)...)
	assert.Equal(t, ExitFailures, Execute(env, []string{"--pooled", "-p", "2"}))
	assert.Contains(t, out.String(), ": beta: beta broke\n")
	assert.Contains(t, out.String(), "Failures!\nTests run: 2, Failures: 1\n")
}

func TestExecute_PositionalFilter(t *testing.T) {
	env, out := testEnv(t, alphaBeta(true)...)
	assert.Equal(t, ExitOK, Execute(env, []string{"alpha"}))
	assert.Equal(t, "OK (1 tests)\n", out.String())
}

func TestExecute_SourceFilter(t *testing.T) {
	env, out := testEnv(t,
		registry.NewTest("one", "dir/one.go", 1, func() {}, false),
		registry.NewTest("two", "dir/two.go", 1, func() { check.Fail("no") }, false),
	)
	assert.Equal(t, ExitOK, Execute(env, []string{"--source-filter", "one.go"}))
	assert.Equal(t, "OK (1 tests)\n", out.String())
}

func TestExecute_List(t *testing.T) {
	for _, args := range [][]string{{"--list"}, {"list"}} {
		env, out := testEnv(t, append(alphaBeta(true), registry.NewSet("suite", "ab.go", 3))...)
		assert.Equal(t, ExitOK, Execute(env, args))
		assert.Equal(t, "beta\tab.go\nalpha\tab.go\n", out.String(), "args %v", args)
	}

	env, out := testEnv(t, alphaBeta(true)...)
	assert.Equal(t, ExitOK, Execute(env, []string{"list", "-f", "alp*"}))
	assert.Equal(t, "alpha\tab.go\n", out.String())
}

func TestExecute_Report(t *testing.T) {
	env, _ := testEnv(t, alphaBeta(true)...)
	path := filepath.Join(t.TempDir(), "report.json")
	assert.Equal(t, ExitFailures, Execute(env, []string{"--report", path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var report domain.RunReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 2, report.Meta.RunTests)
	assert.Equal(t, 1, report.Meta.Failures)
	require.Len(t, report.Details, 1)
	assert.Equal(t, "beta", report.Details[0].TestName)
	assert.True(t, report.Details[0].HasLocation())
}

func TestExecute_Interactive(t *testing.T) {
	env, _ := testEnv(t, alphaBeta(true)...)
	viewer := &fakeViewer{}
	env.Viewer = viewer
	env.IsTerminal = func() bool { return true }

	assert.Equal(t, ExitFailures, Execute(env, []string{"--interactive"}))
	require.Len(t, viewer.seen, 1)
	assert.Equal(t, "beta broke", viewer.seen[0].Message)
}

func TestExecute_Debug(t *testing.T) {
	env, out := testEnv(t, alphaBeta(false)...)
	assert.Equal(t, ExitOK, Execute(env, []string{"--debug"}))
	assert.Contains(t, out.String(), "Running in debug mode\n")
	assert.Contains(t, env.Stderr.(*bytes.Buffer).String(), "Running alpha")
}

func TestExecute_CycleIsAnError(t *testing.T) {
	ds := alphaBeta(false)
	env, out := testEnv(t, ds...)
	require.NoError(t, env.Forest.Precede(ds[0], ds[1]))
	require.NoError(t, env.Forest.Precede(ds[1], ds[0]))

	assert.Equal(t, ExitFailures, Execute(env, nil))
	assert.Empty(t, out.String())
	assert.Contains(t, env.Stderr.(*bytes.Buffer).String(), "Error: run failed")
}
