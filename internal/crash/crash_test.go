package crash

import (
	"bytes"
	"fmt"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTracker map[int]string

func (f fixedTracker) LastRunning(worker int) string {
	return f[worker]
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRecover_ReportsWorkerTest(t *testing.T) {
	var out syncBuffer
	codes := make(chan int, 1)
	h := Install(fixedTracker{1: "badPointer", -1: "other"}, WithOutput(&out), WithExit(func(c int) { codes <- c }))
	defer h.Release()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer h.Recover(1)
		panic("nil fixture")
	}()
	<-done

	assert.Equal(t, ExitCode, <-codes)
	assert.Equal(t, "Caught nil fixture. Last test was badPointer. Terminating.\n", out.String())
	select {
	case <-h.Aborted():
	default:
		t.Fatal("handler should be marked aborted")
	}
}

func TestRecover_NoPanicIsQuiet(t *testing.T) {
	var out syncBuffer
	exited := false
	h := Install(fixedTracker{}, WithOutput(&out), WithExit(func(int) { exited = true }))
	func() {
		defer h.Recover(0)
	}()
	h.Release()

	assert.False(t, exited)
	assert.Empty(t, out.String())
}

func TestSignal_ReportsLastRunning(t *testing.T) {
	var out syncBuffer
	codes := make(chan int, 1)
	h := Install(fixedTracker{-1: "slowTest"}, WithOutput(&out), WithExit(func(c int) { codes <- c }))
	defer h.Release()

	h.signals <- syscall.SIGTERM

	select {
	case code := <-codes:
		assert.Equal(t, ExitCode, code)
	case <-time.After(5 * time.Second):
		t.Fatal("signal was not handled")
	}
	want := fmt.Sprintf("Received signal %d, termination request (SIGTERM). Last test was slowTest. Terminating.\n", int(syscall.SIGTERM))
	assert.Equal(t, want, out.String())
}

func TestRelease_Idempotent(t *testing.T) {
	h := Install(fixedTracker{})
	h.Release()
	require.NotPanics(t, h.Release)

	select {
	case <-h.Aborted():
		t.Fatal("released handler must not report a crash")
	default:
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, fmt.Sprintf("Received signal %d, interrupt request (SIGINT)", int(syscall.SIGINT)), describe(syscall.SIGINT))
}
