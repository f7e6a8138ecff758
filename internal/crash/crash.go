// Package crash reports the test that was running when a run dies.
//
// A Handler is installed for the duration of one run only:
//
//	h := crash.Install(tracker)
//	defer h.Release()
//
// While installed it intercepts fatal signals and, through Recover, panics
// that escaped every test phase. Either way it prints the offending event and
// the last running test, then exits; nothing about the process is trusted
// after such an event.
package crash

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"

	"scope/internal/logging"
)

// ExitCode is the status the process exits with after a crash.
const ExitCode = 2

// Tracker names the test in progress. worker < 0 asks for the most recently
// started test on any worker.
type Tracker interface {
	LastRunning(worker int) string
}

var signalNames = map[os.Signal]string{
	syscall.SIGFPE:  "floating point exception (SIGFPE)",
	syscall.SIGSEGV: "segmentation fault (SIGSEGV)",
	syscall.SIGTERM: "termination request (SIGTERM)",
	syscall.SIGINT:  "interrupt request (SIGINT)",
}

// Handler is an installed crash handler.
type Handler struct {
	tracker Tracker
	out     io.Writer
	exit    func(int)

	signals  chan os.Signal
	done     chan struct{}
	aborted  chan struct{}
	watching sync.WaitGroup
	release  sync.Once
	abort    sync.Once
}

// Option configures a Handler.
type Option func(*Handler)

// WithOutput sets where diagnostics are written (default os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(h *Handler) { h.out = w }
}

// WithExit replaces os.Exit.
func WithExit(fn func(int)) Option {
	return func(h *Handler) { h.exit = fn }
}

// Install starts intercepting fatal signals.
func Install(tracker Tracker, opts ...Option) *Handler {
	h := &Handler{
		tracker: tracker,
		out:     os.Stderr,
		exit:    os.Exit,
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
		aborted: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	sigs := make([]os.Signal, 0, len(signalNames))
	for sig := range signalNames {
		sigs = append(sigs, sig)
	}
	signal.Notify(h.signals, sigs...)

	h.watching.Add(1)
	go h.watch()
	return h
}

// Release restores default signal handling. It is safe to call more than once.
func (h *Handler) Release() {
	h.release.Do(func() {
		signal.Stop(h.signals)
		close(h.done)
		h.watching.Wait()
	})
}

// Recover must be deferred directly by every goroutine that runs tests.
// worker identifies the goroutine to the Tracker.
func (h *Handler) Recover(worker int) {
	r := recover()
	if r == nil {
		return
	}
	logging.Debug("crash", "panic stack:\n%s", debug.Stack())
	h.fail(fmt.Sprintf("Caught %v", r), worker)
}

// Aborted is closed once the handler has reported a crash and the exit
// function has returned, which only happens when exit is replaced.
func (h *Handler) Aborted() <-chan struct{} {
	return h.aborted
}

func (h *Handler) watch() {
	defer h.watching.Done()
	select {
	case sig := <-h.signals:
		h.fail(describe(sig), -1)
	case <-h.done:
	}
}

func (h *Handler) fail(event string, worker int) {
	h.abort.Do(func() {
		fmt.Fprintf(h.out, "%s. Last test was %s. Terminating.\n", event, h.tracker.LastRunning(worker))
		h.exit(ExitCode)
		close(h.aborted)
	})
}

func describe(sig os.Signal) string {
	name, ok := signalNames[sig]
	if !ok {
		name = sig.String()
	}
	if num, ok := sig.(syscall.Signal); ok {
		return fmt.Sprintf("Received signal %d, %s", int(num), name)
	}
	return fmt.Sprintf("Received signal %s", name)
}
