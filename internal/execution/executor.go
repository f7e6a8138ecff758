package execution

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"scope/internal/crash"
	"scope/internal/discovery"
	"scope/internal/domain"
	"scope/internal/logging"
	"scope/internal/registry"
)

// ErrAborted is returned when the crash handler reported a crash but the
// process was not terminated (only when exit is replaced, as in tests).
var ErrAborted = errors.New("run aborted by crash handler")

// Executor runs registered tests into a MessageList
type Executor interface {
	Run(ctx context.Context, messages *domain.MessageList) (domain.RunStatistics, error)
}

// Progress observes tests as they run. Calls may come from several workers
// at once.
type Progress interface {
	Start(total int)
	Started(name string)
	Finished(name string, failed bool)
	Finish()
}

// Engine walks a Forest and runs every eligible test.
type Engine struct {
	forest    *registry.Forest
	filter    *discovery.Filter
	strategy  Strategy
	workers   int
	progress  Progress
	crashOpts []crash.Option

	tracker *Tracker
	numRun  atomic.Int64
}

var _ Executor = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithStrategy selects sequential or pooled execution.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithWorkers sets the pool size for pooled runs. n <= 0 means one worker
// per logical CPU.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithFilter installs a name/source filter.
func WithFilter(f *discovery.Filter) Option {
	return func(e *Engine) { e.filter = f }
}

// WithProgress installs a progress observer.
func WithProgress(p Progress) Option {
	return func(e *Engine) { e.progress = p }
}

// WithCrashOptions passes options through to the crash handler installed
// for each run.
func WithCrashOptions(opts ...crash.Option) Option {
	return func(e *Engine) { e.crashOpts = append(e.crashOpts, opts...) }
}

// NewEngine creates a new Engine over forest.
func NewEngine(forest *registry.Forest, opts ...Option) *Engine {
	e := &Engine{
		forest: forest,
		filter: discovery.NewFilter("", ""),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.filter == nil {
		e.filter = discovery.NewFilter("", "")
	}
	return e
}

// SetFilter installs or, with "", removes the name pattern.
func (e *Engine) SetFilter(pattern string) {
	e.filter.SetName(pattern)
}

// SetSourceFilter installs or, with "", removes the source pattern.
func (e *Engine) SetSourceFilter(pattern string) {
	e.filter.SetSource(pattern)
}

// Workers returns the worker count a pooled run would use.
func (e *Engine) Workers() int {
	n := e.workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ListNames returns every non-placeholder test in traversal order. It does
// not apply the filter and runs nothing.
func (e *Engine) ListNames() []domain.Entry {
	var entries []domain.Entry
	e.forest.ForEachDescriptor(func(d *registry.Descriptor) bool {
		if !d.Placeholder {
			entries = append(entries, domain.Entry{Name: d.Name, Source: d.Source})
		}
		return true
	})
	return entries
}

// LastRunning names the most recently started test of the current or last run.
func (e *Engine) LastRunning() string {
	if e.tracker == nil {
		return noTest
	}
	return e.tracker.LastRunning(-1)
}

// Run seals the forest and executes every eligible test, appending failure
// messages to messages. Precedence cycles are reported before anything runs.
func (e *Engine) Run(ctx context.Context, messages *domain.MessageList) (domain.RunStatistics, error) {
	stats := domain.RunStatistics{NumTests: e.forest.NumTests()}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	e.forest.Seal()
	graph := e.forest.Graph()
	order, err := graph.Order()
	if err != nil {
		return stats, fmt.Errorf("failed to order tests: %w", err)
	}

	workers := 1
	if e.strategy == Pooled {
		workers = e.Workers()
	}
	stats.Workers = workers

	e.numRun.Store(0)
	e.tracker = newTracker(workers)
	handler := crash.Install(e.tracker, e.crashOpts...)
	defer handler.Release()

	if e.progress != nil {
		e.progress.Start(e.eligible(order))
		defer e.progress.Finish()
	}

	logging.Debug("runner", "Running %d tests (%s, %d workers)", stats.NumTests, e.strategy, workers)
	start := time.Now()
	if e.strategy == Pooled {
		err = e.runPooled(graph, workers, messages, handler)
	} else {
		err = e.runSequential(order, messages, handler)
	}
	stats.Duration = time.Since(start)
	stats.NumRun = int(e.numRun.Load())
	return stats, err
}

func (e *Engine) eligible(order []*registry.Descriptor) int {
	n := 0
	for _, d := range order {
		if !d.Placeholder && e.filter.Matches(d.Name, d.Source) {
			n++
		}
	}
	return n
}
