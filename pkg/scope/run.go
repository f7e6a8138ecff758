package scope

import (
	"context"
	"os"

	"scope/internal/cli/commands"
	"scope/internal/execution"
)

// RunOptions selects what Run executes and how
type RunOptions struct {
	// Filter and SourceFilter are name and source patterns; a test runs when
	// neither is set or either matches.
	Filter       string
	SourceFilter string
	// Pooled runs tests on a worker pool of Processors workers
	// (0 = one per CPU).
	Pooled     bool
	Processors int
}

// Run executes every registered test that opts select. Registration is
// closed once Run starts. The error is non-nil only when the tests could not
// be run at all, e.g. for cyclic BelongsTo declarations.
func Run(opts RunOptions) (MessageList, RunStatistics, error) {
	engine := newEngine(opts)
	var messages MessageList
	stats, err := engine.Run(context.Background(), &messages)
	return messages, stats, err
}

// ListNames returns every registered test, sets excluded, in run order for a
// sequential run without ordering declarations.
func ListNames() []Entry {
	return execution.NewEngine(defaultForest).ListNames()
}

// Main runs the command line driver against the registered tests and exits
// with 0 when nothing failed, 1 otherwise.
func Main() {
	os.Exit(commands.Execute(commands.Env{Forest: defaultForest}, os.Args[1:]))
}

func newEngine(opts RunOptions) *execution.Engine {
	strategy := execution.Sequential
	if opts.Pooled {
		strategy = execution.Pooled
	}
	engine := execution.NewEngine(defaultForest,
		execution.WithStrategy(strategy),
		execution.WithWorkers(opts.Processors),
	)
	engine.SetFilter(opts.Filter)
	engine.SetSourceFilter(opts.SourceFilter)
	return engine
}
