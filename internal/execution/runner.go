package execution

import (
	"sync"

	"scope/internal/domain"
	"scope/internal/logging"
	"scope/internal/registry"
)

const noTest = "(none)"

// runOne constructs and runs a single test on behalf of worker. Placeholders
// and filtered-out tests are skipped but still count as finished so their
// dependents are released.
func (e *Engine) runOne(worker int, d *registry.Descriptor, messages *domain.MessageList) {
	if d.Placeholder || !e.filter.Matches(d.Name, d.Source) {
		return
	}

	tc := d.Construct()
	e.tracker.start(worker, tc.Name())
	logging.Debug("runner", "Running %s", tc.Name())
	if e.progress != nil {
		e.progress.Started(tc.Name())
	}

	e.numRun.Add(1)
	before := messages.Len()
	tc.Run(messages)
	failed := messages.Len() > before

	e.tracker.finish(worker)
	logging.Debug("runner", "Done with %s", tc.Name())
	if e.progress != nil {
		e.progress.Finished(tc.Name(), failed)
	}
}

// Tracker records which test each worker is running.
type Tracker struct {
	mu    sync.Mutex
	slots []slot
	seq   uint64
}

type slot struct {
	name    string
	seq     uint64
	running bool
}

func newTracker(workers int) *Tracker {
	return &Tracker{slots: make([]slot, workers)}
}

func (t *Tracker) start(worker int, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.slots[worker] = slot{name: name, seq: t.seq, running: true}
}

func (t *Tracker) finish(worker int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots[worker].running = false
}

// LastRunning returns the test last started by worker. For worker < 0 it
// returns the most recently started test still running on any worker, or
// failing that the most recently started one.
func (t *Tracker) LastRunning(worker int) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if worker >= 0 && worker < len(t.slots) && t.slots[worker].name != "" {
		return t.slots[worker].name
	}

	var running, latest slot
	for _, s := range t.slots {
		if s.running && s.seq > running.seq {
			running = s
		}
		if s.seq > latest.seq {
			latest = s
		}
	}
	switch {
	case running.name != "":
		return running.name
	case latest.name != "":
		return latest.name
	default:
		return noTest
	}
}
