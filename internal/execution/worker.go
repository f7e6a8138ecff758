package execution

import (
	"sync"
	"sync/atomic"

	"scope/internal/crash"
	"scope/internal/domain"
	"scope/internal/registry"
)

// runPooled starts the workers before traversal and feeds them each test as
// soon as all of its precedents have finished. Every worker collects into its
// own MessageList; the lists are merged in worker order once all are done.
func (e *Engine) runPooled(g *registry.Graph, workers int, messages *domain.MessageList, handler *crash.Handler) error {
	if len(g.Nodes) == 0 {
		return nil
	}

	remaining := make(map[*registry.Descriptor]*atomic.Int32, len(g.Nodes))
	for _, d := range g.Nodes {
		c := &atomic.Int32{}
		c.Store(int32(g.DepCount[d]))
		remaining[d] = c
	}

	// Each node is sent exactly once, so a full-size buffer never blocks.
	ready := make(chan *registry.Descriptor, len(g.Nodes))
	var pending sync.WaitGroup
	pending.Add(len(g.Nodes))

	buffers := make([]domain.MessageList, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			defer handler.Recover(worker)
			for d := range ready {
				e.runOne(worker, d, &buffers[worker])
				for _, next := range g.Dependents[d] {
					if remaining[next].Add(-1) == 0 {
						ready <- next
					}
				}
				pending.Done()
			}
		}(w)
	}

	for _, d := range g.Nodes {
		if g.DepCount[d] == 0 {
			ready <- d
		}
	}

	finished := make(chan struct{})
	go func() {
		pending.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-handler.Aborted():
		return ErrAborted
	}
	close(ready)
	wg.Wait()

	for _, b := range buffers {
		for _, msg := range b {
			messages.Add(msg)
		}
	}
	return nil
}
