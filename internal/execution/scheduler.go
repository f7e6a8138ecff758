package execution

import (
	"scope/internal/crash"
	"scope/internal/domain"
	"scope/internal/registry"
)

// Strategy selects how the engine schedules tests.
type Strategy int

const (
	// Sequential runs every test on the calling goroutine in traversal order.
	Sequential Strategy = iota
	// Pooled runs tests on a fixed pool of workers, honouring precedence.
	Pooled
)

func (s Strategy) String() string {
	if s == Pooled {
		return "pooled"
	}
	return "sequential"
}

func (e *Engine) runSequential(order []*registry.Descriptor, messages *domain.MessageList, handler *crash.Handler) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer handler.Recover(0)
		for _, d := range order {
			e.runOne(0, d, messages)
		}
	}()

	select {
	case <-done:
	case <-handler.Aborted():
		return ErrAborted
	}
	select {
	case <-handler.Aborted():
		return ErrAborted
	default:
		return nil
	}
}
