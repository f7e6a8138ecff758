package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"scope/internal/execution"
)

var _ execution.Progress = (*ProgressBar)(nil)

// ProgressBar renders run progress. It is safe for concurrent use by the
// engine's workers.
type ProgressBar struct {
	out io.Writer

	mu     sync.Mutex
	bar    *progressbar.ProgressBar
	passed int
	failed int
}

// NewProgressBar creates a new progress bar writing to out
func NewProgressBar(out io.Writer) *ProgressBar {
	return &ProgressBar{out: out}
}

// Start sizes the bar for total tests
func (p *ProgressBar) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.passed, p.failed = 0, 0
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(p.out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Started is a no-op; the bar advances on completion
func (p *ProgressBar) Started(string) {}

// Finished advances the bar and updates the pass/fail counts
func (p *ProgressBar) Finished(_ string, failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if failed {
		p.failed++
	} else {
		p.passed++
	}
	if p.bar == nil {
		return
	}
	p.bar.Describe(describe(p.passed, p.failed))
	_ = p.bar.Add(1)
}

// Finish completes the bar
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Counts returns the passed and failed totals seen so far
func (p *ProgressBar) Counts() (passed, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.passed, p.failed
}

func describe(passed, failed int) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[success: %d", passed) +
		" | " +
		color.RedString("failed: %d]", failed)
}
