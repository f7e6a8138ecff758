package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"scope/internal/domain"
)

// Formatter writes the run report and test listings
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintDebugBanner announces debug mode before the run starts
func (f *Formatter) PrintDebugBanner() {
	fmt.Fprintln(f.out, "Running in debug mode")
}

// PrintReport writes every message verbatim followed by the summary. It
// returns true when the run had no failures.
func (f *Formatter) PrintReport(messages domain.MessageList, stats domain.RunStatistics) bool {
	for _, msg := range messages {
		fmt.Fprintln(f.out, msg)
	}
	if messages.Empty() {
		color.New(color.FgGreen).Fprintf(f.out, "OK (%d tests)\n", stats.NumRun)
		return true
	}
	color.New(color.FgRed, color.Bold).Fprintln(f.out, "Failures!")
	fmt.Fprintf(f.out, "Tests run: %d, Failures: %d\n", stats.NumRun, messages.Len())
	return false
}

// PrintTestList writes one "name<TAB>source" line per entry
func (f *Formatter) PrintTestList(entries []domain.Entry) error {
	if len(entries) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No tests found")
		return nil
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(f.out, "%s\t%s\n", e.Name, e.Source); err != nil {
			return fmt.Errorf("failed to write test list: %w", err)
		}
	}
	return nil
}

// PrintStats writes a short table about the run, used in debug mode
func (f *Formatter) PrintStats(stats domain.RunStatistics, pooled bool) {
	mode := "sequential"
	if pooled {
		mode = "pooled"
	}
	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(w, "%s\t%d\n", cyan("Registered tests"), stats.NumTests)
	fmt.Fprintf(w, "%s\t%d\n", cyan("Run tests"), stats.NumRun)
	fmt.Fprintf(w, "%s\t%s (%d workers)\n", cyan("Mode"), mode, stats.Workers)
	fmt.Fprintf(w, "%s\t%.2fs\n", cyan("Duration"), stats.Duration.Seconds())
	w.Flush()
}
