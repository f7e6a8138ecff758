package domain

import "time"

// RunStatistics summarises one execution of the registry
type RunStatistics struct {
	NumTests int           // Non-placeholder tests known to the registry, filtered or not
	NumRun   int           // Tests actually executed
	Workers  int           // Worker count used (1 for sequential runs)
	Duration time.Duration // Wall time of the run phase
}

// RunReportMeta contains metadata about a test run
type RunReportMeta struct {
	RunID           string  `json:"run_id"`
	TotalTests      int     `json:"total_tests"`
	RunTests        int     `json:"run_tests"`
	Failures        int     `json:"failures"`
	Pooled          bool    `json:"pooled"`
	Workers         int     `json:"workers"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunReport is the complete exported structure for one run
type RunReport struct {
	Meta     RunReportMeta `json:"meta"`
	Messages []string      `json:"messages"`
	Details  []TestFailure `json:"details"`
}
