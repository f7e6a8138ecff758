package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"scope/internal/domain"
)

// NewReport assembles the report of one run
func NewReport(messages domain.MessageList, failures []domain.TestFailure, stats domain.RunStatistics, pooled bool) *domain.RunReport {
	msgs := make([]string, len(messages))
	copy(msgs, messages)
	if failures == nil {
		failures = []domain.TestFailure{}
	}
	return &domain.RunReport{
		Meta: domain.RunReportMeta{
			RunID:           uuid.NewString(),
			TotalTests:      stats.NumTests,
			RunTests:        stats.NumRun,
			Failures:        messages.Len(),
			Pooled:          pooled,
			Workers:         stats.Workers,
			Duration:        stats.Duration.String(),
			DurationSeconds: stats.Duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Messages: msgs,
		Details:  failures,
	}
}

// Save writes the report to the configured JSON file
func (s *JSONStorage) Save(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
