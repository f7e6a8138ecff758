// Package storage exports the report of the current run.
package storage

import (
	"scope/internal/domain"
)

// Storage writes a run report somewhere. Reports are export-only; nothing
// reads them back into a later run.
type Storage interface {
	Save(report *domain.RunReport) error
}

// JSONStorage writes reports as indented JSON to a fixed path
type JSONStorage struct {
	path string
}

// NewJSONStorage returns a Storage that writes to path
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the file the report is written to
func (s *JSONStorage) Path() string {
	return s.path
}
