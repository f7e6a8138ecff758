package ui

import "scope/internal/domain"

// Viewer displays the failures of the current run
type Viewer interface {
	View(failures []domain.TestFailure) error
}
