// Package parser splits report messages back into their parts.
package parser

import "scope/internal/domain"

// Parser turns messages into structured failures
type Parser interface {
	Parse(message string) domain.TestFailure
	ParseAll(messages domain.MessageList) []domain.TestFailure
}
