package parser

import (
	"regexp"
	"strconv"

	"scope/internal/domain"
)

var (
	// "<file>:<line>: <name>: <detail>"
	locatedRe = regexp.MustCompile(`^(\S+):(\d+): (\S+?): (.*)$`)
	// "<name>: <detail>"
	plainRe = regexp.MustCompile(`^(\S+?): (.*)$`)
)

// MessageParser parses the message formats produced by test cases
type MessageParser struct{}

var _ Parser = (*MessageParser)(nil)

// NewMessageParser creates a new MessageParser
func NewMessageParser() *MessageParser {
	return &MessageParser{}
}

// Parse splits one message. Messages that fit neither format are kept whole
// in Message with no test name.
func (p *MessageParser) Parse(message string) domain.TestFailure {
	failure := domain.TestFailure{Raw: message, Message: message}

	if m := locatedRe.FindStringSubmatch(message); m != nil {
		line, err := strconv.Atoi(m[2])
		if err == nil {
			failure.File = m[1]
			failure.Line = line
			failure.TestName = m[3]
			failure.Message = m[4]
			return failure
		}
	}
	if m := plainRe.FindStringSubmatch(message); m != nil {
		failure.TestName = m[1]
		failure.Message = m[2]
	}
	return failure
}

// ParseAll parses every message, preserving order
func (p *MessageParser) ParseAll(messages domain.MessageList) []domain.TestFailure {
	failures := make([]domain.TestFailure, 0, len(messages))
	for _, msg := range messages {
		failures = append(failures, p.Parse(msg))
	}
	return failures
}
