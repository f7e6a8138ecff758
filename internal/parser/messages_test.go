package parser

import (
	"testing"

	"scope/internal/domain"
)

func TestMessageParser_Parse(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected domain.TestFailure
	}{
		{
			name:    "assertion failure",
			message: "cmd/demo/test1.go:42: sequenceTest: Mismatch at index 1. Expected: 2, Actual: 3. Expected size: 3, Actual size: 3.",
			expected: domain.TestFailure{
				TestName: "sequenceTest",
				File:     "cmd/demo/test1.go",
				Line:     42,
				Message:  "Mismatch at index 1. Expected: 2, Actual: 3. Expected size: 3, Actual size: 3.",
			},
		},
		{
			name:    "generic error",
			message: "dbTest: dial tcp 127.0.0.1:3306: connection refused",
			expected: domain.TestFailure{
				TestName: "dbTest",
				Message:  "dial tcp 127.0.0.1:3306: connection refused",
			},
		},
		{
			name:    "expected failure that passed",
			message: "shouldFail: marked for failure but did not throw an assertion failure.",
			expected: domain.TestFailure{
				TestName: "shouldFail",
				Message:  "marked for failure but did not throw an assertion failure.",
			},
		},
		{
			name:    "unstructured",
			message: "something odd",
			expected: domain.TestFailure{
				Message: "something odd",
			},
		},
	}

	p := NewMessageParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expected.Raw = tt.message
			result := p.Parse(tt.message)
			if result != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestMessageParser_ParseAll(t *testing.T) {
	msgs := domain.MessageList{"a.go:1: x: y", "b: c"}
	got := NewMessageParser().ParseAll(msgs)
	if len(got) != 2 || got[0].TestName != "x" || got[1].TestName != "b" {
		t.Errorf("unexpected result %+v", got)
	}
	if !got[0].HasLocation() || got[1].HasLocation() {
		t.Error("only the first message carries a location")
	}
}
