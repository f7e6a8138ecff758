package domain

// Entry identifies a discovered test without running it
type Entry struct {
	Name   string // Declared test name
	Source string // File the test was declared in
}

// MessageList collects human-readable failure lines in the order they were added.
// A MessageList is not safe for concurrent use; pooled runs give each worker its own.
type MessageList []string

// Add appends a message
func (m *MessageList) Add(msg string) {
	*m = append(*m, msg)
}

// Len returns the number of messages
func (m MessageList) Len() int {
	return len(m)
}

// Empty reports whether no failures were recorded
func (m MessageList) Empty() bool {
	return len(m) == 0
}
