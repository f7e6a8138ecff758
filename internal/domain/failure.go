package domain

// TestFailure is one message from the MessageList split into its parts
type TestFailure struct {
	TestName string `json:"test_name"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
	Raw      string `json:"raw"`
}

// HasLocation reports whether the failure carries a file:line prefix
func (f TestFailure) HasLocation() bool {
	return f.File != "" && f.Line > 0
}
