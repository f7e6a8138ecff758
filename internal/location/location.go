// Package location resolves call sites for declarations and assertion failures.
package location

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var workDir, _ = os.Getwd()

// Caller returns the file and line skip frames above the function calling Caller.
// The file is made relative to the working directory when it lies beneath it.
func Caller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0
	}
	return Relative(file), line
}

// Relative shortens path to be relative to the working directory when possible.
func Relative(path string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
