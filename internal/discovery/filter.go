package discovery

import (
	"path"
	"path/filepath"
	"strings"

	"scope/internal/domain"
)

// Filter narrows which tests run. It holds an optional name pattern and an
// optional source pattern; a test is eligible when neither is set or when at
// least one that is set matches.
type Filter struct {
	name   *pattern
	source *pattern
}

// NewFilter creates a new Filter. Empty patterns are treated as absent.
func NewFilter(namePattern, sourcePattern string) *Filter {
	f := &Filter{}
	f.SetName(namePattern)
	f.SetSource(sourcePattern)
	return f
}

// SetName installs or, with "", removes the name pattern.
func (f *Filter) SetName(p string) {
	f.name = compile(p)
}

// SetSource installs or, with "", removes the source pattern.
func (f *Filter) SetSource(p string) {
	f.source = compile(p)
}

// Active reports whether any pattern is installed.
func (f *Filter) Active() bool {
	return f != nil && (f.name != nil || f.source != nil)
}

// Matches reports whether a test with this name and source is eligible.
func (f *Filter) Matches(name, source string) bool {
	if !f.Active() {
		return true
	}
	if f.name != nil && f.name.match(name) {
		return true
	}
	if f.source != nil && (f.source.match(source) || f.source.match(filepath.Base(source))) {
		return true
	}
	return false
}

// Apply returns the entries that match, preserving order.
func (f *Filter) Apply(entries []domain.Entry) []domain.Entry {
	if !f.Active() {
		return entries
	}
	var filtered []domain.Entry
	for _, e := range entries {
		if f.Matches(e.Name, e.Source) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// pattern is a compiled wildcard pattern. Supports globs like "fix*" or
// "*Equal?ty", "*"-separated fragments that must all appear, and plain
// substrings when no wildcard is present.
type pattern struct {
	raw      string
	parts    []string
	wildcard bool
	glob     bool
}

func compile(p string) *pattern {
	if p == "" {
		return nil
	}
	c := &pattern{
		raw:      p,
		wildcard: strings.Contains(p, "*"),
		glob:     strings.ContainsAny(p, "*?["),
	}
	if c.wildcard {
		for _, part := range strings.Split(p, "*") {
			if part != "" {
				c.parts = append(c.parts, part)
			}
		}
	}
	return c
}

func (p *pattern) match(s string) bool {
	if p.glob {
		if matched, err := path.Match(p.raw, s); err == nil && matched {
			return true
		}
	}

	// "*Payment*" style: every fragment between wildcards must appear.
	if p.wildcard {
		if len(p.parts) == 0 {
			return true
		}
		for _, part := range p.parts {
			if !strings.Contains(s, part) {
				return false
			}
		}
		return true
	}

	if !p.glob {
		return strings.Contains(s, p.raw)
	}
	return s == p.raw
}
