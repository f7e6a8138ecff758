package registry

import "scope/internal/testcase"

// Descriptor identifies one declared test, fixture test or set.
// Descriptors are immutable once built.
type Descriptor struct {
	Name           string
	Source         string
	Line           int
	ExpectedToFail bool
	Placeholder    bool

	construct func() testcase.Test
}

// NewTest describes a plain test running body.
func NewTest(name, source string, line int, body func(), expectedToFail bool) *Descriptor {
	return &Descriptor{
		Name:           name,
		Source:         source,
		Line:           line,
		ExpectedToFail: expectedToFail,
		construct: func() testcase.Test {
			return testcase.NewBoundTest(name, source, body, expectedToFail)
		},
	}
}

// NewFixture describes a test running inside fixture fx.
func NewFixture(name, source string, line int, fx testcase.Fixture, expectedToFail bool) *Descriptor {
	return &Descriptor{
		Name:           name,
		Source:         source,
		Line:           line,
		ExpectedToFail: expectedToFail,
		construct: func() testcase.Test {
			return testcase.NewFixtureTest(name, source, fx, expectedToFail)
		},
	}
}

// NewSet describes a placeholder that other tests can be ordered after.
func NewSet(name, source string, line int) *Descriptor {
	return &Descriptor{
		Name:        name,
		Source:      source,
		Line:        line,
		Placeholder: true,
		construct: func() testcase.Test {
			return testcase.NewSetTest(name, source)
		},
	}
}

// Construct builds a fresh, run-once test case.
func (d *Descriptor) Construct() testcase.Test {
	return d.construct()
}
