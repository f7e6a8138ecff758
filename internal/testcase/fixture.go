package testcase

import "scope/internal/domain"

// Fixture is a type-erased setup/body/teardown triple. Setup may be nil, in
// which case the body receives nil; Teardown may be nil.
type Fixture struct {
	Setup    func() (any, error)
	Body     func(fixture any)
	Teardown func(fixture any) error
}

// FixtureTest runs Body inside a freshly built fixture.
type FixtureTest struct {
	common
	fixture Fixture
}

// NewFixtureTest creates a new FixtureTest
func NewFixtureTest(name, source string, fx Fixture, shouldFail bool) *FixtureTest {
	return &FixtureTest{
		common:  common{name: name, source: source, shouldFail: shouldFail},
		fixture: fx,
	}
}

// Run builds the fixture, runs the body and tears the fixture down. A failed
// setup skips both later phases; a failed body still tears down.
func (t *FixtureTest) Run(messages *domain.MessageList) {
	var value any
	failure, err := t.protect("setup", func() error {
		if t.fixture.Setup == nil {
			return nil
		}
		var setupErr error
		value, setupErr = t.fixture.Setup()
		return setupErr
	})
	if failure != nil || err != nil {
		t.record(messages, failure, err, false)
		return
	}

	failure, err = t.protect("test", func() error {
		t.fixture.Body(value)
		return nil
	})
	t.record(messages, failure, err, t.shouldFail)

	if t.fixture.Teardown == nil {
		return
	}
	failure, err = t.protect("teardown", func() error {
		return t.fixture.Teardown(value)
	})
	t.record(messages, failure, err, false)
}
