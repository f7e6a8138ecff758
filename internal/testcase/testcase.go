// Package testcase implements the runnable forms of declared tests.
//
// A test body reports failure by panicking. Each phase of a test runs under
// its own recover so that a failing phase is turned into exactly one message:
//
//	*assert.Failure         "<file>:<line>: <name>: <detail>"
//	other error values      "<name>: <detail>"
//	anything else           logged, then re-panicked
//
// Runtime errors (nil dereference, integer division by zero, out-of-range
// index) fall in the last group: the process state is suspect after them.
package testcase

import (
	"errors"
	"fmt"
	"runtime"

	"scope/internal/domain"
	"scope/internal/logging"
	"scope/pkg/assert"
)

// Test is a constructed, run-once test.
type Test interface {
	Name() string
	Source() string
	ShouldFail() bool
	Placeholder() bool
	Run(messages *domain.MessageList)
}

// Kind classifies a recovered panic value.
type Kind int

const (
	KindAssertion Kind = iota
	KindError
	KindUnrecognized
)

// Classify decides how a value recovered from a test phase is reported.
func Classify(r any) Kind {
	err, ok := r.(error)
	if !ok {
		return KindUnrecognized
	}
	var failure *assert.Failure
	if errors.As(err, &failure) {
		return KindAssertion
	}
	var rtErr runtime.Error
	if errors.As(err, &rtErr) {
		return KindUnrecognized
	}
	return KindError
}

type common struct {
	name       string
	source     string
	shouldFail bool
}

func (c *common) Name() string      { return c.name }
func (c *common) Source() string    { return c.source }
func (c *common) ShouldFail() bool  { return c.shouldFail }
func (c *common) Placeholder() bool { return false }

// protect runs one phase. Assertion failures and errors, whether panicked or
// returned, come back classified; unrecognized panics are logged and re-raised.
func (c *common) protect(phase string, fn func() error) (failure *assert.Failure, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch Classify(r) {
		case KindAssertion:
			errors.As(r.(error), &failure)
		case KindError:
			err = r.(error)
		default:
			logging.Error("testcase", nil, "%s: %s threw unrecognized type %T (%v); please panic with an error value", c.name, phase, r, r)
			panic(r)
		}
	}()

	if err := fn(); err != nil {
		if errors.As(err, &failure) {
			return failure, nil
		}
		return nil, err
	}
	return nil, nil
}

// record turns the outcome of one phase into at most one message.
func (c *common) record(messages *domain.MessageList, failure *assert.Failure, err error, expectFailure bool) {
	switch {
	case err != nil:
		messages.Add(fmt.Sprintf("%s: %s", c.name, err))
	case failure != nil && !expectFailure:
		messages.Add(fmt.Sprintf("%s:%d: %s: %s", failure.File, failure.Line, c.name, failure.Message))
	case failure == nil && expectFailure:
		messages.Add(fmt.Sprintf("%s: marked for failure but did not throw an assertion failure.", c.name))
	}
}

// BoundTest runs a zero-argument body.
type BoundTest struct {
	common
	body func()
}

// NewBoundTest creates a new BoundTest
func NewBoundTest(name, source string, body func(), shouldFail bool) *BoundTest {
	return &BoundTest{
		common: common{name: name, source: source, shouldFail: shouldFail},
		body:   body,
	}
}

// Run executes the body and records its outcome.
func (t *BoundTest) Run(messages *domain.MessageList) {
	failure, err := t.protect("test", func() error {
		t.body()
		return nil
	})
	t.record(messages, failure, err, t.shouldFail)
}

// SetTest marks a group in the precedence graph. It never runs anything and
// is not counted as a test.
type SetTest struct {
	common
}

// NewSetTest creates a new SetTest
func NewSetTest(name, source string) *SetTest {
	return &SetTest{common: common{name: name, source: source}}
}

func (t *SetTest) Placeholder() bool                { return true }
func (t *SetTest) Run(messages *domain.MessageList) {}
