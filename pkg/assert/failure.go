// Package assert provides the assertions used inside scope test bodies.
//
// Assertions report failure by panicking with a *Failure carrying the
// caller's file and line; the test runner recovers it and records one
// message per failed test. Equal and EqualMsg compare values by shape:
// pairs, fixed-size tuples, ordered sequences and scalars, in that order.
package assert

import (
	"fmt"

	"scope/internal/location"
)

// Failure is the value assertions panic with.
type Failure struct {
	File    string
	Line    int
	Message string
}

// Error implements error.
func (f *Failure) Error() string {
	return f.Message
}

// Location returns "file:line".
func (f *Failure) Location() string {
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

// failAt panics with a Failure located skip frames above its caller.
func failAt(skip int, msg string) {
	file, line := location.Caller(skip + 1)
	panic(&Failure{File: file, Line: line, Message: msg})
}

// Fail fails the current test unconditionally.
func Fail(msg string) {
	failAt(1, msg)
}

// Failf fails the current test with a formatted message.
func Failf(format string, args ...any) {
	failAt(1, fmt.Sprintf(format, args...))
}

// True fails when cond is false. The optional message replaces the default.
func True(cond bool, msg ...string) {
	if !cond {
		failAt(1, messageOr(msg, "assertion failed"))
	}
}

// False fails when cond is true.
func False(cond bool, msg ...string) {
	if cond {
		failAt(1, messageOr(msg, "expected false"))
	}
}

// Equal fails when expected and actual differ.
func Equal(expected, actual any) {
	if diag, ok := Compare(expected, actual); !ok {
		failAt(1, diag)
	}
}

// EqualMsg is Equal with a context string prefixed to the diagnostic.
func EqualMsg(expected, actual any, context string) {
	if diag, ok := Compare(expected, actual); !ok {
		failAt(1, withContext(context, diag))
	}
}

// Expect runs fn and fails unless it panics with a value of type E.
// A panic with any other value is passed on unchanged.
func Expect[E any](fn func()) {
	if !panicsWith[E](fn) {
		failAt(1, "Expected panic not caught")
	}
}

func panicsWith[E any](fn func()) (caught bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(E); !ok {
				panic(r)
			}
			caught = true
		}
	}()
	fn()
	return false
}

func messageOr(msg []string, def string) string {
	if len(msg) > 0 && msg[0] != "" {
		return msg[0]
	}
	return def
}

func withContext(context, diag string) string {
	if context == "" {
		return diag
	}
	return context + " " + diag
}
