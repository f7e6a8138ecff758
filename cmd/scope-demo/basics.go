package main

import (
	"container/list"
	"errors"

	"scope/pkg/assert"
	"scope/pkg/scope"
)

type intError int

func (e intError) Error() string { return "int error" }

func doNothing() {}

var (
	_ = scope.Test("simpleTest", func() {
		assert.True(true)
	})

	_ = scope.Test("failTest", func() {
		assert.True(false)
	})

	_ = scope.Test("expectPanic", func() {
		assert.Expect[intError](func() { panic(intError(1)) })
		assert.Expect[intError](doNothing)
	})

	_ = scope.TestFails("knownBadTest", func() {
		assert.True(false)
	})

	_ = scope.TestFails("aGoodBadTest", func() {})

	_ = scope.Ignore("thisTestNeverRuns", func() {
		var p *int
		*p = 25
	})

	_ = scope.Test("simpleEquality", func() {
		assert.Equal(1, 1)
	})

	_ = scope.Test("sequenceEquality", func() {
		e := []int{1, 2, 3}
		a := list.New()
		for _, v := range e {
			a.PushBack(v)
		}
		assert.Equal(e, a)
	})

	_ = scope.Test("literalListEquality", func() {
		a := []int{1, 2, 3}
		assert.Equal(assert.List(1, 2, 3), a)
	})

	_ = scope.Test("genericError", func() {
		panic(errors.New("something broke outside an assertion"))
	})
)
