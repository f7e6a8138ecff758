package main

import (
	"errors"

	"scope/pkg/assert"
	"scope/pkg/scope"
)

type fixture1 struct {
	String string
	Int    int
}

func newFixture1() (*fixture1, error) {
	return &fixture1{String: "cool", Int: 42}, nil
}

type fixture3 struct {
	fixture1
}

func (f *fixture3) Teardown() error {
	assert.Fail("fixture3's teardown failed")
	return nil
}

var (
	_ = scope.FixtureCtor("fix1", newFixture1, func(f *fixture1) {
		assert.True(f.String == "cool")
		assert.Equal(42, f.Int)
		assert.EqualMsg(41, f.Int, "silly")
	})

	_ = scope.FixtureCtor("badSetup", func() (*fixture1, error) {
		assert.Fail("fixture2's constructor failed")
		return nil, nil
	}, func(f *fixture1) {
		assert.Equal(41, f.Int)
	})

	_ = scope.FixtureCtor("badTeardown", func() (*fixture3, error) {
		f, err := newFixture1()
		return &fixture3{fixture1: *f}, err
	}, func(f *fixture3) {
		assert.Equal(42, f.Int)
	})

	_ = scope.FixtureCtor("customFixture", func() (*fixture1, error) {
		f, err := newFixture1()
		f.Int = 7
		return f, err
	}, func(f *fixture1) {
		assert.Equal(7, f.Int)
	})

	_ = scope.FixtureCtor("setupError", func() (*fixture1, error) {
		return nil, errors.New("no fixture today")
	}, func(*fixture1) {})

	_ = scope.Fixture("zeroFixture", func(f *fixture1) {
		assert.Equal("", f.String)
	})
)
