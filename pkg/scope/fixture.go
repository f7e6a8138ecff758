package scope

import (
	"errors"
	"io"

	"scope/internal/location"
	"scope/internal/registry"
	"scope/internal/testcase"
)

// ErrNilFixture is reported when a fixture constructor returns neither a
// fixture nor an error.
var ErrNilFixture = errors.New("fixture constructor returned nil")

// Teardowner is implemented by fixtures that need cleanup. Fixtures that
// implement io.Closer instead are closed.
type Teardowner interface {
	Teardown() error
}

// RegisterFixture declares a fixture test in the group of source. A nil ctor
// builds the fixture with new(F).
func RegisterFixture[F any](name, source string, body func(*F), ctor func() (*F, error)) *Descriptor {
	return mustRegister(registry.NewFixture(name, source, 0, fixtureOf(body, ctor), false))
}

// Fixture declares a test in the calling file that runs body against a
// fresh zero F.
func Fixture[F any](name string, body func(*F)) *Descriptor {
	file, line := location.Caller(1)
	return mustRegister(registry.NewFixture(name, file, line, fixtureOf[F](body, nil), false))
}

// FixtureCtor declares a test in the calling file that runs body against the
// fixture ctor builds.
func FixtureCtor[F any](name string, ctor func() (*F, error), body func(*F)) *Descriptor {
	file, line := location.Caller(1)
	return mustRegister(registry.NewFixture(name, file, line, fixtureOf(body, ctor), false))
}

// FixtureFails is Fixture for a body expected to fail an assertion.
func FixtureFails[F any](name string, body func(*F)) *Descriptor {
	file, line := location.Caller(1)
	return mustRegister(registry.NewFixture(name, file, line, fixtureOf[F](body, nil), true))
}

func fixtureOf[F any](body func(*F), ctor func() (*F, error)) testcase.Fixture {
	if ctor == nil {
		ctor = func() (*F, error) { return new(F), nil }
	}
	return testcase.Fixture{
		Setup: func() (any, error) {
			f, err := ctor()
			if err != nil {
				return nil, err
			}
			if f == nil {
				return nil, ErrNilFixture
			}
			return f, nil
		},
		Body: func(v any) {
			body(v.(*F))
		},
		Teardown: func(v any) error {
			switch f := v.(type) {
			case Teardowner:
				return f.Teardown()
			case io.Closer:
				return f.Close()
			}
			return nil
		},
	}
}
