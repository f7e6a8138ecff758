package scope

import (
	"fmt"

	"scope/internal/domain"
	"scope/internal/location"
	"scope/internal/registry"
)

type (
	// Descriptor identifies a declared test or set
	Descriptor = registry.Descriptor
	// MessageList holds the failure messages of a run
	MessageList = domain.MessageList
	// RunStatistics summarises a run
	RunStatistics = domain.RunStatistics
	// Entry is a listed test
	Entry = domain.Entry
)

var defaultForest = registry.New()

// Register declares a test in the group of source. Registering the same name
// twice in one source, or after a run has started, panics.
func Register(name, source string, body func(), expectedToFail bool) *Descriptor {
	return mustRegister(registry.NewTest(name, source, 0, body, expectedToFail))
}

// Test declares a test in the calling file.
func Test(name string, body func()) *Descriptor {
	file, line := location.Caller(1)
	return mustRegister(registry.NewTest(name, file, line, body, false))
}

// TestFails declares a test that is expected to fail an assertion. It is
// reported only when it completes without one.
func TestFails(name string, body func()) *Descriptor {
	file, line := location.Caller(1)
	return mustRegister(registry.NewTest(name, file, line, body, true))
}

// Ignore declares a test that is never registered or run. The returned
// descriptor can be kept around but not ordered.
func Ignore(name string, body func()) *Descriptor {
	file, line := location.Caller(1)
	return registry.NewTest(name, file, line, body, false)
}

// Set declares a placeholder in the calling file that tests can be ordered
// after with BelongsTo. Sets are not counted or reported.
func Set(name string) *Descriptor {
	file, line := location.Caller(1)
	return mustRegister(registry.NewSet(name, file, line))
}

// BelongsTo orders test after set.
func BelongsTo(test, set *Descriptor) *Descriptor {
	if err := defaultForest.Precede(set, test); err != nil {
		panic(fmt.Errorf("scope: %s cannot belong to %s: %w", test.Name, set.Name, err))
	}
	return test
}

func mustRegister(d *Descriptor) *Descriptor {
	if err := defaultForest.Register(d, d.Source); err != nil {
		panic(fmt.Errorf("scope: failed to register %s: %w", d.Name, err))
	}
	return d
}
