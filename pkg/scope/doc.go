// Package scope is a self-registering unit-test framework.
//
// Tests register themselves from package-level variable declarations, so a
// test binary only has to import the packages holding its tests and call
// Main:
//
//	var _ = scope.Test("simpleEquality", func() {
//		assert.Equal(1, 1)
//	})
//
//	var _ = scope.Fixture("fix1", func(f *Fixture1) {
//		assert.EqualMsg(42, f.Int, "answer")
//	})
//
//	func main() { scope.Main() }
//
// Tests from one source file form a group; within a group the most recently
// declared test runs first. Sets and BelongsTo add explicit ordering.
package scope
