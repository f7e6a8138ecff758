package main

import (
	"os"

	"scope/pkg/assert"
	"scope/pkg/dbfixture"
	"scope/pkg/scope"
)

var (
	steps []string

	ordered = scope.Set("ordered")

	_ = scope.BelongsTo(scope.Test("stepTwo", func() {
		steps = append(steps, "two")
		assert.Equal(assert.List("one", "two"), steps)
	}), stepOne)

	stepOne = scope.BelongsTo(scope.Test("stepOne", func() {
		steps = append(steps, "one")
	}), ordered)

	_ = scope.Test("pairsAndTuples", func() {
		assert.Equal(assert.MakePair("a", 1), assert.MakePair("a", 1))
		assert.Equal([2]int{1, 2}, assert.MakeTuple(1, 2))
	})

	_ = databaseTests()
)

// databaseTests registers the MySQL fixture tests only when a server is
// configured, so the demo stays runnable without one.
func databaseTests() *scope.Descriptor {
	if os.Getenv("DB_HOST") == "" {
		return nil
	}
	return scope.FixtureCtor("databaseRoundTrip", dbfixture.Open, func(db *dbfixture.DB) {
		var n int
		assert.True(db.QueryRow("SELECT 1").Scan(&n) == nil, "query failed")
		assert.Equal(1, n)
	})
}
