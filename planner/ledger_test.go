package planner_test

import (
	"testing"

	"hospital-planner/planner"

	"github.com/stretchr/testify/assert"
)

func TestLedger(t *testing.T) {
	l := planner.NewLedger()
	key := planner.SlotKey{Week: 3, Day: 2, Hour: 8}

	assert.Equal(t, 0, l.Used(key))
	assert.Equal(t, 10, l.Remaining(key, 10))

	l.Add(key, 4)
	assert.Equal(t, 4, l.Used(key))
	assert.Equal(t, 6, l.Remaining(key, 10))

	l.Add(key, 6)
	assert.Equal(t, 0, l.Remaining(key, 10))

	// Remaining never goes negative, even when the quota shrinks below
	// what was already consumed.
	assert.Equal(t, 0, l.Remaining(key, 5))

	// Other buckets are unaffected.
	other := planner.SlotKey{Week: 3, Day: 2, Hour: 10}
	assert.Equal(t, 0, l.Used(other))
}
