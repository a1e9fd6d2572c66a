package planner_test

import (
	"fmt"
	"testing"

	"hospital-planner/models"
	"hospital-planner/planner"

	"github.com/stretchr/testify/assert"
)

func caseIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("case_%03d", i+1)
	}
	return ids
}

func countByTime(decisions []models.PlannedCase) map[int]int {
	counts := make(map[int]int)
	for _, d := range decisions {
		counts[d.Time]++
	}
	return counts
}

// 200 pending cases against full weekly capacity: the warm-start clamp
// lifts day 1's quota to 72, and all six waves fill in descending fraction
// order before anything spills to day 2.
func TestWavePlannerBacklogDrain(t *testing.T) {
	p := planner.NewWavePlanner(nil)

	decisions := p.Plan(caseIDs(200), nil, 0)
	assert.Len(t, decisions, 200)

	for _, d := range decisions {
		assert.GreaterOrEqual(t, d.Time, 24, "case %s violates the admission lead time", d.CaseID)
	}

	// Day 1 starts at hour 32 (Tuesday 08:00). Quota 72, split over the
	// waves at +0,+2,+4,+6,+8,+12 hours.
	counts := countByTime(decisions)
	assert.Equal(t, 26, counts[32])
	assert.Equal(t, 16, counts[34])
	assert.Equal(t, 11, counts[36])
	assert.Equal(t, 9, counts[38])
	assert.Equal(t, 6, counts[40])
	assert.Equal(t, 4, counts[44])

	// Day 1 fills completely before any case lands on day 2.
	day1 := 0
	for i, d := range decisions {
		if d.Time <= 44 {
			day1++
			assert.Less(t, i, 72, "day-2 case placed before day 1 was full")
		}
	}
	assert.Equal(t, 72, day1)

	// Day 2 gets the same warm-start quota from the shared lookahead.
	assert.Equal(t, 26, counts[56])
	assert.Equal(t, 16, counts[58])

	// The remainder rolls onto day 3.
	day3Total := 0
	for timeHour, n := range counts {
		if timeHour >= 80 {
			day3Total += n
		}
	}
	assert.Equal(t, 200-2*72, day3Total)
}

// A second identical planning call must not double-book the buckets the
// first call already consumed: every new decision lands on day 3 or later.
func TestWavePlannerLedgerIdempotence(t *testing.T) {
	p := planner.NewWavePlanner(nil)
	ids := caseIDs(200)

	first := p.Plan(ids, nil, 0)
	assert.Len(t, first, 200)

	second := p.Plan(ids, nil, 0)
	assert.Len(t, second, 200)
	for _, d := range second {
		assert.GreaterOrEqual(t, d.Time, 80,
			"case %s re-consumed a day-1/day-2 bucket at hour %d", d.CaseID, d.Time)
	}
}

func TestWavePlannerEmptyQueue(t *testing.T) {
	p := planner.NewWavePlanner(nil)
	assert.Empty(t, p.Plan(nil, nil, 100))
	assert.Empty(t, p.Plan([]string{}, []string{"case_001"}, 100))
}

// Replan requests are intentionally never re-batched.
func TestWavePlannerIgnoresReplans(t *testing.T) {
	p := planner.NewWavePlanner(nil)

	decisions := p.Plan([]string{"case_001"}, []string{"case_900", "case_901"}, 0)
	assert.Len(t, decisions, 1)
	assert.Equal(t, "case_001", decisions[0].CaseID)
}

func TestWavePlannerSchedule(t *testing.T) {
	p := planner.NewWavePlanner(nil)
	now := 18 // Monday 18:00

	commitments := p.Schedule(now)
	assert.Len(t, commitments, 10)

	byKey := make(map[string]int)
	for _, c := range commitments {
		assert.GreaterOrEqual(t, c.Time, now+planner.MinScheduleLeadHours)
		assert.LessOrEqual(t, c.Capacity, models.MaxCapacity[c.Resource])
		byKey[fmt.Sprintf("%s@%d", c.Resource, c.Time)] = c.Capacity
	}

	morning := now + 158 // next Monday 08:00
	evening := now + 168 // next Tuesday 18:00
	assert.Equal(t, 5, byKey[fmt.Sprintf("%s@%d", models.OR, morning)])
	assert.Equal(t, 30, byKey[fmt.Sprintf("%s@%d", models.ABed, morning)])
	assert.Equal(t, 40, byKey[fmt.Sprintf("%s@%d", models.BBed, morning)])
	assert.Equal(t, 4, byKey[fmt.Sprintf("%s@%d", models.Intake, morning)])
	assert.Equal(t, 9, byKey[fmt.Sprintf("%s@%d", models.ERPractitioner, morning)])

	// Evening keeps all levels except a one-OR trim.
	assert.Equal(t, 4, byKey[fmt.Sprintf("%s@%d", models.OR, evening)])
	assert.Equal(t, 4, byKey[fmt.Sprintf("%s@%d", models.Intake, evening)])
	assert.Equal(t, 30, byKey[fmt.Sprintf("%s@%d", models.ABed, evening)])
}

// The evening OR trim never drops below four.
func TestWavePlannerScheduleORFloor(t *testing.T) {
	caps := models.DefaultCapacity()
	for day := 1; day <= 7; day++ {
		caps[models.DayKey{Resource: models.OR, Day: day}] = 4
	}
	p := planner.NewWavePlanner(caps)

	for _, c := range p.Schedule(18) {
		if c.Resource == models.OR {
			assert.GreaterOrEqual(t, c.Capacity, 4)
		}
	}
}
