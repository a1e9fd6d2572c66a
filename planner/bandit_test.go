package planner_test

import (
	"math/rand"
	"testing"

	"hospital-planner/models"
	"hospital-planner/planner"

	"github.com/stretchr/testify/assert"
)

func newBandit(epsilon float64) *planner.BanditPlanner {
	return planner.NewBanditPlanner(epsilon, rand.New(rand.NewSource(1)))
}

func TestBanditPlanBatching(t *testing.T) {
	tests := map[string]struct {
		now           int
		cases         int
		expectedCount int
	}{
		// Monday 10:00: the first 08:00 slot is under 24h away, so both
		// batches roll to the day after; 6 + 3 cases fit.
		"Weekday_Overflow": {now: 10, cases: 12, expectedCount: 9},
		"Weekday_AllFit":   {now: 10, cases: 4, expectedCount: 4},
		// Saturday 10:00: weekend capacity is 2 + 1.
		"Weekend_Overflow": {now: 130, cases: 12, expectedCount: 3},
		"Empty_Queue":      {now: 10, cases: 0, expectedCount: 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p := newBandit(0)
			decisions := p.Plan(caseIDs(tc.cases), nil, tc.now)
			assert.Len(t, decisions, tc.expectedCount)
			for _, d := range decisions {
				assert.GreaterOrEqual(t, d.Time, tc.now+planner.MinPlanLeadHours,
					"case %s violates the admission lead time", d.CaseID)
				assert.Equal(t, 8, models.HourOfDay(d.Time))
			}
		})
	}
}

func TestBanditScheduleOnlyAtSix(t *testing.T) {
	p := newBandit(0)
	assert.Empty(t, p.Schedule(8))     // 08:00
	assert.Empty(t, p.Schedule(12))    // 12:00
	assert.NotEmpty(t, p.Schedule(18)) // 18:00
}

func TestBanditScheduleLeadTime(t *testing.T) {
	p := newBandit(1) // fully random actions
	for day := 0; day < 30; day++ {
		now := day*24 + 18
		for _, c := range p.Schedule(now) {
			assert.GreaterOrEqual(t, c.Time, now+planner.MinScheduleLeadHours)
			assert.LessOrEqual(t, c.Capacity, models.MaxCapacity[models.OR])
			assert.Equal(t, models.OR, c.Resource)
		}
	}
}

// The near-term OR level must never drop below what was previously
// committed for the same slot, across consecutive schedule calls.
func TestBanditMonotonicStaffing(t *testing.T) {
	p := newBandit(1)
	committed := make(map[int]int)

	for day := 0; day < 60; day++ {
		now := day*24 + 18
		for _, c := range p.Schedule(now) {
			if c.Time-now < planner.NearTermHours {
				if prev, ok := committed[c.Time]; ok {
					assert.GreaterOrEqual(t, c.Capacity, prev,
						"day %d lowered slot %d from %d to %d", day, c.Time, prev, c.Capacity)
				}
			}
			committed[c.Time] = c.Capacity
		}
	}
}

// With epsilon forced to 0 and a Q-table pre-seeded so action 4 strictly
// dominates state (weekday=2, backlog_bin=1, overtime=0), the planner must
// select action 4 on that state every time. The chosen action is visible on
// the unconstrained week-ahead anchor.
func TestBanditGreedySelection(t *testing.T) {
	p := newBandit(0)
	state := planner.BanditState{Weekday: 2, BacklogBin: 1, Overtime: 0}
	p.SeedQ(state, 2, -50)
	p.SeedQ(state, 3, -20)
	p.SeedQ(state, 4, 10)
	p.SeedQ(state, 5, -5)

	for week := 0; week < 5; week++ {
		// Wednesday 18:00, with readyOR in the second backlog bin.
		now := week*168 + 2*24 + 18
		for i := 0; i < 5; i++ {
			p.Report("case_x", "surgery", now-1, models.OR, models.ActivateTask, nil)
		}

		commitments := p.Schedule(now)
		var anchor *models.Commitment
		for i := range commitments {
			if commitments[i].Time-now >= planner.NearTermHours {
				anchor = &commitments[i]
			}
		}
		if assert.NotNil(t, anchor, "week %d emitted no week-ahead anchor", week) {
			assert.Equal(t, 4, anchor.Capacity, "week %d chose a non-dominant action", week)
		}

		// Drain the ready-OR counter so the next week sees the same state.
		for i := 0; i < 5; i++ {
			p.Report("case_x", "surgery", now+1, models.OR, models.StartTask, nil)
		}
	}
}

// For a state-action pair visited n times, the stored estimate equals the
// arithmetic mean of the observed rewards.
func TestBanditQConvergence(t *testing.T) {
	p := newBandit(0)
	state := planner.BanditState{Weekday: 0, BacklogBin: 0, Overtime: 0}

	// Pin the greedy choice to action 5 so every update lands on it.
	p.SeedQ(state, 2, -1e18)
	p.SeedQ(state, 3, -1e18)
	p.SeedQ(state, 4, -1e18)

	// Nervousness events translate one-for-one into negative reward.
	nervousness := []int{3, 5, 10}
	expected := []float64{-3, -4, -6} // running means of -3, -5, -10

	p.Schedule(18) // first selection, nothing to settle yet
	for i, nerv := range nervousness {
		for j := 0; j < nerv; j++ {
			p.Report("case_x", "", 20, "", models.Replan, nil)
		}
		p.Schedule((i+1)*168 + 18) // Monday 18:00, same state
		assert.InDelta(t, expected[i], p.QValue(state, 5), 1e-9, "after %d updates", i+1)
	}
}

// Re-emitting an unchanged level for an already-committed slot is
// suppressed to avoid redundant churn.
func TestBanditSuppressesUnchangedCommitments(t *testing.T) {
	p := newBandit(0)

	first := p.Schedule(18)
	assert.NotEmpty(t, first)

	// Same call again: both slots already hold exactly these levels.
	second := p.Schedule(18)
	assert.Empty(t, second)
}

func TestBanditRewardWeighsCostTriple(t *testing.T) {
	p := newBandit(0)
	state := planner.BanditState{Weekday: 0, BacklogBin: 0, Overtime: 0}
	p.SeedQ(state, 2, 1) // greedy picks 2; seed is overwritten by the first update

	p.Schedule(18)
	p.Report("case_x", "", 20, "", models.PlannedStaffLT1W, nil) // cost +2
	p.Report("case_x", "Patient Admission", 21, "", models.ActivateEvent, nil)
	p.Schedule(168 + 18)

	// reward = -(1 admission wait + 3*2 cost)
	assert.InDelta(t, -7.0, p.QValue(state, 2), 1e-9)
}
