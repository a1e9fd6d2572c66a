// Package planner implements the admission and staffing policies the
// simulation engine drives. The engine depends only on the Planner
// interface, so reactive policies and the fixed-schedule replay adapter
// share one code path.
package planner

import "hospital-planner/models"

// Planner is the contract every scheduling policy implements. The engine
// invokes it call-by-call with non-decreasing simulation time.
//
// Plan must return admission times at least MinPlanLeadHours ahead of now.
// A case not returned stays unplanned and will be offered again later.
//
// Schedule must return commitments at least MinScheduleLeadHours ahead of
// now, and must never lower capacity for an already-committed slot inside
// the near-term window. The engine does not validate either constraint.
//
// Report is a side-effect-only callback for every lifecycle transition.
type Planner interface {
	Plan(toPlan, toReplan []string, now int) []models.PlannedCase
	Schedule(now int) []models.Commitment
	Report(caseID, element string, timestamp int, resource models.ResourceType, state models.Lifecycle, data map[string]int)
}

const (
	// MinPlanLeadHours is the minimum lead time for admission decisions.
	MinPlanLeadHours = 24
	// MinScheduleLeadHours is the minimum lead time for capacity commitments.
	MinScheduleLeadHours = 14
	// NearTermHours is the window inside which committed capacity must not
	// decrease.
	NearTermHours = 158
)

var (
	_ Planner = (*WavePlanner)(nil)
	_ Planner = (*BanditPlanner)(nil)
	_ Planner = (*FixedPlanner)(nil)
)
