package planner

import "hospital-planner/models"

// FixedPlanner replays a completed admission-time assignment as a
// non-reactive policy. It never changes capacity, which isolates a fitness
// evaluation from staffing effects and leaves admission time as the only
// variable under optimization.
type FixedPlanner struct {
	assignment map[string]int
}

// NewFixedPlanner wraps an assignment of case id to admission hour.
func NewFixedPlanner(assignment map[string]int) *FixedPlanner {
	return &FixedPlanner{assignment: assignment}
}

// Plan returns the recorded time for every requested case, or now+24 for
// cases the assignment never covered.
func (p *FixedPlanner) Plan(toPlan, toReplan []string, now int) []models.PlannedCase {
	out := make([]models.PlannedCase, 0, len(toPlan))
	for _, caseID := range toPlan {
		t, ok := p.assignment[caseID]
		if !ok {
			t = now + MinPlanLeadHours
		}
		out = append(out, models.PlannedCase{CaseID: caseID, Time: t})
	}
	return out
}

// Schedule never changes capacity.
func (p *FixedPlanner) Schedule(now int) []models.Commitment {
	return nil
}

// Report is a no-op.
func (p *FixedPlanner) Report(caseID, element string, timestamp int, resource models.ResourceType, state models.Lifecycle, data map[string]int) {
}
