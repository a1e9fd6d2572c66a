// Package optimizer searches the space of admission-time assignments with a
// genetic algorithm, refines the best candidate with simulated annealing,
// and validates the final assignment over a full horizon. Candidates are
// scored by replaying them through the external simulation engine behind a
// fixed-schedule planner.
package optimizer

import (
	"hospital-planner/models"
	"hospital-planner/planner"
)

// Evaluator runs one simulation replication of the given planner for the
// given horizon in hours and returns the KPI vector. The engine itself is
// external; this is the only coupling point. Implementations must be safe
// for concurrent calls, and every call must run against fresh simulation
// state, or fitness becomes non-reproducible.
type Evaluator func(p planner.Planner, horizonHours int) (models.Result, error)

// Candidate is one complete admission-time assignment: one gene (admission
// hour) per case, in the fixed case order of the search. Immutable once
// scored.
type Candidate struct {
	Genes   []int
	Fitness float64
}

// assignment materializes the gene vector into the map form the replay
// adapter consumes.
func assignment(caseIDs []string, genes []int) map[string]int {
	m := make(map[string]int, len(caseIDs))
	for i, caseID := range caseIDs {
		m[caseID] = genes[i]
	}
	return m
}

// evaluate scores a gene vector by replaying it for horizonHours and
// reading back the admission waiting time. Lower is better.
func evaluate(eval Evaluator, caseIDs []string, genes []int, horizonHours int) (float64, error) {
	res, err := eval(planner.NewFixedPlanner(assignment(caseIDs, genes)), horizonHours)
	if err != nil {
		return 0, err
	}
	return res.WaitingTimeForAdmission, nil
}
