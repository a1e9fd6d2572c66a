package planner

import (
	"math/rand"
	"strconv"
	"strings"

	"hospital-planner/metrics"
	"hospital-planner/models"
)

// BanditState is the discretized context for the staffing decision.
type BanditState struct {
	Weekday    int // 0 (Monday) .. 6 (Sunday)
	BacklogBin int // min(3, readyOR/5)
	Overtime   int // 0 or 1
}

// banditActions are the OR staffing levels the policy chooses between.
var banditActions = []int{2, 3, 4, 5}

// dayMetrics accumulates the four KPI proxies between nightly updates.
// It is consumed exactly once per reward computation, then zeroed.
type dayMetrics struct {
	admitWait  float64
	inHospWait float64
	nerv       float64
	cost       float64
	overtime   bool
}

type commitKey struct {
	resource models.ResourceType
	time     int
}

// BanditPlanner admits cases via capacity-gated batching and learns a daily
// OR staffing level with a tabular epsilon-greedy contextual bandit. All
// tables are owned instance state; concurrent simulation replications must
// each construct their own planner.
type BanditPlanner struct {
	epsilon float64
	rng     *rand.Rand

	q      map[BanditState]map[int]float64
	visits map[BanditState]map[int]int

	lastState  *BanditState
	lastAction int

	day     dayMetrics
	readyOR int

	lastLevel int               // last committed near-term OR level
	maxLevel  int               // hard OR cap
	committed map[commitKey]int // (resource, time) -> level already emitted
}

// NewBanditPlanner builds a bandit planner with the given exploration rate.
// The random source is injectable so tests can force deterministic action
// selection; a nil rng panics on first exploration, so pass one.
func NewBanditPlanner(epsilon float64, rng *rand.Rand) *BanditPlanner {
	return &BanditPlanner{
		epsilon:   epsilon,
		rng:       rng,
		q:         make(map[BanditState]map[int]float64),
		visits:    make(map[BanditState]map[int]int),
		lastLevel: models.MaxCapacity[models.OR], // start at max to avoid decrease violations
		maxLevel:  models.MaxCapacity[models.OR],
		committed: make(map[commitKey]int),
	}
}

const (
	weekdayAdmissionCap = 6
	weekendAdmissionCap = 2
)

// Plan batches cases into the next two 08:00 slots: full capacity into the
// first, half capacity into the second, the rest left for a future call.
func (p *BanditPlanner) Plan(toPlan, toReplan []string, now int) []models.PlannedCase {
	slot1 := models.NextDay0800(now, 1)
	if slot1 < now+MinPlanLeadHours {
		slot1 = models.NextDay0800(now, 2)
	}
	slot2 := models.NextDay0800(now, 2)

	cap1 := weekdayAdmissionCap
	if models.IsWeekend(now) {
		cap1 = weekendAdmissionCap
	}
	cap2 := max(1, cap1/2)

	out := make([]models.PlannedCase, 0, cap1+cap2)
	for _, caseID := range toPlan {
		switch {
		case cap1 > 0:
			out = append(out, models.PlannedCase{CaseID: caseID, Time: slot1})
			cap1--
		case cap2 > 0:
			out = append(out, models.PlannedCase{CaseID: caseID, Time: slot2})
			cap2--
		default:
			metrics.CasesDeferredTotal.WithLabelValues("bandit").Add(float64(len(toPlan) - len(out)))
			metrics.CasesPlannedTotal.WithLabelValues("bandit").Add(float64(len(out)))
			return out
		}
	}
	metrics.CasesPlannedTotal.WithLabelValues("bandit").Add(float64(len(out)))
	return out
}

// qValues returns the action-value row for a state, creating zeroed entries
// on first contact.
func (p *BanditPlanner) qValues(s BanditState) map[int]float64 {
	row, ok := p.q[s]
	if !ok {
		row = make(map[int]float64, len(banditActions))
		for _, a := range banditActions {
			row[a] = 0
		}
		p.q[s] = row
	}
	return row
}

func (p *BanditPlanner) visitCounts(s BanditState) map[int]int {
	row, ok := p.visits[s]
	if !ok {
		row = make(map[int]int, len(banditActions))
		p.visits[s] = row
	}
	return row
}

// closeLoop settles the pending (state, action) pair against the metrics
// accumulated since the last update, using an incremental mean.
func (p *BanditPlanner) closeLoop() {
	if p.lastState == nil {
		return
	}
	reward := -(p.day.admitWait + p.day.inHospWait + p.day.nerv + 3.0*p.day.cost)
	metrics.BanditReward.Set(reward)

	counts := p.visitCounts(*p.lastState)
	counts[p.lastAction]++
	n := counts[p.lastAction]
	row := p.qValues(*p.lastState)
	row[p.lastAction] += (reward - row[p.lastAction]) / float64(n)
}

// selectAction is epsilon-greedy; greedy ties break by enumeration order.
func (p *BanditPlanner) selectAction(s BanditState) int {
	if p.epsilon > 0 && p.rng.Float64() < p.epsilon {
		return banditActions[p.rng.Intn(len(banditActions))]
	}
	row := p.qValues(s)
	best := banditActions[0]
	for _, a := range banditActions[1:] {
		if row[a] > row[best] {
			best = a
		}
	}
	return best
}

// Schedule runs the nightly staffing update at 18:00: close the reward loop
// for yesterday's action, pick tomorrow's OR level, and emit it under the
// lead-time and monotone near-term constraints, plus an unconstrained
// week-ahead anchor. Unchanged commitments are suppressed.
func (p *BanditPlanner) Schedule(now int) []models.Commitment {
	if models.HourOfDay(now) != 18 {
		return nil
	}

	state := BanditState{
		Weekday:    models.DayOfWeek(now) - 1,
		BacklogBin: min(3, p.readyOR/5),
	}
	if p.day.overtime {
		state.Overtime = 1
	}

	p.closeLoop()
	action := p.selectAction(state)
	metrics.BanditActionsTotal.WithLabelValues(strconv.Itoa(action)).Inc()

	// Reset accumulators for the next day.
	p.day = dayMetrics{}

	start := max(now+MinScheduleLeadHours, models.NextDay0800(now, 1))
	chosen := min(p.maxLevel, max(banditActions[0], action))

	// Near term is increase-only: never go below anything already committed
	// for the slot or the currently-active level.
	existing, ok := p.committed[commitKey{models.OR, start}]
	if !ok {
		existing = p.lastLevel
	}
	near := max(existing, p.lastLevel, chosen)
	p.lastLevel = near

	var out []models.Commitment
	if level, ok := p.committed[commitKey{models.OR, start}]; !ok || level != near {
		out = append(out, models.Commitment{Resource: models.OR, Time: start, Capacity: near})
		p.committed[commitKey{models.OR, start}] = near
	}

	// Week-ahead anchor for longer-horizon staffing.
	anchor := start + models.HoursPerWeek
	if level, ok := p.committed[commitKey{models.OR, anchor}]; !ok || level != chosen {
		out = append(out, models.Commitment{Resource: models.OR, Time: anchor, Capacity: chosen})
		p.committed[commitKey{models.OR, anchor}] = chosen
	}

	p.lastState = &state
	p.lastAction = action
	return out
}

// Report classifies lifecycle events into the four KPI proxy buckets and
// maintains the ready-OR counter used for the backlog bin. The mapping is a
// label heuristic; unknown states are ignored.
func (p *BanditPlanner) Report(caseID, element string, timestamp int, resource models.ResourceType, state models.Lifecycle, data map[string]int) {
	label := strings.ToUpper(element)
	if strings.Contains(label, "ADMISSION") || strings.Contains(label, "INTAKE") || strings.Contains(label, "REGISTER") {
		if state == models.ActivateEvent || state == models.Waiting {
			p.day.admitWait += 1.0
		}
	}

	switch state {
	case models.ActivateTask:
		p.day.inHospWait += 0.2
	case models.Replan, models.Reschedule:
		p.day.nerv += 1.0
	case models.Overtime:
		p.day.cost += 3.0
		p.day.overtime = true
	case models.PlannedStaffLT1W:
		p.day.cost += 2.0
	case models.PlannedStaffGE1W:
		p.day.cost += 1.0
	}

	if resource == models.OR {
		switch state {
		case models.ActivateTask:
			p.readyOR++
		case models.StartTask:
			p.readyOR = max(0, p.readyOR-1)
		}
	}
}

// SeedQ pre-loads an action-value estimate, primarily for tests and for
// resuming a tuned table.
func (p *BanditPlanner) SeedQ(s BanditState, action int, value float64) {
	p.qValues(s)[action] = value
}

// QValue returns the current estimate for a (state, action) pair.
func (p *BanditPlanner) QValue(s BanditState, action int) float64 {
	return p.qValues(s)[action]
}
