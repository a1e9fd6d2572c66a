package planner

import (
	"hospital-planner/metrics"
	"hospital-planner/models"
)

// Wave is one admission wave within a day: an offset in hours after 08:00
// and the fraction of the day's quota it receives.
type Wave struct {
	Offset   int
	Fraction float64
}

// DefaultWaves spreads a day's quota over six waves, front-loaded so the
// morning absorbs most admissions. Fractions sum to 1.0.
var DefaultWaves = []Wave{
	{Offset: 0, Fraction: 0.36},
	{Offset: 2, Fraction: 0.22},
	{Offset: 4, Fraction: 0.16},
	{Offset: 6, Fraction: 0.12},
	{Offset: 8, Fraction: 0.08},
	{Offset: 12, Fraction: 0.06},
}

// WavePlanner admits pending cases into daily waves under a capacity-derived
// quota and emits a steady weekly staffing pattern. Replan requests are
// intentionally ignored to keep plan churn low.
type WavePlanner struct {
	caps  models.CapacitySchedule
	waves []Wave
	used  Ledger
}

// NewWavePlanner builds a wave planner over the given weekly capacity.
// A nil schedule means full default capacity.
func NewWavePlanner(caps models.CapacitySchedule) *WavePlanner {
	if caps == nil {
		caps = models.DefaultCapacity()
	}
	return &WavePlanner{
		caps:  caps,
		waves: DefaultWaves,
		used:  NewLedger(),
	}
}

// waveSlot is one placement opportunity: an absolute admission hour, the
// ledger bucket it consumes, and the room still open in it.
type waveSlot struct {
	time int
	key  SlotKey
	room int
}

// daySlots computes the placement opportunities for the day starting at
// base8+24*dayOffset, after subtracting capacity already consumed at each
// exact slot.
func (p *WavePlanner) daySlots(base8, dayOffset, backlog int) []waveSlot {
	dayStart := base8 + models.HoursPerDay*dayOffset
	day := models.DayOfWeek(dayStart)
	week := models.WeekIndex(dayStart)
	daysSinceEpoch := base8/models.HoursPerDay + dayOffset

	quota := dailyQuota(p.caps, day, daysSinceEpoch, backlog)
	if dayOffset == 0 {
		metrics.DailyQuota.Set(float64(quota))
	}

	fractions := make([]float64, len(p.waves))
	for i, w := range p.waves {
		fractions[i] = w.Fraction
	}
	subs := SplitQuota(quota, fractions)

	slots := make([]waveSlot, len(p.waves))
	for i, w := range p.waves {
		t := dayStart + w.Offset
		key := SlotKey{Week: week, Day: day, Hour: models.HourOfDay(t)}
		slots[i] = waveSlot{time: t, key: key, room: p.used.Remaining(key, subs[i])}
	}
	return slots
}

// fill drains pending cases into the slots in order, recording consumption
// in the ledger. It returns the decisions made and the cases still pending.
func (p *WavePlanner) fill(slots []waveSlot, pending []string, out []models.PlannedCase) ([]models.PlannedCase, []string) {
	for _, s := range slots {
		if len(pending) == 0 {
			break
		}
		k := min(s.room, len(pending))
		if k <= 0 {
			continue
		}
		for _, caseID := range pending[:k] {
			out = append(out, models.PlannedCase{CaseID: caseID, Time: s.time})
		}
		pending = pending[k:]
		p.used.Add(s.key, k)
	}
	return out, pending
}

// Plan assigns every newly plannable case to the earliest open wave slot,
// filling each day completely before touching the next. Replannable cases
// only contribute to the backlog estimate; they are never re-batched.
func (p *WavePlanner) Plan(toPlan, toReplan []string, now int) []models.PlannedCase {
	if len(toPlan) == 0 {
		return nil
	}

	pending := make([]string, len(toPlan))
	copy(pending, toPlan)
	backlog := len(pending) + len(toReplan)
	metrics.BacklogSize.Set(float64(backlog))

	base8 := models.NextEightAM(now + MinPlanLeadHours)
	out := make([]models.PlannedCase, 0, len(pending))

	// Two-day lookahead first, both days budgeted from the same backlog.
	lookahead := [][]waveSlot{p.daySlots(base8, 0, backlog), p.daySlots(base8, 1, backlog)}
	for _, slots := range lookahead {
		out, pending = p.fill(slots, pending, out)
		if len(pending) == 0 {
			break
		}
	}

	// Keep rolling forward one day at a time until the queue is empty.
	for dayOffset := 2; len(pending) > 0; dayOffset++ {
		backlog = len(pending) + len(toReplan)
		out, pending = p.fill(p.daySlots(base8, dayOffset, backlog), pending, out)
	}

	metrics.CasesPlannedTotal.WithLabelValues("wave").Add(float64(len(out)))
	return out
}

// Schedule emits full capacity for next week's same weekday at 08:00 and,
// for the following evening, the same levels with the OR slightly trimmed
// to model end-of-day throttling.
func (p *WavePlanner) Schedule(now int) []models.Commitment {
	morning := now + NearTermHours       // next week, same weekday, 08:00
	evening := now + models.HoursPerWeek // next day, 18:00
	day := models.DayOfWeek(morning)

	out := make([]models.Commitment, 0, 10)
	for _, r := range models.ResourceTypes {
		out = append(out, models.Commitment{Resource: r, Time: morning, Capacity: p.caps.Get(r, day)})
	}
	out = append(out,
		models.Commitment{Resource: models.Intake, Time: evening, Capacity: p.caps.Get(models.Intake, day)},
		models.Commitment{Resource: models.ERPractitioner, Time: evening, Capacity: p.caps.Get(models.ERPractitioner, day)},
		models.Commitment{Resource: models.ABed, Time: evening, Capacity: p.caps.Get(models.ABed, day)},
		models.Commitment{Resource: models.BBed, Time: evening, Capacity: p.caps.Get(models.BBed, day)},
		models.Commitment{Resource: models.OR, Time: evening, Capacity: max(4, p.caps.Get(models.OR, day)-1)},
	)
	return out
}

// Report is a no-op: this policy derives everything it needs from the
// arguments passed into Plan and its own ledger.
func (p *WavePlanner) Report(caseID, element string, timestamp int, resource models.ResourceType, state models.Lifecycle, data map[string]int) {
}
