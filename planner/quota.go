package planner

import (
	"sort"

	"hospital-planner/models"
)

// Quota tuning. The warm-start window widens the clamp band for the first
// two simulated weeks so the initial backlog drains faster; a high backlog
// re-widens the ceiling without unbounded overbooking.
const (
	warmStartDays     = 14
	backlogHighWater  = 150
	quotaFloorWarm    = 56
	quotaFloor        = 50
	quotaCeilingWide  = 72
	quotaCeiling      = 64
	intakesPerDay     = 14 // admissions one intake staffer can process per day
	erCasesPerDay     = 6  // admissions one ER practitioner can absorb per day
	backlogBoostRatio = 6  // one extra admission per this many backlogged cases
)

// baseQuota derives the raw daily admission budget from the weekday's
// staffed capacity: intake and ER throughput, bounded by total beds.
// OR capacity intentionally does not cap admissions.
func baseQuota(caps models.CapacitySchedule, day int) int {
	intake := intakesPerDay * caps.Get(models.Intake, day)
	er := erCasesPerDay * caps.Get(models.ERPractitioner, day)
	beds := caps.Get(models.ABed, day) + caps.Get(models.BBed, day)
	return min(intake, min(er, beds))
}

// dailyQuota clamps the boosted base quota into the floor/ceiling band for
// the given simulated day. backlog is pending plus replannable cases.
func dailyQuota(caps models.CapacitySchedule, day, daysSinceEpoch, backlog int) int {
	q := baseQuota(caps, day)
	boost := min(q/2, backlog/backlogBoostRatio)

	warm := daysSinceEpoch < warmStartDays
	floor := quotaFloor
	if warm {
		floor = quotaFloorWarm
	}
	ceiling := quotaCeiling
	if warm || backlog > backlogHighWater {
		ceiling = quotaCeilingWide
	}

	return min(ceiling, max(floor, q+boost))
}

// SplitQuota apportions an integer total across ordered fractional shares
// using the largest-remainder method: truncate each ideal share, then hand
// the rounding leftover to the largest fractional remainders, breaking ties
// by share order. The sub-quotas always sum to total exactly.
func SplitQuota(total int, fractions []float64) []int {
	raw := make([]float64, len(fractions))
	subs := make([]int, len(fractions))
	assigned := 0
	for i, f := range fractions {
		raw[i] = f * float64(total)
		subs[i] = int(raw[i])
		assigned += subs[i]
	}

	leftover := total - assigned
	if leftover <= 0 {
		return subs
	}

	order := make([]int, len(fractions))
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps wave order for equal remainders.
	sort.SliceStable(order, func(a, b int) bool {
		return raw[order[a]]-float64(subs[order[a]]) > raw[order[b]]-float64(subs[order[b]])
	})
	for _, i := range order[:leftover] {
		subs[i]++
	}
	return subs
}
