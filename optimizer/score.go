package optimizer

import "hospital-planner/models"

// Baseline holds the naive planner's full-year KPIs, used to normalize a
// run's performance for comparison.
var Baseline = models.Result{
	WaitingTimeForAdmission: 281013.6992142152,
	WaitingTimeInHospital:   4997561.385304505,
	Nervousness:             2932427.0,
	PersonnelCost:           733449.0,
}

func nz(x float64) float64 {
	if x == 0 {
		return 1e-9
	}
	return x
}

// Normalized expresses each KPI as a percentage delta against a baseline.
// Negative values are improvements.
type Normalized struct {
	AdmissionWait float64
	HospitalWait  float64
	Nervousness   float64
	Cost          float64
}

// Normalize compares a run's KPIs against the baseline.
func Normalize(yours, base models.Result) Normalized {
	return Normalized{
		AdmissionWait: 100.0 * (yours.WaitingTimeForAdmission - base.WaitingTimeForAdmission) / nz(base.WaitingTimeForAdmission),
		HospitalWait:  100.0 * (yours.WaitingTimeInHospital - base.WaitingTimeInHospital) / nz(base.WaitingTimeInHospital),
		Nervousness:   100.0 * (yours.Nervousness - base.Nervousness) / nz(base.Nervousness),
		Cost:          100.0 * (yours.PersonnelCost - base.PersonnelCost) / nz(base.PersonnelCost),
	}
}

// CompositeScore collapses the normalized KPIs into the single ranking
// score, weighting cost triple. Lower is better.
func CompositeScore(n Normalized) float64 {
	return (n.AdmissionWait + n.HospitalWait + n.Nervousness + 3.0*n.Cost) / 6.0
}
