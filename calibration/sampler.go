package calibration

import "math/rand"

// Sampler draws service times from the calibrated per-activity
// distributions: Normal(mean, std) left-truncated at zero.
type Sampler struct {
	params *Params
	rng    *rand.Rand
}

// NewSampler builds a sampler over the given params. The random source is
// injectable for deterministic tests.
func NewSampler(params *Params, rng *rand.Rand) *Sampler {
	return &Sampler{params: params, rng: rng}
}

// SampleHours draws a service time in hours for the activity. It returns
// false when no calibration data exists, in which case the caller falls
// back to the problem model's default sampler.
func (s *Sampler) SampleHours(activity string) (float64, bool) {
	mean, ok := s.params.MeanSec[activity]
	if !ok {
		return 0, false
	}
	std := s.params.StdSec[activity]

	hours := mean/3600.0 + s.rng.NormFloat64()*std/3600.0
	if hours < 0 {
		hours = 0
	}
	return hours, true
}
