package optimizer

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"hospital-planner/metrics"
)

// SAConfig bounds the local-refinement stage.
type SAConfig struct {
	Iterations        int
	InitialTemp       float64
	Cooling           float64 // temperature multiplier per iteration, in (0,1)
	NeighborhoodHours int     // maximum per-move timestamp shift
	HorizonHours      int
}

// DefaultSAConfig matches the one-week GA fitness horizon.
func DefaultSAConfig() SAConfig {
	return SAConfig{
		Iterations:        400,
		InitialTemp:       50,
		Cooling:           0.99,
		NeighborhoodHours: 6,
		HorizonHours:      168,
	}
}

// anneal refines a seed candidate by perturbing individual case timestamps.
// Improving moves are always accepted, worsening moves with probability
// exp(-delta/T). The best candidate observed is returned, so the result is
// never worse than the seed.
func anneal(cfg SAConfig, caseIDs []string, seed Candidate, eval Evaluator, rng *rand.Rand, log zerolog.Logger) (Candidate, error) {
	current := Candidate{Genes: append([]int(nil), seed.Genes...), Fitness: seed.Fitness}
	best := Candidate{Genes: append([]int(nil), seed.Genes...), Fitness: seed.Fitness}

	temp := cfg.InitialTemp
	for i := 0; i < cfg.Iterations; i++ {
		genes := append([]int(nil), current.Genes...)
		idx := rng.Intn(len(genes))
		shift := 1 + rng.Intn(cfg.NeighborhoodHours)
		if rng.Intn(2) == 0 {
			shift = -shift
		}
		genes[idx] = min(cfg.HorizonHours-1, max(0, genes[idx]+shift))

		fitness, err := evaluate(eval, caseIDs, genes, cfg.HorizonHours)
		if err != nil {
			return Candidate{}, err
		}
		metrics.OptimizerEvaluationsTotal.WithLabelValues("sa").Inc()

		delta := fitness - current.Fitness
		if delta <= 0 || rng.Float64() < math.Exp(-delta/temp) {
			current = Candidate{Genes: genes, Fitness: fitness}
		}
		if current.Fitness < best.Fitness {
			best = Candidate{Genes: append([]int(nil), current.Genes...), Fitness: current.Fitness}
			metrics.OptimizerBestFitness.Set(best.Fitness)
			log.Debug().Int("iteration", i).Float64("fitness", best.Fitness).Msg("sa improved")
		}

		temp *= cfg.Cooling
	}
	return best, nil
}
