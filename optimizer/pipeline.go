package optimizer

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hospital-planner/models"
	"hospital-planner/planner"
)

// Pipeline chains the three optimizer stages: genetic search, simulated
// annealing seeded from the search's best candidate, and a full-horizon
// validation replay of the final assignment.
type Pipeline struct {
	GA              GAConfig
	SA              SAConfig
	Eval            Evaluator
	ValidationHours int
	Seed            int64
	Log             zerolog.Logger
}

// NewPipeline builds a pipeline with default stage configurations.
func NewPipeline(eval Evaluator, seed int64, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		GA:              DefaultGAConfig(),
		SA:              DefaultSAConfig(),
		Eval:            eval,
		ValidationHours: 365 * models.HoursPerDay,
		Seed:            seed,
		Log:             log,
	}
}

// Report is the pipeline's output: the per-stage fitness, the final
// assignment, and the full KPI vector from the validation run.
type Report struct {
	RunID       string         `json:"run_id"`
	GAFitness   float64        `json:"ga_fitness"`
	SAFitness   float64        `json:"sa_fitness"`
	Assignment  map[string]int `json:"assignment"`
	Performance models.Result  `json:"performance"`
}

// Run optimizes admission times for the given cases and validates the
// result over the full horizon.
func (p *Pipeline) Run(caseIDs []string) (*Report, error) {
	if len(caseIDs) == 0 {
		return nil, fmt.Errorf("no cases to optimize")
	}
	runID := uuid.NewString()
	log := p.Log.With().Str("run_id", runID).Logger()
	rng := rand.New(rand.NewSource(p.Seed))

	ga := &geneticSearch{cfg: p.GA, caseIDs: caseIDs, eval: p.Eval, rng: rng, log: log}
	gaBest, err := ga.run()
	if err != nil {
		return nil, fmt.Errorf("genetic search: %w", err)
	}
	log.Info().Float64("fitness", gaBest.Fitness).Msg("genetic search finished")

	saBest, err := anneal(p.SA, caseIDs, gaBest, p.Eval, rng, log)
	if err != nil {
		return nil, fmt.Errorf("annealing: %w", err)
	}
	log.Info().Float64("fitness", saBest.Fitness).Msg("annealing finished")

	final := assignment(caseIDs, saBest.Genes)
	perf, err := p.Eval(planner.NewFixedPlanner(final), p.ValidationHours)
	if err != nil {
		return nil, fmt.Errorf("validation run: %w", err)
	}
	log.Info().
		Float64("waiting_time_for_admission", perf.WaitingTimeForAdmission).
		Float64("personnel_cost", perf.PersonnelCost).
		Msg("validation finished")

	return &Report{
		RunID:       runID,
		GAFitness:   gaBest.Fitness,
		SAFitness:   saBest.Fitness,
		Assignment:  final,
		Performance: perf,
	}, nil
}
