package optimizer

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"hospital-planner/metrics"
)

// GAConfig bounds the population-based search stage.
type GAConfig struct {
	PopulationSize  int
	Generations     int
	TournamentSize  int
	CrossoverRate   float64
	MutationRate    float64
	StagnationLimit int // stop after this many generations without improvement
	HorizonHours    int // fitness-evaluation horizon and gene upper bound
	Workers         int // parallel fitness evaluations; 0 means serial
}

// DefaultGAConfig is tuned for a one-week fitness horizon.
func DefaultGAConfig() GAConfig {
	return GAConfig{
		PopulationSize:  40,
		Generations:     60,
		TournamentSize:  3,
		CrossoverRate:   0.9,
		MutationRate:    0.05,
		StagnationLimit: 10,
		HorizonHours:    168,
		Workers:         4,
	}
}

// geneticSearch evolves admission-time vectors for the given cases. All
// randomness flows through rng on the caller's goroutine; fitness
// evaluations are pure and run in parallel, and the reduction is a stable
// sort so completion order never changes the outcome.
type geneticSearch struct {
	cfg     GAConfig
	caseIDs []string
	eval    Evaluator
	rng     *rand.Rand
	log     zerolog.Logger
}

func (g *geneticSearch) randomGenes() []int {
	genes := make([]int, len(g.caseIDs))
	for i := range genes {
		genes[i] = g.rng.Intn(g.cfg.HorizonHours)
	}
	return genes
}

// scorePopulation fills in the fitness of every candidate, fanning the
// independent simulation runs out over a bounded worker pool.
func (g *geneticSearch) scorePopulation(pop []Candidate) error {
	workers := g.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	errs := make([]error, len(pop))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				pop[i].Fitness, errs[i] = evaluate(g.eval, g.caseIDs, pop[i].Genes, g.cfg.HorizonHours)
			}
		}()
	}
	for i := range pop {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	metrics.OptimizerEvaluationsTotal.WithLabelValues("ga").Add(float64(len(pop)))
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// tournament picks the fittest of TournamentSize random candidates.
func (g *geneticSearch) tournament(pop []Candidate) Candidate {
	best := pop[g.rng.Intn(len(pop))]
	for i := 1; i < g.cfg.TournamentSize; i++ {
		c := pop[g.rng.Intn(len(pop))]
		if c.Fitness < best.Fitness {
			best = c
		}
	}
	return best
}

// crossover produces a child by single-point recombination of two parents,
// or a copy of the first parent when recombination does not fire.
func (g *geneticSearch) crossover(a, b Candidate) []int {
	child := make([]int, len(a.Genes))
	copy(child, a.Genes)
	if g.rng.Float64() < g.cfg.CrossoverRate && len(child) > 1 {
		point := 1 + g.rng.Intn(len(child)-1)
		copy(child[point:], b.Genes[point:])
	}
	return child
}

func (g *geneticSearch) mutate(genes []int) {
	for i := range genes {
		if g.rng.Float64() < g.cfg.MutationRate {
			genes[i] = g.rng.Intn(g.cfg.HorizonHours)
		}
	}
}

// sortByFitness orders candidates best-first. The sort is stable over the
// pre-existing order, keeping the reduction deterministic.
func sortByFitness(pop []Candidate) {
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].Fitness < pop[j].Fitness
	})
}

// run evolves the population and returns the best candidate observed.
func (g *geneticSearch) run() (Candidate, error) {
	pop := make([]Candidate, g.cfg.PopulationSize)
	for i := range pop {
		pop[i] = Candidate{Genes: g.randomGenes()}
	}
	if err := g.scorePopulation(pop); err != nil {
		return Candidate{}, err
	}
	sortByFitness(pop)

	best := pop[0]
	stagnant := 0
	for gen := 0; gen < g.cfg.Generations; gen++ {
		children := make([]Candidate, g.cfg.PopulationSize)
		for i := range children {
			parentA := g.tournament(pop)
			parentB := g.tournament(pop)
			genes := g.crossover(parentA, parentB)
			g.mutate(genes)
			children[i] = Candidate{Genes: genes}
		}
		if err := g.scorePopulation(children); err != nil {
			return Candidate{}, err
		}

		// Elitist replacement: parents and children compete on fitness.
		pop = append(pop, children...)
		sortByFitness(pop)
		pop = pop[:g.cfg.PopulationSize]

		metrics.OptimizerGenerations.Inc()
		if pop[0].Fitness < best.Fitness {
			best = pop[0]
			stagnant = 0
			metrics.OptimizerBestFitness.Set(best.Fitness)
			g.log.Debug().Int("generation", gen).Float64("fitness", best.Fitness).Msg("ga improved")
		} else {
			stagnant++
			if stagnant >= g.cfg.StagnationLimit {
				g.log.Debug().Int("generation", gen).Msg("ga stagnated, stopping early")
				break
			}
		}
	}
	return best, nil
}
