package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/neonring/config"
	"github.com/pthm-cable/neonring/game"
	"github.com/pthm-cable/neonring/telemetry"
)

// unfinishedLapPenalty is added per missing lap when a run hits maxTicks.
const unfinishedLapPenalty = 100.0

// FitnessEvaluator runs headless races and scores them by race time.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	timesteps  []float64
	baseConfig *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestSummary telemetry.LapSummary
	lastLaps    float64 // mean laps completed in the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Each parameter vector is
// raced once per timestep so the gains hold up at different frame rates.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, timesteps []float64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		timesteps:   timesteps,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestSummary returns the lap summary of the best evaluation's fastest run.
func (fe *FitnessEvaluator) BestSummary() telemetry.LapSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestSummary
}

// LastLaps returns the mean laps completed in the most recent evaluation.
func (fe *FitnessEvaluator) LastLaps() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastLaps
}

// runResult holds the outcome of one headless race.
type runResult struct {
	fitness float64
	laps    int
	summary telemetry.LapSummary
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the mean race time across timesteps.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.timesteps))
	var wg sync.WaitGroup

	for i, dt := range fe.timesteps {
		wg.Add(1)
		go func(idx int, dt float64) {
			defer wg.Done()
			results[idx] = fe.runRace(x, dt)
		}(i, dt)
	}
	wg.Wait()

	var total, laps float64
	best := results[0]
	for _, r := range results {
		total += r.fitness
		laps += float64(r.laps)
		if r.fitness < best.fitness {
			best = r
		}
	}

	n := float64(len(results))
	avg := total / n

	fe.mu.Lock()
	if avg < fe.bestFitness {
		fe.bestFitness = avg
		fe.bestSummary = best.summary
	}
	fe.lastLaps = laps / n
	fe.mu.Unlock()

	return avg
}

// runRace races once at timestep dt until the finish or maxTicks.
func (fe *FitnessEvaluator) runRace(x []float64, dt float64) runResult {
	cfg := fe.configFor(x)
	cfg.Sim.FixedDT = dt

	g, err := game.NewGame(game.Options{
		Config:    cfg,
		Headless:  true,
		Autopilot: true,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return runResult{fitness: math.Inf(1)}
	}
	defer g.Unload()

	for !g.Finished() && g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	return runResult{
		fitness: raceFitness(g.Progress().Elapsed, g.Progress().LapsCompleted, g.Progress().TotalLaps),
		laps:    g.Progress().LapsCompleted,
		summary: g.Laps().Summary(),
	}
}

// raceFitness is the race time, plus a penalty per lap left undone.
func raceFitness(elapsed float64, laps, totalLaps int) float64 {
	return elapsed + float64(totalLaps-laps)*unfinishedLapPenalty
}

// configFor copies the base config and applies x.
func (fe *FitnessEvaluator) configFor(x []float64) *config.Config {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	return &cfg
}
