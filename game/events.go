package game

import (
	"log/slog"

	"github.com/pthm-cable/neonring/components"
	"github.com/pthm-cable/neonring/telemetry"
)

// recordRaceEvents compares progress before and after this tick and logs
// the race start, completed laps and the finish.
func (g *Game) recordRaceEvents(prev components.RaceProgress) {
	cur := g.progress

	if !prev.Active && cur.Active && g.logEvents {
		slog.Info("race started", "tick", g.tick, "total_laps", cur.TotalLaps)
	}

	if cur.LapsCompleted > prev.LapsCompleted {
		rec := g.laps.Record(cur.LapsCompleted, cur.Elapsed-g.lapStart, cur.Elapsed)
		g.lapStart = cur.Elapsed

		if g.logEvents {
			slog.Info("lap completed",
				"lap", rec.Lap,
				"split_sec", rec.Split,
				"race_sec", rec.RaceSec,
			)
		}
		if err := g.output.WriteLap(rec); err != nil {
			slog.Error("failed to write lap", "error", err)
		}
	}

	if cur.Finished() && !prev.Finished() && g.logEvents {
		slog.Info("race finished",
			"elapsed_sec", cur.Elapsed,
			"summary", g.laps.Summary(),
		)
	}
}

// writeTrace appends this tick to the trace every telemetry.trace_every ticks.
func (g *Game) writeTrace(dt float64) {
	every := int32(g.cfg.Telemetry.TraceEvery)
	if g.output == nil || every <= 0 || g.tick%every != 0 {
		return
	}
	if err := g.output.WriteTick(telemetry.NewTickRecord(g.tick, dt, g.state, g.progress)); err != nil {
		slog.Error("failed to write trace", "error", err)
	}
}

// logPerf logs phase timings every telemetry.perf_log_interval ticks.
func (g *Game) logPerf() {
	interval := int32(g.cfg.Telemetry.PerfLogInterval)
	if !g.logEvents || interval <= 0 || g.tick%interval != 0 {
		return
	}
	g.perf.Stats().LogStats(g.tick)
}
