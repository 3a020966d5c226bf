package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/neonring/config"
	"github.com/pthm-cable/neonring/game"
)

// headlessTickCap bounds a headless race when --max-ticks is unset, the same
// cap cmd/tune gives each candidate.
const headlessTickCap = 20000

// headlessLimit returns the tick budget of a headless run.
func headlessLimit(maxTicks int) int {
	if maxTicks <= 0 {
		return headlessTickCap
	}
	return maxTicks
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics (implies --autopilot)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV trace, lap splits and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited in a window, 20000 headless)")
	autopilot := flag.Bool("autopilot", false, "Let the autopilot drive")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Config:    cfg,
		Headless:  *headless,
		Autopilot: *autopilot || *headless,
		OutputDir: *outputDir,
		LogEvents: true,
	}

	if *headless {
		// Headless mode - fixed timestep, no raylib needed
		g, err := game.NewGame(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		limit := headlessLimit(*maxTicks)
		slog.Info("starting headless race",
			"fixed_dt", cfg.Sim.FixedDT,
			"total_laps", cfg.Race.TotalLaps,
			"max_ticks", limit,
		)

		for !g.Finished() {
			g.UpdateHeadless()

			if int(g.Tick()) >= limit {
				slog.Warn("max ticks reached before the finish",
					"tick", g.Tick(),
					"laps", g.Progress().LapsCompleted,
				)
				return
			}
		}
		hud := g.HUD()
		slog.Info("headless race complete", "tick", g.Tick(), "time", hud.TimeText())
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Neon Ring")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
