// Package game runs the race loop: it owns the vehicle, the race progress and
// the chase camera, and advances them through one fixed pipeline per tick.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/neonring/camera"
	"github.com/pthm-cable/neonring/components"
	"github.com/pthm-cable/neonring/config"
	"github.com/pthm-cable/neonring/input"
	"github.com/pthm-cable/neonring/systems"
	"github.com/pthm-cable/neonring/telemetry"
	"github.com/pthm-cable/neonring/ui"
)

// Options configures a game instance.
type Options struct {
	Config    *config.Config // nil = config.Cfg()
	Headless  bool           // no window; Update is never called
	Autopilot bool           // the autopilot drives instead of the keyboard
	OutputDir string         // CSV trace and lap splits, empty = off
	LogEvents bool           // race lifecycle and perf lines via slog
}

// Game holds the complete race state.
type Game struct {
	cfg     *config.Config
	vehicle components.VehicleConfig
	track   components.Track
	chase   camera.Chase

	// Control sources
	input *input.State
	pilot *Autopilot

	// Race state, replaced wholesale every tick
	state    components.VehicleState
	progress components.RaceProgress
	pose     camera.Pose

	// Renderable mirror of the race state
	scene *systems.Scene

	// Telemetry
	laps      *telemetry.LapBook
	lapStart  float64 // race clock when the current lap began
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector
	logEvents bool

	// UI, graphical mode only
	uiHUD    *ui.HUD
	uiPerf   *ui.PerfPanel
	showPerf bool

	tick     int32
	headless bool
}

// NewGame creates a game with the vehicle on the grid.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:       cfg,
		vehicle:   vehicleConfig(cfg),
		track:     trackFromConfig(cfg),
		chase:     chaseCamera(cfg),
		input:     &input.State{},
		laps:      telemetry.NewLapBook(),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logEvents: opts.LogEvents,
		headless:  opts.Headless,
	}
	g.scene = systems.NewScene(g.track)

	if !opts.Headless {
		g.uiHUD = ui.NewHUD()
		g.uiPerf = ui.NewPerfPanel(int32(cfg.Screen.Width)-290, 60, 280)
	}

	if opts.Autopilot {
		g.pilot = NewAutopilot(cfg.Autopilot, g.vehicle, g.track)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.output = output

	g.restart()
	g.pose = g.chase.InitialPose(g.state)
	g.scene.Sync(g.state, g.pose.Rig())
	return g, nil
}

// Input returns the control state the keyboard (or any other goroutine) writes to.
func (g *Game) Input() *input.State {
	return g.input
}

// Reset puts the vehicle back on the grid and clears the race.
// Held controls stay held. The camera keeps its pose and follows the car back.
func (g *Game) Reset() {
	g.restart()
	if g.logEvents {
		slog.Info("race reset", "tick", g.tick)
	}
}

// restart restores the initial race state without logging.
func (g *Game) restart() {
	g.state = components.StartVehicle(g.track)
	g.progress = components.StartProgress(g.state, g.cfg.Race.TotalLaps)
	g.scene.Sync(g.state, g.pose.Rig())

	g.laps.Clear()
	g.lapStart = 0
	if g.pilot != nil {
		g.pilot.Reset()
	}
}

// Step advances the race by one frame of dt seconds. dt is clamped to
// sim.max_dt; a non-positive or NaN dt skips the frame.
func (g *Game) Step(dt float64) {
	dt = systems.ClampDT(dt, g.cfg.Sim.MaxDT)
	if dt == 0 {
		return
	}

	g.perf.StartTick()

	// 1. Read controls; a reset applies before the rest of the tick
	g.perf.StartPhase(telemetry.PhaseInput)
	in := g.input.Snapshot()
	if in.Reset {
		g.Reset()
	}
	if g.pilot != nil {
		in = g.pilot.Drive(g.state, dt)
	}

	// 2. Move the vehicle and resolve the walls
	g.perf.StartPhase(telemetry.PhaseVehicle)
	g.state = systems.Advance(g.state, g.vehicle, g.track, in, dt)

	// 3. Laps and race clock
	g.perf.StartPhase(telemetry.PhaseProgress)
	prev := g.progress
	g.progress = systems.UpdateProgress(prev, g.state, in.Forward, dt)
	g.recordRaceEvents(prev)

	// 4. Chase camera
	g.perf.StartPhase(telemetry.PhaseCamera)
	g.pose = g.chase.Follow(g.pose, g.state)

	// 5. Mirror into the scene
	g.perf.StartPhase(telemetry.PhaseScene)
	g.scene.Sync(g.state, g.pose.Rig())

	g.tick++

	// 6. Trace
	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.writeTrace(dt)

	g.perf.EndTick()
	g.logPerf()
}

// UpdateHeadless runs one tick at the fixed headless timestep.
func (g *Game) UpdateHeadless() {
	g.Step(g.cfg.Sim.FixedDT)
}

// Vehicle returns the current vehicle state.
func (g *Game) Vehicle() components.VehicleState {
	return g.state
}

// Progress returns the current race progress.
func (g *Game) Progress() components.RaceProgress {
	return g.progress
}

// Camera returns the current camera pose.
func (g *Game) Camera() camera.Pose {
	return g.pose
}

// Scene returns the renderable mirror of the race.
func (g *Game) Scene() *systems.Scene {
	return g.scene
}

// HUD returns the dashboard read-out for the current state.
func (g *Game) HUD() HUD {
	return NewHUD(g.state, g.progress)
}

// Laps returns the lap book of the current race.
func (g *Game) Laps() *telemetry.LapBook {
	return g.laps
}

// Finished reports whether every lap has been completed.
func (g *Game) Finished() bool {
	return g.progress.Finished()
}

// Tick returns the number of ticks simulated.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload releases resources.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
