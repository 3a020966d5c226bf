package game

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/neonring/components"
	"github.com/pthm-cable/neonring/config"
	"github.com/pthm-cable/neonring/input"
)

const dt60 = 1.0 / 60

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Config == nil {
		opts.Config = config.Defaults()
	}
	opts.Headless = true
	g, err := NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func assertOnGrid(t *testing.T, g *Game) {
	t.Helper()

	s := g.Vehicle()
	if s.Position != (r3.Vec{X: 0, Y: 0, Z: -28}) {
		t.Errorf("position = %+v, want (0, 0, -28)", s.Position)
	}
	if s.Heading != math.Pi || s.Velocity != 0 {
		t.Errorf("heading/velocity = %v/%v, want π/0", s.Heading, s.Velocity)
	}

	p := g.Progress()
	if p.LapsCompleted != 0 || p.Active || p.Elapsed != 0 {
		t.Errorf("progress = %+v, want a fresh race", p)
	}
	if p.PreviousAngle != math.Atan2(0, -28) {
		t.Errorf("previous angle = %v, want %v", p.PreviousAngle, math.Atan2(0, -28))
	}

	if len(g.Laps().Laps()) != 0 {
		t.Errorf("expected an empty lap book, got %d laps", len(g.Laps().Laps()))
	}
}

func TestNewGame_StartsOnGrid(t *testing.T) {
	g := newTestGame(t, Options{})
	assertOnGrid(t, g)
	if pos := g.Camera().Position; pos != (r3.Vec{X: 0, Y: 6, Z: -12}) {
		t.Errorf("camera = %+v, want (0, 6, -12)", pos)
	}

	hud := g.HUD()
	if hud.SpeedText() != "0 km/h" || hud.LapText() != "0 / 3" || hud.TimeText() != "0.0 s" {
		t.Errorf("HUD = %q %q %q", hud.SpeedText(), hud.LapText(), hud.TimeText())
	}
	if car := g.Scene().Car(); car.Position != g.Vehicle().Position {
		t.Errorf("scene car %+v not on the grid", car.Position)
	}
}

func TestReset_RestoresInitialState(t *testing.T) {
	g := newTestGame(t, Options{})

	g.Input().Press(input.Forward, false)
	g.Input().Press(input.Left, false)
	for i := 0; i < 120; i++ {
		g.Step(dt60)
	}
	if g.Vehicle().Velocity == 0 || !g.Progress().Active {
		t.Fatal("expected the car to be moving with the clock running")
	}

	pose := g.Camera()
	g.Reset()
	assertOnGrid(t, g)

	// The camera is not snapped; it trails the car back to the grid
	if g.Camera() != pose {
		t.Errorf("camera moved on reset: %+v -> %+v", pose, g.Camera())
	}
	if rig := g.Scene().Rig(); rig.Position != pose.Position {
		t.Errorf("scene rig %+v not at the kept camera pose", rig.Position)
	}
	g.Step(dt60)
	want := g.chase.Follow(pose, g.Vehicle())
	if g.Camera() != want {
		t.Errorf("camera after reset tick = %+v, want %+v", g.Camera(), want)
	}
}

func TestReset_ViaInputAppliesOnNextTick(t *testing.T) {
	g := newTestGame(t, Options{})

	g.Input().Press(input.Forward, false)
	for i := 0; i < 60; i++ {
		g.Step(dt60)
	}
	g.Input().Release(input.Forward)
	g.Input().Press(input.Reset, false)

	g.Step(dt60)

	// Parked with no pedal: the reset tick leaves the car on the grid
	s := g.Vehicle()
	if s.Position != (r3.Vec{X: 0, Y: 0, Z: -28}) || s.Velocity != 0 || s.Heading != math.Pi {
		t.Errorf("vehicle after reset tick = %+v", s)
	}
	if p := g.Progress(); p.Active || p.Elapsed != 0 || p.LapsCompleted != 0 {
		t.Errorf("progress after reset tick = %+v", p)
	}

	// The latch fires once
	g.Input().Press(input.Forward, false)
	g.Step(dt60)
	if g.Vehicle().Velocity == 0 {
		t.Error("expected the next tick to drive normally")
	}
}

func TestStep_SkipsInvalidDT(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Input().Press(input.Forward, false)

	for _, dt := range []float64{0, -0.5, math.NaN()} {
		g.Step(dt)
	}
	if g.Tick() != 0 {
		t.Errorf("tick = %d, want 0", g.Tick())
	}
	if g.Vehicle().Velocity != 0 || g.Progress().Active {
		t.Error("skipped frames must not change the race")
	}
}

func TestStep_ClampsLongFrames(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Input().Press(input.Forward, false)

	g.Step(1.0)

	// max_dt is 0.1 s
	if v := g.Vehicle().Velocity; math.Abs(v-0.9) > 1e-12 {
		t.Errorf("velocity = %v, want 0.9", v)
	}
	if e := g.Progress().Elapsed; math.Abs(e-0.1) > 1e-12 {
		t.Errorf("elapsed = %v, want 0.1", e)
	}
}

func TestAutopilot_FinishesRace(t *testing.T) {
	g := newTestGame(t, Options{Autopilot: true})
	cfg := config.Defaults()
	track := trackFromConfig(cfg)
	maxSpeed := cfg.Derived.MaxSpeed

	for i := 0; i < 6000 && !g.Finished(); i++ {
		g.UpdateHeadless()

		s := g.Vehicle()
		if s.Velocity < -0.4*maxSpeed-1e-9 || s.Velocity > maxSpeed+1e-9 {
			t.Fatalf("tick %d: velocity %v out of bounds", g.Tick(), s.Velocity)
		}
		d := math.Hypot(s.Position.X, s.Position.Z)
		if d < track.MinRadius()-1e-9 || d > track.MaxRadius()+1e-9 {
			t.Fatalf("tick %d: distance %v outside the annulus", g.Tick(), d)
		}
	}

	if !g.Finished() {
		t.Fatalf("autopilot did not finish: %+v", g.Progress())
	}
	p := g.Progress()
	if p.LapsCompleted != 3 || p.Active {
		t.Errorf("final progress = %+v", p)
	}

	laps := g.Laps().Laps()
	if len(laps) != 3 {
		t.Fatalf("lap book has %d laps, want 3", len(laps))
	}
	// A spurious lap at the start would show up as a near-zero split
	for _, lap := range laps {
		if lap.Split < 7 {
			t.Errorf("lap %d split %.2fs is too short for a full revolution", lap.Lap, lap.Split)
		}
	}
	if sum := g.Laps().Summary().Total; math.Abs(sum-p.Elapsed) > 1e-9 {
		t.Errorf("splits sum to %v, race clock reads %v", sum, p.Elapsed)
	}

	// The clock stays stopped after the finish
	for i := 0; i < 120; i++ {
		g.UpdateHeadless()
	}
	if got := g.Progress(); got.Elapsed != p.Elapsed || got.LapsCompleted != 3 {
		t.Errorf("race changed after the finish: %+v", got)
	}
}

func TestNarrowTrack_StaysInBand(t *testing.T) {
	cfg := config.Defaults()
	cfg.Track.InnerRadius = 18
	cfg.Track.OuterRadius = 23.5
	g := newTestGame(t, Options{Config: cfg})
	track := trackFromConfig(cfg)

	g.Input().Press(input.Forward, false)
	g.Input().Press(input.Left, false)
	for i := 0; i < 600; i++ {
		g.Step(dt60)
		s := g.Vehicle()
		d := math.Hypot(s.Position.X, s.Position.Z)
		if d < track.MinRadius()-1e-9 || d > track.MaxRadius()+1e-9 {
			t.Fatalf("tick %d: distance %v outside [%v, %v]", g.Tick(), d, track.MinRadius(), track.MaxRadius())
		}
	}
}

func TestOutputDir_WritesTraceAndLaps(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g, err := NewGame(Options{Config: config.Defaults(), Headless: true, Autopilot: true, OutputDir: dir})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	for i := 0; i < 6000 && !g.Finished(); i++ {
		g.UpdateHeadless()
	}
	ticks := int(g.Tick())
	g.Unload()

	trace := readLines(t, filepath.Join(dir, "trace.csv"))
	if len(trace) != ticks+1 {
		t.Errorf("trace.csv has %d lines, want %d", len(trace), ticks+1)
	}
	laps := readLines(t, filepath.Join(dir, "laps.csv"))
	if len(laps) != 4 {
		t.Errorf("laps.csv has %d lines, want header + 3", len(laps))
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestUnsetOutputDir_WritesNothing(t *testing.T) {
	g := newTestGame(t, Options{})
	if g.output != nil {
		t.Error("expected no output manager without an output dir")
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestScene_FollowsVehicle(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Input().Press(input.Forward, false)
	for i := 0; i < 30; i++ {
		g.Step(dt60)
	}

	car := g.Scene().Car()
	if car.Position != g.Vehicle().Position || car.Yaw != g.Vehicle().Heading {
		t.Errorf("scene car %+v lags vehicle %+v", car, g.Vehicle())
	}
	rig := g.Scene().Rig()
	if rig.Position != g.Camera().Position || rig.Target != g.Camera().Target {
		t.Errorf("scene rig %+v lags camera %+v", rig, g.Camera())
	}
	if n := g.Scene().Count(components.ShapeCar); n != 1 {
		t.Errorf("expected one car, got %d", n)
	}
}
