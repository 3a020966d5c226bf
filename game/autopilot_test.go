package game

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/neonring/components"
	"github.com/pthm-cable/neonring/config"
)

func testAutopilot() *Autopilot {
	cfg := config.Defaults()
	return NewAutopilot(cfg.Autopilot, vehicleConfig(cfg), trackFromConfig(cfg))
}

// onTrack places a vehicle at radius r and track angle a, heading h.
func onTrack(r, a, h, v float64) components.VehicleState {
	return components.VehicleState{
		Position: r3.Vec{X: math.Sin(a) * r, Z: math.Cos(a) * r},
		Heading:  h,
		Velocity: v,
	}
}

func TestAutopilot_DesiredHeading(t *testing.T) {
	ap := testAutopilot()
	const a = 0.7

	onLine := ap.DesiredHeading(onTrack(25, a, 0, 0))
	if math.Abs(onLine-(a+math.Pi/2)) > 1e-9 {
		t.Errorf("on the centreline: got %v, want tangent %v", onLine, a+math.Pi/2)
	}

	outside := ap.DesiredHeading(onTrack(27, a, 0, 0))
	if outside <= onLine {
		t.Errorf("outside the line should tip inward (larger heading): %v <= %v", outside, onLine)
	}

	inside := ap.DesiredHeading(onTrack(23, a, 0, 0))
	if inside >= onLine {
		t.Errorf("inside the line should tip outward (smaller heading): %v >= %v", inside, onLine)
	}

	wall := ap.DesiredHeading(onTrack(30.8, a, 0, 0))
	if math.Abs(wall-(onLine+0.5)) > 1e-9 {
		t.Errorf("correction should cap at max_correct: got %v, want %v", wall-onLine, 0.5)
	}
}

func TestAutopilot_StartTurnsLeftUnderThrottle(t *testing.T) {
	ap := testAutopilot()
	start := components.StartVehicle(components.Track{InnerRadius: 18, OuterRadius: 32})

	in := ap.Drive(start, 1.0/60)
	if !in.Forward || !in.Left {
		t.Errorf("expected forward+left from the grid, got %+v", in)
	}
	if in.Backward || in.Right {
		t.Errorf("unexpected controls from the grid: %+v", in)
	}
}

func TestAutopilot_ReversesAtTheWall(t *testing.T) {
	ap := testAutopilot()
	// Facing straight out, 0.3 from the outer wall
	s := onTrack(30.5, math.Pi, math.Pi, 0)

	in := ap.Drive(s, 1.0/60)
	if !in.Backward || in.Forward {
		t.Errorf("expected reverse near the wall, got %+v", in)
	}
	if !in.Left {
		t.Errorf("expected to keep steering left while reversing, got %+v", in)
	}
}

func TestAutopilot_CreepsUntilPastTheSeam(t *testing.T) {
	ap := testAutopilot()
	a := math.Pi - 0.5
	s := onTrack(25, a, a+math.Pi/2, 0.9)

	in := ap.Drive(s, 1.0/60)
	if in.Forward {
		t.Errorf("expected no throttle above creep speed before the seam, got %+v", in)
	}
	if in.Left || in.Right {
		t.Errorf("aligned on the line should not steer, got %+v", in)
	}
}

func TestAutopilot_FullThrottleOncePastTheSeam(t *testing.T) {
	ap := testAutopilot()
	a := -math.Pi + 0.5
	s := onTrack(25, a, a+math.Pi/2, 10)

	in := ap.Drive(s, 1.0/60)
	if !in.Forward {
		t.Errorf("expected full throttle past the seam, got %+v", in)
	}

	// Clearing the seam is remembered anywhere on the lap
	b := math.Pi - 0.5
	if in := ap.Drive(onTrack(25, b, b+math.Pi/2, 10), 1.0/60); !in.Forward {
		t.Errorf("expected full throttle after clearing, got %+v", in)
	}

	ap.Reset()
	if in := ap.Drive(onTrack(25, b, b+math.Pi/2, 10), 1.0/60); in.Forward {
		t.Errorf("expected creep again after Reset, got %+v", in)
	}
}
