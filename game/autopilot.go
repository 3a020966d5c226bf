package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/neonring/components"
	"github.com/pthm-cable/neonring/config"
	"github.com/pthm-cable/neonring/input"
	"github.com/pthm-cable/neonring/systems"
)

// seamClearance is how far past the start seam (rad) the car must be
// before the autopilot stops creeping.
const seamClearance = 0.15

// Autopilot drives the ring counter-clockwise seen from above, following a
// line parallel to the centreline.
//
// The grid faces the outer wall, so the car first K-turns at creep speed:
// forward and reverse legs both steer the same way, and the gear flips when
// the wall ahead is within GearRoom. Speed stays under MinLapSpeed until the
// car is clear of the start seam so the turn-around never counts as a lap.
type Autopilot struct {
	cfg     config.AutopilotConfig
	vehicle components.VehicleConfig
	track   components.Track

	reversing bool
	clear     bool
}

// NewAutopilot creates an autopilot for the given vehicle and track.
func NewAutopilot(cfg config.AutopilotConfig, vehicle components.VehicleConfig, track components.Track) *Autopilot {
	return &Autopilot{cfg: cfg, vehicle: vehicle, track: track}
}

// Reset forgets the turn-around state for a new race.
func (a *Autopilot) Reset() {
	a.reversing = false
	a.clear = false
}

// DesiredHeading is the heading that follows the racing line from s.
// Outside the line the heading tips inward, inside it tips outward.
func (a *Autopilot) DesiredHeading(s components.VehicleState) float64 {
	r := r2.Norm(r2.Vec{X: s.Position.X, Y: s.Position.Z})
	offset := r - a.track.CenterRadius() - a.cfg.LineOffset
	correct := math.Max(-a.cfg.MaxCorrect, math.Min(a.cfg.MaxCorrect, a.cfg.SteerGain*offset))
	return s.TrackAngle() + math.Pi/2 + correct
}

// Drive returns the controls for the next tick of length dt.
func (a *Autopilot) Drive(s components.VehicleState, dt float64) input.Snapshot {
	var in input.Snapshot

	headingErr := systems.NormalizeAngle(a.DesiredHeading(s) - s.Heading)
	switch {
	case headingErr > a.cfg.Deadband:
		in.Left = true
	case headingErr < -a.cfg.Deadband:
		in.Right = true
	}

	if !a.clear {
		angle := s.TrackAngle()
		a.clear = angle > -math.Pi+seamClearance && angle < -systems.LapCrossingThreshold
	}

	turning := math.Abs(headingErr) > a.cfg.AlignThreshold
	limit := a.vehicle.MaxSpeed
	if turning || !a.clear {
		limit = a.cfg.CreepSpeed
	}

	if turning {
		a.pickGear(s)
	} else {
		a.reversing = false
	}

	if a.reversing {
		// Braking while still rolling forward is fine
		in.Backward = s.Velocity > 0 ||
			s.Velocity-a.vehicle.Acceleration*systems.ReverseAccelFraction*dt >= -limit
		return in
	}

	switch {
	case s.Velocity+a.vehicle.Acceleration*dt <= limit:
		in.Forward = true
	case s.Velocity-a.vehicle.Braking*dt > limit:
		in.Backward = true
	}
	return in
}

// pickGear flips between forward and reverse when the wall in the
// direction of travel gets close.
func (a *Autopilot) pickGear(s components.VehicleState) {
	flat := r2.Vec{X: s.Position.X, Y: s.Position.Z}
	r := r2.Norm(flat)
	if r == 0 {
		return
	}

	facing := r2.Vec{X: math.Sin(s.Heading), Y: math.Cos(s.Heading)}
	outward := r2.Dot(facing, flat) / r
	if a.reversing {
		outward = -outward
	}

	room := r - a.track.MinRadius()
	if outward > 0 {
		room = a.track.MaxRadius() - r
	}
	if room < a.cfg.GearRoom {
		a.reversing = !a.reversing
	}
}
