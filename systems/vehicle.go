// Package systems advances the race state one tick at a time.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/neonring/components"
	"github.com/pthm-cable/neonring/input"
)

// Longitudinal tuning shared by every vehicle.
const (
	CoastDrag            = 6.0 // units/s² with no pedal held
	ReverseAccelFraction = 0.6 // reverse thrust as a fraction of Acceleration
)

// degenerateRadius is the distance from the centre below which the
// constraint has no outward direction and leaves the vehicle in place.
const degenerateRadius = 1e-9

// Advance moves the vehicle forward by dt seconds under the given controls
// and resolves the track walls. dt must be positive.
func Advance(s components.VehicleState, cfg components.VehicleConfig, track components.Track, in input.Snapshot, dt float64) components.VehicleState {
	v := s.Velocity

	if in.Forward {
		v += cfg.Acceleration * dt
	} else if !in.Backward {
		// Coasting: drag never pushes through zero
		v -= sign(v) * math.Min(math.Abs(v), CoastDrag*dt)
	}

	if in.Backward {
		if v > 0 {
			v -= cfg.Braking * dt
		} else {
			v -= cfg.Acceleration * ReverseAccelFraction * dt
		}
	}

	v = clamp(v, -cfg.MaxSpeed*components.ReverseSpeedFraction, cfg.MaxSpeed)

	// Steering authority grows with speed; a parked car cannot turn
	turn := cfg.TurnSpeed * clamp(math.Abs(v)/cfg.MaxSpeed, 0, 1) * dt
	heading := s.Heading
	if in.Left {
		heading += turn
	}
	if in.Right {
		heading -= turn
	}

	next := components.VehicleState{
		Position: s.Position,
		Heading:  heading,
		Velocity: v,
	}
	next.Position = r3.Add(next.Position, r3.Scale(v*dt, next.Direction()))

	return ConstrainToTrack(next, track)
}

// ConstrainToTrack projects a vehicle that left the annulus back onto the
// nearest wall circle and bleeds its speed. Heading is never changed.
// At most one wall applies per call, the outer wall first.
func ConstrainToTrack(s components.VehicleState, track components.Track) components.VehicleState {
	flat := r2.Vec{X: s.Position.X, Y: s.Position.Z}
	d := r2.Norm(flat)
	if d < degenerateRadius {
		return s
	}

	var radius, damping float64
	switch {
	case d > track.MaxRadius():
		radius, damping = track.MaxRadius(), components.OuterWallDamping
	case d < track.MinRadius():
		radius, damping = track.MinRadius(), components.InnerWallDamping
	default:
		return s
	}

	flat = r2.Scale(radius, r2.Unit(flat))
	s.Position.X = flat.X
	s.Position.Z = flat.Y
	s.Velocity *= damping
	return s
}
