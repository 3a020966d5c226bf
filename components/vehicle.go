package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ReverseSpeedFraction caps reverse speed as a fraction of MaxSpeed.
const ReverseSpeedFraction = 0.4

// VehicleConfig holds the vehicle's handling constants. Set once at startup.
type VehicleConfig struct {
	MaxSpeed     float64 // units/s
	Acceleration float64 // units/s²
	Braking      float64 // units/s²
	TurnSpeed    float64 // rad/s at MaxSpeed
}

// VehicleState is the vehicle pose and longitudinal speed.
// Heading 0 faces +z; Y never changes.
type VehicleState struct {
	Position r3.Vec
	Heading  float64
	Velocity float64 // forward positive
}

// StartVehicle returns the vehicle parked on the grid, facing heading π.
func StartVehicle(track Track) VehicleState {
	return VehicleState{
		Position: track.StartPosition(),
		Heading:  math.Pi,
	}
}

// Direction is the unit vector the vehicle faces.
func (s VehicleState) Direction() r3.Vec {
	return r3.Vec{X: math.Sin(s.Heading), Y: 0, Z: math.Cos(s.Heading)}
}

// TrackAngle is the vehicle's angular position about the track centre, in (-π, π].
func (s VehicleState) TrackAngle() float64 {
	return math.Atan2(s.Position.X, s.Position.Z)
}

// SpeedKMH is the forward speed shown on the dashboard; reversing reads zero.
func (s VehicleState) SpeedKMH() float64 {
	return math.Max(0, s.Velocity) * 3.6
}
