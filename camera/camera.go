// Package camera provides the chase camera that trails the vehicle.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/neonring/components"
)

// up is the vertical axis the chase offset rotates about.
var up = r3.Vec{Y: 1}

// Pose is the camera position and the point it looks at.
type Pose struct {
	Position r3.Vec
	Target   r3.Vec
}

// Rig converts the pose to the scene component.
func (p Pose) Rig() components.Rig {
	return components.Rig{Position: p.Position, Target: p.Target}
}

// Chase trails a vehicle from behind and above.
type Chase struct {
	// Distance is the horizontal offset behind the vehicle
	Distance float64

	// Height is the vertical offset above the vehicle
	Height float64

	// Smoothing is the fraction of the remaining gap closed each frame.
	// It is deliberately not scaled by dt.
	Smoothing float64

	// LookLift raises the look-at point above the vehicle
	LookLift float64
}

// New creates a chase camera with the given offsets.
func New(distance, height, smoothing, lookLift float64) Chase {
	return Chase{
		Distance:  distance,
		Height:    height,
		Smoothing: smoothing,
		LookLift:  lookLift,
	}
}

// InitialPose is where the camera sits before the first frame.
func (c Chase) InitialPose(state components.VehicleState) Pose {
	return Pose{
		Position: r3.Vec{X: 0, Y: c.Height, Z: -c.Distance},
		Target:   c.target(state),
	}
}

// Desired is the resting camera position for a vehicle pose: the offset
// (0, Height, Distance) rotated about +y by heading+π, so it sits behind.
func (c Chase) Desired(state components.VehicleState) r3.Vec {
	offset := r3.Vec{X: 0, Y: c.Height, Z: c.Distance}
	offset = r3.NewRotation(state.Heading+math.Pi, up).Rotate(offset)
	return r3.Add(state.Position, offset)
}

// Follow moves the camera a fixed fraction toward Desired and aims it just
// above the vehicle.
func (c Chase) Follow(pose Pose, state components.VehicleState) Pose {
	desired := c.Desired(state)
	gap := r3.Sub(desired, pose.Position)
	return Pose{
		Position: r3.Add(pose.Position, r3.Scale(c.Smoothing, gap)),
		Target:   c.target(state),
	}
}

func (c Chase) target(state components.VehicleState) r3.Vec {
	return r3.Add(state.Position, r3.Vec{Y: c.LookLift})
}
