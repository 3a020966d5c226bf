// Package components defines the race state types and the ECS components of the scene.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Wall margins and the speed kept after touching each wall.
const (
	InnerWallMargin  = 1.4
	OuterWallMargin  = 1.2
	InnerWallDamping = 0.6
	OuterWallDamping = 0.4
)

// Track is the drivable annulus centred on the world origin.
type Track struct {
	InnerRadius float64
	OuterRadius float64
}

// MinRadius is the closest the vehicle may get to the centre.
func (t Track) MinRadius() float64 {
	return t.InnerRadius + InnerWallMargin
}

// MaxRadius is the furthest the vehicle may get from the centre.
func (t Track) MaxRadius() float64 {
	return t.OuterRadius - OuterWallMargin
}

// CenterRadius is the radius of the centreline.
func (t Track) CenterRadius() float64 {
	return (t.InnerRadius + t.OuterRadius) / 2
}

// StartPosition is the start/finish grid slot, on the -z axis.
func (t Track) StartPosition() r3.Vec {
	return r3.Vec{X: 0, Y: 0, Z: -t.OuterRadius + 4}
}
