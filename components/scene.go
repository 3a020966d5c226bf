package components

import "gonum.org/v1/gonum/spatial/r3"

// Transform places a scene entity in the world. Yaw rotates about +y.
type Transform struct {
	Position r3.Vec
	Yaw      float64
}

// ShapeKind selects how the renderer draws an entity.
type ShapeKind uint8

const (
	ShapeCar ShapeKind = iota
	ShapeCheckpoint
	ShapePylon
)

// Shape holds the draw extents of an entity.
type Shape struct {
	Kind   ShapeKind
	Radius float32
	Height float32
}

// Vehicle marks the entity mirroring the simulated car.
type Vehicle struct {
	Speed float64 // signed, units/s
}

// Rig holds the camera transform mirrored from the chase camera.
type Rig struct {
	Position r3.Vec
	Target   r3.Vec
}
