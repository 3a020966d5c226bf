package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/neonring/components"
)

// Scene decoration counts.
const (
	NumCheckpoints   = 6
	NumPylons        = 16
	PylonRingOffset  = 6.0 // pylons stand this far outside the outer edge
	CheckpointHeight = 6.0
	PylonHeight      = 8.0
)

// Scene mirrors the simulated race into renderable ECS entities. The race
// state stays in plain values; the scene only receives copies each tick.
type Scene struct {
	world *ecs.World

	carMapper    *ecs.Map3[components.Transform, components.Shape, components.Vehicle]
	markerMapper *ecs.Map2[components.Transform, components.Shape]
	rigMapper    *ecs.Map1[components.Rig]

	transformMap *ecs.Map[components.Transform]
	vehicleMap   *ecs.Map[components.Vehicle]
	rigMap       *ecs.Map[components.Rig]

	drawFilter *ecs.Filter2[components.Transform, components.Shape]

	car ecs.Entity
	rig ecs.Entity
}

// NewScene builds the car, camera rig and static track markers.
func NewScene(track components.Track) *Scene {
	world := ecs.NewWorld()

	s := &Scene{
		world:        world,
		carMapper:    ecs.NewMap3[components.Transform, components.Shape, components.Vehicle](world),
		markerMapper: ecs.NewMap2[components.Transform, components.Shape](world),
		rigMapper:    ecs.NewMap1[components.Rig](world),
		transformMap: ecs.NewMap[components.Transform](world),
		vehicleMap:   ecs.NewMap[components.Vehicle](world),
		rigMap:       ecs.NewMap[components.Rig](world),
		drawFilter:   ecs.NewFilter2[components.Transform, components.Shape](world),
	}

	start := components.StartVehicle(track)
	s.car = s.carMapper.NewEntity(
		&components.Transform{Position: start.Position, Yaw: start.Heading},
		&components.Shape{Kind: components.ShapeCar, Radius: 1.8, Height: 0.6},
		&components.Vehicle{},
	)
	s.rig = s.rigMapper.NewEntity(&components.Rig{})

	mid := track.CenterRadius()
	for i := 0; i < NumCheckpoints; i++ {
		angle := float64(i) / NumCheckpoints * 2 * math.Pi
		s.markerMapper.NewEntity(
			&components.Transform{Position: onRing(mid, angle, CheckpointHeight/2), Yaw: angle},
			&components.Shape{Kind: components.ShapeCheckpoint, Radius: 0.3, Height: CheckpointHeight},
		)
	}

	pylonRadius := track.OuterRadius + PylonRingOffset
	for i := 0; i < NumPylons; i++ {
		angle := float64(i) / NumPylons * 2 * math.Pi
		s.markerMapper.NewEntity(
			&components.Transform{Position: onRing(pylonRadius, angle, PylonHeight/2)},
			&components.Shape{Kind: components.ShapePylon, Radius: 0.5, Height: PylonHeight},
		)
	}

	return s
}

// onRing returns the point at track angle a on a circle of radius r.
func onRing(r, a, y float64) r3.Vec {
	return r3.Vec{X: math.Sin(a) * r, Y: y, Z: math.Cos(a) * r}
}

// Sync copies this tick's vehicle pose and camera rig into the scene.
func (s *Scene) Sync(state components.VehicleState, rig components.Rig) {
	t := s.transformMap.Get(s.car)
	t.Position = state.Position
	t.Yaw = state.Heading

	v := s.vehicleMap.Get(s.car)
	v.Speed = state.Velocity

	*s.rigMap.Get(s.rig) = rig
}

// Car returns the mirrored vehicle transform.
func (s *Scene) Car() components.Transform {
	return *s.transformMap.Get(s.car)
}

// CarSpeed returns the mirrored vehicle speed.
func (s *Scene) CarSpeed() float64 {
	return s.vehicleMap.Get(s.car).Speed
}

// Rig returns the mirrored camera rig.
func (s *Scene) Rig() components.Rig {
	return *s.rigMap.Get(s.rig)
}

// Each calls fn for every drawable entity.
func (s *Scene) Each(fn func(t *components.Transform, shape *components.Shape)) {
	query := s.drawFilter.Query()
	for query.Next() {
		t, shape := query.Get()
		fn(t, shape)
	}
}

// Count returns the number of drawable entities of the given kind.
func (s *Scene) Count(kind components.ShapeKind) int {
	n := 0
	s.Each(func(_ *components.Transform, shape *components.Shape) {
		if shape.Kind == kind {
			n++
		}
	})
	return n
}
