package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/neonring/components"
)

func TestNewSceneBuildsMarkers(t *testing.T) {
	scene := NewScene(ringTrack())

	tests := []struct {
		kind components.ShapeKind
		want int
	}{
		{components.ShapeCar, 1},
		{components.ShapeCheckpoint, NumCheckpoints},
		{components.ShapePylon, NumPylons},
	}
	for _, tt := range tests {
		if got := scene.Count(tt.kind); got != tt.want {
			t.Errorf("Count(%d) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestSceneMarkerPlacement(t *testing.T) {
	track := ringTrack()
	scene := NewScene(track)

	scene.Each(func(tf *components.Transform, shape *components.Shape) {
		d := math.Hypot(tf.Position.X, tf.Position.Z)
		switch shape.Kind {
		case components.ShapeCheckpoint:
			if math.Abs(d-track.CenterRadius()) > 1e-9 {
				t.Errorf("checkpoint at radius %v, want %v", d, track.CenterRadius())
			}
		case components.ShapePylon:
			if math.Abs(d-(track.OuterRadius+PylonRingOffset)) > 1e-9 {
				t.Errorf("pylon at radius %v, want %v", d, track.OuterRadius+PylonRingOffset)
			}
		}
	})
}

func TestSceneStartsWithCarOnGrid(t *testing.T) {
	track := ringTrack()
	scene := NewScene(track)

	car := scene.Car()
	if car.Position != track.StartPosition() {
		t.Errorf("car at %v, want %v", car.Position, track.StartPosition())
	}
	if car.Yaw != math.Pi {
		t.Errorf("car yaw = %v, want π", car.Yaw)
	}
}

func TestSceneSyncMirrorsState(t *testing.T) {
	scene := NewScene(ringTrack())

	state := components.VehicleState{
		Position: r3.Vec{X: 12, Y: 0, Z: -20},
		Heading:  2.5,
		Velocity: 11,
	}
	rig := components.Rig{
		Position: r3.Vec{X: 1, Y: 6, Z: 2},
		Target:   r3.Vec{X: 12, Y: 1.5, Z: -20},
	}
	scene.Sync(state, rig)

	car := scene.Car()
	if car.Position != state.Position || car.Yaw != state.Heading {
		t.Errorf("car transform = %+v, want pose of %+v", car, state)
	}
	if scene.CarSpeed() != 11 {
		t.Errorf("car speed = %v, want 11", scene.CarSpeed())
	}
	if scene.Rig() != rig {
		t.Errorf("rig = %+v, want %+v", scene.Rig(), rig)
	}

	// Markers are untouched by Sync
	if got := scene.Count(components.ShapeCheckpoint); got != NumCheckpoints {
		t.Errorf("checkpoints = %d after sync", got)
	}
}
