// Package telemetry records race traces, lap splits and tick timing.
package telemetry

import (
	"github.com/pthm-cable/neonring/components"
)

// TickRecord is one row of the per-tick trace.
type TickRecord struct {
	Tick     int32   `csv:"tick"`
	DT       float64 `csv:"dt"`
	Elapsed  float64 `csv:"elapsed"`
	X        float64 `csv:"x"`
	Z        float64 `csv:"z"`
	Heading  float64 `csv:"heading"`
	Velocity float64 `csv:"velocity"`
	SpeedKMH float64 `csv:"speed_kmh"`
	Angle    float64 `csv:"track_angle"`
	Laps     int     `csv:"laps"`
	Active   bool    `csv:"active"`
}

// NewTickRecord flattens the race state after a tick.
func NewTickRecord(tick int32, dt float64, s components.VehicleState, p components.RaceProgress) TickRecord {
	return TickRecord{
		Tick:     tick,
		DT:       dt,
		Elapsed:  p.Elapsed,
		X:        s.Position.X,
		Z:        s.Position.Z,
		Heading:  s.Heading,
		Velocity: s.Velocity,
		SpeedKMH: s.SpeedKMH(),
		Angle:    s.TrackAngle(),
		Laps:     p.LapsCompleted,
		Active:   p.Active,
	}
}
