package systems

import (
	"math"

	"github.com/pthm-cable/neonring/components"
)

// Lap detection thresholds.
const (
	LapCrossingThreshold = math.Pi / 2 // angle magnitude either side of the ±π seam
	MinLapSpeed          = 1.0         // units/s needed for a crossing to count
)

// UpdateProgress advances the race bookkeeping after the vehicle moved.
// throttle reports whether forward was held this tick; the first throttle
// of an unfinished race starts the clock.
//
// A lap is counted only when the track angle jumps from above +π/2 to below
// -π/2 while moving forward faster than MinLapSpeed. Crossing the seam the
// other way is never counted, so reversing over the line neither adds nor
// removes a lap.
func UpdateProgress(p components.RaceProgress, s components.VehicleState, throttle bool, dt float64) components.RaceProgress {
	if throttle && !p.Active && !p.Finished() {
		p.Active = true
	}

	angle := s.TrackAngle()
	if p.PreviousAngle > LapCrossingThreshold && angle < -LapCrossingThreshold && s.Velocity > MinLapSpeed {
		p.LapsCompleted = min(p.LapsCompleted+1, p.TotalLaps)
		if p.Finished() {
			p.Active = false
		}
	}
	p.PreviousAngle = angle

	if p.Active {
		p.Elapsed += dt
	}
	return p
}
