package components

// RaceProgress tracks laps and race time.
type RaceProgress struct {
	LapsCompleted int
	TotalLaps     int
	Active        bool    // clock running
	Elapsed       float64 // seconds
	PreviousAngle float64 // last observed track angle, crossing history only
}

// StartProgress returns a zeroed race for a vehicle parked at state.
func StartProgress(state VehicleState, totalLaps int) RaceProgress {
	return RaceProgress{
		TotalLaps:     totalLaps,
		PreviousAngle: state.TrackAngle(),
	}
}

// Finished reports whether every lap has been completed.
func (p RaceProgress) Finished() bool {
	return p.LapsCompleted >= p.TotalLaps
}
