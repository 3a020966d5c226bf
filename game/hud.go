package game

import (
	"fmt"

	"github.com/pthm-cable/neonring/components"
)

// HUD is the dashboard read-out for one frame.
type HUD struct {
	SpeedKMH  float64
	Laps      int
	TotalLaps int
	Elapsed   float64
}

// NewHUD derives the read-out from the race state.
func NewHUD(s components.VehicleState, p components.RaceProgress) HUD {
	return HUD{
		SpeedKMH:  s.SpeedKMH(),
		Laps:      p.LapsCompleted,
		TotalLaps: p.TotalLaps,
		Elapsed:   p.Elapsed,
	}
}

// SpeedText formats the speedometer, e.g. "54 km/h".
func (h HUD) SpeedText() string {
	return fmt.Sprintf("%.0f km/h", h.SpeedKMH)
}

// LapText formats the lap counter, e.g. "1 / 3".
func (h HUD) LapText() string {
	return fmt.Sprintf("%d / %d", h.Laps, h.TotalLaps)
}

// TimeText formats the race clock, e.g. "12.3 s".
func (h HUD) TimeText() string {
	return fmt.Sprintf("%.1f s", h.Elapsed)
}
