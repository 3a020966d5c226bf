package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the race HUD.
type HUDData struct {
	Speed         string
	Laps          string
	Time          string
	SpeedFraction float32 // speed over top speed, for the bar
	Finished      bool
	ScreenWidth   int32
	ScreenHeight  int32
}

// HUD renders the race read-outs.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    240,
	}
}

// Draw renders the read-out panel in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	t := r.Theme
	height := 3*t.LineHeight + t.BarHeight + 3*t.Padding + t.HeaderFontSize
	r.DrawPanel(t.Padding, t.Padding, h.width, height)

	x := 2 * t.Padding
	y := 2 * t.Padding
	y = r.DrawSectionHeader(x, y, "NEON RING")
	y = r.DrawLabelValue(x, y, "Speed", data.Speed)
	y = r.DrawBar(x, y, data.SpeedFraction, h.width-2*t.Padding)
	y = r.DrawLabelValue(x, y, "Lap", data.Laps)
	r.DrawLabelValue(x, y, "Time", data.Time)

	if data.Finished {
		const msg = "FINISHED"
		size := 3 * t.ValueFontSize
		w := rl.MeasureText(msg, size)
		rl.DrawText(msg, data.ScreenWidth/2-w/2, data.ScreenHeight/3, size, t.BarFillHigh)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, h.renderer.Theme.Padding, screenHeight-25, 14, rl.Gray)
}
