package ui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PerfRow is one phase of the tick.
type PerfRow struct {
	Name string
	Avg  time.Duration
	Pct  float64
}

// PerfPanelData holds tick timing for display.
type PerfPanelData struct {
	Rows    []PerfRow // pipeline order
	AvgTick time.Duration
	MaxTick time.Duration
	FPS     float64
}

// PerfPanel renders the per-phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	r := p.renderer
	t := r.Theme
	row := t.HeaderFontSize + 2
	height := int32(len(data.Rows)+3)*row + 2*t.Padding
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + t.Padding
	y := p.y + t.Padding
	y = r.DrawSectionHeader(x, y, "Tick Performance")
	y = r.DrawRow(x, y, rl.Yellow, "tick %s (max %s)  fps %.0f",
		data.AvgTick.Round(time.Microsecond), data.MaxTick.Round(time.Microsecond), data.FPS)

	for _, row := range data.Rows {
		color := t.LabelColor
		if row.Pct > 40 {
			color = rl.Red
		} else if row.Pct > 20 {
			color = rl.Orange
		}
		y = r.DrawRow(x, y, color, "%-10s %8s %5.1f%%", row.Name, row.Avg.Round(time.Microsecond), row.Pct)
	}
}
