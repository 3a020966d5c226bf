// Package ui draws the race HUD panels on top of the 3D scene.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	ValueFontSize  int32
	HeaderFontSize int32
}

// DefaultTheme returns the neon race theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 12, G: 10, B: 28, A: 220},
		PanelBorder:    rl.Color{R: 255, G: 40, B: 200, A: 255},
		SectionHeader:  rl.Color{R: 0, G: 240, B: 255, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 36, B: 60, A: 255},
		BarFill:        rl.Color{R: 0, G: 240, B: 255, A: 255},
		BarFillHigh:    rl.Color{R: 255, G: 40, B: 200, A: 255},
		Padding:        10,
		LineHeight:     30,
		LabelWidth:     70,
		BarHeight:      10,
		FontSize:       16,
		ValueFontSize:  24,
		HeaderFontSize: 14,
	}
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.HeaderFontSize + 4
}

// DrawLabelValue draws a small label and a large value on the same line
// and returns the new Y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y+(r.Theme.ValueFontSize-r.Theme.FontSize)/2, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.ValueFontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a horizontal bar for a [0, 1] value and returns the new Y
// position. Values above 0.9 use the highlight colour.
func (r *Renderer) DrawBar(x, y int32, value float32, width int32) int32 {
	value = clamp01(value)

	rl.DrawRectangle(x, y, width, r.Theme.BarHeight, r.Theme.BarBg)
	fill := r.Theme.BarFill
	if value > 0.9 {
		fill = r.Theme.BarFillHigh
	}
	rl.DrawRectangle(x, y, int32(float32(width)*value), r.Theme.BarHeight, fill)

	return y + r.Theme.BarHeight + 6
}

// DrawRow draws a fixed-width text row and returns the new Y position.
func (r *Renderer) DrawRow(x, y int32, color rl.Color, format string, args ...any) int32 {
	rl.DrawText(fmt.Sprintf(format, args...), x, y, r.Theme.HeaderFontSize, color)
	return y + r.Theme.HeaderFontSize + 2
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
