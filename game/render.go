package game

import (
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/neonring/components"
	"github.com/pthm-cable/neonring/input"
	"github.com/pthm-cable/neonring/telemetry"
	"github.com/pthm-cable/neonring/ui"
)

// Neon palette
var (
	colorBackground = rl.NewColor(8, 6, 20, 255)
	colorAsphalt    = rl.NewColor(28, 26, 44, 255)
	colorInfield    = rl.NewColor(14, 12, 30, 255)
	colorInnerWall  = rl.NewColor(0, 240, 255, 255)
	colorOuterWall  = rl.NewColor(255, 40, 200, 255)
	colorStartLine  = rl.NewColor(240, 240, 240, 255)
	colorCar        = rl.NewColor(255, 214, 0, 255)
	colorCarNose    = rl.NewColor(255, 120, 0, 255)
	colorCheckpoint = rl.NewColor(120, 255, 120, 255)
	colorPylon      = rl.NewColor(180, 80, 255, 255)
)

const hudMargin = 16

// Update polls the keyboard and advances one frame of wall-clock time.
func (g *Game) Update() {
	g.handleInput()
	g.Step(float64(rl.GetFrameTime()))
}

// Draw renders the scene and the HUD.
func (g *Game) Draw() {
	g.perf.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	rl.BeginMode3D(g.camera3D())
	g.drawTrack()
	g.scene.Each(drawShape)
	rl.EndMode3D()

	g.drawHUD()

	rl.EndDrawing()
}

// camera3D converts the mirrored rig to a raylib camera.
func (g *Game) camera3D() rl.Camera3D {
	rig := g.scene.Rig()
	return rl.NewCamera3D(
		toRL(rig.Position),
		toRL(rig.Target),
		rl.NewVector3(0, 1, 0),
		float32(g.cfg.Camera.Fovy),
		rl.CameraPerspective,
	)
}

// drawTrack draws the road surface, both walls and the start line.
func (g *Game) drawTrack() {
	inner := float32(g.track.InnerRadius)
	outer := float32(g.track.OuterRadius)
	origin := rl.NewVector3(0, 0, 0)
	flat := rl.NewVector3(1, 0, 0)

	rl.DrawCylinder(rl.NewVector3(0, -0.1, 0), outer, outer, 0.1, 96, colorAsphalt)
	rl.DrawCylinder(rl.NewVector3(0, -0.05, 0), inner, inner, 0.06, 96, colorInfield)

	// Walls sit where the vehicle is stopped, not at the road edge
	rl.DrawCircle3D(origin, float32(g.track.MinRadius()), flat, 90, colorInnerWall)
	rl.DrawCircle3D(origin, float32(g.track.MaxRadius()), flat, 90, colorOuterWall)
	rl.DrawCircle3D(origin, inner, flat, 90, colorInnerWall)
	rl.DrawCircle3D(origin, outer, flat, 90, colorOuterWall)

	mid := float32(g.track.CenterRadius())
	rl.DrawCube(rl.NewVector3(0, 0.01, -mid), 0.6, 0.02, outer-inner, colorStartLine)
}

// drawShape draws one scene entity.
func drawShape(t *components.Transform, shape *components.Shape) {
	switch shape.Kind {
	case components.ShapeCar:
		rl.PushMatrix()
		rl.Translatef(float32(t.Position.X), float32(t.Position.Y), float32(t.Position.Z))
		rl.Rotatef(float32(t.Yaw*180/math.Pi), 0, 1, 0)
		w := shape.Radius
		rl.DrawCube(rl.NewVector3(0, shape.Height/2, 0), w, shape.Height, 2*w, colorCar)
		rl.DrawCube(rl.NewVector3(0, shape.Height/2, w), w*0.6, shape.Height*0.6, w*0.4, colorCarNose)
		rl.PopMatrix()

	case components.ShapeCheckpoint, components.ShapePylon:
		color := colorCheckpoint
		if shape.Kind == components.ShapePylon {
			color = colorPylon
		}
		base := rl.NewVector3(float32(t.Position.X), float32(t.Position.Y)-shape.Height/2, float32(t.Position.Z))
		rl.DrawCylinder(base, shape.Radius, shape.Radius, shape.Height, 12, color)
	}
}

// drawHUD draws the read-out panel, the perf panel and the reset button.
func (g *Game) drawHUD() {
	hud := g.HUD()
	sw := g.cfg.Derived.ScreenW32
	sh := g.cfg.Derived.ScreenH32

	g.uiHUD.Draw(ui.HUDData{
		Speed:         hud.SpeedText(),
		Laps:          hud.LapText(),
		Time:          hud.TimeText(),
		SpeedFraction: float32(g.state.Velocity / g.vehicle.MaxSpeed),
		Finished:      g.progress.Finished(),
		ScreenWidth:   int32(sw),
		ScreenHeight:  int32(sh),
	})

	if g.showPerf {
		stats := g.perf.Stats()
		data := ui.PerfPanelData{AvgTick: stats.AvgTick, MaxTick: stats.MaxTick, FPS: stats.FPS}
		for _, phase := range telemetry.Phases() {
			data.Rows = append(data.Rows, ui.PerfRow{
				Name: phase.String(),
				Avg:  stats.PhaseAvg[phase],
				Pct:  stats.PhasePct[phase],
			})
		}
		g.uiPerf.Draw(data)
	}

	if gui.Button(rl.Rectangle{X: sw - 120 - hudMargin, Y: hudMargin, Width: 120, Height: 30}, "Reset") {
		g.input.Press(input.Reset, false)
	}
	gui.Label(rl.Rectangle{X: sw - 240 - hudMargin, Y: sh - 30 - hudMargin, Width: 240, Height: 30}, g.driverLabel())

	g.uiHUD.DrawControls(int32(sh),
		"W/S or Up/Down: throttle/brake | A/D or Left/Right: steer | R: reset | F3: perf | F11: fullscreen")
}

// driverLabel names who is driving.
func (g *Game) driverLabel() string {
	if g.pilot != nil {
		return "Driver: autopilot"
	}
	return "Driver: keyboard"
}

func toRL(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
