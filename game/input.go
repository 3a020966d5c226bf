package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/neonring/input"
)

// keyBindings maps each held control to its keys.
var keyBindings = []struct {
	control input.Control
	keys    []int32
}{
	{input.Forward, []int32{rl.KeyW, rl.KeyUp}},
	{input.Backward, []int32{rl.KeyS, rl.KeyDown}},
	{input.Left, []int32{rl.KeyA, rl.KeyLeft}},
	{input.Right, []int32{rl.KeyD, rl.KeyRight}},
}

// handleInput copies the keyboard into the input state.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
		g.uiPerf.SetPosition(int32(rl.GetScreenWidth())-290, 60)
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}

	for _, b := range keyBindings {
		if anyKeyDown(b.keys) {
			g.input.Press(b.control, false)
		} else {
			g.input.Release(b.control)
		}
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.input.Press(input.Reset, false)
	} else if rl.IsKeyPressedRepeat(rl.KeyR) {
		g.input.Press(input.Reset, true)
	}
}

func anyKeyDown(keys []int32) bool {
	for _, k := range keys {
		if rl.IsKeyDown(k) {
			return true
		}
	}
	return false
}
