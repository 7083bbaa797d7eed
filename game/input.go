package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsnake/locomotion"
)

// keyBindings maps pressed keys to controller intents.
var keyBindings = []struct {
	key    int32
	intent locomotion.Intent
}{
	{rl.KeyLeft, locomotion.Intent{Kind: locomotion.IntentTurnLeft}},
	{rl.KeyA, locomotion.Intent{Kind: locomotion.IntentTurnLeft}},
	{rl.KeyRight, locomotion.Intent{Kind: locomotion.IntentTurnRight}},
	{rl.KeyD, locomotion.Intent{Kind: locomotion.IntentTurnRight}},
	{rl.KeyUp, locomotion.Intent{Kind: locomotion.IntentSpeed, Delta: 1}},
	{rl.KeyW, locomotion.Intent{Kind: locomotion.IntentSpeed, Delta: 1}},
	{rl.KeyDown, locomotion.Intent{Kind: locomotion.IntentSpeed, Delta: -1}},
	{rl.KeyS, locomotion.Intent{Kind: locomotion.IntentSpeed, Delta: -1}},
	{rl.KeySpace, locomotion.Intent{Kind: locomotion.IntentToggleFreeze}},
}

// handleInput processes keyboard input and returns the intents it raised.
func (g *Game) handleInput() []locomotion.Intent {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// State dump
	if rl.IsKeyPressed(rl.KeyF3) {
		g.logChainState()
		g.logPerfStats()
	}

	var intents []locomotion.Intent
	for _, b := range keyBindings {
		if rl.IsKeyPressed(b.key) {
			intents = append(intents, b.intent)
		}
	}

	g.handleCameraInput()
	return intents
}

// handleCameraInput processes camera zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 - float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(1.25)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
