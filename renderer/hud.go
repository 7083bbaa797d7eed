package renderer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsnake/locomotion"
)

// HUDState is what the HUD displays each frame.
type HUDState struct {
	Cycle    int
	Speed    float64
	MinSpeed float64
	MaxSpeed float64
	Paused   bool
	State    locomotion.State
	Grid     string
	Segments int
	Vertices int
}

// HUD draws the status panel and returns the intents raised by its widgets.
type HUD struct {
	x, y  float32
	width float32
}

// NewHUD creates a HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{x: 10, y: 10, width: 220}
}

// Draw renders the panel. Must be called outside BeginMode3D.
func (h *HUD) Draw(s HUDState) []locomotion.Intent {
	var intents []locomotion.Intent

	x, y := h.x, h.y
	rl.DrawRectangle(int32(x-5), int32(y-5), int32(h.width+10), 190, rl.Fade(rl.Black, 0.5))

	rl.DrawText(fmt.Sprintf("Cycle %d  (%s)", s.Cycle, s.State), int32(x), int32(y), 16, rl.RayWhite)
	y += 20
	rl.DrawText(fmt.Sprintf("Grid: %s  Links: %d", s.Grid, s.Segments), int32(x), int32(y), 14, rl.LightGray)
	y += 18
	rl.DrawText(fmt.Sprintf("Vertices: %d  FPS: %d", s.Vertices, rl.GetFPS()), int32(x), int32(y), 14, rl.LightGray)
	y += 26

	// Speed slider
	rl.DrawText(fmt.Sprintf("Speed %.0f", s.Speed), int32(x), int32(y), 14, rl.Gray)
	y += 18
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: h.width - 40, Height: 20},
		fmt.Sprintf("%.0f", s.MinSpeed), fmt.Sprintf("%.0f", s.MaxSpeed),
		float32(s.Speed), float32(s.MinSpeed), float32(s.MaxSpeed),
	)
	if delta := float64(int(newSpeed+0.5)) - s.Speed; delta != 0 {
		intents = append(intents, locomotion.Intent{Kind: locomotion.IntentSpeed, Delta: delta})
	}
	y += 32

	// Buttons
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 100, Height: 30}, toggleText(s.Paused, "Resume", "Freeze")) {
		intents = append(intents, locomotion.Intent{Kind: locomotion.IntentToggleFreeze})
	}
	y += 40

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 48, Height: 30}, "<") {
		intents = append(intents, locomotion.Intent{Kind: locomotion.IntentTurnLeft})
	}
	if gui.Button(rl.Rectangle{X: x + 52, Y: y, Width: 48, Height: 30}, ">") {
		intents = append(intents, locomotion.Intent{Kind: locomotion.IntentTurnRight})
	}

	return intents
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
