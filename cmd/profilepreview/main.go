// Head profile preview tool - interactive tuning of the snake's head, eyes
// and tail with sliders.
//
// Usage: go run ./cmd/profilepreview
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gridsnake/camera"
	"github.com/pthm-cable/gridsnake/chain"
	"github.com/pthm-cable/gridsnake/config"
	"github.com/pthm-cable/gridsnake/locomotion"
	"github.com/pthm-cable/gridsnake/renderer"
	"github.com/pthm-cable/gridsnake/skin"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	panelWidth   = 340
)

// slider binds one tunable value to its range.
type slider struct {
	label    string
	value    *float64
	min, max float64
}

// session is a live snake built from the tuned profile.
type session struct {
	chain    *chain.Chain
	ctrl     *locomotion.Controller
	skin     *skin.Builder
	sections []skin.Section
	mesh     *skin.Mesh
}

func newSession(cfg *config.Config) (*session, error) {
	ch, err := chain.New(chain.FromConfig(cfg))
	if err != nil {
		return nil, err
	}
	s := &session{
		chain: ch,
		ctrl:  locomotion.NewController(ch, locomotion.OptionsFromConfig(cfg)),
		skin:  skin.NewBuilder(cfg.Skin.HeadSpans),
	}
	s.rebuild()
	return s, nil
}

func (s *session) rebuild() {
	s.sections = s.chain.Sections(s.sections[:0])
	if m, ok := s.skin.Build(s.sections); ok {
		s.mesh = m
	}
}

func main() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Head Profile Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	// Initialize with default values from config
	cfg := config.Default()
	defaults := *cfg

	sim, err := newSession(cfg)
	if err != nil {
		slog.Error("failed to build snake", "error", err)
		os.Exit(1)
	}

	cam := camera.New(cfg.Camera.Distance*0.6, cfg.Camera.Height*0.5, cfg.Camera.Stiffness, cfg.Camera.Fovy)
	snake := renderer.NewSnakeRenderer()
	grid := renderer.NewGridRenderer(8)

	sliders := []slider{
		{"Body radius", &cfg.Snake.BodyRadius, 0.05, 0.45},
		{"Tip offset", &cfg.Head.Tip.Offset, 0.3, 1.5},
		{"Head middle offset", &cfg.Head.Middle.Offset, 0, 0.8},
		{"Head width", &cfg.Head.Middle.RadiusX, 0.1, 0.6},
		{"Head height", &cfg.Head.Middle.RadiusY, 0.1, 0.6},
		{"Eye forward", &cfg.Head.Eyes.Forward, -0.3, 0.5},
		{"Eye spread", &cfg.Head.Eyes.Right, 0, 0.5},
		{"Eye height", &cfg.Head.Eyes.Up, 0, 0.4},
		{"Eye radius", &cfg.Head.Eyes.Radius, 0.01, 0.15},
		{"Tail length", &cfg.Head.Tail.Offset, 0.2, 2.0},
	}

	animating := true
	needsRebuild := false

	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime())

		// Rebuild if needed
		if needsRebuild {
			if next, err := newSession(cfg); err != nil {
				slog.Warn("profile rejected", "error", err)
			} else {
				sim = next
			}
			needsRebuild = false
		}

		// Animation
		if animating {
			sim.ctrl.Tick(dt)
		}
		sim.rebuild()
		head := sim.chain.Head().Pose
		cam.Follow(head.Position, head.Forward(), dt)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.BeginMode3D(renderer.Camera3D(cam))
		grid.Draw(sim.chain.Lattice(), head.Position)
		snake.Draw(sim.mesh, sim.chain.Attachments(), sim.chain.EyeRadius())
		rl.EndMode3D()

		// Draw stats
		rl.DrawText(fmt.Sprintf("Cycle: %d  Vertices: %d  Triangles: %d",
			sim.ctrl.Cycle(), sim.mesh.VertexCount(), sim.mesh.TriangleCount()),
			15, windowHeight-30, 16, rl.DarkGray)

		// Control panel
		panelX := float32(windowWidth - panelWidth)
		panelY := float32(10)
		rl.DrawRectangle(int32(panelX)-10, 0, panelWidth+10, windowHeight, rl.Fade(rl.RayWhite, 0.9))

		rl.DrawText("Head Profile", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf("%.2f", s.min), fmt.Sprintf("%.2f", s.max),
				float32(*s.value), float32(s.min), float32(s.max),
			)
			rl.DrawText(fmt.Sprintf("%.2f", *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != float32(*s.value) {
				*s.value = float64(v)
				needsRebuild = true
			}
			panelY += 30
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 30}, "Turn Left") {
			sim.ctrl.Turn(locomotion.TurnLeft)
		}
		if gui.Button(rl.Rectangle{X: panelX + 220, Y: panelY, Width: 100, Height: 30}, "Turn Right") {
			sim.ctrl.Turn(locomotion.TurnRight)
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 30}, "Reset All") {
			*cfg = defaults
			needsRebuild = true
		}

		// Output YAML
		out := profileYAML(cfg)
		yamlY := int32(15)
		rl.DrawText("YAML Config:", 15, yamlY, 16, rl.DarkGray)
		yamlY += 22
		for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
			rl.DrawText(line, 15, yamlY, 12, rl.Gray)
			yamlY += 13
		}

		// Copy to clipboard on C key
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(out)
		}

		rl.EndDrawing()
	}
}

// profileYAML renders the tuned values as a config overlay.
func profileYAML(cfg *config.Config) string {
	overlay := struct {
		Snake struct {
			BodyRadius float64 `yaml:"body_radius"`
		} `yaml:"snake"`
		Head config.HeadConfig `yaml:"head"`
	}{Head: cfg.Head}
	overlay.Snake.BodyRadius = cfg.Snake.BodyRadius

	data, err := yaml.Marshal(overlay)
	if err != nil {
		return fmt.Sprintf("# %v", err)
	}
	return string(data)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
