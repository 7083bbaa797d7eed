// Package game ties the snake engine to a session: input or autopilot
// intents go in, the controller advances, the skin is rebuilt and the frame
// is drawn or traced.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/camera"
	"github.com/pthm-cable/gridsnake/chain"
	"github.com/pthm-cable/gridsnake/config"
	"github.com/pthm-cable/gridsnake/locomotion"
	"github.com/pthm-cable/gridsnake/renderer"
	"github.com/pthm-cable/gridsnake/skin"
	"github.com/pthm-cable/gridsnake/telemetry"
)

// DT is the fixed time step of headless runs, in seconds.
const DT = 1.0 / 60.0

// ColorBackground is the clear color of the viewer.
var ColorBackground = rl.Color{R: 24, G: 26, B: 30, A: 255}

// Options configures a game session.
type Options struct {
	Config     *config.Config // nil uses config.Cfg()
	Seed       int64          // autopilot seed
	LogStats   bool           // log window stats via slog
	OutputDir  string         // CSV output directory (empty = disabled)
	Headless   bool           // no window; the autopilot drives the snake
	TurnChance float64        // autopilot turn probability per cycle (<0 = use config)
	Logger     *slog.Logger
}

// Game holds one snake session.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	chain    *chain.Chain
	ctrl     *locomotion.Controller
	skin     *skin.Builder
	sections []skin.Section
	mesh     *skin.Mesh

	autopilot *Autopilot

	// Viewer state, nil when headless
	camera *camera.Camera
	snake  *renderer.SnakeRenderer
	grid   *renderer.GridRenderer
	hud    *renderer.HUD

	// Intents raised by the HUD while drawing, applied on the next update
	pending []locomotion.Intent

	// Telemetry
	collector      *telemetry.Collector
	perf           *telemetry.PerfCollector
	output         *telemetry.OutputManager
	logStats       bool
	simTime        float64
	lastCycleTime  float64
	lastHead       r3.Vec
	lastDegenerate int
}

// NewGameWithOptions creates a session with a freshly spawned chain.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ch, err := chain.New(chain.FromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("spawning chain: %w", err)
	}

	ctrlOpts := locomotion.OptionsFromConfig(cfg)
	ctrlOpts.Logger = logger

	turnChance := cfg.Autopilot.TurnChance
	if opts.TurnChance >= 0 {
		turnChance = opts.TurnChance
	}

	g := &Game{
		cfg:       cfg,
		logger:    logger,
		chain:     ch,
		ctrl:      locomotion.NewController(ch, ctrlOpts),
		skin:      skin.NewBuilder(cfg.Skin.HeadSpans),
		autopilot: NewAutopilot(opts.Seed, turnChance, cfg.Autopilot.SpeedChance),
		collector: telemetry.NewCollector(cfg.Telemetry.LogEveryCycles),
		perf:      telemetry.NewPerfCollector(120),
		logStats:  opts.LogStats,
		lastHead:  ch.Head().Pose.Position,
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if output != nil {
		if err := output.WriteConfig(cfg); err != nil {
			output.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.output = output
	}

	if !opts.Headless {
		c := cfg.Camera
		g.camera = camera.New(c.Distance, c.Height, c.Stiffness, c.Fovy)
		g.snake = renderer.NewSnakeRenderer()
		g.grid = renderer.NewGridRenderer(12)
		g.hud = renderer.NewHUD()
	}

	g.rebuildSkin()
	return g, nil
}

// Update advances the windowed session by one frame.
func (g *Game) Update() {
	g.perf.RecordFrame()
	dt := float64(rl.GetFrameTime())

	intents := append(g.pending, g.handleInput()...)
	g.pending = g.pending[:0]
	g.step(dt, intents)

	head := g.chain.Head().Pose
	g.camera.Follow(head.Position, head.Forward(), dt)
}

// UpdateHeadless advances the session by one fixed step, letting the
// autopilot choose intents at every cycle boundary.
func (g *Game) UpdateHeadless() {
	var intents []locomotion.Intent
	if g.ctrl.State() == locomotion.StateIdle {
		intents = g.autopilot.Next()
	}
	g.step(DT, intents)
}

// step applies intents, advances the controller and refreshes the skin.
func (g *Game) step(dt float64, intents []locomotion.Intent) {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseInput)
	for _, in := range intents {
		g.apply(in)
	}

	g.perf.StartPhase(telemetry.PhaseLocomotion)
	if !g.ctrl.Paused() {
		g.simTime += dt
	}
	completed := g.ctrl.Tick(dt)

	g.perf.StartPhase(telemetry.PhaseSkin)
	g.rebuildSkin()

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	if completed {
		g.onCycleEnd()
	}

	g.perf.EndTick()
}

// apply dispatches one intent to the controller.
func (g *Game) apply(in locomotion.Intent) {
	switch in.Kind {
	case locomotion.IntentTurnLeft, locomotion.IntentTurnRight:
		g.collector.RecordTurn(!g.ctrl.TurnPending())
	}
	if err := g.ctrl.Apply(in); err != nil {
		g.logger.Warn("intent rejected", "error", err)
	}
}

// rebuildSkin regenerates the mesh from the current poses.
func (g *Game) rebuildSkin() {
	g.sections = g.chain.Sections(g.sections[:0])
	if m, ok := g.skin.Build(g.sections); ok {
		g.mesh = m
	}
}

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColorBackground)

	rl.BeginMode3D(renderer.Camera3D(g.camera))
	g.grid.Draw(g.chain.Lattice(), g.chain.Head().Pose.Position)
	g.snake.Draw(g.mesh, g.chain.Attachments(), g.chain.EyeRadius())
	rl.EndMode3D()

	g.pending = append(g.pending, g.hud.Draw(renderer.HUDState{
		Cycle:    g.ctrl.Cycle(),
		Speed:    g.ctrl.Speed(),
		MinSpeed: g.cfg.Snake.MinSpeed,
		MaxSpeed: g.cfg.Snake.MaxSpeed,
		Paused:   g.ctrl.Paused(),
		State:    g.ctrl.State(),
		Grid:     g.chain.Lattice().Type.String(),
		Segments: g.chain.Len(),
		Vertices: g.mesh.VertexCount(),
	})...)

	rl.EndDrawing()
}

// Cycle returns the number of completed move-cycles.
func (g *Game) Cycle() int { return g.ctrl.Cycle() }

// Controller returns the locomotion controller.
func (g *Game) Controller() *locomotion.Controller { return g.ctrl }

// Chain returns the snake's chain.
func (g *Game) Chain() *chain.Chain { return g.chain }

// Mesh returns the most recently built skin.
func (g *Game) Mesh() *skin.Mesh { return g.mesh }

// Unload releases session resources.
func (g *Game) Unload() {
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			g.logger.Error("failed to close output", "error", err)
		}
		g.output = nil
	}
}
