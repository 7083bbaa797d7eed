package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsnake/config"
	"github.com/pthm-cable/gridsnake/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by the autopilot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Autopilot RNG seed (0 = time-based)")
	maxCycles := flag.Int("max-cycles", 0, "Stop after N move-cycles (0 = unlimited)")
	turnChance := flag.Float64("turn-chance", -1, "Autopilot turn probability per cycle (<0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Config:     cfg,
		Seed:       rngSeed,
		LogStats:   *logStats,
		OutputDir:  *outputDir,
		Headless:   *headless,
		TurnChance: *turnChance,
		Logger:     logger,
	}

	if *headless {
		// Headless mode - no raylib needed
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"grid", cfg.Grid.Type,
			"segments", cfg.Snake.InitialLength+1,
			"max_cycles", *maxCycles,
		)

		for {
			g.UpdateHeadless()

			if *maxCycles > 0 && g.Cycle() >= *maxCycles {
				slog.Info("max cycles reached", "cycle", g.Cycle())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Grid Snake")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxCycles > 0 && g.Cycle() >= *maxCycles {
			break
		}
	}
}
