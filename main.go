package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics or audio")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config or time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	replay := flag.String("replay", "", "Replay recorded landmarks from CSV instead of the webcam")
	noCamera := flag.Bool("no-camera", false, "Skip the webcam and use the mouse only")

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

	rngSeed := *seed
	if rngSeed == 0 && cfg.Particles.Seed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:       rngSeed,
		OutputDir:  *outputDir,
		LogStats:   *logStats,
		Headless:   *headless,
		ReplayPath: *replay,
		NoCamera:   *noCamera,
	}

	if *headless {
		// Headless mode - no window. Tracking comes from --replay, else the webcam unless --no-camera
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		slog.Info("starting headless session",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"replay", *replay,
		)

		// Headless runs at the configured frame rate so replayed
		// landmarks and ticks stay in step.
		frame := time.NewTicker(time.Duration(float64(time.Second) * float64(cfg.Derived.DT32)))
		defer frame.Stop()
		for range frame.C {
			g.UpdateHeadless()

			if *maxTicks > 0 && g.Tick() >= uint64(*maxTicks) {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Nebula Matter")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && g.Tick() >= uint64(*maxTicks) {
			break
		}
	}
}
