// Package game wires the simulation, hand tracking, audio and rendering
// into the interactive application.
package game

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/nebula/audio"
	"github.com/pthm-cable/nebula/camera"
	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/interaction"
	"github.com/pthm-cable/nebula/renderer"
	"github.com/pthm-cable/nebula/scene"
	"github.com/pthm-cable/nebula/shapes"
	"github.com/pthm-cable/nebula/systems"
	"github.com/pthm-cable/nebula/telemetry"
	"github.com/pthm-cable/nebula/tracking"
	"github.com/pthm-cable/nebula/ui"
)

// Game holds the complete application state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	sim     *systems.Simulation
	scene   *scene.Scene
	session *interaction.Session
	mailbox *tracking.Mailbox

	// Tracking goroutine lifecycle
	ctx        context.Context
	cancel     context.CancelFunc
	group      *errgroup.Group
	replayPath string
	noCamera   bool

	engine *audio.Engine // nil when audio is off

	// Rendering (nil when headless)
	camera     *camera.Camera
	particles  *renderer.ParticleRenderer
	background *renderer.BackgroundRenderer
	hud        *ui.HUD

	screenWidth  float32
	screenHeight float32

	output    *telemetry.OutputManager
	sessionID string
	headless  bool
}

// NewGameWithOptions creates a game. Headless games start immediately;
// windowed games wait on the start screen.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Particles.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		cfg:          cfg,
		rng:          rng,
		session:      &interaction.Session{},
		mailbox:      tracking.NewMailbox(),
		replayPath:   opts.ReplayPath,
		noCamera:     opts.NoCamera,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
		sessionID:    uuid.NewString(),
		headless:     opts.Headless,
	}

	gen := shapes.NewGenerator(rand.New(rand.NewSource(rng.Int63())))
	g.sim = systems.NewSimulation(simParams(cfg), gen, cfg.Derived.InitialShape)

	output, err := telemetry.NewOutputManager(opts.OutputDir, g.sessionID)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		output = nil
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	g.output = output

	var feedback audio.Feedback = audio.Silent{}
	if cfg.Audio.Enabled && !opts.Headless {
		g.engine = audio.NewEngine(audioParams(cfg), rand.New(rand.NewSource(rng.Int63())))
		feedback = g.engine
	}

	g.scene = scene.New(scene.Options{
		Sim:             g.sim,
		Mailbox:         g.mailbox,
		Session:         g.session,
		Feedback:        feedback,
		Perf:            telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		Collector:       telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32),
		Output:          output,
		DT:              cfg.Derived.DT32,
		PerfLogInterval: cfg.Telemetry.PerfLogInterval,
		LogStats:        opts.LogStats,
	})

	slog.Info("game created",
		"session", g.sessionID,
		"seed", seed,
		"particles", g.sim.Count(),
		"shape", g.sim.Shape().String(),
		"headless", opts.Headless,
	)

	if opts.Headless {
		g.Start()
		return g
	}

	g.camera = camera.New(g.screenWidth, g.screenHeight)
	g.camera.Distance = float32(cfg.Screen.CameraDistance)
	g.camera.FOVY = float32(cfg.Screen.FOV)
	g.camera.Near = float32(cfg.Screen.Near)
	g.camera.Far = float32(cfg.Screen.Far)
	g.camera.PointerScale = float32(cfg.Screen.PointerScale)
	g.particles = renderer.NewParticleRenderer(float32(cfg.Screen.PointSize))
	g.background = renderer.NewBackgroundRenderer(int32(g.screenWidth), int32(g.screenHeight), 40, 20, 90)
	g.hud = ui.NewHUD()
	return g
}

// Start leaves the start screen: audio opens, the camera probe begins and
// the simulation starts ticking. Later calls do nothing.
func (g *Game) Start() {
	if g.session.Running() {
		return
	}
	if g.engine != nil {
		if err := g.engine.Start(); err != nil {
			slog.Warn("audio unavailable", "error", err)
		}
	}
	g.scene.Start()
	g.startTracking()
	if g.hud != nil {
		g.hud.GuideOpen = true
	}
	slog.Info("session started", "session", g.sessionID)
}

// Update runs one frame of input handling and simulation.
func (g *Game) Update() {
	g.handleInput()
	g.scene.Step(g.pointer())
}

// UpdateHeadless runs one frame with no window. The pointer rests at the
// origin, unpressed, so only tracking input moves the field.
func (g *Game) UpdateHeadless() {
	g.scene.Step(interaction.Pointer{})
}

// Select morphs to a shape as if picked from the selector.
func (g *Game) Select(a shapes.Archetype) bool {
	return g.scene.Select(a)
}

// Unload stops tracking and audio and closes output files.
func (g *Game) Unload() {
	g.stopTracking()
	g.sim.Close()
	if g.engine != nil {
		if err := g.engine.Close(); err != nil {
			slog.Error("failed to close audio", "error", err)
		}
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("game unloaded", "session", g.sessionID, "ticks", g.sim.Ticks(), "changes", g.scene.Changes())
}

// Tick returns the number of simulated frames.
func (g *Game) Tick() uint64 {
	return g.sim.Ticks()
}
