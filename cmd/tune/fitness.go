package main

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/interaction"
	"github.com/pthm-cable/nebula/shapes"
	"github.com/pthm-cable/nebula/systems"
)

// Targets is what a tuned configuration should feel like.
type Targets struct {
	SettleSec   float64 // time for a morph to come within SettleEps of the target
	SettleEps   float64 // mean distance counted as settled
	IdleOffset  float64 // mean displacement held by the idle field at the origin
	ParticleCap int     // particles simulated per run
	MaxTicks    int     // give up on a morph after this many ticks
}

// Result holds the measurements behind one fitness value.
type Result struct {
	SettleSec  float64
	IdleOffset float64
	Fitness    float64
}

// far is a pointer position no particle can reach, so the field is off.
var far = interaction.State{Point: shapes.Vec3{X: 1e6}}

// Evaluator runs short headless simulations for a parameter vector.
type Evaluator struct {
	params  *ParamVector
	base    *config.Config
	targets Targets
	seeds   []int64
}

// NewEvaluator creates an evaluator over the given seeds.
func NewEvaluator(params *ParamVector, base *config.Config, targets Targets, seeds []int64) *Evaluator {
	return &Evaluator{params: params, base: base, targets: targets, seeds: seeds}
}

// Evaluate returns the squared relative error from both targets, averaged
// over seeds and over every shape change away from the sphere.
func (e *Evaluator) Evaluate(raw []float64) Result {
	cfg := *e.base
	e.params.ApplyToConfig(&cfg, raw)

	var settle, idle float64
	runs := 0
	for _, seed := range e.seeds {
		for _, to := range shapes.All() {
			if to == shapes.Sphere {
				continue
			}
			s, o := e.run(&cfg, seed, to)
			settle += s
			idle += o
			runs++
		}
	}
	settle /= float64(runs)
	idle /= float64(runs)

	ds := (settle - e.targets.SettleSec) / e.targets.SettleSec
	do := (idle - e.targets.IdleOffset) / e.targets.IdleOffset
	return Result{SettleSec: settle, IdleOffset: idle, Fitness: ds*ds + do*do}
}

// run morphs from the sphere to shape with the field off and times it, then
// parks an idle pointer at the origin and measures the displacement it holds.
func (e *Evaluator) run(cfg *config.Config, seed int64, shape shapes.Archetype) (settleSec, idleOffset float64) {
	p := systems.Params{
		Count:            e.targets.ParticleCap,
		LerpSpeed:        float32(cfg.Particles.LerpSpeed),
		RotationSpeed:    float32(cfg.Particles.RotationSpeed),
		ForceRadius:      float32(cfg.Force.Radius),
		AttractFactor:    float32(cfg.Force.Attract),
		RepelFactor:      float32(cfg.Force.Repel),
		HueDistanceScale: float32(cfg.Color.HueDistanceScale),
		HueTimeScale:     float32(cfg.Color.HueTimeScale),
		Saturation:       float32(cfg.Color.Saturation),
		Lightness:        float32(cfg.Color.Lightness),
	}
	sim := systems.NewSimulation(p, shapes.NewGenerator(rand.New(rand.NewSource(seed))), shapes.Sphere)
	defer sim.Close()
	dt := cfg.Derived.DT32

	sim.SetShape(shape)
	ticks := e.targets.MaxTicks
	for i := 0; i < e.targets.MaxTicks; i++ {
		sim.Tick(dt, far)
		if float64(sim.Spread()) < e.targets.SettleEps {
			ticks = i + 1
			break
		}
	}
	settleSec = float64(ticks) * float64(dt)

	// Settle under the idle field; the offset converges geometrically.
	idle := interaction.State{}
	for i := 0; i < e.targets.MaxTicks; i++ {
		sim.Tick(dt, idle)
	}
	idleOffset = float64(sim.Spread())
	if math.IsNaN(idleOffset) {
		idleOffset = math.Inf(1)
	}
	return settleSec, idleOffset
}
