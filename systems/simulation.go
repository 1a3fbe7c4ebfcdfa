// Package systems implements the particle morph simulation.
package systems

import (
	"math"

	"github.com/pthm-cable/nebula/interaction"
	"github.com/pthm-cable/nebula/shapes"
)

// Params holds the simulation constants.
type Params struct {
	Count         int
	LerpSpeed     float32 // fraction of the remaining distance covered per tick
	RotationSpeed float32 // radians per tick about y; x turns at half this

	ForceRadius   float32 // particles closer than this feel the field
	AttractFactor float32 // applied while the interaction is active
	RepelFactor   float32 // applied otherwise; negative pushes away

	HueDistanceScale float32 // hue shift per world unit of distance
	HueTimeScale     float32 // hue shift per second
	Saturation       float32
	Lightness        float32

	ParallelThreshold int // below this count the field step runs inline
	Workers           int // 0 = GOMAXPROCS
}

// DefaultParams returns the stock constants.
func DefaultParams() Params {
	return Params{
		Count:             15000,
		LerpSpeed:         0.05,
		RotationSpeed:     0.002,
		ForceRadius:       300,
		AttractFactor:     0.05,
		RepelFactor:       -0.01,
		HueDistanceScale:  0.001,
		HueTimeScale:      0.1,
		Saturation:        0.8,
		Lightness:         0.5,
		ParallelThreshold: 4096,
	}
}

// Rotation is the global cloud orientation in radians.
type Rotation struct {
	X, Y float32
}

// Apply rotates p from cloud space into world space: about y first, then x,
// the same order the renderer uses.
func (r Rotation) Apply(p shapes.Vec3) shapes.Vec3 {
	sy, cy := math.Sincos(float64(r.Y))
	sx, cx := math.Sincos(float64(r.X))
	x := float64(p.X)*cy + float64(p.Z)*sy
	z := -float64(p.X)*sy + float64(p.Z)*cy
	y := float64(p.Y)
	return shapes.Vec3{
		X: float32(x),
		Y: float32(y*cx - z*sx),
		Z: float32(y*sx + z*cx),
	}
}

// Simulation owns the particle cloud and its current target. All methods
// must be called from the render loop.
type Simulation struct {
	params Params
	gen    *shapes.Generator

	cloud    *Cloud
	target   shapes.Buffer
	shape    shapes.Archetype
	rotation Rotation
	time     float64
	ticks    uint64

	// Per-tick inputs read by the field workers.
	field    interaction.State
	hueShift float32

	pool *fieldPool
}

// NewSimulation creates a cloud resting on the initial shape.
func NewSimulation(p Params, gen *shapes.Generator, initial shapes.Archetype) *Simulation {
	if p.Count < 0 {
		p.Count = 0
	}
	target := gen.Generate(initial, p.Count)
	s := &Simulation{
		params: p,
		gen:    gen,
		cloud:  NewCloud(target),
		target: target,
		shape:  initial,
	}
	if p.ParallelThreshold > 0 && p.Count >= p.ParallelThreshold {
		s.pool = newFieldPool(p.Workers)
		s.pool.start(s.applyField)
	}
	return s
}

// SetShape swaps the target buffer. The cloud keeps its size and order, so
// particles in flight simply redirect. Returns false if a is already current.
func (s *Simulation) SetShape(a shapes.Archetype) bool {
	if a == s.shape {
		return false
	}
	s.target = s.gen.Generate(a, s.params.Count)
	s.shape = a
	return true
}

// Tick advances one frame: morph toward the target, apply the interaction
// field, recolour, and rotate. dt is the frame time in seconds and only
// drives the colour cycle.
func (s *Simulation) Tick(dt float32, in interaction.State) {
	Morph(s.cloud.Positions, s.target, s.params.LerpSpeed)

	s.field = in
	s.hueShift = frac(float32(math.Mod(s.time*float64(s.params.HueTimeScale), 1)))
	if s.pool != nil {
		s.pool.run(s.cloud.Len())
	} else {
		s.applyField(0, s.cloud.Len())
	}

	s.rotation.Y += s.params.RotationSpeed
	s.rotation.X += s.params.RotationSpeed * 0.5
	s.time += float64(dt)
	s.ticks++
}

// applyField runs the force and colour steps for particles in [start, end).
func (s *Simulation) applyField(start, end int) {
	pos := s.cloud.Positions
	col := s.cloud.Colors
	pt := s.field.Point
	radius := s.params.ForceRadius
	force := s.params.RepelFactor
	if s.field.Active {
		force = s.params.AttractFactor
	}
	sat, light := s.params.Saturation, s.params.Lightness
	hueScale, shift := s.params.HueDistanceScale, s.hueShift

	for i := start; i < end; i++ {
		j := i * 3
		dx := pt.X - pos[j]
		dy := pt.Y - pos[j+1]
		dz := pt.Z - pos[j+2]
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))

		if dist < radius {
			pos[j] += dx * force
			pos[j+1] += dy * force
			pos[j+2] += dz * force
		}

		col[j], col[j+1], col[j+2] = hslToRGB(frac(dist*hueScale+shift), sat, light)
	}
}

// Close stops the field workers.
func (s *Simulation) Close() {
	if s.pool != nil {
		s.pool.stop()
	}
}

// Cloud returns the particle buffers. Callers must not resize them.
func (s *Simulation) Cloud() *Cloud { return s.cloud }

// Target returns the buffer currently being approached.
func (s *Simulation) Target() shapes.Buffer { return s.target }

// Shape returns the current archetype.
func (s *Simulation) Shape() shapes.Archetype { return s.shape }

// Rotation returns the global cloud orientation.
func (s *Simulation) Rotation() Rotation { return s.rotation }

// Time returns elapsed simulated seconds.
func (s *Simulation) Time() float64 { return s.time }

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Count returns the particle count.
func (s *Simulation) Count() int { return s.cloud.Len() }

// Spread returns the mean distance between particles and their targets.
func (s *Simulation) Spread() float32 {
	n := s.cloud.Len()
	if n == 0 {
		return 0
	}
	pos, tgt := s.cloud.Positions, s.target
	var sum float64
	for j := 0; j < n*3; j += 3 {
		dx := float64(tgt[j] - pos[j])
		dy := float64(tgt[j+1] - pos[j+1])
		dz := float64(tgt[j+2] - pos[j+2])
		sum += math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return float32(sum / float64(n))
}
