package shapes

import (
	"math"
	"math/rand"
)

// Shape dimensions in world units.
const (
	SphereRadius     = 200.0
	HeartScale       = 15.0
	FlowerRadius     = 200.0
	FlowerPetals     = 5
	SaturnCoreRadius = 100.0
	SaturnCoreShare  = 0.4
	SaturnRingInner  = 180.0
	SaturnRingWidth  = 80.0
	SaturnRingTilt   = 0.5
	FireworksRadius  = 400.0
)

// Generator produces target buffers. Random archetypes draw from rng;
// Sphere and the Saturn core never touch it.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator drawing randomness from rng.
// A nil rng is replaced by one seeded with 1.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Generator{rng: rng}
}

// Generate returns exactly count points for the archetype.
func (g *Generator) Generate(a Archetype, count int) Buffer {
	buf := NewBuffer(count)
	g.Fill(a, buf)
	return buf
}

// Fill overwrites every point in buf with the archetype's layout.
func (g *Generator) Fill(a Archetype, buf Buffer) {
	count := buf.Len()
	switch a {
	case Sphere:
		fibonacciSphere(buf, 0, count, SphereRadius)
	case Heart:
		for i := 0; i < count; i++ {
			buf.Set(i, g.heartPoint())
		}
	case Flower:
		for i := 0; i < count; i++ {
			buf.Set(i, g.flowerPoint())
		}
	case Saturn:
		core := int(math.Ceil(float64(count) * SaturnCoreShare))
		if core > count {
			core = count
		}
		fibonacciSphereN(buf, 0, core, float64(count)*SaturnCoreShare, SaturnCoreRadius)
		for i := core; i < count; i++ {
			buf.Set(i, g.ringPoint())
		}
	case Fireworks:
		for i := 0; i < count; i++ {
			buf.Set(i, g.burstPoint())
		}
	default:
		fibonacciSphere(buf, 0, count, SphereRadius)
	}
}

// fibonacciSphere lays n points on a golden-angle spiral starting at index start.
func fibonacciSphere(buf Buffer, start, n int, radius float64) {
	fibonacciSphereN(buf, start, n, float64(n), radius)
}

// fibonacciSphereN places points i in [0,n) using total as the spiral length.
// Saturn passes a fractional total so the core matches i < 0.4*count exactly.
func fibonacciSphereN(buf Buffer, start, n int, total, radius float64) {
	if total <= 0 {
		return
	}
	spin := math.Sqrt(total * math.Pi)
	for i := 0; i < n; i++ {
		phi := math.Acos(-1 + 2*float64(i)/total)
		theta := spin * phi
		buf.Set(start+i, Vec3{
			X: float32(radius * math.Cos(theta) * math.Sin(phi)),
			Y: float32(radius * math.Sin(theta) * math.Sin(phi)),
			Z: float32(radius * math.Cos(phi)),
		})
	}
}

func (g *Generator) heartPoint() Vec3 {
	t := g.rng.Float64() * 2 * math.Pi
	s := math.Sin(t)
	x := 16 * s * s * s
	y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	z := (g.rng.Float64() - 0.5) * 5
	return Vec3{
		X: float32(x * HeartScale),
		Y: float32(y * HeartScale),
		Z: float32(z * HeartScale),
	}
}

func (g *Generator) flowerPoint() Vec3 {
	t := g.rng.Float64() * 2 * math.Pi
	r := FlowerRadius * math.Cos(FlowerPetals*t)
	return Vec3{
		X: float32(r * math.Cos(t)),
		Y: float32(r * math.Sin(t)),
		Z: float32((g.rng.Float64() - 0.5) * 40),
	}
}

func (g *Generator) ringPoint() Vec3 {
	t := g.rng.Float64() * 2 * math.Pi
	r := SaturnRingInner + g.rng.Float64()*SaturnRingWidth
	x := r * math.Cos(t)
	y := (g.rng.Float64() - 0.5) * 10
	z := r * math.Sin(t)

	// Tilt about the x axis.
	c, s := math.Cos(SaturnRingTilt), math.Sin(SaturnRingTilt)
	return Vec3{
		X: float32(x),
		Y: float32(y*c - z*s),
		Z: float32(y*s + z*c),
	}
}

// burstPoint samples uniform angles and a uniform radius. Density is
// therefore higher toward the centre, which is the intended look.
func (g *Generator) burstPoint() Vec3 {
	phi := g.rng.Float64() * 2 * math.Pi
	theta := g.rng.Float64() * math.Pi
	r := g.rng.Float64() * FireworksRadius
	return Vec3{
		X: float32(r * math.Cos(phi) * math.Sin(theta)),
		Y: float32(r * math.Sin(phi) * math.Sin(theta)),
		Z: float32(r * math.Cos(theta)),
	}
}
