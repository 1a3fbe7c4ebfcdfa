package audio

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/harmonica"
)

// controlBlock is the number of samples between parameter updates.
const controlBlock = 256

// drone is a sine oscillator through a low-pass filter. The cutoff follows
// its target on a critically damped spring so intensity jumps never click.
type drone struct {
	sampleRate float64
	freq       float64
	q          float64
	phase      float64
	filter     biquad

	spring            harmonica.Spring
	cutoff, cutoffVel float64
	targetCutoff      float64
	blockPos          int
}

func newDrone(p Params) *drone {
	sr := float64(p.SampleRate)
	d := &drone{
		sampleRate:   sr,
		freq:         p.DroneFrequency,
		q:            p.DroneQ,
		spring:       controlSpring(p),
		cutoff:       p.CutoffBase,
		targetCutoff: p.CutoffBase,
	}
	d.filter.setLowPass(sr, d.cutoff, d.q)
	return d
}

func controlSpring(p Params) harmonica.Spring {
	return harmonica.NewSpring(harmonica.FPS(int(p.SampleRate)/controlBlock), p.SpringFrequency, 1.0)
}

func (d *drone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if d.blockPos == 0 {
			d.cutoff, d.cutoffVel = d.spring.Update(d.cutoff, d.cutoffVel, d.targetCutoff)
			d.filter.setLowPass(d.sampleRate, d.cutoff, d.q)
		}
		d.blockPos = (d.blockPos + 1) % controlBlock

		x := math.Sin(2 * math.Pi * d.phase)
		d.phase += d.freq / d.sampleRate
		if d.phase >= 1 {
			d.phase--
		}
		y := d.filter.process(x)
		samples[i][0] = y
		samples[i][1] = y
	}
	return len(samples), true
}

func (d *drone) Err() error { return nil }

// masterGain scales the whole mix, drone and sweeps alike, by a
// spring-smoothed gain.
type masterGain struct {
	spring    harmonica.Spring
	gain, vel float64
	target    float64
	blockPos  int
}

func newMasterGain(p Params) *masterGain {
	return &masterGain{
		spring: controlSpring(p),
		gain:   p.GainBase,
		target: p.GainBase,
	}
}

func (m *masterGain) apply(samples [][2]float64) {
	for i := range samples {
		if m.blockPos == 0 {
			m.gain, m.vel = m.spring.Update(m.gain, m.vel, m.target)
			if m.gain < 0 {
				m.gain = 0
			}
		}
		m.blockPos = (m.blockPos + 1) % controlBlock
		samples[i][0] *= m.gain
		samples[i][1] *= m.gain
	}
}

// sweep is a one-shot burst of band-passed white noise under an
// attack/decay envelope. It drains itself after its duration.
type sweep struct {
	rng    *rand.Rand
	filter biquad
	env    envelope
	pos    int
	length int
	rate   float64
}

func newSweep(p Params, rng *rand.Rand) *sweep {
	sr := float64(p.SampleRate)
	s := &sweep{
		rng:    rng,
		env:    p.envelope(),
		length: p.SampleRate.N(p.TransitionDuration),
		rate:   sr,
	}
	s.filter.setBandPass(sr, p.TransitionCenter, p.TransitionQ)
	return s
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.length {
		return 0, false
	}
	for n < len(samples) && s.pos < s.length {
		noise := s.rng.Float64()*2 - 1
		y := s.filter.process(noise) * s.env.at(float64(s.pos)/s.rate)
		samples[n][0] = y
		samples[n][1] = y
		n++
		s.pos++
	}
	return n, true
}

func (s *sweep) Err() error { return nil }

// envelope rises linearly to peak over attack, then decays exponentially to
// floor at end. Times are in seconds.
type envelope struct {
	attack, end float64
	peak, floor float64
}

func (e envelope) at(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t < e.attack:
		return e.peak * t / e.attack
	case t >= e.end:
		return e.floor
	}
	frac := (t - e.attack) / (e.end - e.attack)
	return e.peak * math.Pow(e.floor/e.peak, frac)
}
