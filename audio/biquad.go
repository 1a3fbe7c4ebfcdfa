package audio

import "math"

// biquad is a direct form I second-order IIR section.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

// setLowPass configures a resonant low-pass at cutoff Hz.
func (f *biquad) setLowPass(sampleRate, cutoff, q float64) {
	w0, alpha := f.prewarp(sampleRate, cutoff, q)
	cw := math.Cos(w0)
	a0 := 1 + alpha
	f.b0 = (1 - cw) / 2 / a0
	f.b1 = (1 - cw) / a0
	f.b2 = f.b0
	f.a1 = -2 * cw / a0
	f.a2 = (1 - alpha) / a0
}

// setBandPass configures a band-pass at center Hz with 0 dB peak gain.
func (f *biquad) setBandPass(sampleRate, center, q float64) {
	w0, alpha := f.prewarp(sampleRate, center, q)
	a0 := 1 + alpha
	f.b0 = alpha / a0
	f.b1 = 0
	f.b2 = -alpha / a0
	f.a1 = -2 * math.Cos(w0) / a0
	f.a2 = (1 - alpha) / a0
}

func (f *biquad) prewarp(sampleRate, freq, q float64) (w0, alpha float64) {
	nyquist := sampleRate / 2
	if freq > nyquist*0.99 {
		freq = nyquist * 0.99
	}
	if freq < 1 {
		freq = 1
	}
	if q <= 0 {
		q = math.Sqrt2 / 2
	}
	w0 = 2 * math.Pi * freq / sampleRate
	return w0, math.Sin(w0) / (2 * q)
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}
