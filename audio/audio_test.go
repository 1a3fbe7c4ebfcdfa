package audio

import (
	"math"
	"testing"
)

func streamSeconds(e *Engine, seconds float64) (peak float64) {
	buf := make([][2]float64, 512)
	total := int(seconds * float64(e.params.SampleRate))
	for done := 0; done < total; done += len(buf) {
		n, ok := e.Stream(buf)
		if !ok || n != len(buf) {
			return math.NaN()
		}
		for _, s := range buf {
			if v := math.Abs(s[0]); v > peak || v != v {
				peak = v
			}
		}
	}
	return peak
}

func TestIntensityClamped(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	tests := []struct{ in, want float64 }{
		{0.5, 0.5}, {2, 1}, {-1, 0}, {math.NaN(), 0},
	}
	for _, tt := range tests {
		e.SetInteractionIntensity(tt.in)
		if got := e.Intensity(); got != tt.want {
			t.Errorf("SetInteractionIntensity(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStreamBounded(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	e.SetInteractionIntensity(1)
	e.TriggerTransition()
	e.TriggerTransition()

	peak := streamSeconds(e, 1)
	if math.IsNaN(peak) || math.IsInf(peak, 0) {
		t.Fatalf("stream produced non-finite output")
	}
	if peak > 1.5 {
		t.Errorf("expected bounded output, peak %f", peak)
	}
	if peak == 0 {
		t.Error("expected audible output")
	}
}

func TestTransitionExpires(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	e.TriggerTransition()
	if n := e.ActiveTransitions(); n != 1 {
		t.Fatalf("expected 1 queued sweep, got %d", n)
	}
	streamSeconds(e, 0.25)
	if n := e.ActiveTransitions(); n != 1 {
		t.Errorf("expected sweep still sounding at 0.25s, got %d", n)
	}
	streamSeconds(e, 0.5)
	if n := e.ActiveTransitions(); n != 0 {
		t.Errorf("expected sweep to expire after 0.5s, got %d", n)
	}
}

func TestDroneFollowsIntensity(t *testing.T) {
	p := DefaultParams()
	e := NewEngine(p, nil)
	streamSeconds(e, 0.1)
	if math.Abs(e.drone.cutoff-p.CutoffBase) > 1 {
		t.Fatalf("expected resting cutoff %f, got %f", p.CutoffBase, e.drone.cutoff)
	}

	e.SetInteractionIntensity(1)
	streamSeconds(e, 0.02)
	mid := e.drone.cutoff
	if mid <= p.CutoffBase || mid >= p.CutoffBase+p.CutoffRange {
		t.Errorf("expected cutoff between endpoints shortly after a jump, got %f", mid)
	}

	streamSeconds(e, 1)
	if want := p.CutoffBase + p.CutoffRange; math.Abs(e.drone.cutoff-want) > 10 {
		t.Errorf("expected cutoff to settle at %f, got %f", want, e.drone.cutoff)
	}
	if want := p.GainBase + p.GainRange; math.Abs(e.master.gain-want) > 0.01 {
		t.Errorf("expected gain to settle at %f, got %f", want, e.master.gain)
	}
}

// sweepPeak returns the peak of a single sweep in the mix at the given
// intensity, isolated by subtracting an identical engine that plays no sweep.
func sweepPeak(intensity float64) float64 {
	with := NewEngine(DefaultParams(), nil)
	without := NewEngine(DefaultParams(), nil)
	with.SetInteractionIntensity(intensity)
	without.SetInteractionIntensity(intensity)
	streamSeconds(with, 1)
	streamSeconds(without, 1)
	with.TriggerTransition()

	a := make([][2]float64, 512)
	b := make([][2]float64, 512)
	var peak float64
	for done := 0; done < 44100/2; done += len(a) {
		with.Stream(a)
		without.Stream(b)
		for i := range a {
			peak = math.Max(peak, math.Abs(a[i][0]-b[i][0]))
		}
	}
	return peak
}

func TestSweepScaledByMasterGain(t *testing.T) {
	p := DefaultParams()
	quiet := sweepPeak(0)
	loud := sweepPeak(1)
	if quiet == 0 {
		t.Fatal("expected sweep to be audible at rest")
	}
	if quiet > p.TransitionPeak*p.GainBase {
		t.Errorf("sweep at rest should stay under %f, peak %f", p.TransitionPeak*p.GainBase, quiet)
	}
	want := (p.GainBase + p.GainRange) / p.GainBase
	if ratio := loud / quiet; math.Abs(ratio-want) > 0.05 {
		t.Errorf("expected sweep to scale %.2fx with intensity, got %.2fx", want, ratio)
	}
}

func TestCloseWithoutStart(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	if err := e.Close(); err != nil {
		t.Errorf("Close before Start: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestEnvelope(t *testing.T) {
	env := DefaultParams().envelope()
	tests := []struct{ t, want, eps float64 }{
		{0, 0, 0},
		{0.05, 0.2, 1e-9},
		{0.1, 0.4, 1e-9},
		{0.5, 0.001, 1e-9},
		{0.9, 0.001, 1e-9},
	}
	for _, tt := range tests {
		if got := env.at(tt.t); math.Abs(got-tt.want) > tt.eps {
			t.Errorf("env(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
	if a, b := env.at(0.2), env.at(0.3); !(a > b && b > 0.001) {
		t.Errorf("expected monotonic decay, got %v then %v", a, b)
	}
}

// amplitude measures steady-state peak of a sine at freq through f.
func amplitude(f *biquad, sampleRate, freq float64) float64 {
	var peak float64
	n := int(sampleRate / 2)
	for i := 0; i < n; i++ {
		y := f.process(math.Sin(2 * math.Pi * freq * float64(i) / sampleRate))
		if i > n/2 && math.Abs(y) > peak {
			peak = math.Abs(y)
		}
	}
	return peak
}

func TestBiquadResponse(t *testing.T) {
	const sr = 44100.0

	var lp biquad
	lp.setLowPass(sr, 400, math.Sqrt2/2)
	if a := amplitude(&lp, sr, 55); a < 0.9 {
		t.Errorf("low-pass should pass 55 Hz, amplitude %f", a)
	}
	lp = biquad{}
	lp.setLowPass(sr, 400, math.Sqrt2/2)
	if a := amplitude(&lp, sr, 8000); a > 0.01 {
		t.Errorf("low-pass should stop 8 kHz, amplitude %f", a)
	}

	var bp biquad
	bp.setBandPass(sr, 1000, 1)
	if a := amplitude(&bp, sr, 1000); math.Abs(a-1) > 0.05 {
		t.Errorf("band-pass peak should be unity, amplitude %f", a)
	}
	bp = biquad{}
	bp.setBandPass(sr, 1000, 1)
	if a := amplitude(&bp, sr, 50); a > 0.1 {
		t.Errorf("band-pass should reject 50 Hz, amplitude %f", a)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var fb Feedback = &r
	fb.SetInteractionIntensity(0.2)
	fb.SetInteractionIntensity(3)
	fb.TriggerTransition()

	if got := r.Intensities(); len(got) != 2 || got[0] != 0.2 || got[1] != 1 {
		t.Errorf("unexpected intensities %v", got)
	}
	if r.LastIntensity() != 1 {
		t.Errorf("expected last intensity 1, got %v", r.LastIntensity())
	}
	if r.Transitions() != 1 {
		t.Errorf("expected 1 transition, got %d", r.Transitions())
	}

	var _ Feedback = Silent{}
	var _ Feedback = (*Engine)(nil)
}
