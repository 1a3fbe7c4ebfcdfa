package game

import (
	"time"

	"github.com/faiface/beep"

	"github.com/pthm-cable/nebula/audio"
	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/systems"
	"github.com/pthm-cable/nebula/tracking/webcam"
)

// Options configures a new Game.
type Options struct {
	Seed       int64  // RNG seed, 0 = config or time-based
	OutputDir  string // CSV and config snapshot directory, empty = none
	LogStats   bool   // log perf and session stats via slog
	Headless   bool   // no window, no audio device; starts immediately
	ReplayPath string // landmark CSV to replay instead of the webcam
	NoCamera   bool   // skip the webcam probe, mouse only
}

func simParams(cfg *config.Config) systems.Params {
	return systems.Params{
		Count:             cfg.Particles.Count,
		LerpSpeed:         float32(cfg.Particles.LerpSpeed),
		RotationSpeed:     float32(cfg.Particles.RotationSpeed),
		ForceRadius:       float32(cfg.Force.Radius),
		AttractFactor:     float32(cfg.Force.Attract),
		RepelFactor:       float32(cfg.Force.Repel),
		HueDistanceScale:  float32(cfg.Color.HueDistanceScale),
		HueTimeScale:      float32(cfg.Color.HueTimeScale),
		Saturation:        float32(cfg.Color.Saturation),
		Lightness:         float32(cfg.Color.Lightness),
		ParallelThreshold: cfg.Particles.ParallelThreshold,
		Workers:           cfg.Particles.Workers,
	}
}

func classifierParams(cfg *config.Config) gesture.ClassifierParams {
	return gesture.ClassifierParams{
		PinchThreshold: cfg.Gesture.PinchThreshold,
		ThumbThreshold: cfg.Gesture.ThumbThreshold,
	}
}

func webcamConfig(cfg *config.Config) webcam.Config {
	return webcam.Config{
		Device:            cfg.Tracking.Device,
		Width:             cfg.Tracking.Width,
		Height:            cfg.Tracking.Height,
		ModelPath:         cfg.Tracking.ModelPath,
		InputSize:         cfg.Tracking.InputSize,
		LandmarkOutput:    cfg.Tracking.LandmarkOutput,
		PresenceOutput:    cfg.Tracking.PresenceOutput,
		PresenceThreshold: float32(cfg.Tracking.PresenceThreshold),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func audioParams(cfg *config.Config) audio.Params {
	a := cfg.Audio
	return audio.Params{
		SampleRate:         beep.SampleRate(a.SampleRate),
		BufferDuration:     cfg.Derived.AudioBuffer,
		DroneFrequency:     a.DroneFrequency,
		DroneQ:             a.DroneQ,
		CutoffBase:         a.CutoffBase,
		CutoffRange:        a.CutoffRange,
		GainBase:           a.GainBase,
		GainRange:          a.GainRange,
		SpringFrequency:    a.SpringFrequency,
		TransitionDuration: seconds(a.TransitionDuration),
		TransitionAttack:   seconds(a.TransitionAttack),
		TransitionPeak:     a.TransitionPeak,
		TransitionFloor:    a.TransitionFloor,
		TransitionCenter:   a.TransitionCenter,
		TransitionQ:        a.TransitionQ,
	}
}
