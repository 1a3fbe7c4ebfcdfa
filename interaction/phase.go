package interaction

import "sync/atomic"

// Phase is the application lifecycle. It only moves forward.
type Phase uint8

const (
	NotStarted Phase = iota
	Running
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}
	return "not_started"
}

// CameraState records the outcome of the one-time camera probe.
type CameraState int32

const (
	CameraUnknown CameraState = iota
	CameraEnabled
	CameraUnavailable
)

func (c CameraState) String() string {
	switch c {
	case CameraEnabled:
		return "enabled"
	case CameraUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// ModeLabel is the HUD caption for the input mode.
func (c CameraState) ModeLabel() string {
	if c == CameraEnabled {
		return "Active CV Link"
	}
	return "Mouse Fallback Mode"
}

// Session holds the phase and its sub-flags. Phase and hand presence belong
// to the render loop; the camera state is written once by the probe
// goroutine and read every frame.
type Session struct {
	phase     Phase
	handFound bool
	camera    atomic.Int32
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Start moves to Running. It reports false if already started.
func (s *Session) Start() bool {
	if s.phase == Running {
		return false
	}
	s.phase = Running
	return true
}

// Running reports whether the experience has started.
func (s *Session) Running() bool {
	return s.phase == Running
}

// SetHandFound records whether the latest tracking frame had a hand.
func (s *Session) SetHandFound(found bool) {
	s.handFound = found
}

// HandFound reports whether a hand is currently tracked.
func (s *Session) HandFound() bool {
	return s.handFound
}

// ReportCamera records the probe result. Only the first report is kept.
func (s *Session) ReportCamera(enabled bool) bool {
	next := CameraUnavailable
	if enabled {
		next = CameraEnabled
	}
	return s.camera.CompareAndSwap(int32(CameraUnknown), int32(next))
}

// Camera returns the probe result.
func (s *Session) Camera() CameraState {
	return CameraState(s.camera.Load())
}
