// Package telemetry records frame timings, session statistics and shape
// change events, and writes them as CSV.
package telemetry

import (
	"fmt"
	"time"

	"github.com/pthm-cable/nebula/shapes"
)

// ChangeCause identifies what caused a shape change.
type ChangeCause uint8

const (
	CauseGesture ChangeCause = iota
	CauseManual
)

func (c ChangeCause) String() string {
	if c == CauseManual {
		return "manual"
	}
	return "gesture"
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (c ChangeCause) MarshalCSV() (string, error) {
	return c.String(), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (c *ChangeCause) UnmarshalCSV(s string) error {
	switch s {
	case "gesture":
		*c = CauseGesture
	case "manual":
		*c = CauseManual
	default:
		return fmt.Errorf("unknown change cause %q", s)
	}
	return nil
}

// ShapeChangeEvent is one row of events.csv.
type ShapeChangeEvent struct {
	Session string      `csv:"session"`
	Tick    uint64      `csv:"tick"`
	SimTime float64     `csv:"sim_time"`
	Wall    string      `csv:"wall"`
	From    string      `csv:"from"`
	To      string      `csv:"to"`
	Cause   ChangeCause `csv:"cause"`
}

// NewShapeChangeEvent creates an event stamped with the current wall time.
func NewShapeChangeEvent(tick uint64, simTime float64, from, to shapes.Archetype, cause ChangeCause) ShapeChangeEvent {
	return ShapeChangeEvent{
		Tick:    tick,
		SimTime: simTime,
		Wall:    time.Now().UTC().Format(time.RFC3339Nano),
		From:    from.String(),
		To:      to.String(),
		Cause:   cause,
	}
}
