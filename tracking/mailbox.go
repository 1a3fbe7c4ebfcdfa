// Package tracking runs the hand-tracking side of the experience and hands
// its latest result to the render loop.
package tracking

import (
	"sync/atomic"

	"github.com/pthm-cable/nebula/gesture"
)

// envelope pairs a published value with its sequence number.
type envelope struct {
	seq  uint64
	data *gesture.HandData
}

// Mailbox is a single-slot handoff. Publishing replaces whatever was there;
// readers only ever see the newest value, so lag cannot build up.
type Mailbox struct {
	slot atomic.Pointer[envelope]
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Publish stores the latest result. nil means no hand in the frame.
func (m *Mailbox) Publish(d *gesture.HandData) {
	for {
		old := m.slot.Load()
		next := &envelope{seq: 1, data: d}
		if old != nil {
			next.seq = old.seq + 1
		}
		if m.slot.CompareAndSwap(old, next) {
			return
		}
	}
}

// Latest returns the newest value and its sequence number. seq is 0 until
// the first publish. The returned data must be treated as read-only.
func (m *Mailbox) Latest() (*gesture.HandData, uint64) {
	e := m.slot.Load()
	if e == nil {
		return nil, 0
	}
	return e.data, e.seq
}
