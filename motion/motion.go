// Package motion is the periodic tick orchestrator sitting between the
// segment generator and the segment executor: it tops up the segment
// ring and arms the executor when it has gone idle, keeping hardware
// starts out of pulse-ISR context (spec §4.6).
package motion

import (
	"log"

	"tinygo.org/x/grblmotion/segment"
)

// Executor is the subset of stepexec.Executor the motion manager
// drives; expressed as an interface so this package never imports
// stepexec's hal dependency chain directly.
type Executor interface {
	Arm() bool
	MotionActive() bool
	DrainMismatch() bool
}

// Manager runs the ~100 Hz generator tick (spec §4.6).
type Manager struct {
	generator *segment.Generator
	executor  Executor

	feedHold bool
}

// New binds a motion manager to its generator and executor.
func New(g *segment.Generator, e Executor) *Manager {
	return &Manager{generator: g, executor: e}
}

// Tick is the ~100 Hz periodic callback: top up the segment ring, then
// arm the executor if it has drained and motion isn't held.
func (m *Manager) Tick() {
	m.generator.Tick()

	for m.executor.DrainMismatch() {
		// DrainMismatch logs internally; keep draining until empty so
		// one slow tick can't let the queue grow unbounded.
	}

	if m.feedHold {
		return
	}
	if !m.executor.MotionActive() && m.generator.RingCount() > 0 {
		if !m.executor.Arm() {
			log.Printf("motion: arm failed with %d segments buffered", m.generator.RingCount())
		}
	}
}

// FeedHold stops Tick from arming the executor. It does not stop an
// executor that is already running: that one keeps stepping through the
// segment ring, which Tick keeps topping up, until the ring drains (the
// executor itself has no mid-segment abort path).
func (m *Manager) FeedHold() { m.feedHold = true }

// CycleStart clears a feed hold, allowing the next tick to re-arm the
// executor once it goes idle.
func (m *Manager) CycleStart() { m.feedHold = false }

// Holding reports whether a feed hold is in effect.
func (m *Manager) Holding() bool { return m.feedHold }
