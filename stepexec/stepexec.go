// Package stepexec is the segment executor: it pops segments from the
// generator's ring and produces per-axis step pulses, pacing the move
// off one axis's hardware timer (the "dominant" axis) while
// Bresenham-distributing pulses to the rest ("subordinates"), with
// atomic role transitions between segments.
//
// Pulse-path methods (PulseISR, transition) never allocate, never log,
// and never return an error: they run in interrupt context. Mismatches
// are recorded in a counter and surfaced to foreground code through
// DrainMismatch.
package stepexec

import (
	"log"

	"tinygo.org/x/grblmotion/hal"
	"tinygo.org/x/grblmotion/kinematics"
	"tinygo.org/x/grblmotion/segment"
)

const numAxes = kinematics.NumAxes

// CustomError is a lightweight error type in the teacher's idiom.
type CustomError string

func (e CustomError) Error() string { return string(e) }

// InterruptMask masks the four motion axes' pulse-output interrupts
// during an atomic dominant-axis transition, leaving every other
// peripheral (the generator's timer, serial I/O) free to run.
type InterruptMask interface {
	Disable()
	Enable()
}

// NullMask is a no-op InterruptMask for host-side tests and any target
// where the caller already serializes Arm/PulseISR calls.
type NullMask struct{}

func (NullMask) Disable() {}
func (NullMask) Enable()  {}

type mismatch struct {
	axis       int
	commanded  uint32
	executed   uint32
}

// Executor drives numAxes hal.Axis backends from a segment ring.
type Executor struct {
	ring *segment.Ring
	axes [numAxes]hal.Axis
	mask InterruptMask

	dominantMask uint8
	motionActive bool

	current       segment.Segment
	haveCurrent   bool
	stepCount     uint32 // dominant axis progress within current segment
	bresenham     [numAxes]int32

	blockStepsCommanded [numAxes]uint32
	blockStepsExecuted  [numAxes]uint32

	machinePos [numAxes]int32

	pendingMismatches []mismatch
}

// NewExecutor binds an executor to a segment ring, one hal.Axis per
// motion axis, and an interrupt mask.
func NewExecutor(ring *segment.Ring, axes [numAxes]hal.Axis, mask InterruptMask) *Executor {
	if mask == nil {
		mask = NullMask{}
	}
	return &Executor{ring: ring, axes: axes, mask: mask}
}

// MotionActive reports whether the executor currently owns the step
// clock (spec §4.5 "motion_active").
func (e *Executor) MotionActive() bool { return e.motionActive }

// MachinePosition returns the current absolute step position, the
// authoritative value for status reporting.
func (e *Executor) MachinePosition() [numAxes]int32 { return e.machinePos }

// dirPositive reports whether axis moves in the positive direction.
// planner.BufferLine sets the direction bit only for a negative delta
// (planner.go), so a clear bit means positive travel.
func dirPositive(bits uint8, axis int) bool { return bits&(1<<uint(axis)) == 0 }

func dirDelta(bits uint8, axis int) int32 {
	if dirPositive(bits, axis) {
		return 1
	}
	return -1
}

// Arm begins execution of the oldest buffered segment. Called by the
// motion manager's tick, never from the pulse ISR (spec §4.6: hardware
// starts are unsafe at pulse-ISR priority).
func (e *Executor) Arm() bool {
	if e.motionActive {
		return false
	}
	seg, ok := e.ring.Peek()
	if !ok {
		return false
	}

	e.beginBlockIfNew(seg)

	dominant := seg.Dominant
	for a := 0; a < numAxes; a++ {
		if seg.Steps[a] == 0 {
			continue
		}
		e.axes[a].DirectionSet(dirPositive(seg.DirectionBits, a))
		e.axes[a].MotorEnable(true)
		if a != dominant {
			e.bresenham[a] = seg.BresenhamInitial[a]
		}
	}

	e.axes[dominant].SetPeriod(seg.Period)
	e.dominantMask = 1 << uint(dominant)
	e.current = seg
	e.haveCurrent = true
	e.stepCount = 0
	e.motionActive = true
	return true
}

func (e *Executor) beginBlockIfNew(seg segment.Segment) {
	if e.haveCurrent && e.current.BlockSteps == seg.BlockSteps {
		return
	}
	e.reconcileBlock()
	e.blockStepsCommanded = seg.BlockSteps
	for a := range e.blockStepsExecuted {
		e.blockStepsExecuted[a] = 0
	}
}

func (e *Executor) reconcileBlock() {
	for a := 0; a < numAxes; a++ {
		c, x := e.blockStepsCommanded[a], e.blockStepsExecuted[a]
		if c != 0 && c != x {
			e.pendingMismatches = append(e.pendingMismatches, mismatch{a, c, x})
		}
	}
}

// PulseISR is the dominant-axis hardware-timer callback. axis must be
// the index the caller's interrupt fired for; the call is a no-op if
// motion is inactive or axis is not currently dominant.
func (e *Executor) PulseISR(axis int) {
	if !e.motionActive || e.dominantMask&(1<<uint(axis)) == 0 {
		return
	}

	e.stepCount++
	e.blockStepsExecuted[axis]++
	e.machinePos[axis] += dirDelta(e.current.DirectionBits, axis)

	nStep := int32(e.current.NStep)
	for s := 0; s < numAxes; s++ {
		if s == axis || e.current.Steps[s] == 0 {
			continue
		}
		// Starting from BresenhamInitial (-n_step/2), firing at zero
		// emits exactly Steps[s] pulses over the segment's n_step ticks.
		e.bresenham[s] += int32(e.current.Steps[s])
		if e.bresenham[s] >= 0 {
			e.bresenham[s] -= nStep
			e.axes[s].PulseSingleShot()
			e.blockStepsExecuted[s]++
			e.machinePos[s] += dirDelta(e.current.DirectionBits, s)
		}
	}

	if e.stepCount < e.current.NStep {
		return
	}

	e.ring.Complete()

	next, ok := e.ring.Peek()
	if !ok {
		e.endOfMotion()
		return
	}
	e.transition(next)
}

// endOfMotion is reached when the segment ring drains with no
// successor queued: clears dominant_mask and motion_active, resets
// per-axis progress, and performs the final reconciliation.
func (e *Executor) endOfMotion() {
	e.dominantMask = 0
	e.motionActive = false
	e.stepCount = 0
	for a := range e.bresenham {
		e.bresenham[a] = 0
	}
	e.reconcileBlock()
	e.haveCurrent = false
}

// transition performs the atomic dominant-axis handoff (spec §4.5):
// masked against the other pulse-output interrupts, it repopulates
// every axis's per-segment state and publishes the new dominant_mask
// as its last act.
func (e *Executor) transition(next segment.Segment) {
	e.mask.Disable()

	e.beginBlockIfNew(next)

	newDominant := next.Dominant
	for a := 0; a < numAxes; a++ {
		if next.Steps[a] == 0 {
			continue
		}
		if a != newDominant {
			e.bresenham[a] = next.BresenhamInitial[a]
		}
		e.axes[a].DirectionSet(dirPositive(next.DirectionBits, a))
	}

	e.axes[newDominant].SetPeriod(next.Period)

	e.current = next
	e.stepCount = 0

	e.dominantMask = 1 << uint(newDominant)
	e.mask.Enable()
}

// DrainMismatch pops and logs any pending per-block reconciliation
// mismatch (block_steps_commanded vs. block_steps_executed). Called
// only from foreground context; the ISR path merely accumulates them.
func (e *Executor) DrainMismatch() bool {
	if len(e.pendingMismatches) == 0 {
		return false
	}
	m := e.pendingMismatches[0]
	e.pendingMismatches = e.pendingMismatches[1:]
	log.Printf("stepexec: axis %d steps_executed=%d != steps_commanded=%d", m.axis, m.executed, m.commanded)
	return true
}

// StopAll forces the executor idle immediately, disabling every axis's
// motor driver: the emergency-halt path.
func (e *Executor) StopAll() {
	e.motionActive = false
	e.dominantMask = 0
	for a := 0; a < numAxes; a++ {
		e.axes[a].MotorEnable(false)
	}
}
