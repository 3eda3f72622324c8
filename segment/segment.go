// Package segment slices the planner's active block into short
// fixed-distance segments, each carrying a per-axis step count and a
// hardware-timer period derived from a trapezoidal velocity ramp that
// both accelerates toward cruise and decelerates into the next
// junction's entry speed.
package segment

import (
	"github.com/orsinium-labs/tinymath"

	"tinygo.org/x/grblmotion/kinematics"
	"tinygo.org/x/grblmotion/planner"
)

const numAxes = kinematics.NumAxes

// MinSegmentMM is the target slice length; the last slice of a block
// may be shorter.
const MinSegmentMM float32 = 2.0

// ringCapacity bounds the small segment ring the generator refills.
const ringCapacity = 8

// BatchSize is the number of segments prepared per generator tick
// (spec §4.4: "prepares up to ~3 segments per tick").
const BatchSize = 3

// TimerHz is the dominant-axis step-timer clock frequency (spec §6:
// "Timer tick frequency ~ 1.5625 MHz").
const TimerHz float32 = 1_562_500

// MinPulseIntervalTicks is the driver's minimum pulse interval (spec
// §6: "driver minimum pulse interval 4us") expressed in timer ticks:
// 4us at TimerHz is 6.25 ticks, truncated to 6.
var MinPulseIntervalTicks uint32 = 6

// MaxPeriodTicks bounds the expressible hardware-timer period.
const MaxPeriodTicks uint32 = 0xFFFFFF

// Segment is a fixed-distance slice of a block, the unit of hardware
// execution.
type Segment struct {
	Steps           [numAxes]uint32
	NStep           uint32 // dominant-axis step count for this slice
	Dominant        int
	DirectionBits   uint8
	Period          uint32 // timer ticks per dominant step
	BresenhamInitial [numAxes]int32
	BlockSteps      [numAxes]uint32 // block-wide commanded counts, for reconciliation
}

// CustomError is a lightweight error type in the teacher's idiom.
type CustomError string

func (e CustomError) Error() string { return string(e) }

const ErrRingFull CustomError = "segment ring full"

// Ring is the small fixed-capacity segment FIFO: single-producer (the
// Generator, via push) / single-consumer (the executor, via Pop/Peek/
// Complete). No locking is used; correctness relies on head only being
// advanced after a segment's fields are fully written, and tail only
// being advanced by the sole consumer.
type Ring struct {
	buf  [ringCapacity]Segment
	head int
	tail int
}

func (r *Ring) Count() int {
	if r.head >= r.tail {
		return r.head - r.tail
	}
	return ringCapacity - r.tail + r.head
}

func (r *Ring) Full() bool { return r.Count() >= ringCapacity-1 }

func (r *Ring) push(s Segment) error {
	if r.Full() {
		return ErrRingFull
	}
	r.buf[r.head] = s
	r.head = (r.head + 1) % ringCapacity
	return nil
}

// Peek returns the oldest segment without removing it.
func (r *Ring) Peek() (Segment, bool) {
	if r.Count() == 0 {
		return Segment{}, false
	}
	return r.buf[r.tail], true
}

// Complete advances tail past the oldest segment, the executor's
// counterpart to the generator's push.
func (r *Ring) Complete() {
	if r.Count() == 0 {
		return
	}
	r.tail = (r.tail + 1) % ringCapacity
}

// Generator holds the cursor into the currently active block and the
// small segment ring it refills.
type Generator struct {
	settings *kinematics.Settings
	planner  *planner.Planner

	ring Ring

	active       *planner.Block
	mmConsumed   float32
	mmRemaining  float32
	velocityMMps float32
	accelMMps2   float32
}

// New constructs a segment generator bound to settings and a planner.
func New(settings *kinematics.Settings, p *planner.Planner) *Generator {
	return &Generator{settings: settings, planner: p}
}

// Ring exposes the segment FIFO for the executor to consume from.
func (g *Generator) Ring() *Ring { return &g.ring }

// RingCount reports how many segments are currently buffered.
func (g *Generator) RingCount() int { return g.ring.Count() }

// Tick prepares up to BatchSize segments, refilling the ring. Returns
// the number actually prepared (fewer than BatchSize when the ring
// fills or no more work is available).
func (g *Generator) Tick() int {
	n := 0
	for n < BatchSize {
		if !g.PrepOneSegment() {
			break
		}
		n++
	}
	return n
}

// PrepOneSegment tries to enqueue one segment and reports whether it
// succeeded (spec §4.4).
func (g *Generator) PrepOneSegment() bool {
	if g.ring.Full() {
		return false
	}

	if g.active == nil {
		b := g.planner.CurrentBlock()
		if b == nil {
			return false
		}
		g.active = b
		g.mmRemaining = b.Millimeters
		g.mmConsumed = 0
		g.velocityMMps = tinymath.Sqrt(b.EntrySpeedSqr) / 60
		g.accelMMps2 = b.Acceleration / 3600
	}

	b := g.active

	exitTargetVelocity := g.exitTargetVelocity(b)

	d := MinSegmentMM
	if g.mmRemaining < d {
		d = g.mmRemaining
	}

	vExitSqr := g.velocityMMps*g.velocityMMps + 2*g.accelMMps2*d
	nominalMMps := tinymath.Sqrt(b.NominalSpeedSqr()) / 60
	if vExitSqr > nominalMMps*nominalMMps {
		vExitSqr = nominalMMps * nominalMMps
	}
	vExit := tinymath.Sqrt(vExitSqr)

	// Ramp toward the block's eventual exit target over its tail: if
	// accelerating would overshoot the junction we must decelerate
	// into, cap the exit at the speed from which the rest of the block
	// can still slow to exitTargetVelocity (both-sides ramp, spec §9
	// Open Question resolution).
	vLimitSqr := exitTargetVelocity*exitTargetVelocity + 2*g.accelMMps2*(g.mmRemaining-d)
	if vLimitSqr < vExit*vExit {
		if vLimitSqr < 0 {
			vLimitSqr = 0
		}
		vExit = tinymath.Sqrt(vLimitSqr)
	}

	avgVelocity := (g.velocityMMps + vExit) / 2
	if avgVelocity <= 0 {
		avgVelocity = 1e-6
	}

	const epsilon = 1e-6

	var steps [numAxes]uint32
	var dominant int
	var dominantSteps uint32
	// Apportion cumulatively along the block so the slices' step counts
	// sum to the block's own; the last slice takes the remainder.
	lastSlice := g.mmRemaining-d <= epsilon
	for a := 0; a < numAxes; a++ {
		done := roundSteps(g.mmConsumed * float32(b.Steps[a]) / b.Millimeters)
		end := roundSteps((g.mmConsumed + d) * float32(b.Steps[a]) / b.Millimeters)
		if lastSlice {
			end = b.Steps[a]
		}
		s := end - done
		steps[a] = s
		if s > dominantSteps {
			dominantSteps = s
			dominant = a
		}
	}

	if dominantSteps == 0 {
		// The trailing slice of a MIN_SEGMENT_MM+epsilon block (spec
		// §8) rounds to zero steps on every axis: fold it into block
		// completion instead of enqueuing a segment with n_step == 0.
		g.mmConsumed += d
		g.mmRemaining -= d
		g.velocityMMps = vExit
		if g.mmRemaining <= epsilon {
			g.finishBlock()
		}
		return true
	}

	seg := Segment{BlockSteps: b.Steps, DirectionBits: b.DirectionBits, Steps: steps, Dominant: dominant, NStep: dominantSteps}

	period := TimerHz / (avgVelocity * g.settings.StepsPerMM(dominant))
	p := uint32(period)
	if p < MinPulseIntervalTicks {
		p = MinPulseIntervalTicks
	}
	if p > MaxPeriodTicks {
		p = MaxPeriodTicks
	}
	seg.Period = p

	for a := 0; a < numAxes; a++ {
		if a == dominant {
			continue
		}
		seg.BresenhamInitial[a] = -int32(dominantSteps) / 2
	}

	if err := g.ring.push(seg); err != nil {
		return false
	}

	g.mmConsumed += d
	g.mmRemaining -= d
	g.velocityMMps = vExit

	if g.mmRemaining <= epsilon {
		g.finishBlock()
	}

	return true
}

// exitTargetVelocity consults the planner's look-ahead to find the
// velocity this block must arrive at by its end: the next block's
// entry speed, or zero if there is no next block.
func (g *Generator) exitTargetVelocity(b *planner.Block) float32 {
	next := g.planner.NextBlock(b)
	if next == nil {
		return 0
	}
	return tinymath.Sqrt(next.EntrySpeedSqr) / 60
}

func (g *Generator) finishBlock() {
	g.planner.DiscardCurrentBlock()
	g.active = nil
}

func roundSteps(v float32) uint32 {
	if v < 0 {
		v = 0
	}
	return uint32(v + 0.5)
}
