package segment

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"tinygo.org/x/grblmotion/kinematics"
	"tinygo.org/x/grblmotion/planner"
)

func newTestRig() (*kinematics.Settings, *planner.Planner, *Generator) {
	s := kinematics.NewDefaultSettings()
	for a := 0; a < kinematics.NumAxes; a++ {
		s.SetSetting(kinematics.SettingStepsPerMM+kinematics.SettingID(a), 250)
		s.SetSetting(kinematics.SettingMaxRate+kinematics.SettingID(a), 1000)
		s.SetSetting(kinematics.SettingAcceleration+kinematics.SettingID(a), 100)
	}
	p := planner.New(s)
	g := New(s, p)
	return s, p, g
}

func TestExactMinSegmentProducesOneSegment(t *testing.T) {
	c := qt.New(t)
	_, p, g := newTestRig()

	target := [kinematics.NumAxes]float32{MinSegmentMM, 0, 0, 0}
	err := p.BufferLine(target, 600, planner.Condition{})
	c.Assert(err, qt.IsNil)

	ok := g.PrepOneSegment()
	c.Assert(ok, qt.IsTrue)
	c.Assert(g.RingCount(), qt.Equals, 1)

	// block fully consumed: a further call must fetch the next
	// (nonexistent) block and return false.
	ok = g.PrepOneSegment()
	c.Assert(ok, qt.IsFalse)
}

func TestSlightlyOverMinSegmentProducesTwoSegments(t *testing.T) {
	c := qt.New(t)
	_, p, g := newTestRig()

	target := [kinematics.NumAxes]float32{MinSegmentMM + 0.4, 0, 0, 0}
	err := p.BufferLine(target, 600, planner.Condition{})
	c.Assert(err, qt.IsNil)

	c.Assert(g.PrepOneSegment(), qt.IsTrue)
	c.Assert(g.RingCount(), qt.Equals, 1)
	c.Assert(g.PrepOneSegment(), qt.IsTrue)
	c.Assert(g.RingCount(), qt.Equals, 2)

	c.Assert(g.PrepOneSegment(), qt.IsFalse)
}

func TestTrailingResidualBelowOneStepIsFoldedNotEnqueued(t *testing.T) {
	c := qt.New(t)
	_, p, g := newTestRig()

	// Second slice is 0.001mm: at 250 steps/mm that is 0.25 steps on
	// every axis, rounding to 0 (spec §8's MIN_SEGMENT_MM+epsilon
	// boundary). It must be folded into block completion rather than
	// enqueued as a zero-n_step segment.
	target := [kinematics.NumAxes]float32{MinSegmentMM + 0.001, 0, 0, 0}
	err := p.BufferLine(target, 600, planner.Condition{})
	c.Assert(err, qt.IsNil)

	c.Assert(g.PrepOneSegment(), qt.IsTrue)
	c.Assert(g.RingCount(), qt.Equals, 1)

	// The residual fold itself reports true (work was done) but must
	// not grow the ring, and must retire the block.
	c.Assert(g.PrepOneSegment(), qt.IsTrue)
	c.Assert(g.RingCount(), qt.Equals, 1)

	c.Assert(g.PrepOneSegment(), qt.IsFalse)

	ring := g.Ring()
	for {
		seg, ok := ring.Peek()
		if !ok {
			break
		}
		if seg.NStep == 0 {
			t.Errorf("ring contains a zero-NStep segment")
		}
		ring.Complete()
	}
}

func TestSegmentDominantAxisInvariant(t *testing.T) {
	_, p, g := newTestRig()

	target := [kinematics.NumAxes]float32{10, 5, 0, 0}
	if err := p.BufferLine(target, 600, planner.Condition{}); err != nil {
		t.Fatalf("BufferLine: %v", err)
	}

	for g.PrepOneSegment() {
	}

	ring := g.Ring()
	for {
		seg, ok := ring.Peek()
		if !ok {
			break
		}
		var maxSteps uint32
		var maxAxis int
		for a := 0; a < kinematics.NumAxes; a++ {
			if seg.Steps[a] > maxSteps {
				maxSteps = seg.Steps[a]
				maxAxis = a
			}
		}
		if seg.NStep != maxSteps {
			t.Errorf("NStep = %d, want max(Steps) = %d", seg.NStep, maxSteps)
		}
		if seg.NStep == 0 {
			t.Errorf("segment has zero dominant step count")
		}
		if seg.Dominant != maxAxis {
			t.Errorf("Dominant axis = %d, want %d", seg.Dominant, maxAxis)
		}
		ring.Complete()
	}
}
