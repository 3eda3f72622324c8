package planner

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"tinygo.org/x/grblmotion/kinematics"
)

func defaultPlanner() (*Planner, *kinematics.Settings) {
	s := kinematics.NewDefaultSettings()
	s.SetSetting(kinematics.SettingStepsPerMM+kinematics.AxisX, 250)
	s.SetSetting(kinematics.SettingStepsPerMM+kinematics.AxisY, 250)
	s.SetSetting(kinematics.SettingStepsPerMM+kinematics.AxisZ, 250)
	s.SetSetting(kinematics.SettingStepsPerMM+kinematics.AxisA, 250)
	s.SetSetting(kinematics.SettingMaxRate+kinematics.AxisX, 1000)
	s.SetSetting(kinematics.SettingAcceleration+kinematics.AxisX, 100)
	s.SetSetting(kinematics.SettingJunctionDev, 0.01)
	return New(s), s
}

func almostEqual(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// Scenario 1 from spec §8: single linear move, cold start.
func TestSingleLinearMoveColdStart(t *testing.T) {
	c := qt.New(t)
	p, _ := defaultPlanner()

	target := [kinematics.NumAxes]float32{10, 0, 0, 0}
	err := p.BufferLine(target, 600, Condition{})
	c.Assert(err, qt.IsNil)

	b := p.CurrentBlock()
	c.Assert(b, qt.Not(qt.IsNil))
	c.Assert(b.Steps[kinematics.AxisX], qt.Equals, uint32(2500))
	c.Assert(b.StepEventCount, qt.Equals, uint32(2500))

	if !almostEqual(b.Millimeters, 10.0, 1e-4) {
		t.Errorf("Millimeters = %v, want 10.0", b.Millimeters)
	}
	if !almostEqual(b.ProgrammedRate, 600.0, 1e-4) {
		t.Errorf("ProgrammedRate = %v, want 600.0", b.ProgrammedRate)
	}
	// last (only) block decelerates to zero
	if b.EntrySpeedSqr != 0 {
		t.Errorf("EntrySpeedSqr = %v, want 0 (cold start, only block)", b.EntrySpeedSqr)
	}
}

// Scenario 2 from spec §8: corner with look-ahead.
func TestCornerWithLookAhead(t *testing.T) {
	p, _ := defaultPlanner()

	if err := p.BufferLine([kinematics.NumAxes]float32{10, 0, 0, 0}, 6000, Condition{}); err != nil {
		t.Fatalf("first move: %v", err)
	}
	first := p.CurrentBlock()
	if first == nil {
		t.Fatal("expected current block after first insert")
	}
	if first.EntrySpeedSqr != 0 {
		t.Errorf("cold-start first block entry speed² = %v, want 0", first.EntrySpeedSqr)
	}

	if err := p.BufferLine([kinematics.NumAxes]float32{20, 10, 0, 0}, 6000, Condition{}); err != nil {
		t.Fatalf("second move: %v", err)
	}

	second := p.NextBlock(first)
	if second == nil {
		t.Fatal("expected a second block")
	}
	if second.EntrySpeedSqr > second.MaxEntrySpeedSqr+1e-3 {
		t.Errorf("second block entry² %v exceeds max entry² %v", second.EntrySpeedSqr, second.MaxEntrySpeedSqr)
	}
	if second.MaxJunctionSpeedSqr <= 0 {
		t.Errorf("expected a positive junction speed² for a 45-degree corner, got %v", second.MaxJunctionSpeedSqr)
	}
}

// Scenario 3 from spec §8: ten short moves; the planned position
// accumulates all ten.
func TestTenMoveSequenceAccumulatesPlannedPosition(t *testing.T) {
	p, s := defaultPlanner()

	for i := 1; i <= 10; i++ {
		target := [kinematics.NumAxes]float32{float32(i), 0, 0, 0}
		if err := p.BufferLine(target, 300, Condition{}); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}

	wantSteps := s.MMToSteps(10, kinematics.AxisX)
	if p.plannedStepPos[kinematics.AxisX] != wantSteps {
		t.Errorf("planned position X = %d, want %d", p.plannedStepPos[kinematics.AxisX], wantSteps)
	}
}

func TestBufferFullLeavesStateUnchanged(t *testing.T) {
	p, _ := defaultPlanner()

	for i := 1; i <= ringCapacity-1; i++ {
		if err := p.BufferLine([kinematics.NumAxes]float32{float32(i), 0, 0, 0}, 300, Condition{}); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}

	countBefore := p.Count()
	posBefore := p.plannedStepPos

	err := p.BufferLine([kinematics.NumAxes]float32{100, 0, 0, 0}, 300, Condition{})
	if err != ErrBufferFull {
		t.Fatalf("expected ErrBufferFull, got %v", err)
	}
	if p.Count() != countBefore {
		t.Errorf("count changed after full insert: %d -> %d", countBefore, p.Count())
	}
	if posBefore != p.plannedStepPos {
		t.Errorf("position mutated after full insert")
	}
}

func TestZeroDisplacementIsEmptyBlockIdempotent(t *testing.T) {
	p, _ := defaultPlanner()

	if err := p.BufferLine([kinematics.NumAxes]float32{5, 0, 0, 0}, 300, Condition{}); err != nil {
		t.Fatalf("setup move: %v", err)
	}

	for i := 0; i < 3; i++ {
		err := p.BufferLine([kinematics.NumAxes]float32{5, 0, 0, 0}, 300, Condition{})
		if err != ErrEmptyBlock {
			t.Fatalf("iteration %d: expected ErrEmptyBlock, got %v", i, err)
		}
	}
}

func TestJunctionMonotonicInAngle(t *testing.T) {
	straight := junctionSqrAtAngle(t, 0)
	corner45 := junctionSqrAtAngle(t, 45)
	corner90 := junctionSqrAtAngle(t, 90)

	if !(straight >= corner45 && corner45 >= corner90) {
		t.Errorf("junction speed² not monotonic: straight=%v 45deg=%v 90deg=%v", straight, corner45, corner90)
	}
}

func junctionSqrAtAngle(t *testing.T, degrees float32) float32 {
	t.Helper()
	p, _ := defaultPlanner()
	if err := p.BufferLine([kinematics.NumAxes]float32{10, 0, 0, 0}, 6000, Condition{}); err != nil {
		t.Fatalf("first move: %v", err)
	}
	rad := degrees * 3.14159265 / 180
	dx := cos32(rad)
	dy := sin32(rad)
	target := [kinematics.NumAxes]float32{10 + dx*10, dy * 10, 0, 0}
	if err := p.BufferLine(target, 6000, Condition{}); err != nil {
		t.Fatalf("second move: %v", err)
	}
	first := p.CurrentBlock()
	next := p.NextBlock(first)
	if next == nil {
		t.Fatal("expected a second block")
	}
	return next.MaxJunctionSpeedSqr
}

func cos32(x float32) float32 {
	x2 := x * x
	return 1 - x2/2 + x2*x2/24
}

func sin32(x float32) float32 {
	x2 := x * x
	return x * (1 - x2/6 + x2*x2/120)
}
