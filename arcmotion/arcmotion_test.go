package arcmotion

import (
	"testing"

	"github.com/orsinium-labs/tinymath"

	"tinygo.org/x/grblmotion/kinematics"
	"tinygo.org/x/grblmotion/planner"
)

func newRig() (*planner.Planner, *kinematics.Settings) {
	s := kinematics.NewDefaultSettings()
	for a := 0; a < kinematics.NumAxes; a++ {
		s.SetSetting(kinematics.SettingStepsPerMM+kinematics.SettingID(a), 250)
		s.SetSetting(kinematics.SettingMaxRate+kinematics.SettingID(a), 6000)
		s.SetSetting(kinematics.SettingAcceleration+kinematics.SettingID(a), 1000)
	}
	s.SetSetting(kinematics.SettingArcTolerance, 0.002)
	return planner.New(s), s
}

// Scenario 4 from spec §8: G17 G2 X10 Y10 I10 J0 from (0,0), arc_tolerance
// 0.002 mm. segmentCount is the pure formula; it is exercised directly
// since the planner's ring is far smaller than the ~125-clamped-to-100
// chords this scenario produces.
func TestQuarterArcSegmentCountClampsTo100(t *testing.T) {
	n := segmentCount(-tinymath.Pi/2, 10, 0.002)
	if n != maxSegments {
		t.Errorf("segment count = %d, want %d (clamped)", n, maxSegments)
	}
}

// A small arc within the planner's ring capacity lands exactly on the
// commanded target.
func TestSmallArcLandsOnTarget(t *testing.T) {
	p, s := newRig()
	s.SetSetting(kinematics.SettingArcTolerance, 0.5)

	start := [kinematics.NumAxes]float32{0, 0, 0, 0}
	target := [kinematics.NumAxes]float32{10, 10, 0, 0}
	if err := Expand(p, s, start, target, 10, 0, true, 6000, planner.Condition{}); err != nil {
		t.Fatalf("Expand: %v", err)
	}

	var last *planner.Block
	var sum [kinematics.NumAxes]int32
	for b := p.CurrentBlock(); b != nil; b = p.NextBlock(b) {
		last = b
		for a := 0; a < kinematics.NumAxes; a++ {
			if b.DirectionBits&(1<<uint(a)) != 0 {
				sum[a] -= int32(b.Steps[a])
			} else {
				sum[a] += int32(b.Steps[a])
			}
		}
	}
	if last == nil {
		t.Fatal("no blocks admitted")
	}
	for a := 0; a < kinematics.NumAxes; a++ {
		if want := s.MMToSteps(target[a], a); sum[a] != want {
			t.Errorf("axis %d: chords sum to %d steps, want %d", a, sum[a], want)
		}
	}
}

func TestDegenerateArcRejectsTinyRadius(t *testing.T) {
	p, s := newRig()
	start := [kinematics.NumAxes]float32{0, 0, 0, 0}
	target := [kinematics.NumAxes]float32{0.0001, 0, 0, 0}
	err := Expand(p, s, start, target, 0.0001, 0, true, 6000, planner.Condition{})
	if err != ErrDegenerateArc {
		t.Fatalf("expected ErrDegenerateArc, got %v", err)
	}
}

func TestFullCircleRequestIsRejected(t *testing.T) {
	p, s := newRig()
	start := [kinematics.NumAxes]float32{10, 0, 0, 0}
	err := Expand(p, s, start, start, -10, 0, true, 6000, planner.Condition{})
	if err != ErrDegenerateArc {
		t.Fatalf("expected ErrDegenerateArc for a coincident start/target, got %v", err)
	}
}

func TestAngularTravelHonorsDirectionForShortArcs(t *testing.T) {
	cw := angularTravel(0, -1.0, true)
	if cw >= 0 {
		t.Errorf("clockwise travel = %v, want negative", cw)
	}
	ccw := angularTravel(0, 1.0, false)
	if ccw <= 0 {
		t.Errorf("counterclockwise travel = %v, want positive", ccw)
	}
}

func TestAngularTravelFoldsLongWayToShortArc(t *testing.T) {
	travel := angularTravel(0, 0.1, true) // requested CW, but the short arc is CCW
	if travel <= 0 {
		t.Errorf("expected folding to flip to the short (positive) arc, got %v", travel)
	}
	if travel > 3.2 {
		t.Errorf("folded travel %v exceeds a half turn", travel)
	}
}
