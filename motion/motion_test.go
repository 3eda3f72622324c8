package motion

import (
	"testing"

	"tinygo.org/x/grblmotion/hal"
	"tinygo.org/x/grblmotion/kinematics"
	"tinygo.org/x/grblmotion/planner"
	"tinygo.org/x/grblmotion/segment"
	"tinygo.org/x/grblmotion/stepexec"
)

func newRig(t *testing.T) (*planner.Planner, *Manager, *stepexec.Executor) {
	t.Helper()
	s := kinematics.NewDefaultSettings()
	for a := 0; a < kinematics.NumAxes; a++ {
		s.SetSetting(kinematics.SettingStepsPerMM+kinematics.SettingID(a), 250)
		s.SetSetting(kinematics.SettingMaxRate+kinematics.SettingID(a), 1000)
		s.SetSetting(kinematics.SettingAcceleration+kinematics.SettingID(a), 100)
	}
	p := planner.New(s)
	g := segment.New(s, p)

	var axes [kinematics.NumAxes]hal.Axis
	for a := range axes {
		axes[a] = &hal.NullAxis{}
	}
	e := stepexec.NewExecutor(g.Ring(), axes, stepexec.NullMask{})
	m := New(g, e)
	return p, m, e
}

func TestTickArmsExecutorOnceSegmentsAreReady(t *testing.T) {
	p, m, e := newRig(t)

	if err := p.BufferLine([kinematics.NumAxes]float32{10, 0, 0, 0}, 600, planner.Condition{}); err != nil {
		t.Fatalf("BufferLine: %v", err)
	}

	m.Tick()

	if !e.MotionActive() {
		t.Fatal("executor not armed after a tick with a buffered move")
	}
}

func TestFeedHoldPreventsArming(t *testing.T) {
	p, m, e := newRig(t)

	if err := p.BufferLine([kinematics.NumAxes]float32{10, 0, 0, 0}, 600, planner.Condition{}); err != nil {
		t.Fatalf("BufferLine: %v", err)
	}

	m.FeedHold()
	m.Tick()
	if e.MotionActive() {
		t.Fatal("executor armed despite a feed hold")
	}

	m.CycleStart()
	m.Tick()
	if !e.MotionActive() {
		t.Fatal("executor not armed after cycle start cleared the hold")
	}
}
