package kinematics

import "testing"

func TestRoundTripStepsToMM(t *testing.T) {
	s := NewDefaultSettings()
	s.SetSetting(SettingStepsPerMM+AxisX, 250)

	for _, mm := range []float32{0, 1, 10, 12.5, -3.2, 99.99} {
		steps := s.MMToSteps(mm, AxisX)
		got := s.StepsToMM(steps, AxisX)
		half := 0.5 / s.StepsPerMM(AxisX)
		diff := got - mm
		if diff < 0 {
			diff = -diff
		}
		if diff > half+1e-6 {
			t.Errorf("round trip mm=%v -> steps=%d -> mm=%v, diff %v exceeds %v", mm, steps, got, diff, half)
		}
	}
}

func TestSetSettingStepsPerMM(t *testing.T) {
	s := NewDefaultSettings()
	if r := s.SetSetting(SettingStepsPerMM+AxisX, 320); r != Ok {
		t.Fatalf("expected Ok, got %v", r)
	}
	if got := s.StepsPerMM(AxisX); got != 320 {
		t.Errorf("StepsPerMM = %v, want 320", got)
	}
}

func TestSetSettingRejectsNegativeAndNaN(t *testing.T) {
	s := NewDefaultSettings()
	before := s.StepsPerMM(AxisX)

	if r := s.SetSetting(SettingStepsPerMM+AxisX, -1); r != Rejected {
		t.Errorf("expected Rejected for negative value, got %v", r)
	}
	nan := float32(0)
	nan = nan / nan
	if r := s.SetSetting(SettingStepsPerMM+AxisX, nan); r != Rejected {
		t.Errorf("expected Rejected for NaN, got %v", r)
	}
	if got := s.StepsPerMM(AxisX); got != before {
		t.Errorf("state mutated after rejection: got %v, want %v", got, before)
	}
}

func TestSetSettingClampsMaxRate(t *testing.T) {
	s := NewDefaultSettings()
	// absurdly high request should clamp to the hardware step-frequency ceiling
	r := s.SetSetting(SettingMaxRate+AxisX, 1e9)
	if r != Clamped {
		t.Fatalf("expected Clamped, got %v", r)
	}
	got := s.MaxVelocityMMPerMin(AxisX)
	if got <= 0 || got >= 1e9 {
		t.Errorf("clamped max rate looks wrong: %v", got)
	}
}

func TestSetSettingRejectsUnknownID(t *testing.T) {
	s := NewDefaultSettings()
	if r := s.SetSetting(SettingID(999), 1); r != Rejected {
		t.Errorf("expected Rejected for unknown id, got %v", r)
	}
}

func TestJunctionDeviationClampedToRange(t *testing.T) {
	s := NewDefaultSettings()
	s.SetSetting(SettingJunctionDev, 5)
	if got := s.JunctionDeviationMM(); got != 1.0 {
		t.Errorf("junction deviation = %v, want clamped to 1.0", got)
	}
}
