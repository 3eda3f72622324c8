// Package kinematics holds per-axis motion settings (steps/mm, rate,
// acceleration, junction deviation, arc tolerance) and the mm<->step
// conversions every other package in this module builds on.
package kinematics

import (
	"golang.org/x/exp/constraints"
)

// NumAxes is the number of independently driven axes this controller
// supports.
const NumAxes = 4

// Axis indices, matching the conventional X/Y/Z/A ordering used
// throughout the wire-format (status report, $-settings).
const (
	AxisX = iota
	AxisY
	AxisZ
	AxisA
)

// CustomError is a lightweight error type, used instead of errors.New
// so zero-value comparisons and constant declarations stay cheap.
type CustomError string

func (e CustomError) Error() string { return string(e) }

const (
	ErrInvalidAxis    CustomError = "axis out of range"
	ErrInvalidSetting CustomError = "setting id out of range"
	ErrRejectedValue  CustomError = "setting value rejected"
)

// SettingID identifies a single $-setting per the documented GRBL id
// ranges (spec: 100-103 steps/mm, 110-113 max rate, 120-123
// acceleration, 130-133 max travel, 11 junction deviation, 12 arc
// tolerance).
type SettingID int

const (
	SettingStepsPerMM    SettingID = 100 // + axis
	SettingMaxRate       SettingID = 110 // + axis
	SettingAcceleration  SettingID = 120 // + axis
	SettingMaxTravel     SettingID = 130 // + axis
	SettingJunctionDev   SettingID = 11
	SettingArcTolerance  SettingID = 12
)

// SetResult reports the outcome of SetSetting.
type SetResult int

const (
	Ok SetResult = iota
	Clamped
	Rejected
)

// axisSettings holds the per-axis physical parameters.
type axisSettings struct {
	stepsPerMM   float32
	maxRateMM    float32 // mm/min
	accelMMS2    float32 // mm/s^2
	maxTravelMM  float32
}

// Settings is the single configuration surface for the motion core.
// Constructed and owned by the external collaborator (settings
// persistence is out of scope), then handed by reference to the
// planner and segment generator.
type Settings struct {
	axis [NumAxes]axisSettings

	junctionDeviationMM float32
	arcToleranceMM      float32

	// maxStepFrequencyHz bounds MaxRate via SetSetting's Clamped path;
	// it models the driver's hardware ceiling on step pulse rate.
	maxStepFrequencyHz float32
}

// NewDefaultSettings returns settings with conservative, commonly-used
// CNC defaults: 250 steps/mm, 1000 mm/min max rate, 100 mm/s^2
// acceleration on every axis, 0.01mm junction deviation, 0.002mm arc
// tolerance.
func NewDefaultSettings() *Settings {
	s := &Settings{
		junctionDeviationMM: 0.01,
		arcToleranceMM:      0.002,
		maxStepFrequencyHz:  30000,
	}
	for a := 0; a < NumAxes; a++ {
		s.axis[a] = axisSettings{
			stepsPerMM:  250,
			maxRateMM:   1000,
			accelMMS2:   100,
			maxTravelMM: 1000,
		}
	}
	return s
}

func constrain[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MMToSteps converts a millimeter quantity to an integer step count for
// the given axis.
func (s *Settings) MMToSteps(mm float32, axis int) int32 {
	if axis < 0 || axis >= NumAxes {
		return 0
	}
	return int32(mm*s.axis[axis].stepsPerMM + signedHalf(mm))
}

func signedHalf(mm float32) float32 {
	if mm < 0 {
		return -0.5
	}
	return 0.5
}

// StepsToMM converts an integer step count back to millimeters.
func (s *Settings) StepsToMM(steps int32, axis int) float32 {
	if axis < 0 || axis >= NumAxes {
		return 0
	}
	return float32(steps) / s.axis[axis].stepsPerMM
}

// StepsPerMM returns the raw conversion factor for axis.
func (s *Settings) StepsPerMM(axis int) float32 {
	if axis < 0 || axis >= NumAxes {
		return 0
	}
	return s.axis[axis].stepsPerMM
}

// MaxVelocityMMPerMin returns axis's configured maximum feed rate.
func (s *Settings) MaxVelocityMMPerMin(axis int) float32 {
	if axis < 0 || axis >= NumAxes {
		return 0
	}
	return s.axis[axis].maxRateMM
}

// AccelerationMMPerS2 returns axis's configured acceleration.
func (s *Settings) AccelerationMMPerS2(axis int) float32 {
	if axis < 0 || axis >= NumAxes {
		return 0
	}
	return s.axis[axis].accelMMS2
}

// MaxTravelMM returns axis's configured travel limit.
func (s *Settings) MaxTravelMM(axis int) float32 {
	if axis < 0 || axis >= NumAxes {
		return 0
	}
	return s.axis[axis].maxTravelMM
}

// JunctionDeviationMM returns the cornering tolerance, clamped to
// [1e-6, 1] as required by the junction-velocity computation in the
// planner.
func (s *Settings) JunctionDeviationMM() float32 {
	return constrain(s.junctionDeviationMM, 1e-6, 1.0)
}

// ArcToleranceMM returns the chord-height tolerance used by the arc
// expander.
func (s *Settings) ArcToleranceMM() float32 {
	return s.arcToleranceMM
}

// SetSetting mutates one setting by its documented id, returning
// whether the value was accepted outright, clamped to a hardware
// ceiling, or rejected. Rejected settings leave state unchanged.
func (s *Settings) SetSetting(id SettingID, value float32) SetResult {
	if value != value { // NaN
		return Rejected
	}

	switch {
	case id >= SettingStepsPerMM && id < SettingStepsPerMM+NumAxes:
		if value <= 0 {
			return Rejected
		}
		s.axis[id-SettingStepsPerMM].stepsPerMM = value
		return Ok

	case id >= SettingMaxRate && id < SettingMaxRate+NumAxes:
		if value <= 0 {
			return Rejected
		}
		axis := id - SettingMaxRate
		ceiling := s.maxStepFrequencyHz * 60 / s.axis[axis].stepsPerMM
		if value > ceiling {
			s.axis[axis].maxRateMM = ceiling
			return Clamped
		}
		s.axis[axis].maxRateMM = value
		return Ok

	case id >= SettingAcceleration && id < SettingAcceleration+NumAxes:
		if value <= 0 {
			return Rejected
		}
		s.axis[id-SettingAcceleration].accelMMS2 = value
		return Ok

	case id >= SettingMaxTravel && id < SettingMaxTravel+NumAxes:
		if value < 0 {
			return Rejected
		}
		s.axis[id-SettingMaxTravel].maxTravelMM = value
		return Ok

	case id == SettingJunctionDev:
		if value < 0 {
			return Rejected
		}
		s.junctionDeviationMM = constrain(value, 1e-6, 1.0)
		return Ok

	case id == SettingArcTolerance:
		if value <= 0 {
			return Rejected
		}
		s.arcToleranceMM = value
		return Ok
	}

	return Rejected
}
