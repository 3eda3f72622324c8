package tmc5160

import (
	"github.com/orsinium-labs/tinymath"
	"golang.org/x/exp/constraints"
)

// DesiredVelocityToVMAX converts a velocity in Hz to the axis driver's
// VMAX register units; only Begin's ramp-speed setup needs this, via
// DesiredSpeedToTSTEP below, so the current-driver role this package
// now plays never reads VMAX back for closed-loop velocity control.
func (stepper *Stepper) DesiredVelocityToVMAX(v float32) uint32 {
	tref := 16777216 / (float32(stepper.Fclk) * 1000000)
	r := tinymath.Round(v * stepper.GearRatio * tref)
	return constrain(uint32(r), 0, maxVMAX) // VMAX register value cannot exceed maxVMAX
}

// DesiredSpeedToTSTEP converts a threshold speed (Hz) to the internal
// TSTEP value Begin's setRampSpeeds writes to VSTART/VSTOP/V_1.
func (stepper *Stepper) DesiredSpeedToTSTEP(thrsSpeed uint32) uint32 {
	if thrsSpeed < 0 {
		return 0
	}
	_a := stepper.DesiredVelocityToVMAX(float32(thrsSpeed))
	if _a == 0 {
		return 0
	}
	_b := float32(16777216 / _a)
	_c := float32(stepper.MSteps) / float32(256)
	_d := uint32(_b * _c)
	return constrain(_d, 0, 1048575)
}

// Constrain function to limit values to a specific range (supports multiple types).
func constrain[T constraints.Ordered](value, min, max T) T {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}
