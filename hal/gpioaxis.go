//go:build tinygo

package hal

import "machine"

// GPIOAxis drives step/dir/enable directly from MCU pins, with the
// dominant-axis step timer provided by a hardware PWM/timer peripheral
// rather than bit-banged delays.
type GPIOAxis struct {
	Step   machine.Pin
	Dir    machine.Pin
	Enable machine.Pin

	// Timer is the hardware timer channel driving Step when this axis
	// is dominant; nil for an axis that is only ever a Bresenham
	// subordinate pulsed directly via PulseSingleShot.
	Timer interface {
		SetPeriod(ticks uint32)
	}

	enableActiveLow bool
}

// NewGPIOAxis configures the step/dir/enable pins as outputs.
func NewGPIOAxis(step, dir, enable machine.Pin, enableActiveLow bool) *GPIOAxis {
	step.Configure(machine.PinConfig{Mode: machine.PinOutput})
	dir.Configure(machine.PinConfig{Mode: machine.PinOutput})
	enable.Configure(machine.PinConfig{Mode: machine.PinOutput})
	a := &GPIOAxis{Step: step, Dir: dir, Enable: enable, enableActiveLow: enableActiveLow}
	a.MotorEnable(false)
	return a
}

func (a *GPIOAxis) DirectionSet(positive bool) {
	if positive {
		a.Dir.High()
	} else {
		a.Dir.Low()
	}
}

// PulseSingleShot bit-bangs one step pulse; used for Bresenham
// subordinate axes, where pulse timing only needs to land within the
// dominant axis's period, not be jitter-free itself.
func (a *GPIOAxis) PulseSingleShot() {
	a.Step.High()
	a.Step.Low()
}

func (a *GPIOAxis) SetPeriod(ticks uint32) {
	if a.Timer != nil {
		a.Timer.SetPeriod(ticks)
	}
}

func (a *GPIOAxis) MotorEnable(enable bool) {
	active := enable
	if a.enableActiveLow {
		active = !active
	}
	if active {
		a.Enable.High()
	} else {
		a.Enable.Low()
	}
}
