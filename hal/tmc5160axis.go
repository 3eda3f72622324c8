//go:build tinygo

package hal

import (
	"log"
	"machine"

	"tinygo.org/x/grblmotion/tmc5160"
)

// TMC5160Axis is a GPIOAxis (step/dir/enable come from MCU pins, not
// the chip) paired with an SPI-configured TMC5160 current driver: the
// chip only sets current/microstep registers once at setup, it never
// sources the step pulses the executor drives.
type TMC5160Axis struct {
	*GPIOAxis
	driver *tmc5160.Driver
}

// NewTMC5160Axis configures step/dir/enable GPIO and programs the
// TMC5160's current and chopper registers via comm once at startup.
// Run/hold current are percentages of the driver's full-scale current,
// matching the percent-based current API NewTMC2209Axis exposes for
// the lighter two axes.
func NewTMC5160Axis(step, dir, enable machine.Pin, comm tmc5160.RegisterComm, address uint8, stepper tmc5160.Stepper, runCurrentPercent, holdCurrentPercent uint8) *TMC5160Axis {
	gpio := NewGPIOAxis(step, dir, enable, true)
	driver := tmc5160.NewDriver(comm, address, enable, stepper)
	power := tmc5160.NewPowerStageParameters(2, 16, 4)
	motor := tmc5160.NewMotorParameters(128, runCurrentPercent, holdCurrentPercent, 0, 0, 1)
	if !driver.Begin(power, motor, tmc5160.Clockwise) {
		log.Printf("hal: tmc5160 axis %d failed to initialize", address)
	}
	return &TMC5160Axis{GPIOAxis: gpio, driver: driver}
}

// Driver exposes the underlying register-level driver for diagnostics
// (e.g. Dump_TMC) without widening the hal.Axis interface itself.
func (a *TMC5160Axis) Driver() *tmc5160.Driver { return a.driver }
