//go:build tinygo

package hal

import (
	"fmt"
	"machine"

	"tinygo.org/x/grblmotion/tmc2209"
)

// TMC2209Axis is a GPIOAxis paired with a UART-configured TMC2209
// current driver: like TMC5160Axis, the chip only configures current
// and microstepping once at setup — step/dir pulses come from the
// MCU's own GPIO, driven by the executor through GPIOAxis.
type TMC2209Axis struct {
	*GPIOAxis
	driver     *tmc2209.TMC2209
	microsteps uint8
}

// NewTMC2209Axis configures step/dir/enable GPIO, brings up the UART
// link to the driver, and programs run/hold current and microstepping.
func NewTMC2209Axis(step, dir, enable machine.Pin, comm tmc2209.RegisterComm, address uint8, microstepsPerStep uint16, runCurrentPercent, holdCurrentPercent uint8) (*TMC2209Axis, error) {
	gpio := NewGPIOAxis(step, dir, enable, true)
	driver := tmc2209.NewTMC2209(comm, address)
	if err := driver.Setup(); err != nil {
		return nil, err
	}
	if !tmc2209.VerifyCommunication(comm, address) {
		return nil, fmt.Errorf("hal: tmc2209 axis %d did not respond with the expected IOIN version", address)
	}

	if err := driver.SetRunCurrent(runCurrentPercent); err != nil {
		return nil, err
	}
	if err := driver.SetHoldCurrent(holdCurrentPercent); err != nil {
		return nil, err
	}
	exponent, err := driver.SetMicrostepsPerStep(microstepsPerStep)
	if err != nil {
		return nil, err
	}
	if err := driver.EnableStealthChop(); err != nil {
		return nil, err
	}

	return &TMC2209Axis{GPIOAxis: gpio, driver: driver, microsteps: exponent}, nil
}

// Driver exposes the underlying register-level driver for diagnostics
// without widening the hal.Axis interface itself.
func (a *TMC2209Axis) Driver() *tmc2209.TMC2209 { return a.driver }

// Healthy reports whether DRV_STATUS currently shows no short, open-load,
// or overtemperature flags; a failed read also reports false.
func (a *TMC2209Axis) Healthy(comm tmc2209.RegisterComm, address uint8) bool {
	return tmc2209.CheckErrorStatus(comm, address)
}

// TransmissionCount reads IFCNT, which increments on every UART write
// the driver accepts; a value that stops advancing signals a dropped
// link on a noisy line.
func (a *TMC2209Axis) TransmissionCount(comm tmc2209.RegisterComm, address uint8) (uint32, error) {
	return tmc2209.GetInterfaceTransmissionCount(comm, address)
}
