//go:build tinygo

package tmc2209

// EnableStealthChop switches the chopper to the quiet voltage-PWM mode
// by clearing GCONF's EnSpreadcycle bit.
func (driver *TMC2209) EnableStealthChop() error {
	return driver.setSpreadCycle(0)
}

// DisableStealthChop switches back to the classic spreadCycle chopper
// by setting GCONF's EnSpreadcycle bit.
func (driver *TMC2209) DisableStealthChop() error {
	return driver.setSpreadCycle(1)
}

func (driver *TMC2209) setSpreadCycle(enSpreadcycle uint32) error {
	gconf := NewGconf()
	raw, err := gconf.Read(driver.comm, driver.address)
	if err != nil {
		return err
	}
	gconf.Bytes = raw
	gconf.Unpack(raw)
	gconf.EnSpreadcycle = enSpreadcycle
	return gconf.Write(driver.comm, driver.address, gconf.Pack())
}

// EnableCoolStep programs COOLCONF's load-adaptive current thresholds
// and enables automatic current scaling in PWMCONF so StealthChop
// backs off current once the motor is unloaded.
func (driver *TMC2209) EnableCoolStep(lowerThreshold, upperThreshold uint8) error {
	coolConf := NewCoolConf()
	coolConf.Semin = uint32(lowerThreshold) & 0x0F
	coolConf.Semax = uint32(upperThreshold) & 0x0F
	if err := coolConf.Write(driver.comm, driver.address, coolConf.Pack()); err != nil {
		return err
	}
	return driver.EnableAutomaticCurrentScaling()
}

// DisableCoolStep zeroes COOLCONF's thresholds, turning the feature off.
func (driver *TMC2209) DisableCoolStep() error {
	coolConf := NewCoolConf()
	return coolConf.Write(driver.comm, driver.address, coolConf.Pack())
}

// EnableAutomaticCurrentScaling sets PWMCONF's PwmAutoscale bit so the
// driver regulates run current from the back-EMF instead of the fixed
// IHOLD_IRUN value.
func (driver *TMC2209) EnableAutomaticCurrentScaling() error {
	return driver.setPwmAutoscale(1)
}

// DisableAutomaticCurrentScaling clears PwmAutoscale, returning to a
// fixed current set by SetRunCurrent/SetHoldCurrent.
func (driver *TMC2209) DisableAutomaticCurrentScaling() error {
	return driver.setPwmAutoscale(0)
}

func (driver *TMC2209) setPwmAutoscale(enabled uint32) error {
	pwm := NewPWMConf()
	raw, err := pwm.Read(driver.comm, driver.address)
	if err != nil {
		return err
	}
	pwm.Bytes = raw
	pwm.Unpack(raw)
	pwm.PwmAutoscale = enabled
	return pwm.Write(driver.comm, driver.address, pwm.Pack())
}
