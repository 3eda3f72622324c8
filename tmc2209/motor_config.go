//go:build tinygo

package tmc2209

// SetMicrostepsPerStep rounds microsteps down to the nearest power of
// two the CHOPCONF MRES field supports and programs it, returning the
// exponent actually applied.
func (driver *TMC2209) SetMicrostepsPerStep(microsteps uint16) (uint8, error) {
	exponent := uint8(0)
	microstepsShifted := microsteps >> 1

	for microstepsShifted > 0 {
		microstepsShifted = microstepsShifted >> 1
		exponent++
	}

	return exponent, driver.SetMicrostepsPerStepPowerOfTwo(exponent)
}

// SetMicrostepsPerStepPowerOfTwo writes CHOPCONF's MRES field. MRES
// counts down from 8 (full step, 1 microstep) to 0 (native 256
// microsteps), the inverse of exponent; 1<<exponent microsteps per
// step corresponds to MRES = 8 - exponent.
func (driver *TMC2209) SetMicrostepsPerStepPowerOfTwo(exponent uint8) error {
	if exponent > 8 {
		exponent = 8
	}
	mres := uint32(8 - exponent)

	chopconf := NewChopconf()
	raw, err := chopconf.Read(driver.comm, driver.address)
	if err != nil {
		return err
	}
	chopconf.Bytes = raw
	chopconf.Unpack(raw)
	chopconf.Mres = mres

	return chopconf.Write(driver.comm, driver.address, chopconf.Pack())
}
