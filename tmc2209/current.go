//go:build tinygo

package tmc2209

func Constrain(value, low, high uint32) uint32 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// SetRunCurrent programs the motor run current, as a percentage of the
// IHOLD_IRUN register's 5-bit full scale, sharing the register with
// whatever hold current was last set by SetHoldCurrent.
func (driver *TMC2209) SetRunCurrent(percent uint8) error {
	driver.current.Irun = uint32(percentTo5Bit(percent))
	return driver.current.Write(driver.comm, driver.address, driver.current.Pack())
}

// SetHoldCurrent programs the motor standstill current the same way
// SetRunCurrent programs the run current.
func (driver *TMC2209) SetHoldCurrent(percent uint8) error {
	driver.current.Ihold = uint32(percentTo5Bit(percent))
	return driver.current.Write(driver.comm, driver.address, driver.current.Pack())
}

func percentTo5Bit(percent uint8) uint8 {
	constrained := Constrain(uint32(percent), 0, 100)
	return uint8(Map(constrained, 0, 100, 0, 31))
}

func Map(value, fromLow, fromHigh, toLow, toHigh uint32) uint32 {
	return (value-fromLow)*(toHigh-toLow)/(fromHigh-fromLow) + toLow
}
