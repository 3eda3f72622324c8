// Package grblmotion collects the small set of hardware-bus interfaces
// shared across the driver packages in this module (sharpmem, tmc5160,
// tmc2209, max6675), in the same spirit as the root package of the
// upstream tinygo.org/x/drivers tree this module was adapted from.
package grblmotion

// SPI is the subset of machine.SPI used by the bus-attached display and
// stepper-driver packages in this module.
type SPI interface {
	Tx(w, r []byte) error
}
