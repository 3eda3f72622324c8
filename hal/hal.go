// Package hal is the per-axis hardware abstraction the executor drives:
// a step/direction pulse surface plus motor enable, independent of which
// driver chip or MCU timer backs it.
package hal

// CustomError is a lightweight error type in the teacher's idiom.
type CustomError string

func (e CustomError) Error() string { return string(e) }

// Axis is the hardware surface one stepper axis presents to the
// executor. Implementations must be safe to call from interrupt
// context: no allocation, no blocking.
type Axis interface {
	// DirectionSet drives the direction pin; true means the positive
	// travel direction for this axis.
	DirectionSet(positive bool)

	// PulseSingleShot issues one step pulse (rise, hold, fall) and
	// returns once the pulse has been fully generated.
	PulseSingleShot()

	// SetPeriod arms the axis's hardware timer to fire once every
	// period ticks when it is the dominant axis; ticks are in the
	// shared step-timer clock domain (segment.TimerHz).
	SetPeriod(ticks uint32)

	// MotorEnable drives the driver chip's enable input.
	MotorEnable(enable bool)
}

// NullAxis is a no-op Axis, useful for axes not physically present on
// a given machine (e.g. a 3-axis mill leaving the A axis unwired) and
// for host-side tests that don't exercise hardware timing.
type NullAxis struct {
	Positive bool
	Enabled  bool
	Period   uint32
	Pulses   uint32
}

func (a *NullAxis) DirectionSet(positive bool) { a.Positive = positive }
func (a *NullAxis) PulseSingleShot()            { a.Pulses++ }
func (a *NullAxis) SetPeriod(ticks uint32)      { a.Period = ticks }
func (a *NullAxis) MotorEnable(enable bool)     { a.Enabled = enable }
