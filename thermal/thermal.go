// Package thermal periodically reads a per-axis driver heatsink
// thermocouple and raises the hardware-safety-fatal alarm path (spec
// §7) when a configured temperature ceiling is crossed. It is not
// closed-loop control: crossing the ceiling only raises an alarm, it
// never adjusts current or speed.
package thermal

import (
	"errors"
	"log"

	"tinygo.org/x/grblmotion/max6675"
)

// AlarmSink is the hardware-safety-fatal path this package feeds;
// satisfied by stepexec.Executor's StopAll plus whatever alarm-state
// bookkeeping the caller layers on top.
type AlarmSink interface {
	StopAll()
}

// Monitor watches one axis's thermocouple.
type Monitor struct {
	device         *max6675.Device
	axis           int
	ceilingCelsius float32
	sink           AlarmSink

	tripped bool
}

// New binds a thermal monitor to one axis's thermocouple device and
// the alarm sink it trips.
func New(device *max6675.Device, axis int, ceilingCelsius float32, sink AlarmSink) *Monitor {
	return &Monitor{device: device, axis: axis, ceilingCelsius: ceilingCelsius, sink: sink}
}

// Tick reads the thermocouple once. Called from foreground context on
// a slow (~1 Hz) schedule, never from the pulse ISR.
func (m *Monitor) Tick() error {
	celsius, err := m.device.Read()
	if err != nil {
		if errors.Is(err, max6675.ErrThermocoupleOpen) {
			log.Printf("thermal: axis %d thermocouple open", m.axis)
		}
		return err
	}

	m.check(celsius)
	return nil
}

// check trips the alarm once when celsius reaches the ceiling; while
// latched, further readings do not call the sink again.
func (m *Monitor) check(celsius float32) {
	if celsius >= m.ceilingCelsius && !m.tripped {
		m.tripped = true
		log.Printf("thermal: axis %d over temperature: %.1fC >= %.1fC ceiling", m.axis, celsius, m.ceilingCelsius)
		m.sink.StopAll()
	}
}

// Tripped reports whether this monitor has raised its alarm; cleared
// only by Reset (mirroring the explicit alarm-clear requirement of
// spec §7's hardware-safety-fatal path).
func (m *Monitor) Tripped() bool { return m.tripped }

// Reset clears a tripped alarm, allowed only once the operator has
// acknowledged the condition.
func (m *Monitor) Reset() { m.tripped = false }
