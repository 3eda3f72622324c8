package thermal

import "testing"

type fakeSink struct {
	stopped bool
}

func (f *fakeSink) StopAll() { f.stopped = true }

func TestReset(t *testing.T) {
	m := &Monitor{ceilingCelsius: 80, axis: 0}
	m.tripped = true
	if !m.Tripped() {
		t.Fatal("expected tripped before reset")
	}
	m.Reset()
	if m.Tripped() {
		t.Error("expected cleared after reset")
	}
}

func TestSinkStoppedOnlyOnceAcrossRepeatedTrips(t *testing.T) {
	sink := &fakeSink{}
	m := &Monitor{ceilingCelsius: 80, axis: 0, sink: sink}

	trip := m.check

	trip(90)
	sink.stopped = false // simulate a re-enable between reads, no Reset called
	trip(95)
	if sink.stopped {
		t.Error("StopAll invoked again while still latched without an explicit Reset")
	}
}
