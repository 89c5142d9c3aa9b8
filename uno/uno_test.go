package uno

import (
	"testing"
	"time"

	"github.com/nf/unosim/avr"
)

func waitNotify(t *testing.T, ch <-chan bool, want bool) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("led notification is %v, want %v", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for led %v", want)
	}
}

func TestRunnerButtonToLED(t *testing.T) {
	ch := make(chan bool, 16)
	r := NewRunner(func(on bool) { ch <- on })
	if err := r.Start(Pins{LED: 10, Button: 2}); err != nil {
		t.Fatal(err)
	}
	defer r.Stop()

	waitNotify(t, ch, false) // first observation: released, LED off

	r.SetButtonPressed(true)
	waitNotify(t, ch, true)

	r.SetButtonPressed(false)
	waitNotify(t, ch, false)
}

func TestRunnerStopResets(t *testing.T) {
	ch := make(chan bool, 16)
	r := NewRunner(func(on bool) { ch <- on })

	// No button: the LED is held on.
	if err := r.Start(Pins{LED: 10, Button: NoPin}); err != nil {
		t.Fatal(err)
	}
	waitNotify(t, ch, true)

	r.Stop()
	waitNotify(t, ch, false) // final off notification
	if r.Running() {
		t.Fatal("Running is true after Stop")
	}
	portB, portD := r.Registers()
	if portB != (avr.Port{}) || portD != (avr.Port{}) {
		t.Errorf("registers are B=%+v D=%+v after Stop, want zero", portB, portD)
	}

	// The comparison baseline was cleared: a new session that also
	// settles "on" reports it again.
	if err := r.Start(Pins{LED: 10, Button: NoPin}); err != nil {
		t.Fatal(err)
	}
	waitNotify(t, ch, true)
	r.Stop()
}

func TestRunnerRestartIsRebind(t *testing.T) {
	ch := make(chan bool, 16)
	r := NewRunner(func(on bool) { ch <- on })
	if err := r.Start(Pins{LED: 10, Button: 2}); err != nil {
		t.Fatal(err)
	}
	defer r.Stop()
	waitNotify(t, ch, false)

	// A second Start while active reassigns pins on the live session.
	if err := r.Start(Pins{LED: 9, Button: 2}); err != nil {
		t.Fatal(err)
	}
	if !r.Running() {
		t.Fatal("Running is false after re-entrant Start")
	}
	if g := r.Pins(); g != (Pins{LED: 9, Button: 2}) {
		t.Errorf("pins are %+v, want led 9 button 2", g)
	}

	r.SetButtonPressed(true)
	waitNotify(t, ch, true)
}

func TestRunnerStopped(t *testing.T) {
	r := NewRunner(nil)

	if g := r.Pins(); g != DefaultPins {
		t.Errorf("pending pins are %+v, want %+v", g, DefaultPins)
	}

	// Rebind while stopped updates the pending assignment only.
	if err := r.Rebind(Pins{LED: 5, Button: 6}); err != nil {
		t.Fatal(err)
	}
	if g := r.Pins(); g != (Pins{LED: 5, Button: 6}) {
		t.Errorf("pending pins are %+v, want led 5 button 6", g)
	}
	if err := r.Rebind(Pins{LED: 6, Button: 6}); err == nil {
		t.Error("Rebind accepted a shared pin")
	}

	// Inert operations while stopped.
	r.SetButtonPressed(true)
	r.Stop()
	if r.LEDOn() || r.ButtonPressed() || r.Running() {
		t.Error("stopped Runner reports live state")
	}
}

func TestRunnerStartInvalid(t *testing.T) {
	r := NewRunner(nil)
	if err := r.Start(Pins{LED: 1, Button: 2}); err == nil {
		t.Error("Start accepted a reserved pin")
	}
	if r.Running() {
		t.Error("Running is true after failed Start")
	}
}
