package uno

import (
	"testing"

	"github.com/nf/unosim/avr"
)

// outBit reports the PORT bit backing the given digital pin.
func outBit(t *testing.T, b *Board, pin int) bool {
	t.Helper()
	id, bit, ok := avr.Lookup(pin)
	if !ok {
		t.Fatalf("no port for pin %d", pin)
	}
	portB, portD := b.Registers()
	p := portB
	if id == avr.PortD {
		p = portD
	}
	return p.PORT&(1<<bit) != 0
}

// recorder collects LED notifications.
type recorder struct {
	levels []bool
}

func (r *recorder) notify(on bool) { r.levels = append(r.levels, on) }

func newTestBoard(t *testing.T, pins Pins) (*Board, *recorder) {
	t.Helper()
	rec := &recorder{}
	b, err := NewBoard(pins, rec.notify)
	if err != nil {
		t.Fatal(err)
	}
	return b, rec
}

func TestConfigureDefaults(t *testing.T) {
	b, _ := newTestBoard(t, Pins{LED: 10, Button: 2})

	portB, portD := b.Registers()
	if g := portB.DDR; g != 0x04 {
		t.Errorf("DDRB is %#.2x, want 0x04 (pin 10 output)", g)
	}
	if g := portD.DDR & 0x04; g != 0 {
		t.Errorf("DDRD bit 2 is set, want input")
	}
	if g := portD.PORT & 0x04; g == 0 {
		t.Errorf("PORTD bit 2 is clear, want pull-up enabled")
	}
	// Before any stimulus the pulled-up line reads high: released.
	if g := portD.PIN & 0x04; g == 0 {
		t.Errorf("PIND bit 2 is low before any stimulus, want high")
	}
	if b.Pressed() {
		t.Error("button reads pressed before any stimulus")
	}
}

func TestButtonDrivesLED(t *testing.T) {
	b, _ := newTestBoard(t, Pins{LED: 10, Button: 2})

	b.SetPressed(true)
	b.Step()
	if !outBit(t, b, 10) {
		t.Error("LED output is low after press, want high")
	}

	b.SetPressed(false)
	b.Step()
	if outBit(t, b, 10) {
		t.Error("LED output is high after release, want low")
	}
}

func TestConfigureIdempotent(t *testing.T) {
	pins := Pins{LED: 10, Button: 2}
	b, _ := newTestBoard(t, pins)

	wantB, wantD := b.Registers()
	if err := b.Rebind(pins); err != nil {
		t.Fatal(err)
	}
	gotB, gotD := b.Registers()
	if gotB != wantB || gotD != wantD {
		t.Errorf("registers are B=%+v D=%+v after reconfigure, want B=%+v D=%+v",
			gotB, gotD, wantB, wantD)
	}

	// An in-flight stimulus survives reconfiguration of the same pins.
	b.SetPressed(true)
	if err := b.Rebind(pins); err != nil {
		t.Fatal(err)
	}
	if !b.Pressed() {
		t.Error("press was lost by reconfiguring the same pins")
	}
}

func TestNoButtonFallback(t *testing.T) {
	b, rec := newTestBoard(t, Pins{LED: 10, Button: NoPin})

	b.Step()
	if !outBit(t, b, 10) {
		t.Error("LED output is low with no button, want held high")
	}
	if want := []bool{true}; !levelsEq(rec.levels, want) {
		t.Errorf("notifications are %v, want %v", rec.levels, want)
	}
}

func TestNoLEDWritesNothing(t *testing.T) {
	b, rec := newTestBoard(t, Pins{LED: NoPin, Button: 2})

	b.SetPressed(true)
	b.Step()
	portB, portD := b.Registers()
	if portB.PORT != 0 {
		t.Errorf("PORTB is %#.2x with no LED, want 0", portB.PORT)
	}
	if portD.PORT != 0x04 {
		t.Errorf("PORTD is %#.2x, want only the pull-up bit 0x04", portD.PORT)
	}
	if len(rec.levels) != 0 {
		t.Errorf("notifications are %v with no LED, want none", rec.levels)
	}
}

func TestRebindContinuity(t *testing.T) {
	b, rec := newTestBoard(t, Pins{LED: 10, Button: 2})

	b.SetPressed(true)
	b.Step()
	if !outBit(t, b, 10) {
		t.Fatal("LED output is low after press, want high")
	}

	if err := b.Rebind(Pins{LED: 9, Button: 2}); err != nil {
		t.Fatal(err)
	}
	b.Step()
	if !outBit(t, b, 9) {
		t.Error("new LED pin 9 output is low after rebind mid-press, want high")
	}
	// The old pin keeps its last driven value; rebinding does not
	// reset previously assigned pins to a neutral state.
	if !outBit(t, b, 10) {
		t.Error("old LED pin 10 output was cleared by rebind, want left high")
	}
	// The LED level did not change across the rebind, so no extra
	// notification fires.
	if want := []bool{true}; !levelsEq(rec.levels, want) {
		t.Errorf("notifications are %v, want %v", rec.levels, want)
	}
}

func TestNotifyOnChangeOnly(t *testing.T) {
	b, rec := newTestBoard(t, Pins{LED: 10, Button: 2})

	b.Step() // first observation always reports
	b.Step()
	b.Step()
	if want := []bool{false}; !levelsEq(rec.levels, want) {
		t.Errorf("notifications are %v, want %v", rec.levels, want)
	}

	b.SetPressed(true)
	b.Step()
	b.Step()
	if want := []bool{false, true}; !levelsEq(rec.levels, want) {
		t.Errorf("notifications are %v, want %v", rec.levels, want)
	}
}

func TestUnresolvedPinSkipsStep(t *testing.T) {
	b, rec := newTestBoard(t, Pins{LED: 10, Button: 2})
	// Force an unresolvable button pin past validation.
	b.mu.Lock()
	b.pins.Button = 19
	b.mu.Unlock()

	b.Step()
	portB, _ := b.Registers()
	if portB.PORT != 0 {
		t.Errorf("PORTB is %#.2x after degraded step, want untouched 0", portB.PORT)
	}
	if len(rec.levels) != 0 {
		t.Errorf("notifications are %v after degraded step, want none", rec.levels)
	}

	// The loop recovers once the pin resolves again.
	b.mu.Lock()
	b.pins.Button = 2
	b.mu.Unlock()
	b.Step()
	if want := []bool{false}; !levelsEq(rec.levels, want) {
		t.Errorf("notifications are %v after recovery, want %v", rec.levels, want)
	}
}

func TestShutdown(t *testing.T) {
	b, rec := newTestBoard(t, Pins{LED: 10, Button: NoPin})

	b.Step()
	if want := []bool{true}; !levelsEq(rec.levels, want) {
		t.Fatalf("notifications are %v, want %v", rec.levels, want)
	}

	b.shutdown()
	portB, portD := b.Registers()
	if portB != (avr.Port{}) || portD != (avr.Port{}) {
		t.Errorf("registers are B=%+v D=%+v after shutdown, want zero", portB, portD)
	}
	if b.LEDOn() {
		t.Error("LEDOn is true after shutdown")
	}
	if b.led.seen {
		t.Error("observation baseline not cleared by shutdown")
	}
}

func levelsEq(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
