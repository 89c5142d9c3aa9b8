package uno

import "github.com/nf/unosim/avr"

// ledState is the observation bridge: a cached projection of the LED
// output bit, pushed outward only on change. There is exactly one
// logical LED channel however many LED widgets a front end draws.
type ledState struct {
	id  avr.PortID
	bit byte
	ok  bool

	on   bool
	seen bool // on is valid; cleared by reset
}

// bind re-resolves the watched (port, bit) pair. Called whenever the
// LED role moves to another pin.
func (l *ledState) bind(pin int) {
	l.id, l.bit, l.ok = avr.Lookup(pin)
}

// observe compares the LED output bit against the last reported level
// and reports whether a notification is due. The first observation
// after reset always reports.
func (l *ledState) observe(bank *avr.Bank) (changed, on bool) {
	if !l.ok {
		return false, false
	}
	on = bank.ReadOutput(l.id, l.bit)
	if l.seen && on == l.on {
		return false, on
	}
	l.on, l.seen = on, true
	return true, on
}

// reset clears the comparison baseline.
func (l *ledState) reset() {
	l.on = false
	l.seen = false
}

// LEDOn reports the last observed LED level.
func (b *Board) LEDOn() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.led.seen && b.led.on
}
