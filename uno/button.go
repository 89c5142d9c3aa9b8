package uno

import "github.com/nf/unosim/avr"

// SetPressed injects a button stimulus. A pressed button pulls the
// input line low against the pull-up; releasing it lets the line
// float high again. The write lands on whichever pin holds the button
// role at the time of the call, and the last write before a
// derivation step wins. The LED is never touched here.
func (b *Board) SetPressed(pressed bool) {
	b.mu.Lock()
	if id, bit, ok := avr.Lookup(b.pins.Button); ok {
		b.bank.SetInput(id, bit, !pressed)
	}
	b.mu.Unlock()
}

// Pressed reports whether the button line is currently pulled low.
func (b *Board) Pressed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id, bit, ok := avr.Lookup(b.pins.Button); ok {
		return !b.bank.ReadInput(id, bit)
	}
	return false
}
