// Package uno implements a logic-level simulation of a push button
// and an LED wired to an Arduino UNO, driven by direct manipulation
// of the emulated AVR port registers (see package avr).
package uno

import (
	"sync"

	"github.com/nf/unosim/avr"
)

// Board is the simulated UNO: the register bank plus the current role
// assignment. All exported methods serialize on an internal mutex so
// that stimulus, rebinding and the derivation step always see
// consistent register state.
type Board struct {
	notify func(on bool)

	mu   sync.Mutex
	bank avr.Bank
	pins Pins
	led  ledState
}

// NewBoard returns a configured Board. The notify function, if
// non-nil, is called from Step whenever the observed LED level
// changes.
func NewBoard(pins Pins, notify func(on bool)) (*Board, error) {
	if err := pins.Validate(); err != nil {
		return nil, err
	}
	b := &Board{notify: notify, pins: pins}
	b.configure()
	b.led.bind(pins.LED)
	return b, nil
}

// configure applies the role semantics to the registers: the LED pin
// becomes an output, the button pin an input with its pull-up
// enabled. Idempotent. Callers must hold b.mu (or have exclusive
// access, as NewBoard does).
func (b *Board) configure() {
	if id, bit, ok := avr.Lookup(b.pins.LED); ok {
		b.bank.SetDDR(id, bit, true)
	}
	if id, bit, ok := avr.Lookup(b.pins.Button); ok {
		// A freshly enabled pull-up lets the line float high. If the
		// bit is already an input with its pull-up set then any
		// injected stimulus is live and must survive reconfiguration.
		if !b.bank.PullUp(id, bit) {
			b.bank.SetInput(id, bit, true)
		}
		b.bank.SetDDR(id, bit, false)
		b.bank.SetOutput(id, bit, true)
	}
}

// Rebind moves the board roles to a new pin assignment. The next Step
// picks up the new bindings; the loop is not restarted. Registers on
// the previously assigned pins keep their configured state (see
// TestRebindContinuity).
func (b *Board) Rebind(pins Pins) error {
	if err := pins.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	b.pins = pins
	b.configure()
	b.led.bind(pins.LED)
	b.mu.Unlock()
	return nil
}

// Step runs one derivation pass: the LED output bit is driven to the
// logical negation of the pulled-up button input, and any change in
// the observed LED level is reported to the notification callback.
//
// A board with an LED but no button holds the LED on. A board with no
// LED writes nothing. A role bound to an unresolved pin causes the
// pass to be skipped; the loop carries on at the next tick.
func (b *Board) Step() {
	b.mu.Lock()
	if !b.derive() {
		b.mu.Unlock()
		return
	}
	changed, on := b.led.observe(&b.bank)
	notify := b.notify
	b.mu.Unlock()
	if changed && notify != nil {
		notify(on)
	}
}

// derive applies the one rule of the simulation and reports false
// when the pass targets an unresolved pin and the tick is skipped.
func (b *Board) derive() bool {
	if b.pins.LED == NoPin {
		return true
	}
	ledID, ledBit, ok := avr.Lookup(b.pins.LED)
	if !ok {
		return false
	}
	level := true // no button on the board: LED held on
	if b.pins.Button != NoPin {
		btnID, btnBit, ok := avr.Lookup(b.pins.Button)
		if !ok {
			return false
		}
		level = !b.bank.ReadInput(btnID, btnBit)
	}
	if b.bank.ReadOutput(ledID, ledBit) != level {
		b.bank.SetOutput(ledID, ledBit, level)
	}
	return true
}

// Pins returns the current role assignment.
func (b *Board) Pins() Pins {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pins
}

// Registers returns a copy of the register state of both ports.
func (b *Board) Registers() (portB, portD avr.Port) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bank.Port(avr.PortB), b.bank.Port(avr.PortD)
}

// shutdown zeroes every register and clears the observation baseline
// so that a future session starts from a clean comparison.
func (b *Board) shutdown() {
	b.mu.Lock()
	b.bank.Reset()
	b.led.reset()
	b.mu.Unlock()
}
