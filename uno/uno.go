package uno

import (
	"sync"
	"time"

	"github.com/nf/unosim/avr"
)

// TickRate is the derivation loop cadence.
const TickRate = time.Second / 60

// A StateFunc receives LED level changes from the observation bridge.
// It is called from the loop goroutine and must not block for long.
type StateFunc func(on bool)

// Runner owns the simulation session lifecycle. Exactly one register
// bank is live while a session is active, stepped at TickRate by a
// single goroutine; stimulus and rebinding take effect at the next
// step.
type Runner struct {
	state StateFunc

	mu      sync.Mutex
	board   *Board
	pending Pins // assignment for the next Start
	halt    chan struct{}
	done    chan struct{}
}

// NewRunner returns a stopped Runner with the default pin assignment
// pending.
func NewRunner(state StateFunc) *Runner {
	return &Runner{state: state, pending: DefaultPins}
}

// Start begins a simulation session with the given assignment. If a
// session is already active, Start reassigns its pins instead; a
// second register bank is never created.
func (r *Runner) Start(pins Pins) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.board != nil {
		if err := r.board.Rebind(pins); err != nil {
			return err
		}
		r.pending = pins
		return nil
	}
	b, err := NewBoard(pins, r.state)
	if err != nil {
		return err
	}
	r.pending = pins
	r.board = b
	r.halt = make(chan struct{})
	r.done = make(chan struct{})
	go loop(b, r.halt, r.done)
	return nil
}

func loop(b *Board, halt <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(TickRate)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			b.Step()
		case <-halt:
			return
		}
	}
}

// Stop ends the active session. The loop goroutine is halted before
// the registers are zeroed, so no stray step can re-derive LED state
// from a half-reset bank. A final "off" notification is emitted and
// the observation baseline is cleared. Stopping a stopped Runner is a
// no-op.
func (r *Runner) Stop() {
	r.mu.Lock()
	b := r.board
	halt, done := r.halt, r.done
	r.board = nil
	r.mu.Unlock()
	if b == nil {
		return
	}

	// Halt the loop before touching the registers. The wait happens
	// outside the mutex: a step in flight may be delivering a
	// notification that calls back into the Runner.
	close(halt)
	<-done

	b.shutdown()
	if r.state != nil {
		r.state(false)
	}
}

// Running reports whether a session is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board != nil
}

// SetButtonPressed forwards a stimulus to the active session. It is a
// no-op while stopped.
func (r *Runner) SetButtonPressed(pressed bool) {
	if b := r.active(); b != nil {
		b.SetPressed(pressed)
	}
}

// Rebind reassigns the role pins. While a session is active the new
// assignment takes effect at the next derivation step, with no
// observable downtime; while stopped it becomes the pending
// assignment for the next Start.
func (r *Runner) Rebind(pins Pins) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.board != nil {
		if err := r.board.Rebind(pins); err != nil {
			return err
		}
		r.pending = pins
		return nil
	}
	if err := pins.Validate(); err != nil {
		return err
	}
	r.pending = pins
	return nil
}

// Pins returns the current assignment: the live board's while a
// session is active, otherwise the pending one.
func (r *Runner) Pins() Pins {
	if b := r.active(); b != nil {
		return b.Pins()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// AvailablePins lists the pins that may be assigned to a role under
// the current assignment.
func (r *Runner) AvailablePins(role Role) []int {
	return r.Pins().Available(role)
}

// LEDOn reports the last observed LED level, or false while stopped.
func (r *Runner) LEDOn() bool {
	if b := r.active(); b != nil {
		return b.LEDOn()
	}
	return false
}

// ButtonPressed reports whether the button line is pulled low, or
// false while stopped.
func (r *Runner) ButtonPressed() bool {
	if b := r.active(); b != nil {
		return b.Pressed()
	}
	return false
}

// Registers returns a copy of the register state of both ports, or
// zeroed registers while stopped.
func (r *Runner) Registers() (portB, portD avr.Port) {
	if b := r.active(); b != nil {
		return b.Registers()
	}
	return avr.Port{}, avr.Port{}
}

func (r *Runner) active() *Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board
}
