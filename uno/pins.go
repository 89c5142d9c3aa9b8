package uno

import (
	"fmt"

	"github.com/nf/unosim/avr"
)

// Pin assignment limits. Pins 0 and 1 are the UNO's serial lines and
// are excluded from user assignment.
const (
	MinPin = 2
	MaxPin = 13

	// NoPin marks a role with no component present on the board.
	NoPin = -1
)

// DefaultPins is the conventional UNO wiring: the built-in LED on pin
// 13 and a push button on pin 2.
var DefaultPins = Pins{LED: 13, Button: 2}

// Role identifies one of the two board roles.
type Role int

const (
	RoleLED Role = iota
	RoleButton
)

func (r Role) String() string {
	switch r {
	case RoleLED:
		return "led"
	case RoleButton:
		return "button"
	}
	return "?"
}

// Pins assigns a digital pin to each board role.
type Pins struct {
	LED    int
	Button int
}

// Validate checks that each assigned pin is in the user range and
// that the two roles do not share a pin. Callers are expected to
// offer only pins from Available, so a failure here means the caller
// bypassed that filter.
func (p Pins) Validate() error {
	for _, r := range []struct {
		role Role
		pin  int
	}{
		{RoleLED, p.LED},
		{RoleButton, p.Button},
	} {
		if r.pin == NoPin {
			continue
		}
		if r.pin < MinPin || r.pin > MaxPin {
			return fmt.Errorf("%s pin %d outside range %d-%d", r.role, r.pin, MinPin, MaxPin)
		}
	}
	if p.LED != NoPin && p.LED == p.Button {
		return fmt.Errorf("led and button both assigned to pin %d", p.LED)
	}
	return nil
}

// Available lists, in order, the pins that may be assigned to the
// given role: the user range minus the pin held by the other role.
func (p Pins) Available(r Role) []int {
	other := NoPin
	switch r {
	case RoleLED:
		other = p.Button
	case RoleButton:
		other = p.LED
	}
	pins := make([]int, 0, MaxPin-MinPin+1)
	for n := MinPin; n <= MaxPin; n++ {
		if n != other {
			pins = append(pins, n)
		}
	}
	return pins
}

// String formats the assignment for logs and the front panel.
func (p Pins) String() string {
	return fmt.Sprintf("led=%s button=%s", pinName(p.LED), pinName(p.Button))
}

func pinName(pin int) string {
	if pin == NoPin {
		return "none"
	}
	if id, bit, ok := avr.Lookup(pin); ok {
		return fmt.Sprintf("%d (P%s%d)", pin, id, bit)
	}
	return fmt.Sprintf("%d (unresolved)", pin)
}
