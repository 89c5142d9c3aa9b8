// Package avr models the I/O-port registers of an AVR microcontroller
// at logic level: the DDR, PORT and PIN registers of the two port
// groups spanned by the Arduino UNO's digital pins.
package avr

// A PortID identifies one of the emulated I/O ports.
type PortID int

const (
	PortB PortID = iota
	PortD

	numPorts
)

func (p PortID) String() string {
	switch p {
	case PortB:
		return "B"
	case PortD:
		return "D"
	}
	return "?"
}

// Lookup resolves an Arduino digital pin number to its I/O port and
// bit index within that port, and reports whether the pin exists.
// Pins 0 through 7 live on port D, pins 8 through 13 on port B.
//
// Lookup implements only the raw hardware mapping; which pins a user
// may assign to a role is the caller's concern.
func Lookup(pin int) (PortID, byte, bool) {
	switch {
	case pin >= 0 && pin <= 7:
		return PortD, byte(pin), true
	case pin >= 8 && pin <= 13:
		return PortB, byte(pin - 8), true
	}
	return 0, 0, false
}
