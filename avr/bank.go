package avr

// Port holds the three 8-bit registers of a single I/O port.
//
// A set DDR bit configures the corresponding pin as an output: the
// PORT bit is then the driven level and reads of PIN reflect PORT.
// A clear DDR bit configures the pin as an input: the PORT bit then
// enables the internal pull-up and PIN carries the externally driven
// level.
type Port struct {
	DDR  byte
	PORT byte
	PIN  byte
}

// Bank is the register file for all emulated ports. Its methods are
// not synchronized; callers sharing a Bank across goroutines must
// serialize access (see package uno).
type Bank struct {
	ports [numPorts]Port
}

// Port returns a copy of the registers of the given port.
func (b *Bank) Port(id PortID) Port { return b.ports[id] }

// SetDDR configures the direction of one port bit: output when output
// is true, input otherwise.
func (b *Bank) SetDDR(id PortID, bit byte, output bool) {
	p := &b.ports[id]
	p.DDR = setBit(p.DDR, bit, output)
}

// SetOutput writes one PORT bit. In output mode this is the pin's
// driven level; in input mode it enables the pull-up.
func (b *Bank) SetOutput(id PortID, bit byte, level bool) {
	p := &b.ports[id]
	p.PORT = setBit(p.PORT, bit, level)
}

// SetInput records an externally driven level on one PIN bit. Writing
// to a bit configured as an output is permitted but has no simulated
// electrical effect: ReadInput for that bit reflects PORT instead.
func (b *Bank) SetInput(id PortID, bit byte, level bool) {
	p := &b.ports[id]
	p.PIN = setBit(p.PIN, bit, level)
}

// ReadOutput reports one PORT bit.
func (b *Bank) ReadOutput(id PortID, bit byte) bool {
	return b.ports[id].PORT&(1<<bit) != 0
}

// ReadInput reports the effective input level of one bit: the PORT
// bit for outputs, the PIN bit for inputs.
func (b *Bank) ReadInput(id PortID, bit byte) bool {
	p := b.ports[id]
	if p.DDR&(1<<bit) != 0 {
		return p.PORT&(1<<bit) != 0
	}
	return p.PIN&(1<<bit) != 0
}

// PullUp reports whether the bit is configured as an input with its
// internal pull-up enabled.
func (b *Bank) PullUp(id PortID, bit byte) bool {
	p := b.ports[id]
	m := byte(1) << bit
	return p.DDR&m == 0 && p.PORT&m != 0
}

// Reset zeroes every register in every port.
func (b *Bank) Reset() {
	for i := range b.ports {
		b.ports[i] = Port{}
	}
}

func setBit(reg, bit byte, level bool) byte {
	if level {
		return reg | 1<<bit
	}
	return reg &^ (1 << bit)
}
