package main

import (
	"fmt"
	"strings"

	"github.com/nf/unosim/uno"
)

// sketch returns the Arduino source equivalent to the simulated
// behavior. It is a pure formatting function over the pin assignment
// and which roles are present; it reads no simulation state.
func sketch(p uno.Pins) string {
	var b strings.Builder
	if p.LED != uno.NoPin {
		fmt.Fprintf(&b, "const int ledPin = %d;\n", p.LED)
	}
	if p.Button != uno.NoPin {
		fmt.Fprintf(&b, "const int buttonPin = %d;\n", p.Button)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString("void setup() {\n")
	if p.LED != uno.NoPin {
		b.WriteString("  pinMode(ledPin, OUTPUT);\n")
	}
	if p.Button != uno.NoPin {
		b.WriteString("  pinMode(buttonPin, INPUT_PULLUP);\n")
	}
	b.WriteString("}\n\nvoid loop() {\n")
	switch {
	case p.LED != uno.NoPin && p.Button != uno.NoPin:
		b.WriteString("  int buttonState = digitalRead(buttonPin);\n")
		b.WriteString("  digitalWrite(ledPin, buttonState == LOW ? HIGH : LOW);\n")
	case p.LED != uno.NoPin:
		b.WriteString("  digitalWrite(ledPin, HIGH);\n")
	}
	b.WriteString("}\n")
	return b.String()
}
