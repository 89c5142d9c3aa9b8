package main

import (
	"testing"

	"github.com/nf/unosim/uno"
)

func TestSketch(t *testing.T) {
	for _, c := range []struct {
		name string
		pins uno.Pins
		want string
	}{
		{"both", uno.Pins{LED: 13, Button: 2}, `const int ledPin = 13;
const int buttonPin = 2;

void setup() {
  pinMode(ledPin, OUTPUT);
  pinMode(buttonPin, INPUT_PULLUP);
}

void loop() {
  int buttonState = digitalRead(buttonPin);
  digitalWrite(ledPin, buttonState == LOW ? HIGH : LOW);
}
`},
		{"led only", uno.Pins{LED: 9, Button: uno.NoPin}, `const int ledPin = 9;

void setup() {
  pinMode(ledPin, OUTPUT);
}

void loop() {
  digitalWrite(ledPin, HIGH);
}
`},
		{"button only", uno.Pins{LED: uno.NoPin, Button: 3}, `const int buttonPin = 3;

void setup() {
  pinMode(buttonPin, INPUT_PULLUP);
}

void loop() {
}
`},
		{"empty", uno.Pins{LED: uno.NoPin, Button: uno.NoPin}, `void setup() {
}

void loop() {
}
`},
	} {
		t.Run(c.name, func(t *testing.T) {
			if got := sketch(c.pins); got != c.want {
				t.Errorf("sketch is:\n%s\nwant:\n%s", got, c.want)
			}
		})
	}
}
