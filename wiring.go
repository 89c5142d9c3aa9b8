package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nf/unosim/uno"
)

// A wiring file assigns roles to pins, one directive per line:
//
//	led 13
//	button 2
//
// The directives no-led and no-button mark a role as absent. A role
// not mentioned at all is also absent. Blank lines and lines starting
// with # are ignored.
func readWiring(name string) (uno.Pins, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return uno.Pins{}, err
	}
	p, err := parseWiring(b)
	if err != nil {
		return uno.Pins{}, fmt.Errorf("%s:%v", name, err)
	}
	return p, nil
}

func parseWiring(b []byte) (uno.Pins, error) {
	pins := uno.Pins{LED: uno.NoPin, Button: uno.NoPin}
	for i, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f := strings.Fields(line)
		switch f[0] {
		case "led", "button":
			if len(f) != 2 {
				return uno.Pins{}, fmt.Errorf("%d: %s needs a pin number", i+1, f[0])
			}
			n, err := strconv.Atoi(f[1])
			if err != nil {
				return uno.Pins{}, fmt.Errorf("%d: invalid pin %q", i+1, f[1])
			}
			if f[0] == "led" {
				pins.LED = n
			} else {
				pins.Button = n
			}
		case "no-led", "no-button":
			if len(f) != 1 {
				return uno.Pins{}, fmt.Errorf("%d: %s takes no argument", i+1, f[0])
			}
			if f[0] == "no-led" {
				pins.LED = uno.NoPin
			} else {
				pins.Button = uno.NoPin
			}
		default:
			return uno.Pins{}, fmt.Errorf("%d: unknown directive %q", i+1, f[0])
		}
	}
	if err := pins.Validate(); err != nil {
		return uno.Pins{}, err
	}
	return pins, nil
}
