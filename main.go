// Command unosim simulates a push button and an LED wired to an
// Arduino UNO, at the level of the AVR port registers.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nf/unosim/uno"
)

func main() {
	log.SetPrefix("unosim: ")
	log.SetFlags(0)

	var (
		cliFlag    = flag.Bool("cli", false, "disable GUI features")
		panelFlag  = flag.Bool("panel", false, "enable the interactive front panel")
		watchFlag  = flag.Bool("watch", false, "watch the wiring file and rebind on change")
		ledFlag    = flag.Int("led", uno.DefaultPins.LED, "LED pin")
		buttonFlag = flag.Int("button", uno.DefaultPins.Button, "button pin")
		sketchFlag = flag.Bool("print-sketch", false, "print the Arduino sketch for the pin assignment and exit")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-cli] [-panel] [-led N] [-button N] [wiring-file]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [-cli] -watch <wiring-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() > 1 || (*watchFlag && (flag.NArg() != 1 || *panelFlag)) {
		flag.Usage()
	}

	// In watch mode the wiring file is read (and re-read) by the
	// watcher, which tolerates a broken file; everywhere else a bad
	// file is fatal here.
	pins := uno.Pins{LED: *ledFlag, Button: *buttonFlag}
	if flag.NArg() == 1 && !*watchFlag {
		p, err := readWiring(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		pins = p
	}
	if err := pins.Validate(); err != nil {
		log.Fatal(err)
	}

	if *sketchFlag {
		os.Stdout.WriteString(sketch(pins))
		return
	}

	var err error
	switch {
	case *watchFlag:
		err = watchMode(!*cliFlag, flag.Arg(0))
	case *panelFlag:
		err = panelMode(!*cliFlag, pins)
	default:
		err = run(!*cliFlag, pins)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// run starts a session and serves stdin commands until exit, with the
// board window open unless GUI features are disabled.
func run(gui bool, pins uno.Pins) error {
	r := uno.NewRunner(func(on bool) {
		log.Printf("led: %s", onOff(on))
	})
	if err := r.Start(pins); err != nil {
		return err
	}
	defer r.Stop()
	log.Printf("start %v", pins)

	exit := readCommands(r)
	if gui {
		g := uno.NewGUI(r)
		return g.Run(exit)
	}
	<-exit
	return nil
}

// readCommands serves commands from stdin on a goroutine, returning a
// channel that is closed on exit or end of input.
func readCommands(r *uno.Runner) <-chan bool {
	exit := make(chan bool)
	go func() {
		defer close(exit)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if doCommand(r, sc.Text()) {
				return
			}
		}
	}()
	return exit
}

// doCommand executes one front panel or stdin command and reports
// whether it requests exit.
func doCommand(r *uno.Runner, line string) (quit bool) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "":
	case "exit", "quit":
		return true
	case "press":
		r.SetButtonPressed(true)
	case "release":
		r.SetButtonPressed(false)
	case "tap":
		r.SetButtonPressed(true)
		time.AfterFunc(4*uno.TickRate, func() { r.SetButtonPressed(false) })
	case "start":
		if err := r.Start(r.Pins()); err != nil {
			log.Print(err)
			return
		}
		log.Printf("start %v", r.Pins())
	case "stop":
		r.Stop()
		log.Print("stop")
	case "led", "button":
		rebindPin(r, cmd, arg)
	case "no-led":
		rebindPin(r, "led", "none")
	case "no-button":
		rebindPin(r, "button", "none")
	case "pins":
		log.Printf("%v", r.Pins())
	case "avail":
		log.Printf("led: %v", r.AvailablePins(uno.RoleLED))
		log.Printf("button: %v", r.AvailablePins(uno.RoleButton))
	case "sketch":
		for _, l := range strings.Split(strings.TrimRight(sketch(r.Pins()), "\n"), "\n") {
			log.Print(l)
		}
	default:
		log.Printf("unknown command %q", cmd)
	}
	return false
}

func rebindPin(r *uno.Runner, role, arg string) {
	n := uno.NoPin
	if arg != "none" {
		var err error
		n, err = strconv.Atoi(arg)
		if err != nil {
			log.Printf("invalid pin %q", arg)
			return
		}
	}
	pins := r.Pins()
	if role == "led" {
		pins.LED = n
	} else {
		pins.Button = n
	}
	if err := r.Rebind(pins); err != nil {
		log.Print(err)
		return
	}
	log.Printf("rebind %v", pins)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
