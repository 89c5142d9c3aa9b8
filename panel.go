package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/unosim/avr"
	"github.com/nf/unosim/uno"
)

// panelMode runs the interactive front panel: a register watch view,
// a log view, the generated sketch, a state bar showing the LED and
// button, and a command input field. With gui enabled the board
// window runs alongside.
func panelMode(gui bool, pins uno.Pins) error {
	p := newPanel()
	r := uno.NewRunner(p.StateFunc)
	p.run = r
	log.SetPrefix("")
	log.SetOutput(p.log)
	exit := make(chan bool)
	go func() {
		if err := p.Run(); err != nil {
			log.Fatalf("panel: %v", err)
		}
		log.SetOutput(os.Stderr)
		log.SetPrefix("unosim: ")
		close(exit)
	}()

	if err := r.Start(pins); err != nil {
		return err
	}
	defer r.Stop()
	log.Printf("start %v", pins)
	p.refresh()

	if gui {
		g := uno.NewGUI(r)
		return g.Run(exit)
	}
	<-exit
	return nil
}

type panel struct {
	run *uno.Runner

	log   *tview.TextView
	regs  *tview.TextView
	code  *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application
}

func newPanel() *panel {
	p := &panel{
		log: tview.NewTextView().
			SetMaxLines(1000),
		regs: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		code: tview.NewTextView().
			SetWrap(false),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	p.log.SetChangedFunc(func() { p.app.Draw() })
	p.regs.SetBackgroundColor(tcell.ColorDarkBlue)
	p.state.SetBackgroundColor(tcell.ColorDarkGrey)
	p.cols.
		AddItem(p.regs, 10, 0, false).
		AddItem(p.log, 0, 2, false).
		AddItem(p.code, 0, 1, false)
	p.rows.
		AddItem(p.cols, 0, 1, false).
		AddItem(p.state, 3, 0, false).
		AddItem(p.input, 1, 0, true)
	p.app.SetRoot(p.rows, true)

	p.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if cmd, arg, ok := strings.Cut(t, " "); ok {
			switch cmd {
			case "led", "button":
				role := uno.RoleLED
				if cmd == "button" {
					role = uno.RoleButton
				}
				for _, n := range p.run.AvailablePins(role) {
					s := strconv.Itoa(n)
					if strings.HasPrefix(s, arg) {
						entries = append(entries, cmd+" "+s)
					}
				}
			}
		}
		return
	})
	p.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			p.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	p.input.SetDoneFunc(func(k tcell.Key) {
		if k != tcell.KeyEnter {
			return
		}
		cmd := p.input.GetText()
		if cmd == "" {
			return
		}
		p.input.SetText("")
		if doCommand(p.run, cmd) {
			p.app.Stop()
			return
		}
		p.refresh()
	})
	return p
}

func (p *panel) Run() error { return p.app.Run() }

// StateFunc receives LED level changes from the observation bridge.
func (p *panel) StateFunc(on bool) {
	log.Printf("led: %s", onOff(on))
	p.refresh()
}

// refresh redraws the register watch, sketch and state views from the
// current simulation state.
func (p *panel) refresh() {
	var (
		portB, portD = p.run.Registers()
		pins         = p.run.Pins()
		running      = p.run.Running()
		on           = p.run.LEDOn()
		pressed      = p.run.ButtonPressed()
	)
	p.app.QueueUpdateDraw(func() {
		switch {
		case !running:
			p.state.SetTextColor(tcell.ColorBlack)
			p.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case on:
			p.state.SetTextColor(tcell.ColorBlack)
			p.state.SetBackgroundColor(tcell.ColorGreen)
		default:
			p.state.SetTextColor(tcell.ColorWhite)
			p.state.SetBackgroundColor(tcell.ColorDarkBlue)
		}
		p.state.SetText(stateMsg(running, on, pressed, pins))
		p.regs.SetText(regsContent(portB, portD))
		p.code.SetText(sketch(pins))
	})
}

func stateMsg(running, on, pressed bool, pins uno.Pins) string {
	if !running {
		return fmt.Sprintf("[stopped]\n%v", pins)
	}
	btn := "released"
	if pressed {
		btn = "pressed"
	}
	return fmt.Sprintf("led %s  button %s\n%v", onOff(on), btn, pins)
}

func regsContent(portB, portD avr.Port) string {
	var b strings.Builder
	fmt.Fprintf(&b, "DDRB  %.2x\n", portB.DDR)
	fmt.Fprintf(&b, "PORTB %.2x\n", portB.PORT)
	fmt.Fprintf(&b, "PINB  %.2x\n", portB.PIN)
	fmt.Fprintf(&b, "DDRD  %.2x\n", portD.DDR)
	fmt.Fprintf(&b, "PORTD %.2x\n", portD.PORT)
	fmt.Fprintf(&b, "PIND  %.2x", portD.PIN)
	return b.String()
}
