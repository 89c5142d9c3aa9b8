package uno

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// GUI displays the board in a window: the LED lamp, the push button,
// and the current pin assignment. Holding any mouse button or the
// space bar presses the simulated button.
type GUI struct {
	run *Runner

	buf screen.Buffer
	tex screen.Texture
}

func NewGUI(r *Runner) *GUI {
	return &GUI{run: r}
}

// Board view dimensions; the window scales the view to fit.
const (
	boardW = 240
	boardH = 160
)

// Run drives the window until exit is closed or the window is
// dismissed. The view repaints at TickRate, matching the derivation
// loop cadence.
func (g *GUI) Run(exit <-chan bool) error {
	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  "unosim",
			Width:  boardW * 3,
			Height: boardH * 3,
		})
		if err != nil {
			log.Fatal(err)
		}
		defer w.Release()

		type update struct{}
		go func() {
			t := time.NewTicker(TickRate)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					w.Send(update{})
				case <-exit:
					return
				}
			}
		}()

		defer g.release()

		var sz size.Event
		for {
			e := w.NextEvent()

			select {
			case <-exit:
				return
			default:
			}

			switch e := e.(type) {
			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case mouse.Event:
				if e.Button >= 1 && e.Button <= 3 {
					g.run.SetButtonPressed(e.Direction == mouse.DirPress)
				}

			case key.Event:
				if e.Code == key.CodeSpacebar && e.Direction != key.DirNone {
					g.run.SetButtonPressed(e.Direction == key.DirPress)
				}

			case paint.Event:

			case update:
				if err := g.draw(s); err != nil {
					log.Fatalf("draw: %v", err)
				}
				g.tex.Upload(image.Point{}, g.buf, g.buf.Bounds())
				w.Scale(sz.Bounds(), g.tex, g.tex.Bounds(), draw.Src, nil)
				w.Publish()

			case error:
				log.Print(e)
			}
		}
	})
	return nil
}

var (
	boardColor   = color.RGBA{0x0b, 0x51, 0x55, 0xff}
	ledOnColor   = color.RGBA{0xff, 0x32, 0x28, 0xff}
	ledOffColor  = color.RGBA{0x46, 0x12, 0x10, 0xff}
	buttonUp     = color.RGBA{0x30, 0x30, 0x34, 0xff}
	buttonDown   = color.RGBA{0x84, 0x84, 0x8c, 0xff}
	bezelColor   = color.RGBA{0x1c, 0x1c, 0x1c, 0xff}
	labelColor   = color.RGBA{0xe8, 0xe8, 0xe0, 0xff}
	stoppedColor = color.RGBA{0x9a, 0x9a, 0x92, 0xff}
)

func (g *GUI) draw(s screen.Screen) (err error) {
	dim := image.Point{boardW, boardH}
	if g.buf == nil {
		g.release()
		g.buf, err = s.NewBuffer(dim)
		if err != nil {
			return
		}
		g.tex, err = s.NewTexture(dim)
		if err != nil {
			return
		}
	}

	var (
		pins    = g.run.Pins()
		on      = g.run.LEDOn()
		pressed = g.run.ButtonPressed()
		m       = g.buf.RGBA()
	)

	fill(m, m.Bounds(), boardColor)

	// LED lamp with bezel.
	fill(m, image.Rect(46, 36, 98, 88), bezelColor)
	c := ledOffColor
	if on {
		c = ledOnColor
	}
	fill(m, image.Rect(50, 40, 94, 84), c)
	label(m, 46, 104, "LED "+pinName(pins.LED), labelColor)

	// Push button with bezel.
	fill(m, image.Rect(142, 36, 194, 88), bezelColor)
	c = buttonUp
	if pressed {
		c = buttonDown
	}
	fill(m, image.Rect(146, 40, 190, 84), c)
	label(m, 142, 104, "BUTTON "+pinName(pins.Button), labelColor)

	if g.run.Running() {
		label(m, 46, 140, "click or space to press", stoppedColor)
	} else {
		label(m, 46, 140, "stopped", stoppedColor)
	}
	return
}

func (g *GUI) release() {
	if g.tex != nil {
		g.tex.Release()
	}
	if g.buf != nil {
		g.buf.Release()
	}
}

func fill(m *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(m, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func label(m *image.RGBA, x, y int, s string, c color.RGBA) {
	d := font.Drawer{
		Dst:  m,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
