package app

import (
	"time"

	"fmradio/config"
	"fmradio/hal"
	"fmradio/radio"
)

// button is one push button line.
type button struct {
	ctrl radio.Control
	pins []hal.GPIOPin
}

// controls samples the button lines and the encoder once per step.
type controls struct {
	buttons    []button
	activeHigh bool

	enc        *radio.Encoder
	encA, encB hal.GPIOPin
	// polled is set when the encoder lines cannot interrupt and have to
	// be read every step instead.
	polled bool

	log hal.Logger
}

func bindControls(g hal.GPIO, pins config.PinsConfig, detent int, log hal.Logger) *controls {
	c := &controls{activeHigh: pins.ActiveHigh, log: log}
	pull := hal.GPIOPullUp
	if pins.ActiveHigh {
		pull = hal.GPIOPullDown
	}

	input := func(name string) hal.GPIOPin {
		if name == "" {
			return nil
		}
		p := hal.FindPin(g, name)
		if p == nil {
			logf(log, "controls: pin %s not found", name)
			return nil
		}
		if err := p.Configure(hal.GPIOModeInput, pull); err != nil {
			logf(log, "controls: %v", err)
			return nil
		}
		return p
	}

	for _, b := range []struct {
		ctrl  radio.Control
		names []string
	}{
		{radio.ControlUp, []string{pins.Up}},
		{radio.ControlDown, []string{pins.Down}},
		// The encoder's push switch doubles as the power button.
		{radio.ControlToggle, []string{pins.Toggle, pins.EncoderSwitch}},
	} {
		var lines []hal.GPIOPin
		for _, name := range b.names {
			if p := input(name); p != nil {
				lines = append(lines, p)
			}
		}
		if len(lines) > 0 {
			c.buttons = append(c.buttons, button{ctrl: b.ctrl, pins: lines})
		}
	}

	c.encA = input(pins.EncoderA)
	c.encB = input(pins.EncoderB)
	if c.encA != nil && c.encB != nil {
		c.enc = radio.NewEncoder(detent)
		c.enc.Reset(c.levels())
		c.polled = !c.watch()
	}
	return c
}

// watch installs edge callbacks on both encoder lines.
func (c *controls) watch() bool {
	wa, okA := c.encA.(hal.GPIOEdgeWatcher)
	wb, okB := c.encB.(hal.GPIOEdgeWatcher)
	if !okA || !okB {
		return false
	}
	edge := func(bool) { c.enc.Edge(c.levels()) }
	if err := wa.WatchEdges(edge); err != nil {
		logf(c.log, "controls: encoder: %v", err)
		return false
	}
	if err := wb.WatchEdges(edge); err != nil {
		logf(c.log, "controls: encoder: %v", err)
		return false
	}
	return true
}

func (c *controls) levels() (a, b bool) {
	a, _ = c.encA.Read()
	b, _ = c.encB.Read()
	return a, b
}

func (c *controls) active(p hal.GPIOPin) bool {
	level, err := p.Read()
	if err != nil {
		return false
	}
	return level == c.activeHigh
}

// poll samples every control and hands each intent to apply before the
// next control is read. now is read per sample because apply may block for
// a whole seek. Encoder steps come last.
func (c *controls) poll(g *radio.Gestures, now func() time.Time, apply func(radio.Intent)) {
	for _, b := range c.buttons {
		pressed := false
		for _, p := range b.pins {
			if c.active(p) {
				pressed = true
				break
			}
		}
		if in, ok := g.Sample(b.ctrl, pressed, now()); ok {
			apply(in)
		}
	}

	if c.enc == nil {
		return
	}
	if c.polled {
		c.enc.Edge(c.levels())
	}
	steps := c.enc.Take()
	for ; steps > 0; steps-- {
		apply(radio.StepUp)
	}
	for ; steps < 0; steps++ {
		apply(radio.StepDown)
	}
}
