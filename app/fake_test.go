package app

import (
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"fmradio/hal"
)

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Sleep(d time.Duration)   { c.t = c.t.Add(d) }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type lineLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLog) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *lineLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *lineLog) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type fakeLED struct{ on bool }

func (l *fakeLED) High() { l.on = true }
func (l *fakeLED) Low()  { l.on = false }

// fakePin is an input line with no edge interrupts.
type fakePin struct {
	mu    sync.Mutex
	name  string
	level bool
	pull  hal.GPIOPull
}

func (p *fakePin) Name() string { return p.name }
func (p *fakePin) Caps() hal.GPIOCaps {
	return hal.GPIOCapInput | hal.GPIOCapPullUp | hal.GPIOCapPullDown
}

func (p *fakePin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	if mode != hal.GPIOModeInput {
		return fmt.Errorf("pin %s: input only", p.name)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pull = pull
	p.level = pull == hal.GPIOPullUp
	return nil
}

func (p *fakePin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *fakePin) Write(bool) error { return hal.ErrNotImplemented }

func (p *fakePin) set(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// press drives an active-low button.
func (p *fakePin) press(down bool) { p.set(!down) }

type fakeGPIO struct{ pins []hal.GPIOPin }

func (g *fakeGPIO) PinCount() int { return len(g.pins) }
func (g *fakeGPIO) Pin(id int) hal.GPIOPin {
	if id < 0 || id >= len(g.pins) {
		return nil
	}
	return g.pins[id]
}

type fakeNetwork struct {
	apErr    error
	joinErr  error
	status   hal.LinkStatus
	addr     string
	joined   string
	statuses int
}

func (n *fakeNetwork) StartAccessPoint(ssid, password string) (string, error) {
	if n.apErr != nil {
		return "", n.apErr
	}
	return "192.168.4.1", nil
}

func (n *fakeNetwork) BeginStation(ssid, password string) error {
	if n.joinErr != nil {
		return n.joinErr
	}
	n.joined = ssid
	n.status = hal.LinkConnecting
	return nil
}

func (n *fakeNetwork) StationStatus() hal.LinkStatus {
	n.statuses++
	return n.status
}

func (n *fakeNetwork) StationAddr() string { return n.addr }

type memDisplay struct{ flushes int }

func (d *memDisplay) Size() (int16, int16)               { return 84, 48 }
func (d *memDisplay) SetPixel(x, y int16, c color.RGBA) {}
func (d *memDisplay) Display() error                     { d.flushes++; return nil }
func (d *memDisplay) ClearBuffer()                       {}

type fakeHAL struct {
	log   *lineLog
	led   *fakeLED
	pins  map[string]*fakePin
	gpio  *fakeGPIO
	disp  *memDisplay
	clock *fakeClock
	net   *fakeNetwork
}

func newFakeHAL() *fakeHAL {
	h := &fakeHAL{
		log:   &lineLog{},
		led:   &fakeLED{},
		pins:  map[string]*fakePin{},
		gpio:  &fakeGPIO{},
		disp:  &memDisplay{},
		clock: newFakeClock(),
		net:   &fakeNetwork{},
	}
	for _, name := range []string{"BTN_UP", "BTN_DOWN", "BTN_OK", "ENC_A", "ENC_B", "ENC_SW"} {
		p := &fakePin{name: name}
		h.pins[name] = p
		h.gpio.pins = append(h.gpio.pins, p)
	}
	return h
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) LED() hal.LED         { return h.led }
func (h *fakeHAL) GPIO() hal.GPIO       { return h.gpio }
func (h *fakeHAL) Display() hal.Display { return h.disp }
func (h *fakeHAL) I2C() hal.I2C         { return nil }
func (h *fakeHAL) Time() hal.Time       { return h.clock }
func (h *fakeHAL) Network() hal.Network { return h.net }
func (h *fakeHAL) Serial() hal.Serial   { return nil }
