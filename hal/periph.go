//go:build !tinygo

package hal

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// PeriphConfig selects the hardware of a Linux board.
type PeriphConfig struct {
	// I2CBus names the tuner's bus, "" for the first one found.
	I2CBus string
	// Pins lists the GPIO lines to expose, by periph name such as "GPIO17".
	Pins []string
	// LED is the status LED line; empty keeps a log-only LED.
	LED string
}

// PeriphHAL drives an RDA5807M and buttons attached to a Linux single-board
// computer. The panel is an off-screen framebuffer.
type PeriphHAL struct {
	logger *hostLogger
	led    LED
	gpio   GPIO
	pins   []*periphPin
	bus    i2c.BusCloser
	disp   *fbDisplay
	t      hostTime
	net    *osNetwork
	serial Serial
}

// NewPeriph initialises periph's host drivers and opens the configured
// bus and lines.
func NewPeriph(cfg PeriphConfig) (*PeriphHAL, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("periph: open i2c %q: %w", cfg.I2CBus, err)
	}

	logger := newHostLogger(os.Stderr)
	h := &PeriphHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		bus:    bus,
		disp:   newFBDisplay(newHostFramebuffer(PanelWidth, PanelHeight)),
		net:    &osNetwork{},
		serial: &hostSerial{r: os.Stdin, w: os.Stdout},
	}

	var gpioPins []GPIOPin
	for _, name := range cfg.Pins {
		p := gpioreg.ByName(name)
		if p == nil {
			h.Close()
			return nil, fmt.Errorf("periph: pin %s not found", name)
		}
		pp := &periphPin{p: p, done: make(chan struct{})}
		h.pins = append(h.pins, pp)
		gpioPins = append(gpioPins, pp)
	}
	if cfg.LED != "" {
		p := gpioreg.ByName(cfg.LED)
		if p == nil {
			h.Close()
			return nil, fmt.Errorf("periph: led pin %s not found", cfg.LED)
		}
		led := &periphLED{p: p}
		led.Low()
		h.led = led
		gpioPins = append(gpioPins, newLEDPin("LED", led))
	}
	h.gpio = newVirtualGPIO(gpioPins)
	return h, nil
}

func (h *PeriphHAL) Logger() Logger   { return h.logger }
func (h *PeriphHAL) LED() LED         { return h.led }
func (h *PeriphHAL) GPIO() GPIO       { return h.gpio }
func (h *PeriphHAL) Display() Display { return h.disp }
func (h *PeriphHAL) I2C() I2C         { return h.bus }
func (h *PeriphHAL) Time() Time       { return h.t }
func (h *PeriphHAL) Network() Network { return h.net }
func (h *PeriphHAL) Serial() Serial   { return h.serial }

// Close stops edge watchers, releases the lines and closes the bus.
func (h *PeriphHAL) Close() error {
	var err error
	for _, p := range h.pins {
		err = multierr.Append(err, p.Close())
	}
	if h.bus != nil {
		err = multierr.Append(err, h.bus.Close())
	}
	return err
}

type periphLED struct {
	p gpio.PinIO
}

func (l *periphLED) High() { _ = l.p.Out(gpio.High) }
func (l *periphLED) Low()  { _ = l.p.Out(gpio.Low) }

// periphPin adapts a periph line. Edge callbacks run on a goroutine that
// blocks in WaitForEdge.
type periphPin struct {
	p gpio.PinIO

	mu       sync.Mutex
	pull     gpio.Pull
	watches  []func(level bool)
	watching bool
	done     chan struct{}
	closed   bool
}

func (p *periphPin) Name() string { return p.p.Name() }

func (p *periphPin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *periphPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch mode {
	case GPIOModeInput:
		p.pull = periphPull(pull)
		edge := gpio.NoEdge
		if p.watching {
			edge = gpio.BothEdges
		}
		return p.p.In(p.pull, edge)
	case GPIOModeOutput:
		return p.p.Out(gpio.Low)
	}
	return fmt.Errorf("gpio: pin %s: invalid mode", p.p.Name())
}

func (p *periphPin) Read() (bool, error) {
	return p.p.Read() == gpio.High, nil
}

func (p *periphPin) Write(level bool) error {
	return p.p.Out(gpio.Level(level))
}

func (p *periphPin) WatchEdges(fn func(level bool)) error {
	if fn == nil {
		return fmt.Errorf("gpio: pin %s: nil edge callback", p.p.Name())
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watches = append(p.watches, fn)
	if p.watching {
		return nil
	}
	if err := p.p.In(p.pull, gpio.BothEdges); err != nil {
		return fmt.Errorf("gpio: pin %s: edge detection: %w", p.p.Name(), err)
	}
	p.watching = true
	go p.watch()
	return nil
}

func (p *periphPin) watch() {
	for {
		select {
		case <-p.done:
			return
		default:
		}
		if !p.p.WaitForEdge(100 * time.Millisecond) {
			continue
		}
		level := p.p.Read() == gpio.High
		p.mu.Lock()
		watches := p.watches
		p.mu.Unlock()
		for _, fn := range watches {
			fn(level)
		}
	}
}

func (p *periphPin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	return p.p.Halt()
}

func periphPull(pull GPIOPull) gpio.Pull {
	switch pull {
	case GPIOPullUp:
		return gpio.PullUp
	case GPIOPullDown:
		return gpio.PullDown
	}
	return gpio.Float
}

// osNetwork reports the Linux host's own connectivity. The OS owns the
// Wi-Fi radio, so there is no access point to start.
type osNetwork struct {
	mu   sync.Mutex
	addr string
}

func (n *osNetwork) StartAccessPoint(ssid, password string) (string, error) {
	_ = ssid
	_ = password
	return "", ErrNotImplemented
}

func (n *osNetwork) BeginStation(ssid, password string) error {
	_ = ssid
	_ = password
	return nil
}

func (n *osNetwork) StationStatus() LinkStatus {
	addr := firstIPv4()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.addr = addr
	if addr == "" {
		return LinkFailed
	}
	return LinkConnected
}

func (n *osNetwork) StationAddr() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.addr
}

func firstIPv4() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipn, ok := a.(*net.IPNet); ok && ipn.IP.To4() != nil {
				return ipn.IP.String()
			}
		}
	}
	return ""
}
