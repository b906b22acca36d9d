//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"time"
)

type tinyGoTime struct{}

func (tinyGoTime) Now() time.Time        { return time.Now() }
func (tinyGoTime) Sleep(d time.Duration) { time.Sleep(d) }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// uartSerial reads the command line. Read blocks until at least one byte
// is buffered so that line readers behave as on a host.
type uartSerial struct {
	uart *machine.UART
}

func (s *uartSerial) Read(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	if len(p) == 0 {
		return 0, nil
	}
	for s.uart.Buffered() == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	return s.uart.Read(p)
}

func (s *uartSerial) Write(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.Write(p)
}

// machinePin is a button or encoder line. Edge callbacks run in interrupt
// context.
type machinePin struct {
	name    string
	pin     machine.Pin
	mode    GPIOMode
	pull    GPIOPull
	watches []func(level bool)
}

func (p *machinePin) Name() string { return p.name }

func (p *machinePin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	cfg := machine.PinConfig{Mode: machine.PinInput}
	switch {
	case mode == GPIOModeOutput:
		cfg.Mode = machine.PinOutput
	case pull == GPIOPullUp:
		cfg.Mode = machine.PinInputPullup
	case pull == GPIOPullDown:
		cfg.Mode = machine.PinInputPulldown
	}
	p.pin.Configure(cfg)
	p.mode = mode
	p.pull = pull
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.pin.Set(level)
	return nil
}

func (p *machinePin) WatchEdges(fn func(level bool)) error {
	if fn == nil {
		return fmt.Errorf("gpio: pin %s: nil edge callback", p.name)
	}
	p.watches = append(p.watches, fn)
	if len(p.watches) > 1 {
		return nil
	}
	return p.pin.SetInterrupt(machine.PinToggle, func(pin machine.Pin) {
		level := pin.Get()
		for _, w := range p.watches {
			w(level)
		}
	})
}
