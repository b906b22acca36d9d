package hal

import (
	"errors"
	"image/color"
	"io"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display is the status panel. It matches tinygo's drivers.Displayer plus a
// buffer clear, which is what the PCD8544 driver offers.
type Display interface {
	Size() (x, y int16)
	SetPixel(x, y int16, c color.RGBA)
	Display() error
	ClearBuffer()
}

// Time is the wall clock used for debounce and polling cadence.
type Time interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// I2C is a bus the tuner chip hangs off. It matches tinygo's drivers.I2C
// and periph's i2c.Bus.
type I2C interface {
	Tx(addr uint16, w, r []byte) error
}

// Serial is a byte stream to a host computer.
type Serial interface {
	io.Reader
	io.Writer
}

// LinkStatus is the state of a station-mode Wi-Fi association.
type LinkStatus uint8

const (
	LinkIdle LinkStatus = iota
	LinkConnecting
	LinkConnected
	LinkFailed
)

func (s LinkStatus) String() string {
	switch s {
	case LinkIdle:
		return "idle"
	case LinkConnecting:
		return "connecting"
	case LinkConnected:
		return "connected"
	case LinkFailed:
		return "failed"
	}
	return "unknown"
}

// Network is the Wi-Fi radio: an always-on access point plus an optional
// station association.
type Network interface {
	StartAccessPoint(ssid, password string) (addr string, err error)
	BeginStation(ssid, password string) error
	StationStatus() LinkStatus
	StationAddr() string
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	GPIO() GPIO
	Display() Display
	// I2C returns nil when no tuner bus is wired, in which case the
	// simulated tuner is used.
	I2C() I2C
	Time() Time
	Network() Network
	Serial() Serial
}
