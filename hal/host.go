//go:build !tinygo

package hal

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Panel geometry of the simulated Nokia 5110.
const (
	PanelWidth  = 84
	PanelHeight = 48
)

// Names of the simulator's input lines.
const (
	PinButtonUp   = "BTN_UP"
	PinButtonDown = "BTN_DOWN"
	PinButtonOK   = "BTN_OK"
	PinEncoderA   = "ENC_A"
	PinEncoderB   = "ENC_B"
	PinEncoderSW  = "ENC_SW"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	gpio   GPIO
	pins   map[string]*virtualPin
	fb     *hostFramebuffer
	disp   *fbDisplay
	kbd    *hostKeyboard
	t      hostTime
	net    *simNetwork
	serial Serial
}

// New returns a host HAL backed by a simulated tuner, a window-sized
// framebuffer and virtual button lines. Logs go to stderr so that stdout
// stays free for the serial console.
func New() HAL {
	return newHostHAL(os.Stderr)
}

func newHostHAL(logOut io.Writer) *hostHAL {
	logger := newHostLogger(logOut)
	t := hostTime{}
	led := &hostLED{logger: logger}

	pins := map[string]*virtualPin{}
	gpioPins := []GPIOPin{newLEDPin("LED", led)}
	for _, name := range []string{PinButtonUp, PinButtonDown, PinButtonOK, PinEncoderA, PinEncoderB, PinEncoderSW} {
		p := newVirtualPin(name, GPIOCapInput|GPIOCapPullUp|GPIOCapPullDown)
		pins[name] = p
		gpioPins = append(gpioPins, p)
	}

	fb := newHostFramebuffer(PanelWidth, PanelHeight)
	return &hostHAL{
		logger: logger,
		led:    led,
		gpio:   newVirtualGPIO(gpioPins),
		pins:   pins,
		fb:     fb,
		disp:   newFBDisplay(fb),
		kbd:    newHostKeyboard(pins),
		t:      t,
		net:    newSimNetwork(t.Now),
		serial: &hostSerial{r: os.Stdin, w: os.Stdout},
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) Display() Display { return h.disp }
func (h *hostHAL) I2C() I2C         { return nil }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Network() Network { return h.net }
func (h *hostHAL) Serial() Serial   { return h.serial }

// hostLogger turns "component: message" lines into structured events.
type hostLogger struct {
	mu  sync.Mutex
	log zerolog.Logger
}

func newHostLogger(w io.Writer) *hostLogger {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000", NoColor: !color}
	return &hostLogger{log: zerolog.New(out).With().Timestamp().Logger()}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if comp, msg, ok := strings.Cut(s, ": "); ok && comp != "" && !strings.ContainsAny(comp, " \t") {
		l.log.Info().Str("component", comp).Msg(msg)
		return
	}
	l.log.Info().Msg(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.on {
		return
	}
	l.on = true
	l.logger.WriteLineString("led: on")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on {
		return
	}
	l.on = false
	l.logger.WriteLineString("led: off")
}

type hostTime struct{}

func (hostTime) Now() time.Time        { return time.Now() }
func (hostTime) Sleep(d time.Duration) { time.Sleep(d) }
