package radio

import "time"

// Gesture timing defaults.
const (
	DefaultDebounce  = 200 * time.Millisecond
	DefaultLongPress = 1000 * time.Millisecond
)

// Control identifies a physical push button.
type Control uint8

const (
	ControlUp Control = iota
	ControlDown
	ControlToggle
	numControls
)

func (c Control) String() string {
	switch c {
	case ControlUp:
		return "up"
	case ControlDown:
		return "down"
	case ControlToggle:
		return "toggle"
	}
	return "unknown"
}

type pressState uint8

const (
	released pressState = iota
	pressed
	// held means the press already produced its intent and the button has
	// not been let go yet.
	held
)

type button struct {
	state pressState
	start time.Time
}

// GestureConfig sets the debounce lockout and the long-press threshold.
type GestureConfig struct {
	Debounce  time.Duration
	LongPress time.Duration
}

// Gestures turns sampled button levels into intents. All buttons share one
// debounce lockout: a press is only recognised once Debounce has passed
// since the last recognised press or release of any button.
//
// Sample must be called from a single goroutine.
type Gestures struct {
	cfg     GestureConfig
	buttons [numControls]button
	last    time.Time
	acted   bool
}

// NewGestures returns a detector with zero durations replaced by defaults.
func NewGestures(cfg GestureConfig) *Gestures {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.LongPress <= 0 {
		cfg.LongPress = DefaultLongPress
	}
	return &Gestures{cfg: cfg}
}

func (g *Gestures) lockedOut(now time.Time) bool {
	return g.acted && now.Sub(g.last) <= g.cfg.Debounce
}

func (g *Gestures) mark(now time.Time) {
	g.last = now
	g.acted = true
}

// Sample feeds one reading of control c. active is true while the button is
// pushed. It returns the intent produced by this sample, if any.
//
// Up and down emit a step when released before LongPress and a seek once
// held past it. Toggle emits as soon as the press is recognised.
func (g *Gestures) Sample(c Control, active bool, now time.Time) (Intent, bool) {
	if c >= numControls {
		return IntentNone, false
	}
	b := &g.buttons[c]

	switch b.state {
	case released:
		if !active || g.lockedOut(now) {
			return IntentNone, false
		}
		g.mark(now)
		if c == ControlToggle {
			b.state = held
			return TogglePower, true
		}
		b.state = pressed
		b.start = now
		return IntentNone, false

	case pressed:
		if active {
			if now.Sub(b.start) > g.cfg.LongPress {
				b.state = held
				g.mark(now)
				if c == ControlUp {
					return SeekUp, true
				}
				return SeekDown, true
			}
			return IntentNone, false
		}
		b.state = released
		g.mark(now)
		if c == ControlUp {
			return StepUp, true
		}
		return StepDown, true

	case held:
		if !active {
			b.state = released
			g.mark(now)
		}
	}
	return IntentNone, false
}

// Busy reports whether any button is between press and release.
func (g *Gestures) Busy() bool {
	for _, b := range g.buttons {
		if b.state != released {
			return true
		}
	}
	return false
}
