// Package app wires the radio to a HAL and runs its main loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fmradio/config"
	"fmradio/hal"
	"fmradio/internal/buildinfo"
	"fmradio/present"
	"fmradio/radio"
	"fmradio/radio/rda5807"
	"fmradio/radio/sim"
)

// ErrStopped is returned by Submit after the loop has been stopped.
var ErrStopped = errors.New("app: stopped")

type request struct {
	intent radio.Intent
	reply  chan radio.State
}

// System owns the radio state. All mutation happens inside Step; other
// goroutines go through Submit.
type System struct {
	h   hal.HAL
	cfg *config.Config
	log hal.Logger

	radio    *radio.Radio
	screen   *present.Screen
	gestures *radio.Gestures
	controls *controls
	link     *linkState
	ledOn    bool

	reqs    chan request
	stopped chan struct{}
	now     func() time.Time
}

// NewSystem picks a tuner, boots the radio and starts the access point.
// It uses the RDA5807M when the HAL has an I2C bus and the simulated band
// otherwise.
func NewSystem(h hal.HAL, cfg *config.Config) (*System, error) {
	if h == nil {
		return nil, errors.New("app: nil HAL")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	log := h.Logger()
	logf(log, "fmradio: build %s", buildinfo.Long())

	tuner, err := newTuner(h, cfg)
	if err != nil {
		return nil, err
	}

	clock := h.Time()
	s := &System{
		h:        h,
		cfg:      cfg,
		log:      log,
		gestures: radio.NewGestures(cfg.GestureSettings()),
		reqs:     make(chan request),
		stopped:  make(chan struct{}),
		now:      clock.Now,
	}
	if d := h.Display(); d != nil {
		s.screen = present.NewScreen(d, log)
	}

	var view radio.View
	if s.screen != nil {
		view = s.screen
	}
	s.radio = radio.New(tuner, view, log, cfg.RadioSettings(), clock.Sleep)

	s.controls = bindControls(h.GPIO(), cfg.Pins, cfg.Radio.EncoderDetent, log)
	s.link = newLinkState(h.Network(), cfg.WiFi, log)
	if addr := s.link.startAccessPoint(); addr != "" && s.screen != nil {
		s.screen.SetAccessPoint(addr)
	}

	s.radio.Boot()
	s.syncLED()
	return s, nil
}

func newTuner(h hal.HAL, cfg *config.Config) (radio.Tuner, error) {
	bus := h.I2C()
	if bus == nil {
		t := sim.New(cfg.Transmitters())
		t.NoiseFloor = cfg.Radio.NoiseFloor
		logf(h.Logger(), "tuner: simulated band with %d stations", len(cfg.Stations))
		return t, nil
	}

	dev := rda5807.New(bus)
	if err := dev.Configure(rda5807.Config{Volume: cfg.Radio.StartVolume}); err != nil {
		return nil, fmt.Errorf("app: tuner: %w", err)
	}
	if id, err := dev.ChipID(); err == nil {
		logf(h.Logger(), "tuner: rda5807 chip id %04x", id)
	}
	return dev, nil
}

// New returns the step function for a HAL runner. A startup failure is
// logged and returned from every step.
func New(h hal.HAL, cfg *config.Config) func() error {
	s, err := NewSystem(h, cfg)
	if err != nil {
		logf(h.Logger(), "app: %v", err)
		return func() error { return err }
	}
	return s.Step
}

// Run drives the loop forever at the main loop rate (TinyGo entrypoint).
func Run(h hal.HAL, cfg *config.Config, serve func(*System)) {
	defer func() {
		if v := recover(); v != nil {
			showPanic(h, v)
			select {}
		}
	}()

	s, err := NewSystem(h, cfg)
	if err != nil {
		showPanic(h, err)
		select {}
	}
	if serve != nil {
		serve(s)
	}
	clock := h.Time()
	for {
		if err := s.Step(); err != nil {
			logf(h.Logger(), "app: %v", err)
		}
		clock.Sleep(LoopPeriod)
	}
}

// LoopPeriod is the pause between two steps on boards without a runner.
const LoopPeriod = 10 * time.Millisecond

// Step runs one main loop iteration: at most one control request, the
// Wi-Fi join, the RDS poll and then the buttons and encoder.
func (s *System) Step() error {
	select {
	case req := <-s.reqs:
		s.apply(req.intent)
		req.reply <- s.radio.State()
	default:
	}

	now := s.now()
	s.link.step(now)
	s.radio.PollRDS(now)

	s.controls.poll(s.gestures, s.now, s.apply)
	return nil
}

func (s *System) apply(in radio.Intent) {
	if in.Mutates() {
		logf(s.log, "radio: %s", in)
	}
	s.radio.Apply(in)
	s.syncLED()
}

// syncLED lights the status LED while the radio is on.
func (s *System) syncLED() {
	led := s.h.LED()
	if led == nil {
		return
	}
	on := s.radio.State().Power
	if on == s.ledOn {
		return
	}
	s.ledOn = on
	if on {
		led.High()
	} else {
		led.Low()
	}
}

// Submit hands an intent to the loop and waits for the resulting state.
// Refresh only reads.
func (s *System) Submit(ctx context.Context, in radio.Intent) (radio.State, error) {
	req := request{intent: in, reply: make(chan radio.State, 1)}
	select {
	case s.reqs <- req:
	case <-ctx.Done():
		return radio.State{}, ctx.Err()
	case <-s.stopped:
		return radio.State{}, ErrStopped
	}
	select {
	case st := <-req.reply:
		return st, nil
	case <-ctx.Done():
		return radio.State{}, ctx.Err()
	}
}

// Stop makes pending and future Submit calls fail.
func (s *System) Stop() {
	select {
	case <-s.stopped:
	default:
		close(s.stopped)
	}
}

// State returns the current state. It must only be called from the loop
// goroutine; others use Submit with radio.Refresh.
func (s *System) State() radio.State { return s.radio.State() }

func logf(l hal.Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf(format, args...))
}
