// Package radio holds the receiver's state and the logic that mutates it:
// channel stepping with band wraparound, station seek, RDS merging and the
// button gesture and encoder decoders that feed it.
//
// Nothing in this package is safe for concurrent use except Encoder.Edge.
// The owner is expected to drive it from one loop.
package radio

import "time"

// Config collects the tunables of a Radio.
type Config struct {
	StartFrequency float64
	StartVolume    int
	Seek           SeekConfig
	RDSInterval    time.Duration
}

// Radio applies intents to the state and mirrors them onto the tuner.
type Radio struct {
	st    State
	tuner Tuner
	view  View
	log   Logger

	seeker *Seeker
	rds    *RDSAggregator
}

// New returns a Radio in the power-on state. sleep is used for the seek
// settle delay and may be nil.
func New(t Tuner, v View, l Logger, cfg Config, sleep func(time.Duration)) *Radio {
	if v == nil {
		v = nopView{}
	}
	if l == nil {
		l = nopLogger{}
	}
	st := NewState()
	if cfg.StartFrequency != 0 {
		st.Frequency = ClampFrequency(cfg.StartFrequency)
	}
	if cfg.StartVolume != 0 {
		st.Volume = clampVolume(cfg.StartVolume)
	}
	return &Radio{
		st:     st,
		tuner:  t,
		view:   v,
		log:    l,
		seeker: NewSeeker(t, cfg.Seek, sleep, l),
		rds:    NewRDSAggregator(t, cfg.RDSInterval, l),
	}
}

// State returns a copy of the current state.
func (r *Radio) State() State { return r.st }

// SetView replaces the renderer.
func (r *Radio) SetView(v View) {
	if v == nil {
		v = nopView{}
	}
	r.view = v
}

// Boot programs the tuner with the stored frequency and volume and switches
// the radio on.
func (r *Radio) Boot() {
	r.check("tune", r.tuner.SetFrequency(r.st.Frequency))
	r.check("volume", r.tuner.SetVolume(r.st.Volume))
	r.check("unmute", r.tuner.SetMute(false))
	r.st.Power = true
	logf(r.log, "radio: on at %.1f MHz, volume %d", r.st.Frequency, r.st.Volume)
	r.view.Refresh(r.st)
}

// Apply performs one intent and refreshes the view if the state may have
// changed. It reports whether the intent was a mutating one.
func (r *Radio) Apply(in Intent) bool {
	switch in {
	case StepUp, StepDown:
		if in == StepUp {
			r.st.Frequency = NextChannel(r.st.Frequency)
		} else {
			r.st.Frequency = PrevChannel(r.st.Frequency)
		}
		r.check("tune", r.tuner.SetFrequency(r.st.Frequency))

	case SeekUp, SeekDown:
		r.seeker.Seek(&r.st, in == SeekUp)

	case TogglePower:
		r.st.Power = !r.st.Power
		if r.st.Power {
			r.check("tune", r.tuner.SetFrequency(r.st.Frequency))
			r.check("unmute", r.tuner.SetMute(false))
		} else {
			r.check("mute", r.tuner.SetMute(true))
		}

	case VolumeUp, VolumeDown:
		v := r.st.Volume + 1
		if in == VolumeDown {
			v = r.st.Volume - 1
		}
		v = clampVolume(v)
		if v == r.st.Volume {
			return true
		}
		r.st.Volume = v
		r.check("volume", r.tuner.SetVolume(v))

	default:
		return false
	}

	r.view.Refresh(r.st)
	return true
}

// PollRDS runs the RDS aggregator and refreshes the view on change.
func (r *Radio) PollRDS(now time.Time) {
	if r.rds.Poll(&r.st, now) {
		r.view.Refresh(r.st)
	}
}

// Redraw forces a view refresh.
func (r *Radio) Redraw() { r.view.Refresh(r.st) }

func (r *Radio) check(op string, err error) {
	if err != nil {
		logf(r.log, "radio: %s: %v", op, err)
	}
}

func clampVolume(v int) int {
	if v < MinVolume {
		return MinVolume
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}
