package radio

import "time"

// Seek defaults.
const (
	DefaultSeekThreshold = 30
	DefaultSeekSettle    = 50 * time.Millisecond
	DefaultSeekMaxSteps  = 2050

	// minSweepSteps is how far a sweep must travel before arriving back at
	// the start frequency counts as having covered the whole band.
	minSweepSteps = 10
)

// SeekConfig tunes the station search.
type SeekConfig struct {
	// Threshold is the RSSI a channel must exceed to stop the sweep.
	Threshold int
	// Settle is the delay between tuning and reading RSSI.
	Settle time.Duration
	// MaxSteps bounds the sweep regardless of band wraparound.
	MaxSteps int
}

func (c *SeekConfig) applyDefaults() {
	if c.Threshold == 0 {
		c.Threshold = DefaultSeekThreshold
	}
	if c.Settle == 0 {
		c.Settle = DefaultSeekSettle
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = DefaultSeekMaxSteps
	}
}

// Seeker sweeps the band for the next channel with usable signal.
type Seeker struct {
	tuner Tuner
	cfg   SeekConfig
	sleep func(time.Duration)
	log   Logger
}

// NewSeeker returns a Seeker. A nil sleep uses time.Sleep.
func NewSeeker(t Tuner, cfg SeekConfig, sleep func(time.Duration), l Logger) *Seeker {
	cfg.applyDefaults()
	if sleep == nil {
		sleep = time.Sleep
	}
	if l == nil {
		l = nopLogger{}
	}
	return &Seeker{tuner: t, cfg: cfg, sleep: sleep, log: l}
}

// Seek moves st.Frequency to the next channel in the given direction whose
// RSSI is above the threshold. If the sweep comes back around to where it
// started, or runs out of steps, the original frequency is restored on both
// the tuner and st and Seek returns false.
//
// Seek blocks for up to MaxSteps settle delays.
func (s *Seeker) Seek(st *State, up bool) bool {
	start := st.Frequency
	trial := start

	for step := 1; step <= s.cfg.MaxSteps; step++ {
		if up {
			trial = NextChannel(trial)
		} else {
			trial = PrevChannel(trial)
		}
		if step > minSweepSteps && SameChannel(trial, start) {
			break
		}

		if err := s.tuner.SetFrequency(trial); err != nil {
			logf(s.log, "seek: tune %.1f: %v", trial, err)
		}
		s.sleep(s.cfg.Settle)

		rssi, err := s.tuner.RSSI()
		if err != nil {
			logf(s.log, "seek: rssi %.1f: %v", trial, err)
			continue
		}
		if rssi > s.cfg.Threshold {
			st.Frequency = trial
			logf(s.log, "seek: found %.1f MHz rssi=%d", trial, rssi)
			return true
		}
	}

	if err := s.tuner.SetFrequency(start); err != nil {
		logf(s.log, "seek: restore %.1f: %v", start, err)
	}
	st.Frequency = start
	logf(s.log, "seek: no station found, back to %.1f MHz", start)
	return false
}
