package radio

import "time"

// DefaultRDSInterval is how often the tuner is asked for RDS data.
const DefaultRDSInterval = 500 * time.Millisecond

// RDSAggregator is the only writer of State.RDS. It drops stale data when the
// channel changes and copies fresh data from the tuner at a fixed cadence.
type RDSAggregator struct {
	tuner    Tuner
	interval time.Duration
	log      Logger

	lastPoll time.Time
	polled   bool
	lastFreq float64
	tracking bool
}

// NewRDSAggregator returns an aggregator polling every interval.
func NewRDSAggregator(t Tuner, interval time.Duration, l Logger) *RDSAggregator {
	if interval <= 0 {
		interval = DefaultRDSInterval
	}
	if l == nil {
		l = nopLogger{}
	}
	return &RDSAggregator{tuner: t, interval: interval, log: l}
}

// Poll is called on every loop iteration. It reports whether st.RDS changed.
func (a *RDSAggregator) Poll(st *State, now time.Time) bool {
	changed := false
	if !a.tracking || !SameChannel(a.lastFreq, st.Frequency) {
		if !st.RDS.IsZero() {
			st.RDS = RDSInfo{}
			changed = true
		}
		a.lastFreq = st.Frequency
		a.tracking = true
	}

	if a.polled && now.Sub(a.lastPoll) < a.interval {
		return changed
	}
	a.lastPoll = now
	a.polled = true

	ready, err := a.tuner.RDSReady()
	if err != nil {
		logf(a.log, "rds: status: %v", err)
		return changed
	}
	if !ready {
		return changed
	}
	station, err := a.tuner.RDS()
	if err != nil {
		logf(a.log, "rds: read: %v", err)
		return changed
	}

	info := rdsInfoFrom(station)
	if info == st.RDS {
		return changed
	}
	st.RDS = info
	return true
}
