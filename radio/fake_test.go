package radio

import (
	"fmt"
	"time"

	"fmradio/radio/rds"
)

type fakeTuner struct {
	calls []string
	freqs []float64
	freq  float64
	muted bool
	vol   int

	rssi func(f float64) int

	ready    bool
	station  rds.Station
	rdsCalls int
	err      error
}

func (f *fakeTuner) SetFrequency(mhz float64) error {
	f.freq = mhz
	f.freqs = append(f.freqs, mhz)
	f.calls = append(f.calls, fmt.Sprintf("freq %.1f", mhz))
	return nil
}

func (f *fakeTuner) SetMute(mute bool) error {
	f.muted = mute
	f.calls = append(f.calls, fmt.Sprintf("mute %v", mute))
	return nil
}

func (f *fakeTuner) SetVolume(v int) error {
	f.vol = v
	f.calls = append(f.calls, fmt.Sprintf("vol %d", v))
	return nil
}

func (f *fakeTuner) RSSI() (int, error) {
	if f.rssi == nil {
		return 0, nil
	}
	return f.rssi(f.freq), nil
}

func (f *fakeTuner) RDSReady() (bool, error) {
	f.rdsCalls++
	return f.ready, f.err
}

func (f *fakeTuner) RDS() (rds.Station, error) { return f.station, nil }

type countingView struct {
	n    int
	last State
}

func (v *countingView) Refresh(st State) {
	v.n++
	v.last = st
}

type lineLog struct{ lines []string }

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1000, 0)} }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

func noSleep(time.Duration) {}
