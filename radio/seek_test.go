package radio

import (
	"testing"
	"time"
)

func TestSeekFindsStation(t *testing.T) {
	cases := []struct {
		name  string
		start float64
		up    bool
		at    float64
	}{
		{"up", 90.0, true, 90.7},
		{"down", 90.0, false, 88.1},
		{"up across top", 107.8, true, 87.6},
		{"down across bottom", 87.7, false, 107.9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tuner := &fakeTuner{rssi: func(f float64) int {
				if SameChannel(f, tc.at) {
					return 45
				}
				return 10
			}}
			s := NewSeeker(tuner, SeekConfig{}, noSleep, nil)
			st := NewState()
			st.Frequency = tc.start
			if !s.Seek(&st, tc.up) {
				t.Fatal("expected a station")
			}
			if st.Frequency != tc.at {
				t.Fatalf("got %v, want %v", st.Frequency, tc.at)
			}
			if tuner.freq != tc.at {
				t.Fatalf("tuner left at %v", tuner.freq)
			}
		})
	}
}

func TestSeekExactOffset(t *testing.T) {
	tuner := &fakeTuner{}
	steps := 0
	tuner.rssi = func(float64) int {
		steps++
		if steps == 37 {
			return 31
		}
		return 30
	}
	st := NewState()
	st.Frequency = 100.0
	s := NewSeeker(tuner, SeekConfig{}, noSleep, nil)
	if !s.Seek(&st, true) {
		t.Fatal("expected a station")
	}
	want := 100.0
	for i := 0; i < 37; i++ {
		want = NextChannel(want)
	}
	if st.Frequency != want {
		t.Fatalf("got %v, want %v", st.Frequency, want)
	}
}

func TestSeekNothingRestoresOriginal(t *testing.T) {
	for _, up := range []bool{true, false} {
		tuner := &fakeTuner{rssi: func(float64) int { return 30 }}
		var slept time.Duration
		s := NewSeeker(tuner, SeekConfig{}, func(d time.Duration) { slept += d }, nil)
		st := NewState()
		st.Frequency = 95.3
		if s.Seek(&st, up) {
			t.Fatal("threshold is exclusive, nothing should be found")
		}
		if st.Frequency != 95.3 {
			t.Fatalf("state frequency %v", st.Frequency)
		}
		if tuner.freq != 95.3 {
			t.Fatalf("tuner frequency %v", tuner.freq)
		}
		if n := len(tuner.freqs); n > DefaultSeekMaxSteps+1 {
			t.Fatalf("too many tune calls: %d", n)
		}
		// One lap visits every other channel once before coming home.
		if n := len(tuner.freqs); n != 206 {
			t.Fatalf("tune calls: got %d want 206", n)
		}
		if slept != 205*DefaultSeekSettle {
			t.Fatalf("settle total %v", slept)
		}
		for _, f := range tuner.freqs {
			if !InBand(f) {
				t.Fatalf("tuned outside band: %v", f)
			}
		}
	}
}

func TestSeekStepCeiling(t *testing.T) {
	tuner := &fakeTuner{}
	s := NewSeeker(tuner, SeekConfig{MaxSteps: 20}, noSleep, nil)
	st := NewState()
	st.Frequency = 100.0
	if s.Seek(&st, true) {
		t.Fatal("unexpected station")
	}
	if got := len(tuner.freqs); got != 21 {
		t.Fatalf("tune calls: got %d want 21", got)
	}
	if st.Frequency != 100.0 || tuner.freq != 100.0 {
		t.Fatalf("not restored: state %v tuner %v", st.Frequency, tuner.freq)
	}
}

func TestSeekNeverLeavesBand(t *testing.T) {
	for start := BandMin; start <= BandMax; start = Normalize(start + 2.3) {
		for _, up := range []bool{true, false} {
			tuner := &fakeTuner{rssi: func(f float64) int {
				if int(f*10)%7 == 0 {
					return 60
				}
				return 0
			}}
			st := NewState()
			st.Frequency = start
			NewSeeker(tuner, SeekConfig{}, noSleep, nil).Seek(&st, up)
			if !InBand(st.Frequency) {
				t.Fatalf("seek from %v up=%v left band: %v", start, up, st.Frequency)
			}
		}
	}
}
