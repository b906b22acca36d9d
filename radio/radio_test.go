package radio

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"fmradio/radio/rds"
)

func TestEndToEnd(t *testing.T) {
	tuner := &fakeTuner{}
	view := &countingView{}
	r := New(tuner, view, nil, Config{}, noSleep)

	st := r.State()
	if st.Frequency != 87.5 || st.Power || st.Volume != 5 || !st.RDS.IsZero() {
		t.Fatalf("initial state: %+v", st)
	}

	r.Apply(TogglePower)
	if !r.State().Power {
		t.Fatal("expected power on")
	}
	want := []string{"freq 87.5", "mute false"}
	if !reflect.DeepEqual(tuner.calls, want) {
		t.Fatalf("tuner calls: got %v want %v", tuner.calls, want)
	}

	for i := 0; i < 3; i++ {
		r.Apply(StepUp)
	}
	if got := r.State().Frequency; got != 87.8 {
		t.Fatalf("frequency: got %v", got)
	}
	if view.n != 4 {
		t.Fatalf("refreshes: got %d", view.n)
	}
}

func TestTogglePower(t *testing.T) {
	tuner := &fakeTuner{}
	r := New(tuner, nil, nil, Config{StartFrequency: 101.1}, noSleep)
	r.Boot()
	tuner.calls = nil

	r.Apply(TogglePower)
	if r.State().Power || !tuner.muted {
		t.Fatalf("off: power=%v muted=%v", r.State().Power, tuner.muted)
	}
	r.Apply(TogglePower)
	if !r.State().Power || tuner.muted {
		t.Fatalf("on: power=%v muted=%v", r.State().Power, tuner.muted)
	}
	want := []string{"mute true", "freq 101.1", "mute false"}
	if !reflect.DeepEqual(tuner.calls, want) {
		t.Fatalf("tuner calls: got %v want %v", tuner.calls, want)
	}
}

func TestBoot(t *testing.T) {
	tuner := &fakeTuner{}
	view := &countingView{}
	r := New(tuner, view, nil, Config{StartFrequency: 94.2, StartVolume: 9}, noSleep)
	r.Boot()
	want := []string{"freq 94.2", "vol 9", "mute false"}
	if !reflect.DeepEqual(tuner.calls, want) {
		t.Fatalf("tuner calls: got %v want %v", tuner.calls, want)
	}
	if !view.last.Power || view.n != 1 {
		t.Fatalf("view: %+v after %d refreshes", view.last, view.n)
	}
}

func TestVolumeClamps(t *testing.T) {
	tuner := &fakeTuner{}
	r := New(tuner, nil, nil, Config{StartVolume: 14}, noSleep)
	r.Apply(VolumeUp)
	r.Apply(VolumeUp)
	r.Apply(VolumeUp)
	if got := r.State().Volume; got != MaxVolume {
		t.Fatalf("volume: got %d", got)
	}
	if !reflect.DeepEqual(tuner.calls, []string{"vol 15"}) {
		t.Fatalf("tuner calls: %v", tuner.calls)
	}
	for i := 0; i < 20; i++ {
		r.Apply(VolumeDown)
	}
	if got := r.State().Volume; got != MinVolume {
		t.Fatalf("volume: got %d", got)
	}
}

func TestRefreshIntentIsReadOnly(t *testing.T) {
	tuner := &fakeTuner{}
	view := &countingView{}
	r := New(tuner, view, nil, Config{}, noSleep)
	if r.Apply(Refresh) {
		t.Fatal("Refresh reported a mutation")
	}
	if len(tuner.calls) != 0 || view.n != 0 {
		t.Fatalf("side effects: calls=%v refreshes=%d", tuner.calls, view.n)
	}
}

func TestSeekIntentCommitsAndRefreshes(t *testing.T) {
	tuner := &fakeTuner{rssi: func(f float64) int {
		if SameChannel(f, 88.0) {
			return 50
		}
		return 0
	}}
	view := &countingView{}
	r := New(tuner, view, nil, Config{}, noSleep)
	r.Apply(SeekUp)
	if got := r.State().Frequency; got != 88.0 {
		t.Fatalf("frequency: got %v", got)
	}
	if view.last.Frequency != 88.0 {
		t.Fatalf("view not refreshed with seek result: %v", view.last.Frequency)
	}
}

func TestTunerErrorsAreLogged(t *testing.T) {
	log := &lineLog{}
	r := New(errTuner{&fakeTuner{}}, nil, log, Config{}, noSleep)
	r.Apply(StepUp)
	if got := r.State().Frequency; got != 87.6 {
		t.Fatalf("state must follow intent despite error: %v", got)
	}
	if len(log.lines) != 1 || !strings.Contains(log.lines[0], "bus stuck") {
		t.Fatalf("log: %v", log.lines)
	}
}

type errTuner struct{ *fakeTuner }

func (errTuner) SetFrequency(float64) error { return errors.New("bus stuck") }

func TestRDSAggregatorNotReadyLeavesFields(t *testing.T) {
	tuner := &fakeTuner{}
	a := NewRDSAggregator(tuner, 0, nil)
	clk := newFakeClock()
	st := NewState()
	a.Poll(&st, clk.now())

	st.RDS = RDSInfo{ProgramService: "OLD"}
	for i := 0; i < 5; i++ {
		if a.Poll(&st, clk.advance(DefaultRDSInterval)) {
			t.Fatal("not-ready poll reported a change")
		}
	}
	if st.RDS.ProgramService != "OLD" {
		t.Fatalf("fields changed: %+v", st.RDS)
	}
}

func TestRDSAggregatorCadenceAndMerge(t *testing.T) {
	tuner := &fakeTuner{
		ready: true,
		station: rds.Station{
			PI:  0xd3c2,
			PTY: 1,
			TP:  true,
			PS:  "LONGNAME123",
			RT:  strings.Repeat("x", 80),
		},
	}
	a := NewRDSAggregator(tuner, 0, nil)
	clk := newFakeClock()
	st := NewState()

	if !a.Poll(&st, clk.now()) {
		t.Fatal("expected first poll to merge")
	}
	want := RDSInfo{
		ProgramService: "LONGNAME",
		RadioText:      strings.Repeat("x", 64),
		ProgramType:    "News",
		TrafficProgram: true,
		ProgramID:      0xd3c2,
	}
	if st.RDS != want {
		t.Fatalf("merged: got %+v want %+v", st.RDS, want)
	}

	a.Poll(&st, clk.advance(100*time.Millisecond))
	a.Poll(&st, clk.advance(100*time.Millisecond))
	if tuner.rdsCalls != 1 {
		t.Fatalf("polled tuner %d times inside interval", tuner.rdsCalls)
	}
	a.Poll(&st, clk.advance(300*time.Millisecond))
	if tuner.rdsCalls != 2 {
		t.Fatalf("expected poll at interval, got %d", tuner.rdsCalls)
	}
}

func TestRDSAggregatorClearsOnRetune(t *testing.T) {
	tuner := &fakeTuner{ready: true, station: rds.Station{PS: "ONE"}}
	a := NewRDSAggregator(tuner, 0, nil)
	clk := newFakeClock()
	st := NewState()
	a.Poll(&st, clk.now())
	if st.RDS.ProgramService != "ONE" {
		t.Fatalf("merge: %+v", st.RDS)
	}

	tuner.ready = false
	st.Frequency = NextChannel(st.Frequency)
	if !a.Poll(&st, clk.advance(10*time.Millisecond)) {
		t.Fatal("expected clear to report a change")
	}
	if !st.RDS.IsZero() {
		t.Fatalf("stale RDS after retune: %+v", st.RDS)
	}
}

func TestRDSAggregatorErrorIsNotReady(t *testing.T) {
	log := &lineLog{}
	tuner := &fakeTuner{ready: true, err: errors.New("nack"), station: rds.Station{PS: "X"}}
	a := NewRDSAggregator(tuner, 0, log)
	st := NewState()
	if a.Poll(&st, time.Unix(0, 0)) {
		t.Fatal("error poll reported a change")
	}
	if !st.RDS.IsZero() || len(log.lines) != 1 {
		t.Fatalf("rds=%+v log=%v", st.RDS, log.lines)
	}
}
