package radio

import (
	"fmt"

	"fmradio/radio/rds"
)

// Tuner is the receiver chip as seen by the radio logic.
type Tuner interface {
	SetFrequency(mhz float64) error
	SetMute(mute bool) error
	SetVolume(v int) error
	// RSSI returns the received signal strength of the current channel.
	RSSI() (int, error)
	// RDSReady reports whether decoded RDS data is available.
	RDSReady() (bool, error)
	RDS() (rds.Station, error)
}

// View is anything that renders the state, such as the LCD.
type View interface {
	Refresh(st State)
}

// Logger matches hal.Logger.
type Logger interface {
	WriteLineString(s string)
}

type nopLogger struct{}

func (nopLogger) WriteLineString(string) {}

type nopView struct{}

func (nopView) Refresh(State) {}

func logf(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf(format, args...))
}
