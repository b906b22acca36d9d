package radio

import (
	"strings"
	"unicode/utf8"

	"fmradio/radio/rds"
)

// Volume limits. The tuner exposes a 4-bit volume register.
const (
	MinVolume     = 0
	MaxVolume     = 15
	DefaultVolume = 5
)

// Display limits for RDS text.
const (
	MaxProgramService = 8
	MaxRadioText      = 64
)

// RDSInfo is the RDS data shown for the current channel.
type RDSInfo struct {
	ProgramService      string `json:"ps"`
	RadioText           string `json:"rt"`
	ProgramType         string `json:"pty"`
	TrafficProgram      bool   `json:"tp"`
	TrafficAnnouncement bool   `json:"ta"`
	ProgramID           uint16 `json:"pi"`
}

// IsZero reports whether no RDS data is held.
func (r RDSInfo) IsZero() bool { return r == RDSInfo{} }

func rdsInfoFrom(st rds.Station) RDSInfo {
	return RDSInfo{
		ProgramService:      truncate(st.PS, MaxProgramService),
		RadioText:           truncate(st.RT, MaxRadioText),
		ProgramType:         rds.ProgramTypeLabel(st.PTY),
		TrafficProgram:      st.TP,
		TrafficAnnouncement: st.TA,
		ProgramID:           st.PI,
	}
}

// State is the radio's single mutable record.
type State struct {
	Frequency float64 `json:"frequency"`
	Power     bool    `json:"power"`
	Volume    int     `json:"volume"`
	RDS       RDSInfo `json:"rds"`
}

// NewState returns the power-on state: bottom of the band, off, volume 5.
func NewState() State {
	return State{
		Frequency: BandMin,
		Volume:    DefaultVolume,
	}
}

// PowerLabel returns "ON" or "OFF".
func (s State) PowerLabel() string {
	if s.Power {
		return "ON"
	}
	return "OFF"
}

// Headline returns the PS name when present, otherwise up to n characters of
// radio text.
func (s State) Headline(n int) string {
	if s.RDS.ProgramService != "" {
		return s.RDS.ProgramService
	}
	return truncate(strings.TrimSpace(s.RDS.RadioText), n)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for j := range s {
		if i == n {
			return s[:j]
		}
		i++
	}
	return s
}
