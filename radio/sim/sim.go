// Package sim is a software stand-in for the tuner chip. It models a band
// with a handful of transmitters, each with a signal strength and RDS data
// that is pushed through the real group encoder and decoder.
package sim

import (
	"errors"
	"sort"

	"fmradio/radio"
	"fmradio/radio/rds"
)

// DefaultNoiseFloor is the RSSI reported on an empty channel.
const DefaultNoiseFloor = 12

// DefaultGroupsPerPoll is roughly how many RDS groups arrive between two
// polls at the default cadence (11.4 groups/s over 500ms).
const DefaultGroupsPerPoll = 6

// Transmitter is one simulated station.
type Transmitter struct {
	Frequency float64
	RSSI      int
	RDS       rds.Station
}

// Tuner implements radio.Tuner against a list of transmitters.
type Tuner struct {
	txs []Transmitter

	NoiseFloor    int
	GroupsPerPoll int

	freq   float64
	muted  bool
	volume int

	enc *rds.Encoder
	dec *rds.Decoder
}

var errOutOfBand = errors.New("sim: frequency out of band")

// New returns a tuner muted at the bottom of the band.
func New(txs []Transmitter) *Tuner {
	t := &Tuner{
		txs:           append([]Transmitter(nil), txs...),
		NoiseFloor:    DefaultNoiseFloor,
		GroupsPerPoll: DefaultGroupsPerPoll,
		freq:          radio.BandMin,
		muted:         true,
		dec:           rds.NewDecoder(),
	}
	sort.Slice(t.txs, func(i, j int) bool { return t.txs[i].Frequency < t.txs[j].Frequency })
	return t
}

func (t *Tuner) lookup(f float64) (Transmitter, bool) {
	for _, tx := range t.txs {
		if radio.SameChannel(tx.Frequency, f) {
			return tx, true
		}
	}
	return Transmitter{}, false
}

// SetFrequency implements radio.Tuner.
func (t *Tuner) SetFrequency(mhz float64) error {
	if !radio.InBand(mhz) {
		return errOutOfBand
	}
	t.freq = radio.Normalize(mhz)
	t.dec.Reset()
	t.enc = nil
	if tx, ok := t.lookup(t.freq); ok && tx.RDS != (rds.Station{}) {
		t.enc = rds.NewEncoder(tx.RDS)
	}
	return nil
}

// SetMute implements radio.Tuner.
func (t *Tuner) SetMute(mute bool) error {
	t.muted = mute
	return nil
}

// SetVolume implements radio.Tuner.
func (t *Tuner) SetVolume(v int) error {
	if v < radio.MinVolume || v > radio.MaxVolume {
		return errors.New("sim: volume out of range")
	}
	t.volume = v
	return nil
}

// RSSI implements radio.Tuner.
func (t *Tuner) RSSI() (int, error) {
	if tx, ok := t.lookup(t.freq); ok {
		return tx.RSSI, nil
	}
	return t.NoiseFloor, nil
}

// RDSReady implements radio.Tuner. Each call lets GroupsPerPoll groups of
// the tuned transmitter through the decoder.
func (t *Tuner) RDSReady() (bool, error) {
	if t.enc == nil {
		return false, nil
	}
	for i := 0; i < t.GroupsPerPoll; i++ {
		t.dec.Update(t.enc.Next())
	}
	return t.dec.Ready(), nil
}

// RDS implements radio.Tuner.
func (t *Tuner) RDS() (rds.Station, error) {
	return t.dec.Station(), nil
}

// Frequency returns the tuned frequency.
func (t *Tuner) Frequency() float64 { return t.freq }

// Muted reports whether audio is muted.
func (t *Tuner) Muted() bool { return t.muted }

// Volume returns the last volume set.
func (t *Tuner) Volume() int { return t.volume }
