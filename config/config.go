// Package config holds the firmware settings. Host builds load them from a
// YAML file; microcontroller builds use Default.
package config

import (
	"errors"
	"fmt"
	"time"

	"fmradio/radio"
	"fmradio/radio/rds"
	"fmradio/radio/sim"
)

// Config is the complete firmware configuration.
type Config struct {
	Radio    RadioConfig     `yaml:"radio"`
	WiFi     WiFiConfig      `yaml:"wifi"`
	HTTP     HTTPConfig      `yaml:"http"`
	Pins     PinsConfig      `yaml:"pins"`
	Board    BoardConfig     `yaml:"board"`
	Stations []StationConfig `yaml:"stations"`
}

// RadioConfig tunes the receiver logic.
type RadioConfig struct {
	StartFrequency float64       `yaml:"start_frequency"`
	StartVolume    int           `yaml:"start_volume"`
	SeekThreshold  int           `yaml:"seek_threshold"`
	SeekSettle     time.Duration `yaml:"seek_settle"`
	SeekMaxSteps   int           `yaml:"seek_max_steps"`
	RDSInterval    time.Duration `yaml:"rds_interval"`
	Debounce       time.Duration `yaml:"debounce"`
	LongPress      time.Duration `yaml:"long_press"`
	EncoderDetent  int           `yaml:"encoder_detent"`
	NoiseFloor     int           `yaml:"noise_floor"`
}

// WiFiConfig names the networks. The access point is always started; the
// station join is attempted once when SSID is set.
type WiFiConfig struct {
	SSID        string        `yaml:"ssid"`
	Password    string        `yaml:"password"`
	APSSID      string        `yaml:"ap_ssid"`
	APPassword  string        `yaml:"ap_password"`
	JoinTimeout time.Duration `yaml:"join_timeout"`
}

// HTTPConfig configures the control page.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// PinsConfig maps controls onto GPIO line names. An empty name leaves the
// control unwired.
type PinsConfig struct {
	Up            string `yaml:"up"`
	Down          string `yaml:"down"`
	Toggle        string `yaml:"toggle"`
	EncoderA      string `yaml:"encoder_a"`
	EncoderB      string `yaml:"encoder_b"`
	EncoderSwitch string `yaml:"encoder_switch"`
	// ActiveHigh selects buttons to the supply with pull-downs.
	ActiveHigh bool `yaml:"active_high"`
}

// BoardConfig describes a Linux board's buses.
type BoardConfig struct {
	I2CBus string `yaml:"i2c_bus"`
	LED    string `yaml:"led"`
}

// StationConfig is one transmitter of the simulated band.
type StationConfig struct {
	Frequency float64 `yaml:"frequency"`
	RSSI      int     `yaml:"rssi"`
	PI        uint16  `yaml:"pi"`
	PTY       string  `yaml:"pty"`
	PS        string  `yaml:"ps"`
	RT        string  `yaml:"rt"`
	TP        bool    `yaml:"tp"`
	TA        bool    `yaml:"ta"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Stations: []StationConfig{
			{Frequency: 89.3, RSSI: 42, PI: 0xc201, PTY: "News", PS: "NEWS 89", RT: "Headlines every hour on the hour", TP: true},
			{Frequency: 94.7, RSSI: 55, PI: 0xc202, PTY: "Pop Music", PS: "POP 947", RT: "Non-stop hits all afternoon"},
			{Frequency: 99.1, RSSI: 24, PI: 0xc203, PTY: "Light Classical", PS: "FAINT"},
			{Frequency: 101.1, RSSI: 61, PI: 0xc204, PTY: "Rock Music", PS: "ROCK FM", RT: "Now playing: the long version"},
			{Frequency: 104.3, RSSI: 38, PI: 0xc205, PTY: "Jazz Music", PS: "JAZZ", RT: "Late set from the basement club", TP: true, TA: true},
		},
	}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in missing configuration values.
func applyDefaults(cfg *Config) {
	r := &cfg.Radio
	if r.StartFrequency == 0 {
		r.StartFrequency = radio.BandMin
	}
	if r.StartVolume == 0 {
		r.StartVolume = radio.DefaultVolume
	}
	if r.SeekThreshold == 0 {
		r.SeekThreshold = radio.DefaultSeekThreshold
	}
	if r.SeekSettle == 0 {
		r.SeekSettle = radio.DefaultSeekSettle
	}
	if r.SeekMaxSteps == 0 {
		r.SeekMaxSteps = radio.DefaultSeekMaxSteps
	}
	if r.RDSInterval == 0 {
		r.RDSInterval = radio.DefaultRDSInterval
	}
	if r.Debounce == 0 {
		r.Debounce = radio.DefaultDebounce
	}
	if r.LongPress == 0 {
		r.LongPress = radio.DefaultLongPress
	}
	if r.EncoderDetent == 0 {
		r.EncoderDetent = radio.DefaultDetent
	}
	if r.NoiseFloor == 0 {
		r.NoiseFloor = sim.DefaultNoiseFloor
	}

	w := &cfg.WiFi
	if w.APSSID == "" {
		w.APSSID = "FM_Radio_AP"
	}
	if w.APPassword == "" {
		w.APPassword = "12345678"
	}
	if w.JoinTimeout == 0 {
		w.JoinTimeout = 10 * time.Second
	}

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}

	p := &cfg.Pins
	if p.Up == "" && p.Down == "" && p.Toggle == "" && p.EncoderA == "" && p.EncoderB == "" && p.EncoderSwitch == "" {
		p.Up = "BTN_UP"
		p.Down = "BTN_DOWN"
		p.Toggle = "BTN_OK"
		p.EncoderA = "ENC_A"
		p.EncoderB = "ENC_B"
		p.EncoderSwitch = "ENC_SW"
	}
}

// RadioSettings converts the radio section for radio.New.
func (c *Config) RadioSettings() radio.Config {
	return radio.Config{
		StartFrequency: c.Radio.StartFrequency,
		StartVolume:    c.Radio.StartVolume,
		Seek: radio.SeekConfig{
			Threshold: c.Radio.SeekThreshold,
			Settle:    c.Radio.SeekSettle,
			MaxSteps:  c.Radio.SeekMaxSteps,
		},
		RDSInterval: c.Radio.RDSInterval,
	}
}

// GestureSettings converts the button timing.
func (c *Config) GestureSettings() radio.GestureConfig {
	return radio.GestureConfig{
		Debounce:  c.Radio.Debounce,
		LongPress: c.Radio.LongPress,
	}
}

// Transmitters returns the simulated band.
func (c *Config) Transmitters() []sim.Transmitter {
	txs := make([]sim.Transmitter, 0, len(c.Stations))
	for _, s := range c.Stations {
		txs = append(txs, sim.Transmitter{
			Frequency: s.Frequency,
			RSSI:      s.RSSI,
			RDS: rds.Station{
				PI:  s.PI,
				PTY: rds.ProgramTypeCode(s.PTY),
				TP:  s.TP,
				TA:  s.TA,
				PS:  s.PS,
				RT:  s.RT,
			},
		})
	}
	return txs
}

// Validate rejects settings the radio cannot honour.
func (c *Config) Validate() error {
	r := c.Radio
	if !radio.InBand(r.StartFrequency) {
		return fmt.Errorf("config: start_frequency %.1f outside %.1f-%.1f MHz", r.StartFrequency, radio.BandMin, radio.BandMax)
	}
	if r.StartVolume < radio.MinVolume || r.StartVolume > radio.MaxVolume {
		return fmt.Errorf("config: start_volume %d outside %d-%d", r.StartVolume, radio.MinVolume, radio.MaxVolume)
	}
	if r.SeekMaxSteps < 0 || r.EncoderDetent < 0 {
		return errors.New("config: negative step count")
	}
	if r.LongPress <= r.Debounce {
		return fmt.Errorf("config: long_press %v must exceed debounce %v", r.LongPress, r.Debounce)
	}
	for i, s := range c.Stations {
		if !radio.InBand(s.Frequency) {
			return fmt.Errorf("config: station %d: frequency %.1f out of band", i, s.Frequency)
		}
		if s.PTY != "" && s.PTY != rds.ProgramTypeLabel(0) && rds.ProgramTypeCode(s.PTY) == 0 {
			return fmt.Errorf("config: station %d: unknown programme type %q", i, s.PTY)
		}
	}
	return nil
}
