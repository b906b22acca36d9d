// Package rda5807 drives the RDA5807M single-chip FM receiver over I2C.
//
// The driver uses the chip's random-access interface, so every register is
// read or written individually. Control registers are shadowed so that a
// change to one field does not require a read-modify-write on the bus.
//
// Datasheet: RDA5807M Rev 1.1.
package rda5807

import (
	"errors"
	"fmt"
	"math"
	"time"

	"fmradio/radio/rds"

	"tinygo.org/x/drivers"
)

// Device is an RDA5807M on an I2C bus.
type Device struct {
	bus  drivers.I2C
	addr uint16

	ctrl uint16
	ch   uint16
	vol  uint16

	// SeekThreshold is written to the chip's own seek threshold field. The
	// software seek does not use it but it is kept sensible for the chip.
	SeekThreshold uint8

	dec   *rds.Decoder
	sleep func(time.Duration)
	buf   [3]byte
}

// Config is passed to Configure.
type Config struct {
	Volume int
	Bass   bool
	Mono   bool
}

var errRange = errors.New("rda5807: value out of range")

// New returns a driver for the chip at Address on bus.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:           bus,
		addr:          Address,
		SeekThreshold: 8,
		dec:           rds.NewDecoder(),
		sleep:         time.Sleep,
	}
}

// Configure soft-resets the chip and powers it up with RDS enabled, audio
// muted and the given volume.
func (d *Device) Configure(cfg Config) error {
	if err := d.write(regCtrl, ctrlSoftReset|ctrlEnable); err != nil {
		return fmt.Errorf("rda5807: reset: %w", err)
	}
	d.sleep(10 * time.Millisecond)

	d.ctrl = ctrlDHIZ | ctrlRDS | ctrlNewMethod | ctrlEnable
	if cfg.Bass {
		d.ctrl |= ctrlBass
	}
	if cfg.Mono {
		d.ctrl |= ctrlMono
	}
	if err := d.write(regCtrl, d.ctrl); err != nil {
		return fmt.Errorf("rda5807: enable: %w", err)
	}
	if err := d.write(regR4, r4DE50us); err != nil {
		return fmt.Errorf("rda5807: de-emphasis: %w", err)
	}
	d.vol = volIntMode | uint16(d.SeekThreshold&0x7f)<<volSeekShift | volLNAPort
	return d.SetVolume(cfg.Volume)
}

// ChipID returns the content of register 0x00 (0x58xx on genuine parts).
func (d *Device) ChipID() (uint16, error) {
	return d.read(regChipID)
}

// SetFrequency tunes to mhz. The RDS decoder is reset so data from the
// previous channel is never reported for the new one.
func (d *Device) SetFrequency(mhz float64) error {
	ch := math.Round((mhz - bandBase) / chanSpace)
	if ch < 0 || ch > chanMask {
		return errRange
	}
	d.ch = uint16(ch) << chanShift
	d.dec.Reset()
	if err := d.write(regChan, d.ch|chanTune); err != nil {
		return fmt.Errorf("rda5807: tune %.1f: %w", mhz, err)
	}
	return nil
}

// Frequency returns the channel the chip reports as tuned.
func (d *Device) Frequency() (float64, error) {
	v, err := d.read(regStatus)
	if err != nil {
		return 0, err
	}
	return bandBase + float64(v&chanMask)*chanSpace, nil
}

// SetMute mutes or unmutes the audio outputs.
func (d *Device) SetMute(mute bool) error {
	if mute {
		d.ctrl &^= ctrlDMUTE
	} else {
		d.ctrl |= ctrlDMUTE
	}
	if err := d.write(regCtrl, d.ctrl); err != nil {
		return fmt.Errorf("rda5807: mute: %w", err)
	}
	return nil
}

// SetVolume sets the 4-bit DAC volume.
func (d *Device) SetVolume(v int) error {
	if v < 0 || v > volMask {
		return errRange
	}
	d.vol = d.vol&^volMask | uint16(v)
	if err := d.write(regVolume, d.vol); err != nil {
		return fmt.Errorf("rda5807: volume: %w", err)
	}
	return nil
}

// RSSI returns the 7-bit received signal strength.
func (d *Device) RSSI() (int, error) {
	v, err := d.read(regRSSI)
	if err != nil {
		return 0, fmt.Errorf("rda5807: rssi: %w", err)
	}
	return int(v>>rssiShift) & rssiMask, nil
}

// Stereo reports the stereo indicator.
func (d *Device) Stereo() (bool, error) {
	v, err := d.read(regStatus)
	if err != nil {
		return false, err
	}
	return v&statusStereo != 0, nil
}

// RDSReady pulls a pending group, if any, into the decoder and reports
// whether decoded data is available for the current channel. Groups whose A
// or B block was uncorrectable are dropped.
func (d *Device) RDSReady() (bool, error) {
	status, err := d.read(regStatus)
	if err != nil {
		return false, fmt.Errorf("rda5807: status: %w", err)
	}
	if status&statusRDSR != 0 {
		g, ok, err := d.readGroup()
		if err != nil {
			return false, err
		}
		if ok {
			d.dec.Update(g)
		}
	}
	return d.dec.Ready(), nil
}

// RDS returns the decoded data for the current channel.
func (d *Device) RDS() (rds.Station, error) {
	return d.dec.Station(), nil
}

func (d *Device) readGroup() (rds.Group, bool, error) {
	quality, err := d.read(regRSSI)
	if err != nil {
		return rds.Group{}, false, fmt.Errorf("rda5807: rds quality: %w", err)
	}
	if (quality&blerAMask)>>2 == blerFatal || quality&blerBMask == blerFatal {
		return rds.Group{}, false, nil
	}

	var blocks [4]uint16
	for i, reg := range []uint8{regRDSA, regRDSB, regRDSC, regRDSD} {
		v, err := d.read(reg)
		if err != nil {
			return rds.Group{}, false, fmt.Errorf("rda5807: rds block %d: %w", i, err)
		}
		blocks[i] = v
	}
	return rds.Group{A: blocks[0], B: blocks[1], C: blocks[2], D: blocks[3]}, true, nil
}

func (d *Device) read(reg uint8) (uint16, error) {
	d.buf[0] = reg
	if err := d.bus.Tx(d.addr, d.buf[:1], d.buf[1:3]); err != nil {
		return 0, err
	}
	return uint16(d.buf[1])<<8 | uint16(d.buf[2]), nil
}

func (d *Device) write(reg uint8, v uint16) error {
	d.buf[0] = reg
	d.buf[1] = byte(v >> 8)
	d.buf[2] = byte(v)
	return d.bus.Tx(d.addr, d.buf[:3], nil)
}
