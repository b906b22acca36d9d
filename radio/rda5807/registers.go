package rda5807

// Address is the RDA5807M random-access I2C address. Each transaction
// addresses a single 16-bit register, most significant byte first.
const Address = 0x11

// Registers.
const (
	regChipID = 0x00
	regCtrl   = 0x02
	regChan   = 0x03
	regR4     = 0x04
	regVolume = 0x05
	regStatus = 0x0a
	regRSSI   = 0x0b
	regRDSA   = 0x0c
	regRDSB   = 0x0d
	regRDSC   = 0x0e
	regRDSD   = 0x0f
)

// 0x02 control bits.
const (
	ctrlDHIZ      = 1 << 15
	ctrlDMUTE     = 1 << 14 // set = audio on
	ctrlMono      = 1 << 13
	ctrlBass      = 1 << 12
	ctrlSeekUp    = 1 << 9
	ctrlSeek      = 1 << 8
	ctrlRDS       = 1 << 3
	ctrlNewMethod = 1 << 2
	ctrlSoftReset = 1 << 1
	ctrlEnable    = 1 << 0
)

// 0x03 channel bits. Band 00 is 87-108 MHz, space 00 is 100 kHz.
const (
	chanShift = 6
	chanMask  = 0x3ff
	chanTune  = 1 << 4

	bandBase  = 87.0
	chanSpace = 0.1
)

// 0x04 bits.
const (
	r4DE50us = 1 << 11
)

// 0x05 bits.
const (
	volIntMode   = 1 << 15
	volSeekShift = 8
	volSeekMask  = 0x7f << volSeekShift
	volLNAPort   = 0b10 << 6
	volMask      = 0x0f
)

// 0x0a status bits.
const (
	statusRDSR   = 1 << 15
	statusSTC    = 1 << 14
	statusSF     = 1 << 13
	statusStereo = 1 << 10
)

// 0x0b bits.
const (
	rssiShift = 9
	rssiMask  = 0x7f
	fmTrue    = 1 << 8
	blerAMask = 0b11 << 2
	blerBMask = 0b11
	blerFatal = 0b11
)
