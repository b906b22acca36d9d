package radio

import "math"

// FM broadcast band limits in MHz and the channel raster.
const (
	BandMin     = 87.5
	BandMax     = 108.0
	ChannelStep = 0.1

	// ChannelTolerance is how close two frequencies must be to count as the
	// same channel.
	ChannelTolerance = 0.01
)

// Normalize rounds f to the 100 kHz channel raster so repeated stepping does
// not accumulate floating point error.
func Normalize(f float64) float64 {
	return math.Round(f*10) / 10
}

// NextChannel returns the channel above f, wrapping from the top of the band
// to the bottom.
func NextChannel(f float64) float64 {
	n := Normalize(f + ChannelStep)
	if n > BandMax {
		return BandMin
	}
	return n
}

// PrevChannel returns the channel below f, wrapping from the bottom of the
// band to the top.
func PrevChannel(f float64) float64 {
	n := Normalize(f - ChannelStep)
	if n < BandMin {
		return BandMax
	}
	return n
}

// SameChannel reports whether a and b are the same channel.
func SameChannel(a, b float64) bool {
	return math.Abs(a-b) < ChannelTolerance
}

// InBand reports whether f lies inside the band.
func InBand(f float64) bool {
	return f >= BandMin-ChannelTolerance && f <= BandMax+ChannelTolerance
}

// ClampFrequency maps an arbitrary value onto the band, used for values that
// come from configuration rather than stepping.
func ClampFrequency(f float64) float64 {
	f = Normalize(f)
	if f < BandMin {
		return BandMin
	}
	if f > BandMax {
		return BandMax
	}
	return f
}
