// Package rds decodes and synthesises Radio Data System groups.
//
// A group is four 16-bit blocks. Block A carries the programme
// identification code; block B carries the group type, version, traffic
// programme flag and programme type, plus group-specific bits. Blocks C and D
// carry the payload.
package rds

import "strings"

const (
	// PSLength is the length of the programme service name.
	PSLength = 8
	// RTLength is the length of a 2A radio text message.
	RTLength = 64

	carriageReturn = 0x0d
)

// Group is one RDS group as read from a tuner.
type Group struct {
	A, B, C, D uint16
}

// Type returns the group type code (0-15).
func (g Group) Type() int { return int(g.B >> 12) }

// VersionB reports whether the group is a version B group.
func (g Group) VersionB() bool { return g.B&0x0800 != 0 }

// Station is the decoded view of a transmitter's RDS data.
type Station struct {
	PI  uint16
	PTY uint8
	TP  bool
	TA  bool
	MS  bool
	PS  string
	RT  string
}

// Decoder accumulates groups into a Station.
//
// PS and RT are only published once every segment of the current message has
// been received; partial messages never leak into Station().
type Decoder struct {
	st    Station
	valid bool

	ps     [PSLength]byte
	psSeen uint8

	rt      [RTLength]byte
	rtSeen  uint16
	rtEnd   int
	rtFlag  bool
	rtKnown bool
	rtWidth int
}

// NewDecoder returns an empty decoder.
func NewDecoder() *Decoder {
	d := &Decoder{}
	d.Reset()
	return d
}

// Reset discards everything decoded so far. Call it after retuning.
func (d *Decoder) Reset() {
	*d = Decoder{rtEnd: -1}
}

// Ready reports whether at least one group has been decoded since the last
// Reset.
func (d *Decoder) Ready() bool { return d.valid }

// Station returns a copy of the decoded data.
func (d *Decoder) Station() Station { return d.st }

// Update feeds one group into the decoder.
func (d *Decoder) Update(g Group) {
	d.valid = true
	d.st.PI = g.A
	d.st.TP = g.B&0x0400 != 0
	d.st.PTY = uint8((g.B >> 5) & 0x1f)

	switch g.Type() {
	case 0:
		d.updatePS(g)
	case 2:
		d.updateRT(g)
	}
}

func (d *Decoder) updatePS(g Group) {
	d.st.TA = g.B&0x0010 != 0
	d.st.MS = g.B&0x0008 != 0

	seg := int(g.B & 0x3)
	idx := seg * 2
	d.ps[idx] = printable(byte(g.D >> 8))
	d.ps[idx+1] = printable(byte(g.D))
	d.psSeen |= 1 << seg

	if d.psSeen == 0x0f {
		d.st.PS = strings.TrimRight(string(d.ps[:]), " ")
		d.psSeen = 0
	}
}

func (d *Decoder) updateRT(g Group) {
	flag := g.B&0x0010 != 0
	width := 4
	if g.VersionB() {
		width = 2
	}
	if !d.rtKnown || flag != d.rtFlag || width != d.rtWidth {
		d.clearRT()
		d.rtKnown = true
		d.rtFlag = flag
		d.rtWidth = width
	}

	seg := int(g.B & 0xf)
	var chars [4]byte
	if width == 4 {
		chars = [4]byte{byte(g.C >> 8), byte(g.C), byte(g.D >> 8), byte(g.D)}
	} else {
		chars = [4]byte{byte(g.D >> 8), byte(g.D)}
	}

	idx := seg * width
	for i := 0; i < width; i++ {
		c := chars[i] & 0x7f
		if c == carriageReturn {
			if d.rtEnd < 0 || seg < d.rtEnd {
				d.rtEnd = seg
			}
			d.rt[idx+i] = carriageReturn
			continue
		}
		d.rt[idx+i] = printable(c)
	}
	d.rtSeen |= 1 << seg

	if d.rtComplete() {
		d.st.RT = d.rtText()
		d.rtSeen = 0
		d.rtEnd = -1
	}
}

func (d *Decoder) rtComplete() bool {
	last := 15
	if d.rtEnd >= 0 {
		last = d.rtEnd
	}
	mask := uint16(uint32(1)<<(last+1) - 1)
	return d.rtSeen&mask == mask
}

func (d *Decoder) rtText() string {
	n := RTLength / 4 * d.rtWidth
	b := d.rt[:n]
	if i := strings.IndexByte(string(b), carriageReturn); i >= 0 {
		b = b[:i]
	}
	return strings.TrimRight(string(b), " ")
}

func (d *Decoder) clearRT() {
	for i := range d.rt {
		d.rt[i] = ' '
	}
	d.rtSeen = 0
	d.rtEnd = -1
}

func printable(c byte) byte {
	c &= 0x7f
	if c < 0x20 || c == 0x7f {
		return ' '
	}
	return c
}
