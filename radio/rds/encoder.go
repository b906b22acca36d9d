package rds

// Encoder produces the cyclic 0A/2A group sequence a transmitter would send
// for a station. It is used by the simulated tuner.
type Encoder struct {
	groups []Group
	next   int
}

// NewEncoder builds the group sequence for st. PS is space padded to 8
// characters; RT is terminated with a carriage return when shorter than 64.
func NewEncoder(st Station) *Encoder {
	e := &Encoder{}
	e.groups = append(e.groups, psGroups(st)...)
	e.groups = append(e.groups, rtGroups(st)...)
	return e
}

// Next returns the next group, wrapping around at the end of the sequence.
func (e *Encoder) Next() Group {
	if len(e.groups) == 0 {
		return Group{}
	}
	g := e.groups[e.next]
	e.next = (e.next + 1) % len(e.groups)
	return g
}

// Len returns the number of groups in one full cycle.
func (e *Encoder) Len() int { return len(e.groups) }

func blockB(groupType uint16, st Station) uint16 {
	b := groupType << 12
	if st.TP {
		b |= 0x0400
	}
	b |= uint16(st.PTY&0x1f) << 5
	return b
}

func psGroups(st Station) []Group {
	var name [PSLength]byte
	for i := range name {
		name[i] = ' '
	}
	copy(name[:], st.PS)

	out := make([]Group, 0, 4)
	for seg := 0; seg < 4; seg++ {
		b := blockB(0, st) | uint16(seg)
		if st.TA {
			b |= 0x0010
		}
		if st.MS {
			b |= 0x0008
		}
		out = append(out, Group{
			A: st.PI,
			B: b,
			C: 0xe0cd, // no alternative frequencies, filler
			D: uint16(name[seg*2])<<8 | uint16(name[seg*2+1]),
		})
	}
	return out
}

func rtGroups(st Station) []Group {
	if st.RT == "" {
		return nil
	}
	text := []byte(st.RT)
	if len(text) > RTLength {
		text = text[:RTLength]
	}
	if len(text) < RTLength {
		text = append(text, carriageReturn)
	}
	for len(text)%4 != 0 {
		text = append(text, ' ')
	}

	out := make([]Group, 0, len(text)/4)
	for seg := 0; seg*4 < len(text); seg++ {
		c := text[seg*4 : seg*4+4]
		out = append(out, Group{
			A: st.PI,
			B: blockB(2, st) | uint16(seg),
			C: uint16(c[0])<<8 | uint16(c[1]),
			D: uint16(c[2])<<8 | uint16(c[3]),
		})
	}
	return out
}
