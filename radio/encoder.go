package radio

import "sync/atomic"

// DefaultDetent is the number of quadrature counts per mechanical click.
const DefaultDetent = 4

// QuadratureDelta decodes one transition of a two-channel Gray code. Phases
// are encoded as a<<1 | b. Clockwise is 00→01→11→10→00 and yields +1, the
// reverse yields -1, and no change or an illegal double transition yields 0.
func QuadratureDelta(prev, cur uint8) int {
	prev &= 3
	cur &= 3
	switch prev<<2 | cur {
	case 0b0001, 0b0111, 0b1110, 0b1000:
		return 1
	case 0b0010, 0b1011, 0b1101, 0b0100:
		return -1
	}
	return 0
}

func phaseOf(a, b bool) uint32 {
	var p uint32
	if a {
		p |= 2
	}
	if b {
		p |= 1
	}
	return p
}

// Encoder counts quadrature transitions. Edge may run in interrupt context;
// it only touches the encoder's own atomics. Take is called from the main
// loop and converts accumulated counts into whole detents.
type Encoder struct {
	phase atomic.Uint32
	count atomic.Int32

	detent int
	rem    int
}

// NewEncoder returns an encoder at rest in phase 00.
func NewEncoder(detent int) *Encoder {
	if detent <= 0 {
		detent = DefaultDetent
	}
	return &Encoder{detent: detent}
}

// Reset sets the resting phase, typically from an initial pin read.
func (e *Encoder) Reset(a, b bool) {
	e.phase.Store(phaseOf(a, b))
	e.count.Store(0)
	e.rem = 0
}

// Edge records the current levels of channels A and B.
func (e *Encoder) Edge(a, b bool) {
	cur := phaseOf(a, b)
	prev := e.phase.Swap(cur)
	if d := QuadratureDelta(uint8(prev), uint8(cur)); d != 0 {
		e.count.Add(int32(d))
	}
}

// Take returns the number of whole detents turned since the last call,
// positive for clockwise. Partial detents carry over.
func (e *Encoder) Take() int {
	e.rem += int(e.count.Swap(0))
	steps := e.rem / e.detent
	e.rem -= steps * e.detent
	return steps
}
