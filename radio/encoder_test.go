package radio

import (
	"sync"
	"testing"
)

func TestQuadratureDelta(t *testing.T) {
	cw := []uint8{0b00, 0b01, 0b11, 0b10, 0b00}
	for i := 0; i+1 < len(cw); i++ {
		if got := QuadratureDelta(cw[i], cw[i+1]); got != 1 {
			t.Fatalf("cw %02b->%02b: got %d", cw[i], cw[i+1], got)
		}
		if got := QuadratureDelta(cw[i+1], cw[i]); got != -1 {
			t.Fatalf("ccw %02b->%02b: got %d", cw[i+1], cw[i], got)
		}
	}
	for p := uint8(0); p < 4; p++ {
		if got := QuadratureDelta(p, p); got != 0 {
			t.Fatalf("no change %02b: got %d", p, got)
		}
	}
	for _, pair := range [][2]uint8{{0b00, 0b11}, {0b11, 0b00}, {0b01, 0b10}, {0b10, 0b01}} {
		if got := QuadratureDelta(pair[0], pair[1]); got != 0 {
			t.Fatalf("illegal %02b->%02b: got %d", pair[0], pair[1], got)
		}
	}
}

// turn drives e through n full detents; negative n turns counter-clockwise.
func turn(e *Encoder, n int) {
	cw := [][2]bool{{false, true}, {true, true}, {true, false}, {false, false}}
	ccw := [][2]bool{{true, false}, {true, true}, {false, true}, {false, false}}
	seq := cw
	if n < 0 {
		seq = ccw
		n = -n
	}
	for i := 0; i < n; i++ {
		for _, ab := range seq {
			e.Edge(ab[0], ab[1])
		}
	}
}

func TestEncoderDetents(t *testing.T) {
	e := NewEncoder(0)
	turn(e, 3)
	if got := e.Take(); got != 3 {
		t.Fatalf("cw: got %d", got)
	}
	if got := e.Take(); got != 0 {
		t.Fatalf("counter not reset: %d", got)
	}
	turn(e, -2)
	if got := e.Take(); got != -2 {
		t.Fatalf("ccw: got %d", got)
	}
}

func TestEncoderPartialDetentCarries(t *testing.T) {
	e := NewEncoder(4)
	e.Edge(false, true)
	e.Edge(true, true)
	if got := e.Take(); got != 0 {
		t.Fatalf("half detent: got %d", got)
	}
	e.Edge(true, false)
	e.Edge(false, false)
	if got := e.Take(); got != 1 {
		t.Fatalf("completed detent: got %d", got)
	}
}

func TestEncoderConcurrentEdges(t *testing.T) {
	e := NewEncoder(1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		turn(e, 250)
	}()
	total := 0
	for i := 0; i < 100; i++ {
		total += e.Take()
	}
	wg.Wait()
	total += e.Take()
	if total != 1000 {
		t.Fatalf("lost counts: got %d", total)
	}
}
