package radio

import (
	"testing"
	"time"
)

// hold presses c, keeps it down for d sampling every 10ms, then releases it.
// It returns every intent emitted along the way.
func hold(g *Gestures, clk *fakeClock, c Control, d time.Duration) []Intent {
	var out []Intent
	start := clk.now()
	for {
		if in, ok := g.Sample(c, true, clk.now()); ok {
			out = append(out, in)
		}
		if clk.now().Sub(start) >= d {
			break
		}
		step := 10 * time.Millisecond
		if rest := d - clk.now().Sub(start); rest < step {
			step = rest
		}
		clk.advance(step)
	}
	if in, ok := g.Sample(c, false, clk.now()); ok {
		out = append(out, in)
	}
	return out
}

func TestGestureShortAndLongPress(t *testing.T) {
	cases := []struct {
		name string
		c    Control
		d    time.Duration
		want Intent
	}{
		{"up tap", ControlUp, 50 * time.Millisecond, StepUp},
		{"up 999ms", ControlUp, 999 * time.Millisecond, StepUp},
		{"up 1000ms", ControlUp, 1000 * time.Millisecond, StepUp},
		{"up 1001ms", ControlUp, 1001 * time.Millisecond, SeekUp},
		{"down 999ms", ControlDown, 999 * time.Millisecond, StepDown},
		{"down 1001ms", ControlDown, 1001 * time.Millisecond, SeekDown},
		{"down 5s", ControlDown, 5 * time.Second, SeekDown},
		{"toggle tap", ControlToggle, 30 * time.Millisecond, TogglePower},
		{"toggle hold", ControlToggle, 3 * time.Second, TogglePower},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clk := newFakeClock()
			g := NewGestures(GestureConfig{})
			got := hold(g, clk, tc.c, tc.d)
			if len(got) != 1 || got[0] != tc.want {
				t.Fatalf("got %v, want [%v]", got, tc.want)
			}
		})
	}
}

func TestGestureDebounceLockout(t *testing.T) {
	clk := newFakeClock()
	g := NewGestures(GestureConfig{})

	if got := hold(g, clk, ControlUp, 20*time.Millisecond); len(got) != 1 {
		t.Fatalf("first press: %v", got)
	}
	// Contact bounce right after release is ignored.
	clk.advance(5 * time.Millisecond)
	if in, ok := g.Sample(ControlUp, true, clk.now()); ok {
		t.Fatalf("bounce produced %v", in)
	}
	clk.advance(5 * time.Millisecond)
	g.Sample(ControlUp, false, clk.now())

	// Another button inside the lockout is ignored too.
	clk.advance(100 * time.Millisecond)
	if in, ok := g.Sample(ControlToggle, true, clk.now()); ok {
		t.Fatalf("toggle inside lockout produced %v", in)
	}
	g.Sample(ControlToggle, false, clk.now())

	clk.advance(201 * time.Millisecond)
	if in, ok := g.Sample(ControlToggle, true, clk.now()); !ok || in != TogglePower {
		t.Fatalf("toggle after lockout: %v %v", in, ok)
	}
}

func TestGestureOneIntentPerPress(t *testing.T) {
	clk := newFakeClock()
	g := NewGestures(GestureConfig{})
	n := 0
	for i := 0; i < 400; i++ {
		if _, ok := g.Sample(ControlToggle, true, clk.now()); ok {
			n++
		}
		clk.advance(10 * time.Millisecond)
	}
	if n != 1 {
		t.Fatalf("held toggle emitted %d intents", n)
	}
	if !g.Busy() {
		t.Fatal("expected busy while held")
	}
	g.Sample(ControlToggle, false, clk.now())
	if g.Busy() {
		t.Fatal("expected idle after release")
	}
}

func TestGestureCustomTiming(t *testing.T) {
	clk := newFakeClock()
	g := NewGestures(GestureConfig{Debounce: 50 * time.Millisecond, LongPress: 300 * time.Millisecond})
	if got := hold(g, clk, ControlUp, 301*time.Millisecond); len(got) != 1 || got[0] != SeekUp {
		t.Fatalf("got %v", got)
	}
	clk.advance(60 * time.Millisecond)
	if got := hold(g, clk, ControlDown, 100*time.Millisecond); len(got) != 1 || got[0] != StepDown {
		t.Fatalf("got %v", got)
	}
}
