//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Clockwise Gray sequence of the encoder channels, as a<<1 | b.
var quadratureCW = [4]uint8{0b00, 0b01, 0b11, 0b10}

// hostKeyboard maps keys onto the virtual input lines:
//
//	Up / Down arrows  BTN_UP / BTN_DOWN (hold for seek)
//	Enter             BTN_OK (power)
//	[ and ]           one encoder detent counter-clockwise / clockwise
//	Space             ENC_SW
type hostKeyboard struct {
	buttons map[ebiten.Key]*virtualPin
	a, b    *virtualPin

	pos     int
	pending []int
}

func newHostKeyboard(pins map[string]*virtualPin) *hostKeyboard {
	return &hostKeyboard{
		buttons: map[ebiten.Key]*virtualPin{
			ebiten.KeyArrowUp:   pins[PinButtonUp],
			ebiten.KeyArrowDown: pins[PinButtonDown],
			ebiten.KeyEnter:     pins[PinButtonOK],
			ebiten.KeySpace:     pins[PinEncoderSW],
		},
		a: pins[PinEncoderA],
		b: pins[PinEncoderB],
	}
}

func (k *hostKeyboard) poll() {
	for key, pin := range k.buttons {
		if pin == nil {
			continue
		}
		if inpututil.IsKeyJustPressed(key) {
			pin.press(true)
		}
		if inpututil.IsKeyJustReleased(key) {
			pin.press(false)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		k.queue(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		k.queue(-1)
	}
	k.advance()
}

// queue schedules one detent worth of phase changes in direction dir.
func (k *hostKeyboard) queue(dir int) {
	for i := 0; i < len(quadratureCW); i++ {
		k.pending = append(k.pending, dir)
	}
}

// advance plays one queued phase change per frame so that every edge is
// seen separately.
func (k *hostKeyboard) advance() {
	if len(k.pending) == 0 || k.a == nil || k.b == nil {
		return
	}
	dir := k.pending[0]
	k.pending = k.pending[1:]

	k.pos = (k.pos + dir + len(quadratureCW)) % len(quadratureCW)
	ph := quadratureCW[k.pos]
	// Only one channel differs between neighbouring phases.
	k.a.drive(ph&2 != 0)
	k.b.drive(ph&1 != 0)
}
