package hal

import "image/color"

// Colours of the simulated reflective LCD.
var (
	LCDBackground = color.RGBA{R: 0xa8, G: 0xc6, B: 0x4e, A: 0xff}
	LCDInk        = color.RGBA{R: 0x22, G: 0x30, B: 0x18, A: 0xff}
)

// fbDisplay draws a monochrome panel onto an RGB565 framebuffer. Like the
// PCD8544 driver it treats any non-black colour as a lit segment.
type fbDisplay struct {
	fb Framebuffer
}

func newFBDisplay(fb Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}

	shade := LCDBackground
	if c.R != 0 || c.G != 0 || c.B != 0 {
		shade = LCDInk
	}
	pixel := rgb565(shade.R, shade.G, shade.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) ClearBuffer() {
	if d.fb == nil {
		return
	}
	d.fb.ClearRGB(LCDBackground.R, LCDBackground.G, LCDBackground.B)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}
