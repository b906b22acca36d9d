// Package present renders the radio state for people: as text lines on the
// small LCD and as an HTML control page.
package present

import (
	"fmt"
	"image/color"

	"fmradio/radio"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// HeadlineWidth is how many characters of radio text fit on one LCD row.
const HeadlineWidth = 11

const (
	lineHeight = 9
	marginX    = 1
)

// Ink is the "pixel on" colour. Monochrome panels treat any non-black colour
// as a dark segment.
var Ink = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Display is a drawable panel with a backing buffer.
type Display interface {
	drivers.Displayer
	ClearBuffer()
}

// Logger matches hal.Logger.
type Logger interface {
	WriteLineString(s string)
}

// Screen draws the radio state on a Display. It implements radio.View.
type Screen struct {
	d    Display
	font tinyfont.Fonter
	log  Logger

	accessPoint string
	last        []string
}

// NewScreen returns a Screen drawing on d. log may be nil.
func NewScreen(d Display, log Logger) *Screen {
	return &Screen{d: d, font: &proggy.TinySZ8pt7b, log: log}
}

// SetAccessPoint sets the address shown on the bottom row. An empty string
// hides the row.
func (s *Screen) SetAccessPoint(addr string) {
	s.accessPoint = addr
}

// Lines returns the text rows for st, top to bottom.
func Lines(st radio.State, accessPoint string) []string {
	lines := []string{
		"FM Radio",
		fmt.Sprintf("%5.1f MHz", st.Frequency),
		fmt.Sprintf("%-3s Vol: %d", st.PowerLabel(), st.Volume),
	}
	if h := st.Headline(HeadlineWidth); h != "" {
		lines = append(lines, h)
	}
	if accessPoint != "" {
		lines = append(lines, "AP: "+accessPoint)
	}
	return lines
}

// Refresh redraws the panel. It skips the bus transfer when nothing visible
// changed.
func (s *Screen) Refresh(st radio.State) {
	if s.d == nil {
		return
	}
	lines := Lines(st, s.accessPoint)
	if equalLines(lines, s.last) {
		return
	}
	s.last = lines

	s.d.ClearBuffer()
	for i, line := range lines {
		y := int16(lineHeight * (i + 1))
		tinyfont.WriteLine(s.d, s.font, marginX, y-1, line, Ink)
	}
	if err := s.d.Display(); err != nil && s.log != nil {
		s.log.WriteLineString("display: " + err.Error())
	}
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
