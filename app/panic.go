package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"fmradio/hal"
	"fmradio/present"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	panicCols       = 14
	panicLineHeight = 8
)

// showPanic logs v with a stack trace and prints as much of it as fits on
// the panel.
func showPanic(h hal.HAL, v any) {
	msg := fmt.Sprint(v)
	if l := h.Logger(); l != nil {
		l.WriteLineString("fmradio panic: " + msg)
		for _, line := range strings.Split(string(debug.Stack()), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	d := h.Display()
	if d == nil {
		return
	}
	_, height := d.Size()
	d.ClearBuffer()

	y := int16(panicLineHeight - 1)
	for _, line := range panicLines(msg) {
		if y > height {
			break
		}
		tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, 0, y, line, present.Ink)
		y += panicLineHeight
	}
	_ = d.Display()
}

// panicLines wraps msg under a heading at the panel's width.
func panicLines(msg string) []string {
	lines := []string{"PANIC"}
	for _, word := range strings.Fields(msg) {
		for len(word) > 0 {
			chunk, rest := takeRunes(word, panicCols)
			last := len(lines) - 1
			if last > 0 && utf8.RuneCountInString(lines[last])+1+utf8.RuneCountInString(chunk) <= panicCols {
				lines[last] += " " + chunk
			} else {
				lines = append(lines, chunk)
			}
			word = rest
		}
	}
	return lines
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
