// Package console is the serial line control surface: one command per
// line, one status line per reply.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"fmradio/radio"
)

// Controller runs intents on the radio's loop.
type Controller interface {
	Submit(ctx context.Context, in radio.Intent) (radio.State, error)
}

// MaxLine bounds a command line.
const MaxLine = 64

// Parse maps a command line onto an intent. Commands are case-insensitive
// and surrounding blanks are ignored.
func Parse(line string) (radio.Intent, error) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	if cmd == "" {
		return radio.IntentNone, fmt.Errorf("empty command")
	}
	in, ok := radio.ParseIntent(cmd)
	if !ok {
		return radio.IntentNone, fmt.Errorf("unknown command %q", cmd)
	}
	return in, nil
}

// FormatStatus renders st as a single reply line without the newline.
func FormatStatus(st radio.State) string {
	return fmt.Sprintf("freq=%.1f power=%s vol=%d ps=%q rt=%q",
		st.Frequency, strings.ToLower(st.PowerLabel()), st.Volume,
		st.RDS.ProgramService, st.RDS.RadioText)
}

// ErrLineTooLong is reported to the peer for lines over MaxLine bytes.
var ErrLineTooLong = errors.New("line too long")

// Serve answers commands read from r on w until r is exhausted or ctx is
// done. Blank lines are skipped. An oversized line is discarded up to its
// newline and answered with an error; serving continues after it.
func Serve(ctx context.Context, r io.Reader, w io.Writer, ctrl Controller) error {
	br := bufio.NewReaderSize(r, MaxLine+1)
	for {
		raw, err := br.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, werr := fmt.Fprintf(w, "error: %v\n", ErrLineTooLong); werr != nil {
				return werr
			}
			if err := skipLine(br); err != nil {
				return err
			}
			continue
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("console: %w", err)
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if line := strings.TrimSpace(string(raw)); line != "" {
			if werr := reply(ctx, w, ctrl, line); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

// skipLine drops input up to and including the next newline.
func skipLine(br *bufio.Reader) error {
	for {
		_, err := br.ReadSlice('\n')
		switch err {
		case nil, io.EOF:
			return nil
		case bufio.ErrBufferFull:
			continue
		default:
			return fmt.Errorf("console: %w", err)
		}
	}
}

func reply(ctx context.Context, w io.Writer, ctrl Controller, line string) error {
	in, err := Parse(line)
	if err == nil {
		var st radio.State
		st, err = ctrl.Submit(ctx, in)
		if err == nil {
			_, werr := fmt.Fprintln(w, FormatStatus(st))
			return werr
		}
	}
	_, werr := fmt.Fprintf(w, "error: %v\n", err)
	return werr
}
