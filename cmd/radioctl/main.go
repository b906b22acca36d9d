// Command radioctl sends console commands to the radio over a serial port
// and prints the replies.
//
//	radioctl -port /dev/ttyACM0 seekup status
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fmradio/console"
	"fmradio/radio"

	"github.com/tarm/serial"
)

func main() {
	var (
		port     = flag.String("port", "/dev/ttyACM0", "Serial device of the radio.")
		baud     = flag.Int("baud", 115200, "Baud rate.")
		timeout  = flag.Duration("timeout", 3*time.Second, "How long to wait for each reply. Seeks wait at least -seek-timeout.")
		seekWait = flag.Duration("seek-timeout", defaultSeekTimeout, "How long to wait for a seekup/seekdown reply.")
	)
	flag.Parse()

	cmds := flag.Args()
	if len(cmds) == 0 {
		cmds = []string{"status"}
	}
	for _, c := range cmds {
		if _, err := console.Parse(c); err != nil {
			fatalf("radioctl: %v", err)
		}
	}

	p, err := serial.OpenPort(&serial.Config{Name: *port, Baud: *baud, ReadTimeout: 100 * time.Millisecond})
	if err != nil {
		fatalf("radioctl: failed to open serial port: %v", err)
	}
	defer p.Close()

	for _, c := range cmds {
		reply, err := exchange(p, c, replyTimeout(c, *timeout, *seekWait))
		if err != nil {
			fatalf("radioctl: %s: %v", c, err)
		}
		fmt.Println(reply)
		if strings.HasPrefix(reply, "error:") {
			os.Exit(1)
		}
	}
}

var errTimeout = errors.New("no reply")

// defaultSeekTimeout covers a sweep of the whole band that finds nothing:
// 206 channels at a 50 ms settle each, plus the retune.
const defaultSeekTimeout = 15 * time.Second

// replyTimeout returns how long to wait for the reply to cmd. A seek blocks
// the radio for the whole sweep.
func replyTimeout(cmd string, base, seek time.Duration) time.Duration {
	in, err := console.Parse(cmd)
	if err != nil {
		return base
	}
	if (in == radio.SeekUp || in == radio.SeekDown) && seek > base {
		return seek
	}
	return base
}

// exchange writes one command and returns the reply line. The device shares
// the line with its log output, so lines that are not replies are skipped.
func exchange(rw io.ReadWriter, cmd string, timeout time.Duration) (string, error) {
	if _, err := io.WriteString(rw, cmd+"\n"); err != nil {
		return "", err
	}

	deadline := time.Now().Add(timeout)
	var line []byte
	buf := make([]byte, 64)
	for time.Now().Before(deadline) {
		n, err := rw.Read(buf)
		for _, b := range buf[:n] {
			if b != '\n' {
				line = append(line, b)
				continue
			}
			s := strings.TrimSpace(string(line))
			line = line[:0]
			if isReply(s) {
				return s, nil
			}
		}
		if err != nil && err != io.EOF {
			return "", err
		}
		if n == 0 {
			time.Sleep(10 * time.Millisecond)
		}
	}
	return "", errTimeout
}

func isReply(s string) bool {
	return strings.HasPrefix(s, "freq=") || strings.HasPrefix(s, "error:")
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
