package app

import (
	"time"

	"fmradio/config"
	"fmradio/hal"
)

type linkPhase uint8

const (
	linkAttempt linkPhase = iota
	linkWaiting
	linkSettled
)

// linkState joins the configured Wi-Fi network once, without blocking the
// loop. A failed or timed out join is logged and not retried; the access
// point stays up either way.
type linkState struct {
	net     hal.Network
	cfg     config.WiFiConfig
	log     hal.Logger
	phase   linkPhase
	started time.Time
	addr    string
}

func newLinkState(n hal.Network, cfg config.WiFiConfig, log hal.Logger) *linkState {
	l := &linkState{net: n, cfg: cfg, log: log}
	if n == nil || cfg.SSID == "" {
		l.phase = linkSettled
	}
	return l
}

// startAccessPoint brings up the always-on access point and returns its
// address, or "" when the board has none.
func (l *linkState) startAccessPoint() string {
	if l.net == nil {
		return ""
	}
	addr, err := l.net.StartAccessPoint(l.cfg.APSSID, l.cfg.APPassword)
	if err == hal.ErrNotImplemented {
		logf(l.log, "wifi: access point unavailable on this board")
		return ""
	}
	if err != nil {
		logf(l.log, "wifi: access point: %v", err)
		return ""
	}
	logf(l.log, "wifi: access point %s at %s", l.cfg.APSSID, addr)
	return addr
}

func (l *linkState) step(now time.Time) {
	switch l.phase {
	case linkAttempt:
		if err := l.net.BeginStation(l.cfg.SSID, l.cfg.Password); err != nil {
			logf(l.log, "wifi: station %s: %v", l.cfg.SSID, err)
			l.phase = linkSettled
			return
		}
		logf(l.log, "wifi: connecting to %s", l.cfg.SSID)
		l.started = now
		l.phase = linkWaiting

	case linkWaiting:
		switch l.net.StationStatus() {
		case hal.LinkConnected:
			l.addr = l.net.StationAddr()
			logf(l.log, "wifi: station address %s", l.addr)
			l.phase = linkSettled
			return
		case hal.LinkFailed:
			logf(l.log, "wifi: station connection failed")
			l.phase = linkSettled
			return
		}
		if now.Sub(l.started) >= l.cfg.JoinTimeout {
			logf(l.log, "wifi: station connection timed out after %v", l.cfg.JoinTimeout)
			l.phase = linkSettled
		}
	}
}
