package hal

import (
	"errors"
	"sync"
	"time"
)

// Addresses handed out by the simulated Wi-Fi radio.
const (
	SimAccessPointAddr = "192.168.4.1"
	SimStationAddr     = "127.0.0.1"
)

// SimJoinDelay is how long the simulated station association takes.
const SimJoinDelay = 1500 * time.Millisecond

// simNetwork pretends to be a Wi-Fi radio. Station joins succeed after
// SimJoinDelay when the password is a valid WPA2 passphrase and fail
// otherwise.
type simNetwork struct {
	mu  sync.Mutex
	now func() time.Time

	apUp    bool
	joining bool
	started time.Time
	accept  bool
	status  LinkStatus
}

func newSimNetwork(now func() time.Time) *simNetwork {
	if now == nil {
		now = time.Now
	}
	return &simNetwork{now: now}
}

func (n *simNetwork) StartAccessPoint(ssid, password string) (string, error) {
	if ssid == "" {
		return "", errors.New("wifi: empty access point ssid")
	}
	if password != "" && len(password) < 8 {
		return "", errors.New("wifi: access point password shorter than 8 characters")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.apUp = true
	return SimAccessPointAddr, nil
}

func (n *simNetwork) BeginStation(ssid, password string) error {
	if ssid == "" {
		return errors.New("wifi: empty station ssid")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.joining = true
	n.started = n.now()
	n.accept = len(password) >= 8 && len(password) <= 63
	n.status = LinkConnecting
	return nil
}

func (n *simNetwork) StationStatus() LinkStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.joining && n.now().Sub(n.started) >= SimJoinDelay {
		n.joining = false
		if n.accept {
			n.status = LinkConnected
		} else {
			n.status = LinkFailed
		}
	}
	return n.status
}

func (n *simNetwork) StationAddr() string {
	if n.StationStatus() != LinkConnected {
		return ""
	}
	return SimStationAddr
}
