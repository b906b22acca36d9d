package hal

// nullNetwork is the Wi-Fi radio of a board that has none.
type nullNetwork struct{}

func (nullNetwork) StartAccessPoint(ssid, password string) (string, error) {
	_ = ssid
	_ = password
	return "", ErrNotImplemented
}

func (nullNetwork) BeginStation(ssid, password string) error {
	_ = ssid
	_ = password
	return ErrNotImplemented
}

func (nullNetwork) StationStatus() LinkStatus { return LinkFailed }
func (nullNetwork) StationAddr() string       { return "" }
