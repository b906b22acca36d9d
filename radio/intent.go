package radio

// Intent is a discrete user action.
type Intent uint8

const (
	IntentNone Intent = iota
	StepUp
	StepDown
	SeekUp
	SeekDown
	TogglePower
	VolumeUp
	VolumeDown
	// Refresh reads the state without changing it.
	Refresh
)

var intentNames = [...]string{
	IntentNone:  "none",
	StepUp:      "up",
	StepDown:    "down",
	SeekUp:      "seekup",
	SeekDown:    "seekdown",
	TogglePower: "toggle",
	VolumeUp:    "volup",
	VolumeDown:  "voldown",
	Refresh:     "status",
}

func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}

// ParseIntent maps a command word ("up", "seekdown", "status", ...) to an
// Intent.
func ParseIntent(s string) (Intent, bool) {
	for i, name := range intentNames {
		if i == int(IntentNone) {
			continue
		}
		if name == s {
			return Intent(i), true
		}
	}
	return IntentNone, false
}

// Mutates reports whether applying i may change the state.
func (i Intent) Mutates() bool {
	return i != IntentNone && i != Refresh
}
