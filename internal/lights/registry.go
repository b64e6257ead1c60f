package lights

import (
	"errors"
	"syscall"

	"github.com/smazurov/lighthal/internal/hw"
)

// ErrUnknownLight is returned for a light id the device does not provide.
var ErrUnknownLight = errors.New("unknown light")

// Light is one opened logical light, bound to its Device entry point.
type Light struct {
	id  ID
	set func(State) error
}

// ID returns the logical light id.
func (l *Light) ID() ID { return l.id }

// SetLight applies state. Errors are advisory; the state was accepted.
func (l *Light) SetLight(state State) error {
	return l.set(state)
}

// Open returns the light registered under name.
func (d *Device) Open(name string) (*Light, error) {
	var set func(State) error
	switch ID(name) {
	case IDBacklight:
		set = d.SetBacklight
	case IDButtons:
		set = d.SetButtons
	case IDBattery:
		set = d.SetBattery
	case IDNotifications:
		set = d.SetNotification
	case IDAttention:
		set = d.SetAttention
	default:
		return nil, ErrUnknownLight
	}
	return &Light{id: ID(name), set: set}, nil
}

// Code converts a result into a status code: 0, -EINVAL for unknown lights,
// or the negated errno of a failed hardware write.
func Code(err error) int {
	if errors.Is(err, ErrUnknownLight) {
		return -int(syscall.EINVAL)
	}
	return hw.Code(err)
}
