// Package lights arbitrates the single indicator LED between the logical
// light sources and drives the display backlight.
package lights

import (
	"fmt"
	"strconv"
	"strings"
)

// Source identifies a logical light source competing for the indicator LED.
type Source uint8

// Light sources. Values double as bits of a SourceSet.
const (
	SourceNotification Source = 0x01
	SourceBattery      Source = 0x02
	SourceButtons      Source = 0x04
	SourceAttention    Source = 0x08
	SourceNone         Source = 0xFF
)

// DefaultPriority is the fixed arbitration order, highest first.
var DefaultPriority = []Source{
	SourceNotification,
	SourceBattery,
	SourceButtons,
	SourceAttention,
}

func (s Source) String() string {
	switch s {
	case SourceNotification:
		return "notification"
	case SourceBattery:
		return "battery"
	case SourceButtons:
		return "buttons"
	case SourceAttention:
		return "attention"
	case SourceNone:
		return "none"
	default:
		return fmt.Sprintf("source(%#x)", uint8(s))
	}
}

// SourceSet is a bitmask of sources currently requesting a nonzero
// brightness.
type SourceSet uint8

// Has reports whether src is in the set.
func (s SourceSet) Has(src Source) bool {
	return src != SourceNone && s&SourceSet(src) != 0
}

// With returns the set with src added.
func (s SourceSet) With(src Source) SourceSet {
	return s | SourceSet(src)
}

// Without returns the set with src removed.
func (s SourceSet) Without(src Source) SourceSet {
	return s &^ SourceSet(src)
}

// Empty reports whether no source is active.
func (s SourceSet) Empty() bool {
	return s == 0
}

// Sources lists the members in priority order.
func (s SourceSet) Sources() []Source {
	out := make([]Source, 0, len(DefaultPriority))
	for _, src := range DefaultPriority {
		if s.Has(src) {
			out = append(out, src)
		}
	}
	return out
}

// Names lists the members by name in priority order.
func (s SourceSet) Names() []string {
	sources := s.Sources()
	out := make([]string, len(sources))
	for i, src := range sources {
		out[i] = src.String()
	}
	return out
}

// FlashMode is the requested flashing behavior. Stored, not interpreted.
type FlashMode int

// Flash modes.
const (
	FlashNone FlashMode = iota
	FlashTimed
	FlashHardware
)

var flashModeNames = map[FlashMode]string{
	FlashNone:     "none",
	FlashTimed:    "timed",
	FlashHardware: "hardware",
}

func (m FlashMode) String() string {
	if name, ok := flashModeNames[m]; ok {
		return name
	}
	return "flash(" + strconv.Itoa(int(m)) + ")"
}

// ParseFlashMode maps a name back to a FlashMode. Empty means FlashNone.
func ParseFlashMode(name string) (FlashMode, error) {
	if name == "" {
		return FlashNone, nil
	}
	for m, n := range flashModeNames {
		if n == name {
			return m, nil
		}
	}
	return FlashNone, fmt.Errorf("unknown flash mode %q", name)
}

// BrightnessMode tells whether brightness is user or sensor controlled.
// Stored, not interpreted.
type BrightnessMode int

// Brightness modes.
const (
	BrightnessUser BrightnessMode = iota
	BrightnessSensor
	BrightnessLowPersistence
)

var brightnessModeNames = map[BrightnessMode]string{
	BrightnessUser:           "user",
	BrightnessSensor:         "sensor",
	BrightnessLowPersistence: "low_persistence",
}

func (m BrightnessMode) String() string {
	if name, ok := brightnessModeNames[m]; ok {
		return name
	}
	return "brightness(" + strconv.Itoa(int(m)) + ")"
}

// ParseBrightnessMode maps a name back to a BrightnessMode. Empty means
// BrightnessUser.
func ParseBrightnessMode(name string) (BrightnessMode, error) {
	if name == "" {
		return BrightnessUser, nil
	}
	for m, n := range brightnessModeNames {
		if n == name {
			return m, nil
		}
	}
	return BrightnessUser, fmt.Errorf("unknown brightness mode %q", name)
}

// State is the last requested appearance of one logical light.
type State struct {
	// Color is 0xAARRGGBB. The alpha byte is ignored.
	Color          uint32
	FlashMode      FlashMode
	FlashOnMS      int
	FlashOffMS     int
	BrightnessMode BrightnessMode
}

// Brightness is the red channel of the color. Arbitration only looks at this.
func (s State) Brightness() int {
	return int((s.Color >> 16) & 0xFF)
}

// Luma is the average of the three color channels, used for the backlight.
func (s State) Luma() int {
	c := s.Color & 0x00FFFFFF
	r := (c >> 16) & 0xFF
	g := (c >> 8) & 0xFF
	b := c & 0xFF
	return int((r + g + b) / 3)
}

// Hex formats the color as #AARRGGBB.
func (s State) Hex() string {
	return fmt.Sprintf("#%08x", s.Color)
}

// ParseColor accepts "#RRGGBB", "#AARRGGBB" and the same with a "0x" prefix
// or without any prefix.
func ParseColor(text string) (uint32, error) {
	v := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(v, "#"):
		v = v[1:]
	case strings.HasPrefix(v, "0x"), strings.HasPrefix(v, "0X"):
		v = v[2:]
	}
	if len(v) != 6 && len(v) != 8 {
		return 0, fmt.Errorf("invalid color %q: want 6 or 8 hex digits", text)
	}
	c, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", text, err)
	}
	return uint32(c), nil
}

// ID is a host logical light identifier.
type ID string

// Logical light ids.
const (
	IDBacklight     ID = "backlight"
	IDButtons       ID = "buttons"
	IDBattery       ID = "battery"
	IDNotifications ID = "notifications"
	IDAttention     ID = "attention"
)

// IDs lists every logical light id.
var IDs = []ID{IDBacklight, IDButtons, IDBattery, IDNotifications, IDAttention}

// Source maps an id to its arbitration source. The backlight has none.
func (id ID) Source() (Source, bool) {
	switch id {
	case IDNotifications:
		return SourceNotification, true
	case IDBattery:
		return SourceBattery, true
	case IDButtons:
		return SourceButtons, true
	case IDAttention:
		return SourceAttention, true
	default:
		return SourceNone, false
	}
}

// Hardware channels selected through the selector file.
const (
	ChannelButtons = 8
	ChannelRed     = 16
)

// Blink modes written to the blink mode file.
const (
	BlinkOn     = "6"
	BlinkBreath = "3"
	BlinkOff    = "2"
)

// Fixed intensity grades used when the buttons source wins.
const (
	GradeButtons = 3
	GradeRed     = 8
)
