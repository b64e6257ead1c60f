package hw

import "path/filepath"

// Default control files for the Nubia Z11 breathing LED driver.
const (
	DefaultBacklightPath       = "/sys/class/leds/lcd-backlight/brightness"
	DefaultSelectorPath        = "/sys/class/leds/nubia_led/outn"
	DefaultBlinkModePath       = "/sys/class/leds/nubia_led/blink_mode"
	DefaultGradePath           = "/sys/class/leds/nubia_led/grade_parameter"
	DefaultBatteryCapacityPath = "/sys/class/power_supply/battery/capacity"
	DefaultBatteryStatusPath   = "/sys/class/power_supply/battery/status"
)

// Paths locates the control and status files.
type Paths struct {
	Backlight       string
	Selector        string
	BlinkMode       string
	Grade           string
	BatteryCapacity string
	BatteryStatus   string
}

// DefaultPaths returns the stock sysfs locations.
func DefaultPaths() Paths {
	return Paths{
		Backlight:       DefaultBacklightPath,
		Selector:        DefaultSelectorPath,
		BlinkMode:       DefaultBlinkModePath,
		Grade:           DefaultGradePath,
		BatteryCapacity: DefaultBatteryCapacityPath,
		BatteryStatus:   DefaultBatteryStatusPath,
	}
}

// WithDefaults fills empty fields from DefaultPaths.
func (p Paths) WithDefaults() Paths {
	d := DefaultPaths()
	if p.Backlight == "" {
		p.Backlight = d.Backlight
	}
	if p.Selector == "" {
		p.Selector = d.Selector
	}
	if p.BlinkMode == "" {
		p.BlinkMode = d.BlinkMode
	}
	if p.Grade == "" {
		p.Grade = d.Grade
	}
	if p.BatteryCapacity == "" {
		p.BatteryCapacity = d.BatteryCapacity
	}
	if p.BatteryStatus == "" {
		p.BatteryStatus = d.BatteryStatus
	}
	return p
}

// ControlFiles lists the writable files by role, in a stable order.
func (p Paths) ControlFiles() []NamedPath {
	return []NamedPath{
		{Name: "backlight", Path: p.Backlight},
		{Name: "selector", Path: p.Selector},
		{Name: "blink_mode", Path: p.BlinkMode},
		{Name: "grade", Path: p.Grade},
	}
}

// StatusFiles lists the read-only battery files by role.
func (p Paths) StatusFiles() []NamedPath {
	return []NamedPath{
		{Name: "battery_capacity", Path: p.BatteryCapacity},
		{Name: "battery_status", Path: p.BatteryStatus},
	}
}

// LEDDir is the directory holding the indicator LED control files.
func (p Paths) LEDDir() string {
	return filepath.Dir(p.Selector)
}

// NamedPath pairs a control file role with its location.
type NamedPath struct {
	Name string
	Path string
}
