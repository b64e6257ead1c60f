// Package power reads the battery state exposed by the power supply driver.
package power

import (
	"fmt"
	"strconv"

	"github.com/smazurov/lighthal/internal/hw"
)

// Battery charge states reported by the kernel.
const (
	StatusCharging    = "Charging"
	StatusDischarging = "Discharging"
	StatusNotCharging = "Not charging"
	StatusFull        = "Full"
	StatusUnknown     = "Unknown"
)

// Battery is one reading of the battery status files.
type Battery struct {
	Capacity int
	Status   string
}

// Charging reports whether the battery is connected to a charger.
func (b Battery) Charging() bool {
	return b.Status == StatusCharging || b.Status == StatusFull
}

// Reader reads battery status files.
type Reader struct {
	r     hw.Reader
	paths hw.Paths
}

// NewReader creates a Reader. Empty paths fall back to the defaults.
func NewReader(r hw.Reader, paths hw.Paths) *Reader {
	return &Reader{r: r, paths: paths.WithDefaults()}
}

// Battery reads the capacity and status files. A missing status file is
// reported as StatusUnknown; the capacity is required.
func (p *Reader) Battery() (Battery, error) {
	raw, err := p.r.ReadString(p.paths.BatteryCapacity)
	if err != nil {
		return Battery{}, fmt.Errorf("read battery capacity: %w", err)
	}
	capacity, err := strconv.Atoi(raw)
	if err != nil {
		return Battery{}, fmt.Errorf("parse battery capacity %q: %w", raw, err)
	}
	if capacity < 0 || capacity > 100 {
		return Battery{}, fmt.Errorf("battery capacity %d out of range", capacity)
	}

	status, err := p.r.ReadString(p.paths.BatteryStatus)
	if err != nil || status == "" {
		status = StatusUnknown
	}

	return Battery{Capacity: capacity, Status: status}, nil
}
