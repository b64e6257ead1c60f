// Package metrics provides Prometheus metrics for the lights HAL.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lighthal"

var (
	hwWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "hw",
		Name:      "writes_total",
		Help:      "Control file writes by path and result",
	}, []string{"path", "result"})

	lightRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "lights",
		Name:      "requests_total",
		Help:      "Set requests received per logical light",
	}, []string{"light"})

	sourceActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "lights",
		Name:      "source_active",
		Help:      "1 when the source currently requests a nonzero brightness",
	}, []string{"source"})

	sourceWinner = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "lights",
		Name:      "source_winner",
		Help:      "1 for the source currently driving the indicator LED",
	}, []string{"source"})

	backlightBrightness = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "backlight",
		Name:      "brightness",
		Help:      "Last brightness written to the display backlight",
	})
)

// RecordHardwareWrite counts a control file write.
func RecordHardwareWrite(path string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	hwWrites.WithLabelValues(path, result).Inc()
}

// RecordRequest counts a set request for a logical light.
func RecordRequest(light string) {
	lightRequests.WithLabelValues(light).Inc()
}

// SetSourceActive records whether a source is in the active set.
func SetSourceActive(source string, active bool) {
	sourceActive.WithLabelValues(source).Set(boolToFloat(active))
}

// SetWinner marks winner as the driving source and clears the others.
// An empty winner clears every source.
func SetWinner(sources []string, winner string) {
	for _, source := range sources {
		sourceWinner.WithLabelValues(source).Set(boolToFloat(source == winner))
	}
}

// SetBacklightBrightness records the last backlight brightness written.
func SetBacklightBrightness(brightness int) {
	backlightBrightness.Set(float64(brightness))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
