package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves every promauto-registered metric in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
