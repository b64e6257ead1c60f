package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/lighthal/internal/api/models"
)

// registerPowerRoutes registers the battery status endpoint when a reader
// is configured.
func (s *Server) registerPowerRoutes() {
	if s.options.Battery == nil {
		s.logger.Debug("Battery reader not configured, skipping power routes")
		return
	}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-battery",
		Method:      http.MethodGet,
		Path:        "/api/power/battery",
		Summary:     "Get Battery",
		Description: "Battery charge and status as reported by the power supply driver",
		Tags:        []string{"power"},
		Errors:      []int{401, 503},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.BatteryResponse, error) {
		battery, err := s.options.Battery.Battery()
		if err != nil {
			return nil, huma.Error503ServiceUnavailable("Battery status unavailable", err)
		}
		return &models.BatteryResponse{
			Body: models.BatteryData{
				Capacity: battery.Capacity,
				Status:   battery.Status,
				Charging: battery.Charging(),
			},
		}, nil
	})
}
