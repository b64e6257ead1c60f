package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/lighthal/internal/api/models"
	"github.com/smazurov/lighthal/internal/lights"
)

// registerLightRoutes registers the light control endpoints.
func (s *Server) registerLightRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "set-light",
		Method:      http.MethodPost,
		Path:        "/api/lights/{id}",
		Summary:     "Set Light",
		Description: "Store a new state for a logical light and re-run arbitration. Hardware write failures are reported in code but do not fail the request.",
		Tags:        []string{"lights"},
		Errors:      []int{401, 404, 422},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.SetLightRequest) (*models.SetLightResponse, error) {
		state, err := stateFromRequest(input.Body)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}

		err = s.options.Device.Set(lights.ID(input.ID), state)
		if errors.Is(err, lights.ErrUnknownLight) {
			return nil, huma.Error404NotFound("Unknown light", err)
		}

		result := models.SetLightResult{
			Light: input.ID,
			Color: state.Hex(),
			Code:  lights.Code(err),
		}
		if err != nil {
			result.Error = err.Error()
		}
		return &models.SetLightResponse{Body: result}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-lights",
		Method:      http.MethodGet,
		Path:        "/api/lights",
		Summary:     "Get Lights",
		Description: "Current arbitration state: active sources, winner and the stored state of each source",
		Tags:        []string{"lights"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.LightsResponse, error) {
		return &models.LightsResponse{Body: snapshotData(s.options.Device.Snapshot())}, nil
	})
}

func stateFromRequest(body models.SetLightData) (lights.State, error) {
	color, err := lights.ParseColor(body.Color)
	if err != nil {
		return lights.State{}, err
	}
	flash, err := lights.ParseFlashMode(body.FlashMode)
	if err != nil {
		return lights.State{}, err
	}
	brightness, err := lights.ParseBrightnessMode(body.BrightnessMode)
	if err != nil {
		return lights.State{}, err
	}
	return lights.State{
		Color:          color,
		FlashMode:      flash,
		FlashOnMS:      body.FlashOnMS,
		FlashOffMS:     body.FlashOffMS,
		BrightnessMode: brightness,
	}, nil
}

func snapshotData(snap lights.Snapshot) models.LightsData {
	data := models.LightsData{
		Winner:  snap.Winner.String(),
		Active:  snap.Active.Names(),
		Sources: make([]models.LightStateData, 0, len(lights.DefaultPriority)),
	}
	for _, src := range lights.DefaultPriority {
		st := snap.Slots[src]
		data.Sources = append(data.Sources, models.LightStateData{
			Source:         src.String(),
			Color:          st.Hex(),
			Brightness:     st.Brightness(),
			Active:         snap.Active.Has(src),
			FlashMode:      st.FlashMode.String(),
			FlashOnMS:      st.FlashOnMS,
			FlashOffMS:     st.FlashOffMS,
			BrightnessMode: st.BrightnessMode.String(),
		})
	}
	if snap.Backlight >= 0 {
		b := snap.Backlight
		data.Backlight = &b
	}
	return data
}
