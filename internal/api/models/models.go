// Package models holds the request and response bodies of the HTTP API.
package models

// Health check models

type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models

type VersionData struct {
	Version   string `json:"version" example:"dev" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit SHA"`
	BuildDate string `json:"build_date" example:"2025-01-27 14:30" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go compiler version"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Platform"`
}

type VersionResponse struct {
	Body VersionData
}

// Light models

type SetLightData struct {
	Color          string `json:"color" pattern:"^(#|0x)?([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$" example:"#00ff0000" doc:"Color as #RRGGBB or #AARRGGBB; alpha is ignored"`
	FlashMode      string `json:"flash_mode,omitempty" enum:"none,timed,hardware" default:"none" doc:"Requested flash mode, stored but not interpreted"`
	FlashOnMS      int    `json:"flash_on_ms,omitempty" minimum:"0" example:"500" doc:"Flash on time in milliseconds"`
	FlashOffMS     int    `json:"flash_off_ms,omitempty" minimum:"0" example:"2000" doc:"Flash off time in milliseconds"`
	BrightnessMode string `json:"brightness_mode,omitempty" enum:"user,sensor,low_persistence" default:"user" doc:"Brightness mode, stored but not interpreted"`
}

type SetLightRequest struct {
	ID   string `path:"id" enum:"backlight,buttons,battery,notifications,attention" doc:"Logical light id"`
	Body SetLightData
}

type SetLightResult struct {
	Light string `json:"light" example:"battery" doc:"Logical light id"`
	Color string `json:"color" example:"#00ff0000" doc:"Color stored, as #AARRGGBB"`
	Code  int    `json:"code" example:"0" doc:"0, or the negated errno of the first failed hardware write. The request is accepted either way."`
	Error string `json:"error,omitempty" doc:"Hardware write failure, if any"`
}

type SetLightResponse struct {
	Body SetLightResult
}

type LightStateData struct {
	Source         string `json:"source" example:"battery" doc:"Arbitration source"`
	Color          string `json:"color" example:"#00ff0000" doc:"Last requested color"`
	Brightness     int    `json:"brightness" example:"255" doc:"Red channel value used for arbitration"`
	Active         bool   `json:"active" doc:"Whether the source is in the active set"`
	FlashMode      string `json:"flash_mode" example:"none" doc:"Requested flash mode"`
	FlashOnMS      int    `json:"flash_on_ms" doc:"Flash on time in milliseconds"`
	FlashOffMS     int    `json:"flash_off_ms" doc:"Flash off time in milliseconds"`
	BrightnessMode string `json:"brightness_mode" example:"user" doc:"Brightness mode"`
}

type LightsData struct {
	Winner    string           `json:"winner" example:"notification" doc:"Source driving the indicator LED, or none"`
	Active    []string         `json:"active" doc:"Active sources in priority order"`
	Sources   []LightStateData `json:"sources" doc:"Stored state per source in priority order"`
	Backlight *int             `json:"backlight,omitempty" example:"128" doc:"Last backlight brightness written"`
}

type LightsResponse struct {
	Body LightsData
}

// Power models

type BatteryData struct {
	Capacity int    `json:"capacity" example:"57" doc:"Charge in percent"`
	Status   string `json:"status" example:"Charging" doc:"Kernel charge status"`
	Charging bool   `json:"charging" doc:"Whether a charger is connected"`
}

type BatteryResponse struct {
	Body BatteryData
}
