package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/smazurov/lighthal/internal/events"
)

// registerSSERoutes registers the light event stream.
func (s *Server) registerSSERoutes() {
	if s.options.EventBus == nil {
		s.logger.Debug("Event bus not configured, skipping SSE routes")
		return
	}

	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of light requests, winner changes, backlight changes and hardware failures",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, events.Names(), func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 16)
		defer events.SubscribeAll(s.options.EventBus, eventCh)()

		// Start with the current state so clients need no extra request.
		snap := s.options.Device.Snapshot()
		if err := send.Data(events.WinnerChangedEvent{
			ID:        events.NewID(),
			Previous:  snap.Winner.String(),
			Winner:    snap.Winner.String(),
			Active:    snap.Active.Names(),
			Timestamp: events.Now(),
		}); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-eventCh:
				if err := send.Data(ev); err != nil {
					return
				}
			}
		}
	})
}
