package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/middleware"
	broadcast_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/broadcast-case"
	building_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/building-case"
	complaint_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/complaint-case"
	notification_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/notification-case"
	stats_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/stats-case"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/websocket"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

// Dependencies is everything the route tree needs, built once in main.
type Dependencies struct {
	Hub           *websocket.Hub
	WSHandler     *websocket.WebSocketHandler
	Buildings     building_service.BuildingServiceContract
	Complaints    complaint_service.ComplaintServiceContract
	Notifications notification_service.NotificationServiceContract
	Broadcasts    broadcast_service.BroadcastServiceContract
	Stats         stats_service.StatsServiceContract
}

func NewRouter(state *state.AppState, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)

	HubRouter(r, state, deps)
	BuildingRouter(r, state, deps)
	ComplaintRouter(r, state, deps)
	NotificationRouter(r, state, deps)
	BroadcastRouter(r, state, deps)
	StatsRouter(r, state, deps)
	return r
}
