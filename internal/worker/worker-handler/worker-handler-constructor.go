package worker_handler

import (
	"github.com/redis/go-redis/v9"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dispatch"
	notification_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/notification-case"
	stats_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/stats-case"
)

// WorkerHandler carries the dependencies every job handler needs. Pusher
// is used for direct room pushes that must not re-enter the dispatcher,
// Dispatcher for events that should go through the normal fan-out path.
type WorkerHandler struct {
	Redis         *redis.Client
	Pusher        dispatch.RoomPusher
	Dispatcher    dispatch.Sink
	Notifications notification_service.NotificationServiceContract
	Stats         stats_service.StatsServiceContract
}

func NewWorkerHandler(
	redis *redis.Client,
	pusher dispatch.RoomPusher,
	dispatcher dispatch.Sink,
	notifications notification_service.NotificationServiceContract,
	stats stats_service.StatsServiceContract,
) *WorkerHandler {
	return &WorkerHandler{
		Redis:         redis,
		Pusher:        pusher,
		Dispatcher:    dispatcher,
		Notifications: notifications,
		Stats:         stats,
	}
}
