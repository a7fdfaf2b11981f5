package notification_service

import (
	"context"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/notification_dto"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
)

type NotificationServiceContract interface {
	ListNotifications(ctx context.Context, actor entity.Actor, req notification_dto.ListNotificationsRequest) (*notification_dto.ListNotificationsResponse, *app_error.AppError)
	MarkRead(ctx context.Context, actor entity.Actor, id string) *app_error.AppError
	MarkUnread(ctx context.Context, actor entity.Actor, id string) *app_error.AppError
	DeleteNotification(ctx context.Context, actor entity.Actor, id string) *app_error.AppError

	// MaterializeForRecipients writes one durable record per recipient,
	// deduplicating identical notifications within the suppression
	// window. Returns the per-recipient records it actually created.
	MaterializeForRecipients(ctx context.Context, payload types.MaterializeNotificationsPayload) ([]entity.Notification, *app_error.AppError)

	// SweepExpired removes every record past its expiry.
	SweepExpired(ctx context.Context) (int64, *app_error.AppError)

	// RetractBroadcast cascade-deletes the broadcast's notifications and
	// returns the recipients that held one.
	RetractBroadcast(ctx context.Context, broadcastID string) ([]string, *app_error.AppError)
}
