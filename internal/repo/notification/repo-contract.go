package notification_repo

import (
	"context"
	"time"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

type ListPage struct {
	Items       []entity.Notification `json:"items"`
	Total       int64                 `json:"total"`
	UnreadCount int64                 `json:"unread_count"`
}

type NotificationRepoContract interface {
	InsertNotification(ctx context.Context, n *entity.Notification) *app_error.AppError
	FindNotificationByID(ctx context.Context, id string) (*entity.Notification, *app_error.AppError)
	ListForRecipient(ctx context.Context, recipientID string, page, limit int64, now time.Time) (*ListPage, *app_error.AppError)
	SetReadState(ctx context.Context, id, recipientID string, read bool, now time.Time) *app_error.AppError
	DeleteForRecipient(ctx context.Context, id, recipientID string) *app_error.AppError
	DeleteExpired(ctx context.Context, now time.Time) (int64, *app_error.AppError)
	CascadeDeleteForBroadcast(ctx context.Context, broadcastID string) ([]string, *app_error.AppError)
}
