package notification_service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/AbhinavSharma486/FixMySociety-sub001/config"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/notification_dto"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	notification_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/notification"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

type NotificationService struct {
	AppState         *state.AppState
	NotificationRepo notification_repo.NotificationRepoContract
	Redis            *redis.Client
	DedupWindow      time.Duration
	TTL              time.Duration
}

func NewNotificationService(appState *state.AppState) NotificationServiceContract {
	return &NotificationService{
		AppState:         appState,
		NotificationRepo: notification_repo.NewNotificationRepo(appState.Mongo),
		Redis:            appState.Redis,
		DedupWindow:      time.Duration(config.Conf.ENGINE.NotifDedupSeconds) * time.Second,
		TTL:              time.Duration(config.Conf.ENGINE.NotifExpiryDays) * 24 * time.Hour,
	}
}

func (s *NotificationService) ListNotifications(ctx context.Context, actor entity.Actor, req notification_dto.ListNotificationsRequest) (*notification_dto.ListNotificationsResponse, *app_error.AppError) {
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	pageData, appErr := s.NotificationRepo.ListForRecipient(ctx, actor.ID, page, limit, time.Now())
	if appErr != nil {
		return nil, appErr
	}

	resp := &notification_dto.ListNotificationsResponse{
		Notifications: make([]notification_dto.NotificationResponse, 0, len(pageData.Items)),
		Total:         pageData.Total,
		UnreadCount:   pageData.UnreadCount,
		Page:          page,
		Limit:         limit,
	}
	for i := range pageData.Items {
		resp.Notifications = append(resp.Notifications, toNotificationResponse(&pageData.Items[i]))
	}
	return resp, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, actor entity.Actor, id string) *app_error.AppError {
	return s.NotificationRepo.SetReadState(ctx, id, actor.ID, true, time.Now())
}

func (s *NotificationService) MarkUnread(ctx context.Context, actor entity.Actor, id string) *app_error.AppError {
	return s.NotificationRepo.SetReadState(ctx, id, actor.ID, false, time.Now())
}

// DeleteNotification removes the actor's own record. Admins get no
// shortcut here: a notification belongs to its recipient alone.
func (s *NotificationService) DeleteNotification(ctx context.Context, actor entity.Actor, id string) *app_error.AppError {
	return s.NotificationRepo.DeleteForRecipient(ctx, id, actor.ID)
}

func (s *NotificationService) MaterializeForRecipients(ctx context.Context, payload types.MaterializeNotificationsPayload) ([]entity.Notification, *app_error.AppError) {
	if !entity.IsValidNotificationType(payload.Type) {
		return nil, app_error.NewValidationError(fmt.Sprintf("unknown notification type %q", payload.Type), "type")
	}

	var broadcastID *bson.ObjectID
	if payload.BroadcastID != "" {
		objID, err := bson.ObjectIDFromHex(payload.BroadcastID)
		if err != nil {
			return nil, app_error.NewValidationError(fmt.Sprintf("invalid broadcast ID: %v", err), "invalid-id")
		}
		broadcastID = &objID
	}

	now := time.Now()
	created := make([]entity.Notification, 0, len(payload.Recipients))
	for _, recipientID := range payload.Recipients {
		fresh, err := s.claimDedupSlot(ctx, recipientID, payload)
		if err != nil {
			log.Error().Err(err).Str("recipient", recipientID).Msg("notification dedup check failed, writing anyway")
		} else if !fresh {
			log.Debug().Str("recipient", recipientID).Str("type", payload.Type).Msg("duplicate notification suppressed")
			continue
		}

		n := entity.Notification{
			RecipientID:     recipientID,
			SenderID:        payload.SenderID,
			SenderRole:      payload.SenderRole,
			Type:            payload.Type,
			Message:         payload.Message,
			RelatedEntityID: payload.RelatedEntityID,
			BroadcastID:     broadcastID,
			CreatedAt:       now,
			ExpiresAt:       now.Add(s.TTL),
		}
		if appErr := s.NotificationRepo.InsertNotification(ctx, &n); appErr != nil {
			return created, appErr
		}
		created = append(created, n)
	}
	return created, nil
}

// claimDedupSlot is an atomic SetNX: the first writer of the key within
// the window wins, everyone else is a duplicate.
func (s *NotificationService) claimDedupSlot(ctx context.Context, recipientID string, payload types.MaterializeNotificationsPayload) (bool, error) {
	key := fmt.Sprintf("notif_dedup:%s:%s:%s:%s", recipientID, payload.Type, payload.RelatedEntityID, payload.SenderID)
	return s.Redis.SetNX(ctx, key, payload.EventID, s.DedupWindow).Result()
}

func (s *NotificationService) SweepExpired(ctx context.Context) (int64, *app_error.AppError) {
	return s.NotificationRepo.DeleteExpired(ctx, time.Now())
}

func (s *NotificationService) RetractBroadcast(ctx context.Context, broadcastID string) ([]string, *app_error.AppError) {
	return s.NotificationRepo.CascadeDeleteForBroadcast(ctx, broadcastID)
}

func toNotificationResponse(n *entity.Notification) notification_dto.NotificationResponse {
	resp := notification_dto.NotificationResponse{
		ID:              n.ID.Hex(),
		Type:            n.Type,
		SenderID:        n.SenderID,
		SenderRole:      n.SenderRole,
		Message:         n.Message,
		RelatedEntityID: n.RelatedEntityID,
		IsRead:          n.IsRead,
		ReadAt:          n.ReadAt,
		CreatedAt:       n.CreatedAt,
		ExpiresAt:       n.ExpiresAt,
	}
	if n.BroadcastID != nil {
		resp.BroadcastID = n.BroadcastID.Hex()
	}
	return resp
}
