package notification_service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/notification_dto"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	notification_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/notification"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
)

type fakeNotificationRepo struct {
	records map[string]*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{records: map[string]*entity.Notification{}}
}

func (f *fakeNotificationRepo) InsertNotification(_ context.Context, n *entity.Notification) *app_error.AppError {
	if n.ID.IsZero() {
		n.ID = bson.NewObjectID()
	}
	clone := *n
	f.records[n.ID.Hex()] = &clone
	return nil
}

func (f *fakeNotificationRepo) FindNotificationByID(_ context.Context, id string) (*entity.Notification, *app_error.AppError) {
	n, ok := f.records[id]
	if !ok {
		return nil, app_error.NewNotFoundError("notification not found")
	}
	clone := *n
	return &clone, nil
}

func (f *fakeNotificationRepo) ListForRecipient(_ context.Context, recipientID string, page, limit int64, now time.Time) (*notification_repo.ListPage, *app_error.AppError) {
	out := &notification_repo.ListPage{Items: []entity.Notification{}}
	for _, n := range f.records {
		if n.RecipientID != recipientID || n.Expired(now) {
			continue
		}
		out.Items = append(out.Items, *n)
		out.Total++
		if !n.IsRead {
			out.UnreadCount++
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) SetReadState(_ context.Context, id, recipientID string, read bool, now time.Time) *app_error.AppError {
	n, ok := f.records[id]
	if !ok {
		return app_error.NewNotFoundError("notification not found")
	}
	if n.RecipientID != recipientID {
		return app_error.NewAuthorizationError("notification belongs to another recipient")
	}
	if n.Expired(now) {
		return app_error.NewNotFoundError("notification has expired")
	}
	n.IsRead = read
	if read {
		n.ReadAt = &now
	} else {
		n.ReadAt = nil
	}
	return nil
}

func (f *fakeNotificationRepo) DeleteForRecipient(_ context.Context, id, recipientID string) *app_error.AppError {
	n, ok := f.records[id]
	if !ok {
		return app_error.NewNotFoundError("notification not found")
	}
	if n.RecipientID != recipientID {
		return app_error.NewAuthorizationError("notification belongs to another recipient")
	}
	delete(f.records, id)
	return nil
}

func (f *fakeNotificationRepo) DeleteExpired(_ context.Context, now time.Time) (int64, *app_error.AppError) {
	var n int64
	for id, rec := range f.records {
		if rec.Expired(now) {
			delete(f.records, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) CascadeDeleteForBroadcast(_ context.Context, broadcastID string) ([]string, *app_error.AppError) {
	objID, err := bson.ObjectIDFromHex(broadcastID)
	if err != nil {
		return nil, app_error.NewValidationError("invalid broadcast ID", "invalid-id")
	}
	seen := map[string]struct{}{}
	var recipients []string
	for id, rec := range f.records {
		if rec.BroadcastID == nil || *rec.BroadcastID != objID {
			continue
		}
		if _, dup := seen[rec.RecipientID]; !dup {
			seen[rec.RecipientID] = struct{}{}
			recipients = append(recipients, rec.RecipientID)
		}
		delete(f.records, id)
	}
	return recipients, nil
}

func newTestService(t *testing.T) (*NotificationService, *fakeNotificationRepo, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	repo := newFakeNotificationRepo()
	svc := &NotificationService{
		NotificationRepo: repo,
		Redis:            rdb,
		DedupWindow:      30 * time.Second,
		TTL:              30 * 24 * time.Hour,
	}
	return svc, repo, mr
}

func listReq() notification_dto.ListNotificationsRequest {
	return notification_dto.ListNotificationsRequest{Page: 1, Limit: 20}
}

func basePayload() types.MaterializeNotificationsPayload {
	return types.MaterializeNotificationsPayload{
		EventID:         "c1:status_changed:1",
		Type:            entity.NotifStatusChanged,
		SenderID:        "admin-1",
		SenderRole:      entity.RoleAdmin,
		Message:         "Your complaint moved to InProgress",
		RelatedEntityID: "c1",
		Recipients:      []string{"res-1"},
		EmittedAt:       time.Now(),
	}
}

func TestMaterialize_OnePerRecipient(t *testing.T) {
	svc, repo, _ := newTestService(t)

	payload := basePayload()
	payload.Recipients = []string{"res-1", "res-2", "res-3"}

	created, appErr := svc.MaterializeForRecipients(context.Background(), payload)
	require.Nil(t, appErr)
	assert.Len(t, created, 3)
	assert.Len(t, repo.records, 3)

	for _, n := range created {
		assert.Equal(t, entity.NotifStatusChanged, n.Type)
		assert.False(t, n.IsRead)
		assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), n.ExpiresAt, time.Minute)
	}
}

func TestMaterialize_DuplicateWithinWindowSuppressed(t *testing.T) {
	svc, repo, mr := newTestService(t)

	created, appErr := svc.MaterializeForRecipients(context.Background(), basePayload())
	require.Nil(t, appErr)
	require.Len(t, created, 1)

	// same recipient, type, entity and sender inside the window: no second record
	again := basePayload()
	again.EventID = "c1:status_changed:2"
	created, appErr = svc.MaterializeForRecipients(context.Background(), again)
	require.Nil(t, appErr)
	assert.Empty(t, created)
	assert.Len(t, repo.records, 1)

	// once the window lapses the same shape is a fresh notification
	mr.FastForward(31 * time.Second)
	created, appErr = svc.MaterializeForRecipients(context.Background(), again)
	require.Nil(t, appErr)
	assert.Len(t, created, 1)
	assert.Len(t, repo.records, 2)
}

func TestMaterialize_DifferentRecipientNotSuppressed(t *testing.T) {
	svc, repo, _ := newTestService(t)

	_, appErr := svc.MaterializeForRecipients(context.Background(), basePayload())
	require.Nil(t, appErr)

	other := basePayload()
	other.Recipients = []string{"res-2"}
	created, appErr := svc.MaterializeForRecipients(context.Background(), other)
	require.Nil(t, appErr)
	assert.Len(t, created, 1)
	assert.Len(t, repo.records, 2)
}

func TestMaterialize_UnknownTypeRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	payload := basePayload()
	payload.Type = "shouting"
	_, appErr := svc.MaterializeForRecipients(context.Background(), payload)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestMarkRead_TwiceIsNoop(t *testing.T) {
	svc, repo, _ := newTestService(t)
	n := &entity.Notification{
		RecipientID: "res-1",
		Type:        entity.NotifCommentAdded,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.Nil(t, repo.InsertNotification(context.Background(), n))

	actor := entity.Actor{ID: "res-1", Role: entity.RoleResident}
	require.Nil(t, svc.MarkRead(context.Background(), actor, n.ID.Hex()))
	first := repo.records[n.ID.Hex()].ReadAt
	require.NotNil(t, first)

	require.Nil(t, svc.MarkRead(context.Background(), actor, n.ID.Hex()))
	assert.True(t, repo.records[n.ID.Hex()].IsRead)

	require.Nil(t, svc.MarkUnread(context.Background(), actor, n.ID.Hex()))
	assert.False(t, repo.records[n.ID.Hex()].IsRead)
	assert.Nil(t, repo.records[n.ID.Hex()].ReadAt)
}

func TestMarkRead_OtherRecipientRejected(t *testing.T) {
	svc, repo, _ := newTestService(t)
	n := &entity.Notification{
		RecipientID: "res-1",
		Type:        entity.NotifCommentAdded,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.Nil(t, repo.InsertNotification(context.Background(), n))

	// even an admin cannot touch someone else's record
	admin := entity.Actor{ID: "admin-1", Role: entity.RoleAdmin}
	appErr := svc.MarkRead(context.Background(), admin, n.ID.Hex())
	require.NotNil(t, appErr)
	assert.True(t, appErr.IsAuthorization())
}

func TestListNotifications_ExcludesExpired(t *testing.T) {
	svc, repo, _ := newTestService(t)
	live := &entity.Notification{RecipientID: "res-1", Type: entity.NotifAdminMessage, ExpiresAt: time.Now().Add(time.Hour)}
	expired := &entity.Notification{RecipientID: "res-1", Type: entity.NotifAdminMessage, ExpiresAt: time.Now().Add(-time.Hour)}
	require.Nil(t, repo.InsertNotification(context.Background(), live))
	require.Nil(t, repo.InsertNotification(context.Background(), expired))

	actor := entity.Actor{ID: "res-1", Role: entity.RoleResident}
	resp, appErr := svc.ListNotifications(context.Background(), actor, listReq())
	require.Nil(t, appErr)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, int64(1), resp.UnreadCount)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, live.ID.Hex(), resp.Notifications[0].ID)
}

func TestSweepExpired(t *testing.T) {
	svc, repo, _ := newTestService(t)
	require.Nil(t, repo.InsertNotification(context.Background(), &entity.Notification{RecipientID: "res-1", ExpiresAt: time.Now().Add(-time.Minute)}))
	require.Nil(t, repo.InsertNotification(context.Background(), &entity.Notification{RecipientID: "res-2", ExpiresAt: time.Now().Add(time.Minute)}))

	removed, appErr := svc.SweepExpired(context.Background())
	require.Nil(t, appErr)
	assert.Equal(t, int64(1), removed)
	assert.Len(t, repo.records, 1)
}

func TestRetractBroadcast_CascadesAndReportsRecipients(t *testing.T) {
	svc, repo, _ := newTestService(t)
	broadcastID := bson.NewObjectID()
	for _, recipient := range []string{"res-1", "res-2"} {
		require.Nil(t, repo.InsertNotification(context.Background(), &entity.Notification{
			RecipientID: recipient,
			Type:        entity.NotifAdminMessage,
			BroadcastID: &broadcastID,
			ExpiresAt:   time.Now().Add(time.Hour),
		}))
	}
	require.Nil(t, repo.InsertNotification(context.Background(), &entity.Notification{
		RecipientID: "res-3",
		Type:        entity.NotifCommentAdded,
		ExpiresAt:   time.Now().Add(time.Hour),
	}))

	recipients, appErr := svc.RetractBroadcast(context.Background(), broadcastID.Hex())
	require.Nil(t, appErr)
	assert.ElementsMatch(t, []string{"res-1", "res-2"}, recipients)
	assert.Len(t, repo.records, 1, "unrelated notifications survive the cascade")
}
