package notification_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

const (
	databaseName           = "fixmysociety"
	notificationCollection = "notifications"
)

type NotificationRepo struct {
	Mongo *mongo.Client
}

func NewNotificationRepo(client *mongo.Client) NotificationRepoContract {
	return &NotificationRepo{Mongo: client}
}

func (r *NotificationRepo) collection() *mongo.Collection {
	return r.Mongo.Database(databaseName).Collection(notificationCollection)
}

func (r *NotificationRepo) InsertNotification(ctx context.Context, n *entity.Notification) *app_error.AppError {
	if n.ID.IsZero() {
		n.ID = bson.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.ExpiresAt.IsZero() {
		n.ExpiresAt = n.CreatedAt.Add(entity.DefaultNotificationTTL)
	}

	if _, err := r.collection().InsertOne(ctx, n); err != nil {
		return app_error.NewInternalError(fmt.Sprintf("failed to create notification: %v", err), "mongo")
	}
	return nil
}

func (r *NotificationRepo) FindNotificationByID(ctx context.Context, id string) (*entity.Notification, *app_error.AppError) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, app_error.NewValidationError(fmt.Sprintf("invalid notification ID: %v", err), "invalid-id")
	}

	var n entity.Notification
	if err := r.collection().FindOne(ctx, bson.M{"_id": objID}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewNotFoundError("notification not found")
		}
		return nil, app_error.NewInternalError(fmt.Sprintf("failed to fetch notification: %v", err), "mongo")
	}
	return &n, nil
}

// ListForRecipient excludes expired records at read time; a record past
// expiresAt is invisible even before the sweep removes it.
func (r *NotificationRepo) ListForRecipient(ctx context.Context, recipientID string, page, limit int64, now time.Time) (*ListPage, *app_error.AppError) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{
		"recipientId": recipientID,
		"expiresAt":   bson.M{"$gt": now},
	}

	total, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, app_error.NewInternalError("failed to count notifications", "mongo")
	}

	unreadFilter := bson.M{
		"recipientId": recipientID,
		"expiresAt":   bson.M{"$gt": now},
		"isRead":      false,
	}
	unread, err := r.collection().CountDocuments(ctx, unreadFilter)
	if err != nil {
		return nil, app_error.NewInternalError("failed to count unread notifications", "mongo")
	}

	cur, err := r.collection().Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip((page-1)*limit).
		SetLimit(limit))
	if err != nil {
		return nil, app_error.NewInternalError(fmt.Sprintf("failed to fetch notifications: %v", err), "mongo")
	}
	defer cur.Close(ctx)

	items := []entity.Notification{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, app_error.NewInternalError(fmt.Sprintf("failed to decode notifications: %v", err), "mongo")
	}

	return &ListPage{Items: items, Total: total, UnreadCount: unread}, nil
}

// SetReadState transitions read/unread. Only the recipient may touch
// their record; re-marking an already-read record read is a no-op
// success. An expired record can never be resurrected.
func (r *NotificationRepo) SetReadState(ctx context.Context, id, recipientID string, read bool, now time.Time) *app_error.AppError {
	n, appErr := r.FindNotificationByID(ctx, id)
	if appErr != nil {
		return appErr
	}
	if n.RecipientID != recipientID {
		return app_error.NewAuthorizationError("notification belongs to another recipient")
	}
	if n.Expired(now) {
		return app_error.NewNotFoundError("notification has expired")
	}

	update := bson.M{"$set": bson.M{"isRead": read}}
	if read {
		update["$set"].(bson.M)["readAt"] = now
	} else {
		update = bson.M{
			"$set":   bson.M{"isRead": false},
			"$unset": bson.M{"readAt": ""},
		}
	}

	if _, err := r.collection().UpdateOne(ctx, bson.M{"_id": n.ID, "recipientId": recipientID}, update); err != nil {
		return app_error.NewInternalError("failed to update notification read state", "mongo")
	}
	return nil
}

func (r *NotificationRepo) DeleteForRecipient(ctx context.Context, id, recipientID string) *app_error.AppError {
	n, appErr := r.FindNotificationByID(ctx, id)
	if appErr != nil {
		return appErr
	}
	if n.RecipientID != recipientID {
		return app_error.NewAuthorizationError("notification belongs to another recipient")
	}

	if _, err := r.collection().DeleteOne(ctx, bson.M{"_id": n.ID, "recipientId": recipientID}); err != nil {
		return app_error.NewInternalError("failed to delete notification", "mongo")
	}
	return nil
}

func (r *NotificationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, *app_error.AppError) {
	result, err := r.collection().DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": now}})
	if err != nil {
		return 0, app_error.NewInternalError("failed to sweep expired notifications", "mongo")
	}
	return result.DeletedCount, nil
}

// CascadeDeleteForBroadcast removes every notification referencing the
// broadcast and returns the affected recipients so the dispatcher can
// push one retraction event each.
func (r *NotificationRepo) CascadeDeleteForBroadcast(ctx context.Context, broadcastID string) ([]string, *app_error.AppError) {
	objID, err := bson.ObjectIDFromHex(broadcastID)
	if err != nil {
		return nil, app_error.NewValidationError(fmt.Sprintf("invalid broadcast ID: %v", err), "invalid-id")
	}

	filter := bson.M{"broadcastId": objID}

	var recipients []string
	if err := r.collection().Distinct(ctx, "recipientId", filter).Decode(&recipients); err != nil {
		return nil, app_error.NewInternalError("failed to resolve broadcast recipients", "mongo")
	}

	if _, err := r.collection().DeleteMany(ctx, filter); err != nil {
		return nil, app_error.NewInternalError("failed to cascade delete notifications", "mongo")
	}

	return recipients, nil
}
