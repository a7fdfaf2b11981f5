package broadcast_repo

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
	databaseName        = "fixmysociety"
	broadcastCollection = "broadcasts"
)

type BroadcastRepo struct {
	Mongo *mongo.Client
}

func NewBroadcastRepo(client *mongo.Client) BroadcastRepoContract {
	return &BroadcastRepo{Mongo: client}
}

func (r *BroadcastRepo) collection() *mongo.Collection {
	return r.Mongo.Database(databaseName).Collection(broadcastCollection)
}

func (r *BroadcastRepo) CreateBroadcast(ctx context.Context, b *entity.Broadcast) *app_error.AppError {
	if b.ID.IsZero() {
		b.ID = bson.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	if _, err := r.collection().InsertOne(ctx, b); err != nil {
		return app_error.NewInternalError(fmt.Sprintf("failed to create broadcast: %v", err), "mongo")
	}
	return nil
}

func (r *BroadcastRepo) FindBroadcastByID(ctx context.Context, id string) (*entity.Broadcast, *app_error.AppError) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, app_error.NewValidationError(fmt.Sprintf("invalid broadcast ID: %v", err), "invalid-id")
	}

	var b entity.Broadcast
	if err := r.collection().FindOne(ctx, bson.M{"_id": objID}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewNotFoundError("broadcast not found")
		}
		return nil, app_error.NewInternalError(fmt.Sprintf("failed to fetch broadcast: %v", err), "mongo")
	}
	return &b, nil
}

// ListBroadcasts with an empty buildingName lists everything; with a
// building it returns that building's broadcasts plus complex-wide ones.
func (r *BroadcastRepo) ListBroadcasts(ctx context.Context, buildingName string, page, limit int64) ([]entity.Broadcast, int64, *app_error.AppError) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if buildingName != "" {
		filter = bson.M{"buildingName": bson.M{"$in": []string{buildingName, ""}}}
	}

	total, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, app_error.NewInternalError("failed to count broadcasts", "mongo")
	}

	cur, err := r.collection().Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip((page-1)*limit).
		SetLimit(limit))
	if err != nil {
		return nil, 0, app_error.NewInternalError(fmt.Sprintf("failed to fetch broadcasts: %v", err), "mongo")
	}
	defer cur.Close(ctx)

	items := []entity.Broadcast{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, app_error.NewInternalError(fmt.Sprintf("failed to decode broadcasts: %v", err), "mongo")
	}

	return items, total, nil
}

func (r *BroadcastRepo) DeleteBroadcast(ctx context.Context, id string) *app_error.AppError {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return app_error.NewValidationError(fmt.Sprintf("invalid broadcast ID: %v", err), "invalid-id")
	}

	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return app_error.NewInternalError("failed to delete broadcast", "mongo")
	}
	if result.DeletedCount == 0 {
		return app_error.NewNotFoundError("broadcast not found")
	}
	return nil
}
