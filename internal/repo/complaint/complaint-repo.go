package complaint_repo

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
	complaintCollection = "complaints"
)

type ComplaintRepo struct {
	Mongo *mongo.Client
}

func NewComplaintRepo(client *mongo.Client) ComplaintRepoContract {
	return &ComplaintRepo{Mongo: client}
}

func (r *ComplaintRepo) collection() *mongo.Collection {
	return r.Mongo.Database(databaseName).Collection(complaintCollection)
}

func (r *ComplaintRepo) CreateComplaint(ctx context.Context, c *entity.Complaint) (bson.ObjectID, *app_error.AppError) {
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Comments == nil {
		c.Comments = []entity.Comment{}
	}
	if c.Likes == nil {
		c.Likes = []string{}
	}

	if _, err := r.collection().InsertOne(ctx, c); err != nil {
		return bson.NilObjectID, app_error.NewInternalError(fmt.Sprintf("failed to create complaint: %v", err), "mongo")
	}
	return c.ID, nil
}

func (r *ComplaintRepo) FindComplaintByID(ctx context.Context, id string) (*entity.Complaint, *app_error.AppError) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, app_error.NewValidationError(fmt.Sprintf("invalid complaint ID: %v", err), "invalid-id")
	}

	var complaint entity.Complaint
	if err := r.collection().FindOne(ctx, bson.M{"_id": objID}).Decode(&complaint); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewNotFoundError("complaint not found or has been deleted")
		}
		return nil, app_error.NewInternalError(fmt.Sprintf("failed to fetch complaint: %v", err), "mongo")
	}

	return &complaint, nil
}

func (r *ComplaintRepo) ListForBuilding(ctx context.Context, buildingName string, page, limit int64) ([]entity.Complaint, int64, *app_error.AppError) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if buildingName != "" {
		filter = bson.M{"buildingName": buildingName}
	}

	total, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, app_error.NewInternalError("failed to count complaints", "mongo")
	}

	cur, err := r.collection().Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip((page-1)*limit).
		SetLimit(limit))
	if err != nil {
		return nil, 0, app_error.NewInternalError(fmt.Sprintf("failed to fetch complaints: %v", err), "mongo")
	}
	defer cur.Close(ctx)

	items := []entity.Complaint{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, app_error.NewInternalError(fmt.Sprintf("failed to decode complaints: %v", err), "mongo")
	}

	return items, total, nil
}

func (r *ComplaintRepo) UpdateComplaint(ctx context.Context, id string, title, description, category string) *app_error.AppError {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return app_error.NewValidationError(fmt.Sprintf("invalid complaint ID: %v", err), "invalid-id")
	}

	update := bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
		"category":    category,
		"updatedAt":   time.Now(),
	}}

	result, err := r.collection().UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return app_error.NewInternalError("failed to update complaint", "mongo")
	}
	if result.MatchedCount == 0 {
		return app_error.NewNotFoundError("complaint not found")
	}
	return nil
}

func (r *ComplaintRepo) UpdateStatus(ctx context.Context, id, newStatus string) *app_error.AppError {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return app_error.NewValidationError(fmt.Sprintf("invalid complaint ID: %v", err), "invalid-id")
	}

	result, err := r.collection().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{"status": newStatus, "updatedAt": time.Now()},
	})
	if err != nil {
		return app_error.NewInternalError("failed to update complaint status", "mongo")
	}
	if result.MatchedCount == 0 {
		return app_error.NewNotFoundError("complaint not found")
	}
	return nil
}

func (r *ComplaintRepo) DeleteComplaint(ctx context.Context, id string) *app_error.AppError {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return app_error.NewValidationError(fmt.Sprintf("invalid complaint ID: %v", err), "invalid-id")
	}

	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return app_error.NewInternalError("failed to delete complaint", "mongo")
	}
	if result.DeletedCount == 0 {
		return app_error.NewNotFoundError("complaint not found")
	}
	return nil
}

func (r *ComplaintRepo) AddComment(ctx context.Context, id string, comment entity.Comment) *app_error.AppError {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return app_error.NewValidationError(fmt.Sprintf("invalid complaint ID: %v", err), "invalid-id")
	}
	if comment.ID.IsZero() {
		comment.ID = bson.NewObjectID()
	}
	comment.CreatedAt = time.Now()

	// $push keeps comment order; ordering is insertion order
	result, err := r.collection().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return app_error.NewInternalError("failed to add comment", "mongo")
	}
	if result.MatchedCount == 0 {
		return app_error.NewNotFoundError("complaint not found")
	}
	return nil
}

// ToggleLike adds the resident to the like-set or removes them if already
// present. $addToSet keeps the set unique under concurrent toggles.
func (r *ComplaintRepo) ToggleLike(ctx context.Context, id, residentID string) (bool, *app_error.AppError) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, app_error.NewValidationError(fmt.Sprintf("invalid complaint ID: %v", err), "invalid-id")
	}

	result, err := r.collection().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$addToSet": bson.M{"likes": residentID},
	})
	if err != nil {
		return false, app_error.NewInternalError("failed to like complaint", "mongo")
	}
	if result.MatchedCount == 0 {
		return false, app_error.NewNotFoundError("complaint not found")
	}
	if result.ModifiedCount > 0 {
		return true, nil
	}

	// already in the set: unlike
	if _, err := r.collection().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$pull": bson.M{"likes": residentID},
	}); err != nil {
		return false, app_error.NewInternalError("failed to unlike complaint", "mongo")
	}
	return false, nil
}

func (r *ComplaintRepo) CountOpenForBuilding(ctx context.Context, buildingID string) (int64, *app_error.AppError) {
	count, err := r.collection().CountDocuments(ctx, bson.M{
		"buildingId": buildingID,
		"status":     bson.M{"$ne": entity.StatusResolved},
	})
	if err != nil {
		return 0, app_error.NewInternalError("failed to count open complaints", "mongo")
	}
	return count, nil
}

func (r *ComplaintRepo) CountByStatus(ctx context.Context) ([]StatusCount, *app_error.AppError) {
	return groupCount[StatusCount](ctx, r.collection(), "$status")
}

func (r *ComplaintRepo) CountByCategory(ctx context.Context) ([]CategoryCount, *app_error.AppError) {
	return groupCount[CategoryCount](ctx, r.collection(), "$category")
}

func (r *ComplaintRepo) CountByBuilding(ctx context.Context) ([]BuildingComplaintCount, *app_error.AppError) {
	return groupCount[BuildingComplaintCount](ctx, r.collection(), "$buildingName")
}

func (r *ComplaintRepo) CountTotal(ctx context.Context) (int64, *app_error.AppError) {
	count, err := r.collection().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, app_error.NewInternalError("failed to count complaints", "mongo")
	}
	return count, nil
}

func groupCount[T any](ctx context.Context, col *mongo.Collection, field string) ([]T, *app_error.AppError) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, app_error.NewInternalError(fmt.Sprintf("failed to aggregate complaints: %v", err), "mongo")
	}
	defer cur.Close(ctx)

	var rows []T
	if err := cur.All(ctx, &rows); err != nil {
		return nil, app_error.NewInternalError(fmt.Sprintf("failed to decode aggregation: %v", err), "mongo")
	}
	return rows, nil
}
