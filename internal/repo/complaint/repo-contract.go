package complaint_repo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

// StatusCount / CategoryCount rows feed the aggregate recomputation
// engine straight from the source documents.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

type CategoryCount struct {
	Category string `bson:"_id" json:"category"`
	Count    int64  `bson:"count" json:"count"`
}

type BuildingComplaintCount struct {
	BuildingName string `bson:"_id" json:"building_name"`
	Count        int64  `bson:"count" json:"count"`
}

type ComplaintRepoContract interface {
	CreateComplaint(ctx context.Context, c *entity.Complaint) (bson.ObjectID, *app_error.AppError)
	FindComplaintByID(ctx context.Context, id string) (*entity.Complaint, *app_error.AppError)
	ListForBuilding(ctx context.Context, buildingName string, page, limit int64) ([]entity.Complaint, int64, *app_error.AppError)
	UpdateComplaint(ctx context.Context, id string, title, description, category string) *app_error.AppError
	UpdateStatus(ctx context.Context, id, newStatus string) *app_error.AppError
	DeleteComplaint(ctx context.Context, id string) *app_error.AppError
	AddComment(ctx context.Context, id string, comment entity.Comment) *app_error.AppError
	ToggleLike(ctx context.Context, id, residentID string) (liked bool, appErr *app_error.AppError)

	CountOpenForBuilding(ctx context.Context, buildingID string) (int64, *app_error.AppError)
	CountByStatus(ctx context.Context) ([]StatusCount, *app_error.AppError)
	CountByCategory(ctx context.Context) ([]CategoryCount, *app_error.AppError)
	CountByBuilding(ctx context.Context) ([]BuildingComplaintCount, *app_error.AppError)
	CountTotal(ctx context.Context) (int64, *app_error.AppError)
}
