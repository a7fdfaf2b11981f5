package broadcast_repo

import (
	"context"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

type BroadcastRepoContract interface {
	CreateBroadcast(ctx context.Context, b *entity.Broadcast) *app_error.AppError
	FindBroadcastByID(ctx context.Context, id string) (*entity.Broadcast, *app_error.AppError)
	ListBroadcasts(ctx context.Context, buildingName string, page, limit int64) ([]entity.Broadcast, int64, *app_error.AppError)
	DeleteBroadcast(ctx context.Context, id string) *app_error.AppError
}
