package broadcast_service

import (
	"context"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/broadcast_dto"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

type BroadcastServiceContract interface {
	CreateBroadcast(ctx context.Context, actor entity.Actor, req broadcast_dto.CreateBroadcastRequest) (*broadcast_dto.BroadcastResponse, *app_error.AppError)
	ListBroadcasts(ctx context.Context, actor entity.Actor, req broadcast_dto.ListBroadcastsRequest) (*broadcast_dto.ListBroadcastsResponse, *app_error.AppError)
	DeleteBroadcast(ctx context.Context, actor entity.Actor, id string) *app_error.AppError
}
