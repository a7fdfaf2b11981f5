package stats_service

import (
	"context"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/stats_dto"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

type StatsServiceContract interface {
	// Recompute rebuilds the snapshot from source records and caches it.
	Recompute(ctx context.Context) (*stats_dto.StatsSnapshot, *app_error.AppError)

	// GetSnapshot serves the cached snapshot, recomputing on a miss.
	GetSnapshot(ctx context.Context) (*stats_dto.StatsSnapshot, *app_error.AppError)
}
