package stats_service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/stats_dto"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	building_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/building"
	complaint_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/complaint"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

const (
	snapshotCacheKey = "stats:snapshot"
	snapshotCacheTTL = 5 * time.Minute
)

// StatsService recomputes the dashboard aggregates from source records.
// Counts are never adjusted incrementally, so a lost event can skew a
// snapshot only until the next recompute.
type StatsService struct {
	AppState      *state.AppState
	ComplaintRepo complaint_repo.ComplaintRepoContract
	BuildingRepo  building_repo.BuildingRepoContract
	Redis         *redis.Client
}

func NewStatsService(appState *state.AppState) StatsServiceContract {
	return &StatsService{
		AppState:      appState,
		ComplaintRepo: complaint_repo.NewComplaintRepo(appState.Mongo),
		BuildingRepo:  building_repo.NewBuildingRepo(appState.DB),
		Redis:         appState.Redis,
	}
}

func (s *StatsService) Recompute(ctx context.Context) (*stats_dto.StatsSnapshot, *app_error.AppError) {
	total, appErr := s.ComplaintRepo.CountTotal(ctx)
	if appErr != nil {
		return nil, appErr
	}

	byStatus, appErr := s.ComplaintRepo.CountByStatus(ctx)
	if appErr != nil {
		return nil, appErr
	}

	byCategory, appErr := s.ComplaintRepo.CountByCategory(ctx)
	if appErr != nil {
		return nil, appErr
	}

	byBuilding, appErr := s.ComplaintRepo.CountByBuilding(ctx)
	if appErr != nil {
		return nil, appErr
	}
	complaintsPerBuilding := make(map[string]int64, len(byBuilding))
	for _, row := range byBuilding {
		complaintsPerBuilding[row.BuildingName] = row.Count
	}

	occupancy, appErr := s.BuildingRepo.OccupancyRows(ctx)
	if appErr != nil {
		return nil, appErr
	}

	snapshot := &stats_dto.StatsSnapshot{
		TotalComplaints: total,
		ByStatus:        make(map[string]int64, len(byStatus)),
		ByCategory:      make(map[string]int64, len(byCategory)),
		Buildings:       make([]stats_dto.BuildingOccupancy, 0, len(occupancy)),
		GeneratedAt:     time.Now(),
	}
	for _, row := range byStatus {
		snapshot.ByStatus[row.Status] = row.Count
	}
	for _, row := range byCategory {
		snapshot.ByCategory[row.Category] = row.Count
	}
	for _, row := range occupancy {
		snapshot.Buildings = append(snapshot.Buildings, stats_dto.BuildingOccupancy{
			BuildingID:   row.BuildingID.String(),
			BuildingName: row.BuildingName,
			TotalFlats:   row.TotalFlats,
			FilledFlats:  row.FilledFlats,
			EmptyFlats:   row.EmptyFlats,
			Complaints:   complaintsPerBuilding[row.BuildingName],
		})
	}

	if err := utils.SetCacheData(ctx, s.Redis, snapshotCacheKey, snapshot, snapshotCacheTTL); err != nil {
		log.Error().Err(err).Msg("failed to cache stats snapshot")
	}

	return snapshot, nil
}

func (s *StatsService) GetSnapshot(ctx context.Context) (*stats_dto.StatsSnapshot, *app_error.AppError) {
	cached, appErr := utils.GetCacheData[stats_dto.StatsSnapshot](ctx, s.Redis, snapshotCacheKey)
	if appErr == nil && cached != nil {
		return cached, nil
	}
	return s.Recompute(ctx)
}
