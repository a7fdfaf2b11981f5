package building_repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

// OccupancyRow feeds the aggregate recomputation engine: one row per
// building, read straight from source records.
type OccupancyRow struct {
	BuildingID   uuid.UUID `json:"building_id"`
	BuildingName string    `json:"building_name"`
	TotalFlats   int64     `json:"total_flats"`
	FilledFlats  int64     `json:"filled_flats"`
	EmptyFlats   int64     `json:"empty_flats"`
}

type BuildingRepoContract interface {
	CreateBuilding(ctx context.Context, b *entity.Building) *app_error.AppError
	FindBuildingByID(ctx context.Context, id uuid.UUID) (*entity.Building, *app_error.AppError)
	FindBuildingByName(ctx context.Context, name string) (*entity.Building, *app_error.AppError)
	ResizeBuilding(ctx context.Context, id uuid.UUID, newCapacity int64) (*entity.Building, *app_error.AppError)
	DeleteBuilding(ctx context.Context, id uuid.UUID) *app_error.AppError

	AddResident(ctx context.Context, r *entity.Resident) *app_error.AppError
	RemoveResident(ctx context.Context, residentID uuid.UUID) (*entity.Resident, *app_error.AppError)
	MoveResident(ctx context.Context, residentID, toBuildingID uuid.UUID, newFlat int64) (*entity.Resident, *app_error.AppError)
	FindResidentByID(ctx context.Context, id uuid.UUID) (*entity.Resident, *app_error.AppError)

	CountResidents(ctx context.Context, buildingID uuid.UUID) (int64, *app_error.AppError)
	ListResidentIDs(ctx context.Context, buildingName string) ([]string, *app_error.AppError)
	ListAllResidentIDs(ctx context.Context) ([]string, *app_error.AppError)
	OccupancyRows(ctx context.Context) ([]OccupancyRow, *app_error.AppError)
}
