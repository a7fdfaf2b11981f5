package building_repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

// BuildingRepo guards the occupancy counters. Counter mutations are single
// conditional UPDATE statements (atomic increments at the store), never
// read-then-write, so two interleaved assignments cannot lose an update,
// in this process or any other instance sharing the database.
type BuildingRepo struct {
	DB *gorm.DB
}

func NewBuildingRepo(db *gorm.DB) BuildingRepoContract {
	return &BuildingRepo{DB: db}
}

func (r *BuildingRepo) CreateBuilding(ctx context.Context, b *entity.Building) *app_error.AppError {
	if b.TotalFlats <= 0 {
		return app_error.NewValidationError("total flats must be positive", "total_flats")
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.FilledFlats = 0
	b.EmptyFlats = b.TotalFlats

	if err := r.DB.WithContext(ctx).Create(b).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return app_error.NewConsistencyError("building name already exists", "name")
		}
		log.Error().Err(err).Msg("failed to create building")
		return app_error.NewInternalError("failed to create building", "db-error")
	}
	return nil
}

func (r *BuildingRepo) FindBuildingByID(ctx context.Context, id uuid.UUID) (*entity.Building, *app_error.AppError) {
	var b entity.Building
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewNotFoundError("building not found")
		}
		return nil, app_error.NewInternalError("failed to fetch building", "db-error")
	}
	return &b, nil
}

func (r *BuildingRepo) FindBuildingByName(ctx context.Context, name string) (*entity.Building, *app_error.AppError) {
	var b entity.Building
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewNotFoundError("building not found")
		}
		return nil, app_error.NewInternalError("failed to fetch building", "db-error")
	}
	return &b, nil
}

// ResizeBuilding sets a new capacity. The WHERE clause both locates the
// row and enforces `filled_flats <= new capacity`; zero rows affected
// means the resize would strand residents and nothing was mutated.
func (r *BuildingRepo) ResizeBuilding(ctx context.Context, id uuid.UUID, newCapacity int64) (*entity.Building, *app_error.AppError) {
	if newCapacity <= 0 {
		return nil, app_error.NewValidationError("capacity must be positive", "total_flats")
	}

	res := r.DB.WithContext(ctx).Model(&entity.Building{}).
		Where("id = ? AND filled_flats <= ?", id, newCapacity).
		Updates(map[string]any{
			"total_flats": newCapacity,
			"empty_flats": gorm.Expr("? - filled_flats", newCapacity),
		})
	if res.Error != nil {
		return nil, app_error.NewInternalError("failed to resize building", "db-error")
	}
	if res.RowsAffected == 0 {
		if _, appErr := r.FindBuildingByID(ctx, id); appErr != nil {
			return nil, appErr
		}
		return nil, app_error.NewConsistencyError("new capacity is below current occupancy", "total_flats")
	}

	return r.FindBuildingByID(ctx, id)
}

func (r *BuildingRepo) DeleteBuilding(ctx context.Context, id uuid.UUID) *app_error.AppError {
	// delete only an empty building; the occupancy check rides in the
	// WHERE clause so a concurrent resident add cannot slip through
	res := r.DB.WithContext(ctx).
		Where("id = ? AND filled_flats = 0", id).
		Delete(&entity.Building{})
	if res.Error != nil {
		return app_error.NewInternalError("failed to delete building", "db-error")
	}
	if res.RowsAffected == 0 {
		if _, appErr := r.FindBuildingByID(ctx, id); appErr != nil {
			return appErr
		}
		return app_error.NewConsistencyError("building still has residents", "filled_flats")
	}
	return nil
}

// AddResident validates first (flat range, flat occupancy), then runs the
// conditional increment and the resident insert in one transaction. The
// increment's WHERE clause rejects a full building with zero rows
// affected, so a failed add leaves no partial state behind.
func (r *BuildingRepo) AddResident(ctx context.Context, resident *entity.Resident) *app_error.AppError {
	b, appErr := r.FindBuildingByID(ctx, resident.BuildingID)
	if appErr != nil {
		return appErr
	}
	if resident.Flat < 1 || resident.Flat > b.TotalFlats {
		return app_error.NewValidationError("flat number out of range", "flat")
	}

	var occupied int64
	if err := r.DB.WithContext(ctx).Model(&entity.Resident{}).
		Where("building_id = ? AND flat = ?", resident.BuildingID, resident.Flat).
		Count(&occupied).Error; err != nil {
		return app_error.NewInternalError("failed to check flat occupancy", "db-error")
	}
	if occupied > 0 {
		return app_error.NewValidationError("flat already occupied", "flat")
	}

	if resident.ID == uuid.Nil {
		resident.ID = uuid.New()
	}
	resident.BuildingName = b.Name

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if appErr := incrementOccupancy(tx, resident.BuildingID); appErr != nil {
			return appErr
		}
		if err := tx.Create(resident).Error; err != nil {
			// the unique (building_id, flat) index closes the race the
			// pre-check cannot
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return app_error.NewValidationError("flat already occupied", "flat")
			}
			return app_error.NewInternalError("failed to create resident", "db-error")
		}
		return nil
	})
	return asAppError(err)
}

func (r *BuildingRepo) RemoveResident(ctx context.Context, residentID uuid.UUID) (*entity.Resident, *app_error.AppError) {
	resident, appErr := r.FindResidentByID(ctx, residentID)
	if appErr != nil {
		return nil, appErr
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", residentID).Delete(&entity.Resident{}).Error; err != nil {
			return app_error.NewInternalError("failed to delete resident", "db-error")
		}
		if appErr := decrementOccupancy(tx, resident.BuildingID); appErr != nil {
			return appErr
		}
		return nil
	})
	if appErr := asAppError(err); appErr != nil {
		return nil, appErr
	}
	return resident, nil
}

// MoveResident reassigns a resident between buildings: increment the
// target, decrement the source, rewrite the resident row, all in one
// transaction. The target increment runs first so a full target aborts
// before anything else changes.
func (r *BuildingRepo) MoveResident(ctx context.Context, residentID, toBuildingID uuid.UUID, newFlat int64) (*entity.Resident, *app_error.AppError) {
	resident, appErr := r.FindResidentByID(ctx, residentID)
	if appErr != nil {
		return nil, appErr
	}
	target, appErr := r.FindBuildingByID(ctx, toBuildingID)
	if appErr != nil {
		return nil, appErr
	}
	if newFlat < 1 || newFlat > target.TotalFlats {
		return nil, app_error.NewValidationError("flat number out of range", "flat")
	}

	var occupied int64
	if err := r.DB.WithContext(ctx).Model(&entity.Resident{}).
		Where("building_id = ? AND flat = ?", toBuildingID, newFlat).
		Count(&occupied).Error; err != nil {
		return nil, app_error.NewInternalError("failed to check flat occupancy", "db-error")
	}
	if occupied > 0 {
		return nil, app_error.NewValidationError("flat already occupied", "flat")
	}

	fromBuildingID := resident.BuildingID

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if appErr := incrementOccupancy(tx, toBuildingID); appErr != nil {
			return appErr
		}
		if appErr := decrementOccupancy(tx, fromBuildingID); appErr != nil {
			return appErr
		}
		res := tx.Model(&entity.Resident{}).Where("id = ?", residentID).Updates(map[string]any{
			"building_id":   toBuildingID,
			"building_name": target.Name,
			"flat":          newFlat,
		})
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return app_error.NewValidationError("flat already occupied", "flat")
			}
			return app_error.NewInternalError("failed to reassign resident", "db-error")
		}
		return nil
	})
	if appErr := asAppError(err); appErr != nil {
		return nil, appErr
	}

	return r.FindResidentByID(ctx, residentID)
}

func (r *BuildingRepo) FindResidentByID(ctx context.Context, id uuid.UUID) (*entity.Resident, *app_error.AppError) {
	var resident entity.Resident
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&resident).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewNotFoundError("resident not found")
		}
		return nil, app_error.NewInternalError("failed to fetch resident", "db-error")
	}
	return &resident, nil
}

func (r *BuildingRepo) CountResidents(ctx context.Context, buildingID uuid.UUID) (int64, *app_error.AppError) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&entity.Resident{}).
		Where("building_id = ?", buildingID).
		Count(&count).Error; err != nil {
		return 0, app_error.NewInternalError("failed to count residents", "db-error")
	}
	return count, nil
}

func (r *BuildingRepo) ListResidentIDs(ctx context.Context, buildingName string) ([]string, *app_error.AppError) {
	var ids []string
	if err := r.DB.WithContext(ctx).Model(&entity.Resident{}).
		Where("building_name = ?", buildingName).
		Pluck("id", &ids).Error; err != nil {
		return nil, app_error.NewInternalError("failed to list residents", "db-error")
	}
	return ids, nil
}

func (r *BuildingRepo) ListAllResidentIDs(ctx context.Context) ([]string, *app_error.AppError) {
	var ids []string
	if err := r.DB.WithContext(ctx).Model(&entity.Resident{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, app_error.NewInternalError("failed to list residents", "db-error")
	}
	return ids, nil
}

func (r *BuildingRepo) OccupancyRows(ctx context.Context) ([]OccupancyRow, *app_error.AppError) {
	var rows []OccupancyRow
	if err := r.DB.WithContext(ctx).Model(&entity.Building{}).
		Select("id as building_id, name as building_name, total_flats, filled_flats, empty_flats").
		Order("name").
		Scan(&rows).Error; err != nil {
		return nil, app_error.NewInternalError("failed to read occupancy", "db-error")
	}
	return rows, nil
}

// incrementOccupancy fills one flat. empty_flats is recomputed from
// total and the new filled count in the same statement, which keeps the
// filled+empty==total invariant exact even if empty had drifted.
func incrementOccupancy(tx *gorm.DB, buildingID uuid.UUID) *app_error.AppError {
	res := tx.Model(&entity.Building{}).
		Where("id = ? AND filled_flats < total_flats", buildingID).
		Updates(map[string]any{
			"filled_flats": gorm.Expr("filled_flats + 1"),
			"empty_flats":  gorm.Expr("total_flats - filled_flats - 1"),
		})
	if res.Error != nil {
		return app_error.NewInternalError("failed to update occupancy", "db-error")
	}
	if res.RowsAffected == 0 {
		return app_error.NewConsistencyError("building is full", "filled_flats")
	}
	return nil
}

// decrementOccupancy frees one flat, clamped so filled never drops below
// zero and empty never exceeds total.
func decrementOccupancy(tx *gorm.DB, buildingID uuid.UUID) *app_error.AppError {
	res := tx.Model(&entity.Building{}).
		Where("id = ? AND filled_flats > 0", buildingID).
		Updates(map[string]any{
			"filled_flats": gorm.Expr("filled_flats - 1"),
			"empty_flats":  gorm.Expr("total_flats - filled_flats + 1"),
		})
	if res.Error != nil {
		return app_error.NewInternalError("failed to update occupancy", "db-error")
	}
	if res.RowsAffected == 0 {
		return app_error.NewConsistencyError("building has no residents to remove", "filled_flats")
	}
	return nil
}

func asAppError(err error) *app_error.AppError {
	if err == nil {
		return nil
	}
	var appErr *app_error.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return app_error.NewInternalError(err.Error(), "db-error")
}
