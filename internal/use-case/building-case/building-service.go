package building_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dispatch"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/building_dto"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	building_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/building"
	complaint_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/complaint"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

type BuildingService struct {
	AppState      *state.AppState
	BuildingRepo  building_repo.BuildingRepoContract
	ComplaintRepo complaint_repo.ComplaintRepoContract
	Dispatcher    dispatch.Sink
}

func NewBuildingService(appState *state.AppState, dispatcher dispatch.Sink) BuildingServiceContract {
	return &BuildingService{
		AppState:      appState,
		BuildingRepo:  building_repo.NewBuildingRepo(appState.DB),
		ComplaintRepo: complaint_repo.NewComplaintRepo(appState.Mongo),
		Dispatcher:    dispatcher,
	}
}

func (s *BuildingService) CreateBuilding(ctx context.Context, req building_dto.CreateBuildingRequest) (*building_dto.BuildingResponse, *app_error.AppError) {
	building := &entity.Building{
		Name:       req.Name,
		TotalFlats: req.TotalFlats,
	}
	if err := s.BuildingRepo.CreateBuilding(ctx, building); err != nil {
		return nil, err
	}

	s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:         dispatch.EventBuildingCreated,
		EntityID:     building.ID.String(),
		BuildingName: building.Name,
		Data:         occupancyData(building),
	})

	return toBuildingResponse(building), nil
}

func (s *BuildingService) GetBuilding(ctx context.Context, id string) (*building_dto.BuildingResponse, *app_error.AppError) {
	buildingID, appErr := parseID(id, "building")
	if appErr != nil {
		return nil, appErr
	}

	building, appErr := s.BuildingRepo.FindBuildingByID(ctx, buildingID)
	if appErr != nil {
		return nil, appErr
	}
	return toBuildingResponse(building), nil
}

func (s *BuildingService) ResizeBuilding(ctx context.Context, id string, req building_dto.ResizeBuildingRequest) (*building_dto.BuildingResponse, *app_error.AppError) {
	buildingID, appErr := parseID(id, "building")
	if appErr != nil {
		return nil, appErr
	}

	building, appErr := s.BuildingRepo.ResizeBuilding(ctx, buildingID, req.TotalFlats)
	if appErr != nil {
		return nil, appErr
	}

	s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:         dispatch.EventBuildingUpdated,
		EntityID:     building.ID.String(),
		BuildingName: building.Name,
		Data:         occupancyData(building),
	})

	return toBuildingResponse(building), nil
}

// DeleteBuilding refuses while residents remain or complaints are still
// open: retiring a building must not orphan live records.
func (s *BuildingService) DeleteBuilding(ctx context.Context, id string) *app_error.AppError {
	buildingID, appErr := parseID(id, "building")
	if appErr != nil {
		return appErr
	}

	building, appErr := s.BuildingRepo.FindBuildingByID(ctx, buildingID)
	if appErr != nil {
		return appErr
	}

	open, appErr := s.ComplaintRepo.CountOpenForBuilding(ctx, buildingID.String())
	if appErr != nil {
		return appErr
	}
	if open > 0 {
		return app_error.NewConsistencyError(fmt.Sprintf("building has %d unresolved complaints", open), "open-complaints")
	}

	if appErr := s.BuildingRepo.DeleteBuilding(ctx, buildingID); appErr != nil {
		return appErr
	}

	s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:         dispatch.EventBuildingDeleted,
		EntityID:     buildingID.String(),
		BuildingName: building.Name,
	})
	return nil
}

func (s *BuildingService) AddResident(ctx context.Context, buildingID string, req building_dto.AddResidentRequest) (*building_dto.ResidentResponse, *app_error.AppError) {
	bID, appErr := parseID(buildingID, "building")
	if appErr != nil {
		return nil, appErr
	}
	rID, appErr := parseID(req.ResidentID, "resident")
	if appErr != nil {
		return nil, appErr
	}

	resident := &entity.Resident{
		ID:         rID,
		Name:       req.Name,
		BuildingID: bID,
		Flat:       req.Flat,
	}
	if appErr := s.BuildingRepo.AddResident(ctx, resident); appErr != nil {
		return nil, appErr
	}

	s.dispatchOccupancyChanged(ctx, bID)
	return toResidentResponse(resident), nil
}

func (s *BuildingService) RemoveResident(ctx context.Context, residentID string) *app_error.AppError {
	rID, appErr := parseID(residentID, "resident")
	if appErr != nil {
		return appErr
	}

	resident, appErr := s.BuildingRepo.RemoveResident(ctx, rID)
	if appErr != nil {
		return appErr
	}

	s.dispatchOccupancyChanged(ctx, resident.BuildingID)
	return nil
}

func (s *BuildingService) MoveResident(ctx context.Context, residentID string, req building_dto.MoveResidentRequest) (*building_dto.ResidentResponse, *app_error.AppError) {
	rID, appErr := parseID(residentID, "resident")
	if appErr != nil {
		return nil, appErr
	}
	targetID, appErr := parseID(req.TargetBuildingID, "building")
	if appErr != nil {
		return nil, appErr
	}

	before, appErr := s.BuildingRepo.FindResidentByID(ctx, rID)
	if appErr != nil {
		return nil, appErr
	}

	moved, appErr := s.BuildingRepo.MoveResident(ctx, rID, targetID, req.Flat)
	if appErr != nil {
		return nil, appErr
	}

	// both sides of the move changed occupancy
	s.dispatchOccupancyChanged(ctx, before.BuildingID)
	if before.BuildingID != targetID {
		s.dispatchOccupancyChanged(ctx, targetID)
	}

	return toResidentResponse(moved), nil
}

func (s *BuildingService) dispatchOccupancyChanged(ctx context.Context, buildingID uuid.UUID) {
	building, appErr := s.BuildingRepo.FindBuildingByID(ctx, buildingID)
	if appErr != nil {
		return
	}
	s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:         dispatch.EventBuildingUpdated,
		EntityID:     building.ID.String(),
		BuildingName: building.Name,
		Data:         occupancyData(building),
	})
}

func parseID(id, field string) (uuid.UUID, *app_error.AppError) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, app_error.NewValidationError(fmt.Sprintf("invalid %s ID: %v", field, err), field)
	}
	return parsed, nil
}

func occupancyData(b *entity.Building) map[string]any {
	return map[string]any{
		"totalFlats":  b.TotalFlats,
		"filledFlats": b.FilledFlats,
		"emptyFlats":  b.EmptyFlats,
	}
}

func toBuildingResponse(b *entity.Building) *building_dto.BuildingResponse {
	return &building_dto.BuildingResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		TotalFlats:  b.TotalFlats,
		FilledFlats: b.FilledFlats,
		EmptyFlats:  b.EmptyFlats,
	}
}

func toResidentResponse(r *entity.Resident) *building_dto.ResidentResponse {
	return &building_dto.ResidentResponse{
		ID:           r.ID.String(),
		Name:         r.Name,
		BuildingID:   r.BuildingID.String(),
		BuildingName: r.BuildingName,
		Flat:         r.Flat,
	}
}
