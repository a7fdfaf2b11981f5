package building_service

import (
	"context"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/building_dto"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

type BuildingServiceContract interface {
	CreateBuilding(ctx context.Context, req building_dto.CreateBuildingRequest) (*building_dto.BuildingResponse, *app_error.AppError)
	GetBuilding(ctx context.Context, id string) (*building_dto.BuildingResponse, *app_error.AppError)
	ResizeBuilding(ctx context.Context, id string, req building_dto.ResizeBuildingRequest) (*building_dto.BuildingResponse, *app_error.AppError)
	DeleteBuilding(ctx context.Context, id string) *app_error.AppError

	AddResident(ctx context.Context, buildingID string, req building_dto.AddResidentRequest) (*building_dto.ResidentResponse, *app_error.AppError)
	RemoveResident(ctx context.Context, residentID string) *app_error.AppError
	MoveResident(ctx context.Context, residentID string, req building_dto.MoveResidentRequest) (*building_dto.ResidentResponse, *app_error.AppError)
}
