package complaint_service

import (
	"context"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/complaint_dto"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

type ComplaintServiceContract interface {
	CreateComplaint(ctx context.Context, actor entity.Actor, req complaint_dto.CreateComplaintRequest) (*complaint_dto.ComplaintResponse, *app_error.AppError)
	GetComplaint(ctx context.Context, actor entity.Actor, id string) (*complaint_dto.ComplaintResponse, *app_error.AppError)
	ListComplaints(ctx context.Context, actor entity.Actor, req complaint_dto.ListComplaintsRequest) (*complaint_dto.ListComplaintsResponse, *app_error.AppError)
	UpdateComplaint(ctx context.Context, actor entity.Actor, id string, req complaint_dto.UpdateComplaintRequest) (*complaint_dto.ComplaintResponse, *app_error.AppError)
	UpdateStatus(ctx context.Context, actor entity.Actor, id string, req complaint_dto.UpdateStatusRequest) (*complaint_dto.ComplaintResponse, *app_error.AppError)
	DeleteComplaint(ctx context.Context, actor entity.Actor, id string) *app_error.AppError
	AddComment(ctx context.Context, actor entity.Actor, id string, req complaint_dto.AddCommentRequest) (*complaint_dto.ComplaintResponse, *app_error.AppError)
	ToggleLike(ctx context.Context, actor entity.Actor, id string) (*complaint_dto.ToggleLikeResponse, *app_error.AppError)

	// ComplaintBuilding resolves the owning building for room join
	// authorization.
	ComplaintBuilding(ctx context.Context, complaintID string) (string, *app_error.AppError)
}
