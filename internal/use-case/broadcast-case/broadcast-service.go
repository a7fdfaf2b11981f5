package broadcast_service

import (
	"context"
	"fmt"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dispatch"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/broadcast_dto"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/queue"
	broadcast_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/broadcast"
	building_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/building"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

type BroadcastService struct {
	AppState      *state.AppState
	BroadcastRepo broadcast_repo.BroadcastRepoContract
	BuildingRepo  building_repo.BuildingRepoContract
	Dispatcher    dispatch.Sink
	Producer      queue.Producer
}

func NewBroadcastService(appState *state.AppState, dispatcher dispatch.Sink, producer queue.Producer) BroadcastServiceContract {
	return &BroadcastService{
		AppState:      appState,
		BroadcastRepo: broadcast_repo.NewBroadcastRepo(appState.Mongo),
		BuildingRepo:  building_repo.NewBuildingRepo(appState.DB),
		Dispatcher:    dispatcher,
		Producer:      producer,
	}
}

func (s *BroadcastService) CreateBroadcast(ctx context.Context, actor entity.Actor, req broadcast_dto.CreateBroadcastRequest) (*broadcast_dto.BroadcastResponse, *app_error.AppError) {
	if !actor.IsAdmin() {
		return nil, app_error.NewAuthorizationError("only admins can send broadcasts")
	}
	if !entity.IsValidSeverity(req.Severity) {
		return nil, app_error.NewValidationError(fmt.Sprintf("unknown severity %q", req.Severity), "severity")
	}

	var recipients []string
	var appErr *app_error.AppError
	if req.BuildingName != "" {
		if _, appErr = s.BuildingRepo.FindBuildingByName(ctx, req.BuildingName); appErr != nil {
			return nil, appErr
		}
		recipients, appErr = s.BuildingRepo.ListResidentIDs(ctx, req.BuildingName)
	} else {
		recipients, appErr = s.BuildingRepo.ListAllResidentIDs(ctx)
	}
	if appErr != nil {
		return nil, appErr
	}

	broadcast := &entity.Broadcast{
		AdminID:      actor.ID,
		Message:      req.Message,
		Severity:     req.Severity,
		BuildingName: req.BuildingName,
	}
	if appErr := s.BroadcastRepo.CreateBroadcast(ctx, broadcast); appErr != nil {
		return nil, appErr
	}

	s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:         dispatch.EventBroadcastCreated,
		EntityID:     broadcast.ID.Hex(),
		BuildingName: broadcast.BuildingName,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		Message:      broadcast.Message,
		Recipients:   recipients,
		BroadcastID:  broadcast.ID.Hex(),
		Data:         map[string]any{"severity": broadcast.Severity},
	})

	return toBroadcastResponse(broadcast), nil
}

func (s *BroadcastService) ListBroadcasts(ctx context.Context, actor entity.Actor, req broadcast_dto.ListBroadcastsRequest) (*broadcast_dto.ListBroadcastsResponse, *app_error.AppError) {
	buildingName := actor.Building
	if actor.IsAdmin() {
		buildingName = ""
	}

	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	items, total, appErr := s.BroadcastRepo.ListBroadcasts(ctx, buildingName, page, limit)
	if appErr != nil {
		return nil, appErr
	}

	resp := &broadcast_dto.ListBroadcastsResponse{
		Broadcasts: make([]broadcast_dto.BroadcastResponse, 0, len(items)),
		Total:      total,
		Page:       page,
		Limit:      limit,
	}
	for i := range items {
		resp.Broadcasts = append(resp.Broadcasts, *toBroadcastResponse(&items[i]))
	}
	return resp, nil
}

// DeleteBroadcast removes the record immediately; the notification
// cascade and the retraction push run asynchronously so a slow Mongo
// sweep never holds up the admin's request.
func (s *BroadcastService) DeleteBroadcast(ctx context.Context, actor entity.Actor, id string) *app_error.AppError {
	if !actor.IsAdmin() {
		return app_error.NewAuthorizationError("only admins can remove broadcasts")
	}

	if _, appErr := s.BroadcastRepo.FindBroadcastByID(ctx, id); appErr != nil {
		return appErr
	}
	if appErr := s.BroadcastRepo.DeleteBroadcast(ctx, id); appErr != nil {
		return appErr
	}

	job := queue.NewJob(queue.JobRetractBroadcast, types.RetractBroadcastPayload{
		BroadcastID: id,
		AdminID:     actor.ID,
	}, 1)
	if err := s.Producer.Enqueue(ctx, job); err != nil {
		return app_error.NewInternalError(fmt.Sprintf("broadcast deleted but retraction could not be scheduled: %v", err), "queue")
	}
	return nil
}

func toBroadcastResponse(b *entity.Broadcast) *broadcast_dto.BroadcastResponse {
	return &broadcast_dto.BroadcastResponse{
		ID:           b.ID.Hex(),
		AdminID:      b.AdminID,
		Message:      b.Message,
		Severity:     b.Severity,
		BuildingName: b.BuildingName,
		CreatedAt:    b.CreatedAt,
	}
}
