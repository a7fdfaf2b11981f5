package complaint_service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dispatch"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/complaint_dto"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	building_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/building"
	complaint_repo "github.com/AbhinavSharma486/FixMySociety-sub001/internal/repo/complaint"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

type ComplaintService struct {
	AppState      *state.AppState
	ComplaintRepo complaint_repo.ComplaintRepoContract
	BuildingRepo  building_repo.BuildingRepoContract
	Dispatcher    dispatch.Sink
}

func NewComplaintService(appState *state.AppState, dispatcher dispatch.Sink) ComplaintServiceContract {
	return &ComplaintService{
		AppState:      appState,
		ComplaintRepo: complaint_repo.NewComplaintRepo(appState.Mongo),
		BuildingRepo:  building_repo.NewBuildingRepo(appState.DB),
		Dispatcher:    dispatcher,
	}
}

func (s *ComplaintService) CreateComplaint(ctx context.Context, actor entity.Actor, req complaint_dto.CreateComplaintRequest) (*complaint_dto.ComplaintResponse, *app_error.AppError) {
	if actor.IsAdmin() {
		return nil, app_error.NewAuthorizationError("only residents can file complaints")
	}

	building, appErr := s.BuildingRepo.FindBuildingByName(ctx, actor.Building)
	if appErr != nil {
		return nil, appErr
	}

	complaint := &entity.Complaint{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Status:       entity.StatusPending,
		OwnerID:      actor.ID,
		BuildingID:   building.ID.String(),
		BuildingName: building.Name,
	}
	id, appErr := s.ComplaintRepo.CreateComplaint(ctx, complaint)
	if appErr != nil {
		return nil, appErr
	}

	recipients, appErr := s.BuildingRepo.ListResidentIDs(ctx, building.Name)
	if appErr != nil {
		recipients = nil
	}

	s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:         dispatch.EventComplaintCreated,
		EntityID:     id.Hex(),
		BuildingName: building.Name,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		Message:      fmt.Sprintf("New complaint in %s: %s", building.Name, complaint.Title),
		Recipients:   without(recipients, actor.ID),
		Data:         map[string]any{"title": complaint.Title, "category": complaint.Category},
	})

	return toComplaintResponse(complaint), nil
}

func (s *ComplaintService) GetComplaint(ctx context.Context, actor entity.Actor, id string) (*complaint_dto.ComplaintResponse, *app_error.AppError) {
	complaint, appErr := s.findAuthorized(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}
	return toComplaintResponse(complaint), nil
}

func (s *ComplaintService) ListComplaints(ctx context.Context, actor entity.Actor, req complaint_dto.ListComplaintsRequest) (*complaint_dto.ListComplaintsResponse, *app_error.AppError) {
	buildingName := actor.Building
	if actor.IsAdmin() {
		buildingName = "" // admins see the whole complex
	}

	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	items, total, appErr := s.ComplaintRepo.ListForBuilding(ctx, buildingName, page, limit)
	if appErr != nil {
		return nil, appErr
	}

	resp := &complaint_dto.ListComplaintsResponse{
		Complaints: make([]complaint_dto.ComplaintResponse, 0, len(items)),
		Total:      total,
		Page:       page,
		Limit:      limit,
	}
	for i := range items {
		resp.Complaints = append(resp.Complaints, *toComplaintResponse(&items[i]))
	}
	return resp, nil
}

func (s *ComplaintService) UpdateComplaint(ctx context.Context, actor entity.Actor, id string, req complaint_dto.UpdateComplaintRequest) (*complaint_dto.ComplaintResponse, *app_error.AppError) {
	complaint, appErr := s.findAuthorized(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}
	if !actor.IsAdmin() && complaint.OwnerID != actor.ID {
		return nil, app_error.NewAuthorizationError("only the owner can edit this complaint")
	}

	title := orDefault(req.Title, complaint.Title)
	description := orDefault(req.Description, complaint.Description)
	category := orDefault(req.Category, complaint.Category)

	if appErr := s.ComplaintRepo.UpdateComplaint(ctx, id, title, description, category); appErr != nil {
		return nil, appErr
	}

	complaint.Title = title
	complaint.Description = description
	complaint.Category = category
	complaint.UpdatedAt = time.Now()

	s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:         dispatch.EventComplaintUpdated,
		EntityID:     id,
		BuildingName: complaint.BuildingName,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		Data:         map[string]any{"title": title, "category": category},
	})

	return toComplaintResponse(complaint), nil
}

// UpdateStatus accepts the owner or any admin. Any valid status may follow
// any other; the workflow has no one-way transitions.
func (s *ComplaintService) UpdateStatus(ctx context.Context, actor entity.Actor, id string, req complaint_dto.UpdateStatusRequest) (*complaint_dto.ComplaintResponse, *app_error.AppError) {
	if !entity.IsValidStatus(req.Status) {
		return nil, app_error.NewValidationError(fmt.Sprintf("unknown status %q", req.Status), "status")
	}

	complaint, appErr := s.findAuthorized(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}
	if !actor.IsAdmin() && complaint.OwnerID != actor.ID {
		return nil, app_error.NewAuthorizationError("only the owner can change this complaint's status")
	}

	previous := complaint.Status
	if appErr := s.ComplaintRepo.UpdateStatus(ctx, id, req.Status); appErr != nil {
		return nil, appErr
	}
	complaint.Status = req.Status
	complaint.UpdatedAt = time.Now()

	// owners changing their own complaint don't need a notification
	var recipients []string
	if actor.ID != complaint.OwnerID {
		recipients = []string{complaint.OwnerID}
	}

	s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:         dispatch.EventStatusChanged,
		EntityID:     id,
		BuildingName: complaint.BuildingName,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		Message:      fmt.Sprintf("Your complaint %q moved from %s to %s", complaint.Title, previous, req.Status),
		Recipients:   recipients,
		Data:         map[string]any{"previousStatus": previous, "status": req.Status},
	})

	return toComplaintResponse(complaint), nil
}

func (s *ComplaintService) DeleteComplaint(ctx context.Context, actor entity.Actor, id string) *app_error.AppError {
	complaint, appErr := s.findAuthorized(ctx, actor, id)
	if appErr != nil {
		return appErr
	}
	if !actor.IsAdmin() && complaint.OwnerID != actor.ID {
		return app_error.NewAuthorizationError("only the owner can delete this complaint")
	}

	if appErr := s.ComplaintRepo.DeleteComplaint(ctx, id); appErr != nil {
		return appErr
	}

	s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:         dispatch.EventComplaintDeleted,
		EntityID:     id,
		BuildingName: complaint.BuildingName,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
	})
	return nil
}

func (s *ComplaintService) AddComment(ctx context.Context, actor entity.Actor, id string, req complaint_dto.AddCommentRequest) (*complaint_dto.ComplaintResponse, *app_error.AppError) {
	complaint, appErr := s.findAuthorized(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}

	comment := entity.Comment{
		ID:         bson.NewObjectID(),
		AuthorRole: actor.Role,
		AuthorID:   actor.ID,
		Body:       req.Body,
		CreatedAt:  time.Now(),
	}
	if appErr := s.ComplaintRepo.AddComment(ctx, id, comment); appErr != nil {
		return nil, appErr
	}
	complaint.Comments = append(complaint.Comments, comment)

	var recipients []string
	if complaint.OwnerID != actor.ID {
		recipients = []string{complaint.OwnerID}
	}

	s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:         dispatch.EventCommentAdded,
		EntityID:     id,
		BuildingName: complaint.BuildingName,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		Message:      fmt.Sprintf("New comment on %q", complaint.Title),
		Recipients:   recipients,
		Data:         map[string]any{"commentId": comment.ID.Hex(), "body": comment.Body},
	})

	return toComplaintResponse(complaint), nil
}

// ToggleLike flips the actor's like. Likes never feed the aggregate
// engine, so no recompute is scheduled for them.
func (s *ComplaintService) ToggleLike(ctx context.Context, actor entity.Actor, id string) (*complaint_dto.ToggleLikeResponse, *app_error.AppError) {
	if actor.IsAdmin() {
		return nil, app_error.NewAuthorizationError("only residents can like complaints")
	}

	complaint, appErr := s.findAuthorized(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}

	liked, appErr := s.ComplaintRepo.ToggleLike(ctx, id, actor.ID)
	if appErr != nil {
		return nil, appErr
	}

	likeCount := len(complaint.Likes)
	if liked {
		likeCount++
	} else if likeCount > 0 {
		likeCount--
	}

	if liked {
		var recipients []string
		if complaint.OwnerID != actor.ID {
			recipients = []string{complaint.OwnerID}
		}
		s.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
			Type:         dispatch.EventComplaintLiked,
			EntityID:     id,
			BuildingName: complaint.BuildingName,
			ActorID:      actor.ID,
			ActorRole:    actor.Role,
			Message:      fmt.Sprintf("Someone liked your complaint %q", complaint.Title),
			Recipients:   recipients,
			Data:         map[string]any{"likeCount": likeCount},
		})
	}

	return &complaint_dto.ToggleLikeResponse{
		ComplaintID: id,
		Liked:       liked,
		LikeCount:   likeCount,
	}, nil
}

func (s *ComplaintService) ComplaintBuilding(ctx context.Context, complaintID string) (string, *app_error.AppError) {
	complaint, appErr := s.ComplaintRepo.FindComplaintByID(ctx, complaintID)
	if appErr != nil {
		return "", appErr
	}
	return complaint.BuildingName, nil
}

// findAuthorized fetches the complaint and enforces building scoping:
// residents see only their own building's complaints, admins see all.
func (s *ComplaintService) findAuthorized(ctx context.Context, actor entity.Actor, id string) (*entity.Complaint, *app_error.AppError) {
	complaint, appErr := s.ComplaintRepo.FindComplaintByID(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if !actor.IsAdmin() && complaint.BuildingName != actor.Building {
		return nil, app_error.NewAuthorizationError("complaint belongs to another building")
	}
	return complaint, nil
}

func without(ids []string, exclude string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func toComplaintResponse(c *entity.Complaint) *complaint_dto.ComplaintResponse {
	comments := make([]complaint_dto.CommentResponse, 0, len(c.Comments))
	for _, cm := range c.Comments {
		comments = append(comments, complaint_dto.CommentResponse{
			ID:         cm.ID.Hex(),
			AuthorRole: cm.AuthorRole,
			AuthorID:   cm.AuthorID,
			Body:       cm.Body,
			CreatedAt:  cm.CreatedAt,
		})
	}

	likes := c.Likes
	if likes == nil {
		likes = []string{}
	}

	return &complaint_dto.ComplaintResponse{
		ID:           c.ID.Hex(),
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		Status:       c.Status,
		OwnerID:      c.OwnerID,
		BuildingID:   c.BuildingID,
		BuildingName: c.BuildingName,
		Comments:     comments,
		Likes:        likes,
		LikeCount:    len(likes),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
