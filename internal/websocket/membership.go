package websocket

import (
	"context"

	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
)

// ComplaintAccessChecker resolves the building a complaint belongs to.
// Implemented by the complaint use-case; the hub never touches storage
// directly.
type ComplaintAccessChecker interface {
	ComplaintBuilding(ctx context.Context, complaintID string) (string, *app_error.AppError)
}

// Membership performs deterministic room assignment: identity-derived
// rooms at connect time, authorization-gated complaint-thread rooms on
// demand.
type Membership struct {
	hub     *Hub
	checker ComplaintAccessChecker
}

func NewMembership(hub *Hub, checker ComplaintAccessChecker) *Membership {
	return &Membership{
		hub:     hub,
		checker: checker,
	}
}

// BaseRooms derives the fixed room set from the connection's identity.
// Residents land in their personal room and their building's room; admins
// in their personal admin room and the shared admin room.
func BaseRooms(id Identity) []string {
	if id.IsAdmin() {
		return []string{RoomForAdmin(id.UserID), AdminRoom}
	}
	rooms := []string{RoomForUser(id.UserID)}
	if id.Building != "" {
		rooms = append(rooms, RoomForBuilding(id.Building))
	}
	return rooms
}

// JoinComplaintRoom grants membership if the connection is an admin or a
// resident of the complaint's building. Denial is reported to the caller;
// the connection stays alive.
func (m *Membership) JoinComplaintRoom(ctx context.Context, c *Client, complaintID string) *app_error.AppError {
	if complaintID == "" {
		return app_error.NewValidationError("complaint id is required", "complaintId")
	}

	if !c.Identity.IsAdmin() {
		building, appErr := m.checker.ComplaintBuilding(ctx, complaintID)
		if appErr != nil {
			return appErr
		}
		if building != c.Identity.Building {
			return app_error.NewAuthorizationError("complaint belongs to another building")
		}
	}

	m.hub.JoinRoom(RoomForComplaint(complaintID), c)
	return nil
}

// LeaveComplaintRoom is always permitted and idempotent.
func (m *Membership) LeaveComplaintRoom(c *Client, complaintID string) {
	if complaintID == "" {
		return
	}
	m.hub.LeaveRoom(RoomForComplaint(complaintID), c)
}
