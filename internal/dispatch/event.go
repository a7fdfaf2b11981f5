package dispatch

import (
	"fmt"
	"time"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/websocket"
)

// Domain event types. Every mutation the engine cares about becomes one of
// these before it reaches any connection.
const (
	EventComplaintCreated = "complaint_created"
	EventComplaintUpdated = "complaint_updated"
	EventComplaintDeleted = "complaint_deleted"
	EventStatusChanged    = "status_changed"
	EventCommentAdded     = "comment_added"
	EventComplaintLiked   = "complaint_liked"
	EventBuildingCreated  = "building_created"
	EventBuildingUpdated  = "building_updated"
	EventBuildingDeleted  = "building_deleted"
	EventBroadcastCreated = "broadcast_created"
	EventBroadcastRemoved = "broadcast_removed"
	EventStatsSnapshot    = "stats_snapshot"
)

// DomainEvent is the typed input to the dispatcher. Recipients, when set,
// name the users that get a durable notification record in addition to the
// live room push.
type DomainEvent struct {
	EventID      string
	Type         string
	EntityID     string
	BuildingName string
	ActorID      string
	ActorRole    string
	Message      string
	Recipients   []string
	BroadcastID  string
	Data         map[string]any
	EmittedAt    time.Time
}

// NewEventID derives the stable dedup identity: entity id + event type +
// a time-based disambiguator.
func NewEventID(eventType, entityID string) string {
	return fmt.Sprintf("%s:%s:%d", entityID, eventType, time.Now().UnixNano())
}

// Rooms resolves the target rooms from the event type. Complaint events go
// to the owning building and the admin room (plus the open complaint
// thread); building and broadcast events go to the admin room and, when
// targeted, the building room. Recipient rooms are added for any
// notification-bearing event.
func (ev DomainEvent) Rooms() []string {
	var rooms []string

	switch ev.Type {
	case EventComplaintCreated, EventComplaintUpdated, EventComplaintDeleted,
		EventStatusChanged, EventCommentAdded, EventComplaintLiked:
		if ev.BuildingName != "" {
			rooms = append(rooms, websocket.RoomForBuilding(ev.BuildingName))
		}
		rooms = append(rooms, websocket.AdminRoom, websocket.RoomForComplaint(ev.EntityID))
	case EventBuildingCreated, EventBuildingUpdated, EventBuildingDeleted:
		rooms = append(rooms, websocket.AdminRoom)
		if ev.BuildingName != "" {
			rooms = append(rooms, websocket.RoomForBuilding(ev.BuildingName))
		}
	case EventBroadcastCreated:
		rooms = append(rooms, websocket.AdminRoom)
		if ev.BuildingName != "" {
			rooms = append(rooms, websocket.RoomForBuilding(ev.BuildingName))
		}
	case EventBroadcastRemoved:
		rooms = append(rooms, websocket.AdminRoom)
	case EventStatsSnapshot:
		rooms = append(rooms, websocket.AdminRoom)
	}

	for _, recipient := range ev.Recipients {
		rooms = append(rooms, websocket.RoomForUser(recipient))
	}

	return rooms
}

// AffectsAggregates reports whether the event changes any derived count
// and therefore must trigger an asynchronous recomputation.
func (ev DomainEvent) AffectsAggregates() bool {
	switch ev.Type {
	case EventComplaintCreated, EventComplaintUpdated, EventComplaintDeleted,
		EventStatusChanged,
		EventBuildingCreated, EventBuildingUpdated, EventBuildingDeleted:
		return true
	}
	return false
}

// NotificationType maps the event onto the durable notification enum, or
// "" when the event produces no per-recipient record.
func (ev DomainEvent) NotificationType() string {
	switch ev.Type {
	case EventComplaintCreated:
		return entity.NotifComplaintCreated
	case EventStatusChanged:
		return entity.NotifStatusChanged
	case EventCommentAdded:
		return entity.NotifCommentAdded
	case EventComplaintLiked:
		return entity.NotifComplaintLiked
	case EventBroadcastCreated:
		return entity.NotifAdminMessage
	case EventBroadcastRemoved:
		return entity.NotifBroadcastRemoved
	}
	return ""
}

// Wire converts the domain event to the normalized push payload.
func (ev DomainEvent) Wire() websocket.Event {
	return websocket.Event{
		EventID:      ev.EventID,
		Type:         ev.Type,
		EntityID:     ev.EntityID,
		BuildingName: ev.BuildingName,
		Data:         ev.Data,
		EmittedAt:    ev.EmittedAt,
	}
}
