package websocket

import (
	"time"
)

// Event is the normalized wire payload pushed to every room member:
// { eventId, type, entityId, buildingName?, recipientId?, data, emittedAt }.
type Event struct {
	EventID      string         `json:"eventId"`
	Type         string         `json:"type"`
	EntityID     string         `json:"entityId"`
	BuildingName string         `json:"buildingName,omitempty"`
	RecipientID  string         `json:"recipientId,omitempty"`
	Data         map[string]any `json:"data"`
	EmittedAt    time.Time      `json:"emittedAt"`
}

// Incoming frames from clients. Identity-derived rooms are fixed for the
// connection's lifetime; the only client-driven membership changes are
// complaint-thread joins and leaves.
const (
	ActionJoinComplaint  = "join_complaint"
	ActionLeaveComplaint = "leave_complaint"
)

type IncomingFrame struct {
	Action      string `json:"action"`
	ComplaintID string `json:"complaintId"`
}

func NewErrorEvent(msg string) Event {
	return Event{
		EventID:   "error:" + time.Now().Format(time.RFC3339Nano),
		Type:      "error",
		Data:      map[string]any{"message": msg},
		EmittedAt: time.Now(),
	}
}

func NewSystemEvent(eventType, entityID string, data map[string]any) Event {
	return Event{
		EventID:   eventType + ":" + entityID + ":" + time.Now().Format(time.RFC3339Nano),
		Type:      eventType,
		EntityID:  entityID,
		Data:      data,
		EmittedAt: time.Now(),
	}
}

// Room naming. A connection in a room receives every event pushed to it.
const AdminRoom = "adminRoom"

func RoomForUser(userID string) string   { return "user:" + userID }
func RoomForAdmin(adminID string) string { return "admin:" + adminID }
func RoomForBuilding(name string) string { return "building:" + name }
func RoomForComplaint(id string) string  { return "complaint:" + id }
