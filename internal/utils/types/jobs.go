package types

import "time"

// Payloads carried by queue jobs between the dispatcher and the worker
// pool.

type RecomputeStatsPayload struct {
	TriggerEventID string    `json:"trigger_event_id"`
	TriggerType    string    `json:"trigger_type"`
	RequestedAt    time.Time `json:"requested_at"`
}

// MaterializeNotificationsPayload turns one fan-out event into durable
// per-recipient notification records.
type MaterializeNotificationsPayload struct {
	EventID         string    `json:"event_id"`
	Type            string    `json:"type"`
	SenderID        string    `json:"sender_id"`
	SenderRole      string    `json:"sender_role"`
	Message         string    `json:"message"`
	RelatedEntityID string    `json:"related_entity_id,omitempty"`
	BroadcastID     string    `json:"broadcast_id,omitempty"`
	Recipients      []string  `json:"recipients"`
	EmittedAt       time.Time `json:"emitted_at"`
}

type RetractBroadcastPayload struct {
	BroadcastID string `json:"broadcast_id"`
	AdminID     string `json:"admin_id"`
}

type SweepNotificationsPayload struct {
	RequestedAt time.Time `json:"requested_at"`
}
