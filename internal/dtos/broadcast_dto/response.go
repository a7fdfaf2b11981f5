package broadcast_dto

import "time"

type BroadcastResponse struct {
	ID           string    `json:"id"`
	AdminID      string    `json:"admin_id"`
	Message      string    `json:"message"`
	Severity     string    `json:"severity"`
	BuildingName string    `json:"building_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListBroadcastsResponse struct {
	Broadcasts []BroadcastResponse `json:"broadcasts"`
	Total      int64               `json:"total"`
	Page       int64               `json:"page"`
	Limit      int64               `json:"limit"`
}

type DeleteBroadcastResponse struct {
	BroadcastID        string `json:"broadcast_id"`
	RecipientsNotified int    `json:"recipients_notified"`
}
