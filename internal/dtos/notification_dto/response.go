package notification_dto

import "time"

type NotificationResponse struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	SenderID        string     `json:"sender_id"`
	SenderRole      string     `json:"sender_role"`
	Message         string     `json:"message"`
	RelatedEntityID string     `json:"related_entity_id,omitempty"`
	BroadcastID     string     `json:"broadcast_id,omitempty"`
	IsRead          bool       `json:"is_read"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
}

type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	UnreadCount   int64                  `json:"unread_count"`
	Page          int64                  `json:"page"`
	Limit         int64                  `json:"limit"`
}
