package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	NotifComplaintCreated = "complaint_created"
	NotifStatusChanged    = "status_changed"
	NotifCommentAdded     = "comment_added"
	NotifComplaintLiked   = "complaint_liked"
	NotifAdminMessage     = "admin_message"
	NotifBroadcastRemoved = "broadcast_removed"
)

var notificationTypes = map[string]struct{}{
	NotifComplaintCreated: {},
	NotifStatusChanged:    {},
	NotifCommentAdded:     {},
	NotifComplaintLiked:   {},
	NotifAdminMessage:     {},
	NotifBroadcastRemoved: {},
}

func IsValidNotificationType(t string) bool {
	_, ok := notificationTypes[t]
	return ok
}

// DefaultNotificationTTL is how long a durable notification stays visible.
// Past ExpiresAt a record is excluded from every active view and can never
// be resurrected through read/unread.
const DefaultNotificationTTL = 30 * 24 * time.Hour

type Notification struct {
	ID              bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	RecipientID     string         `bson:"recipientId" json:"recipient_id"`
	SenderID        string         `bson:"senderId" json:"sender_id"`
	SenderRole      string         `bson:"senderRole" json:"sender_role"`
	Type            string         `bson:"type" json:"type"`
	Message         string         `bson:"message" json:"message"`
	RelatedEntityID string         `bson:"relatedEntityId,omitempty" json:"related_entity_id,omitempty"`
	BroadcastID     *bson.ObjectID `bson:"broadcastId,omitempty" json:"broadcast_id,omitempty"`
	IsRead          bool           `bson:"isRead" json:"is_read"`
	ReadAt          *time.Time     `bson:"readAt,omitempty" json:"read_at,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt" json:"created_at"`
	ExpiresAt       time.Time      `bson:"expiresAt" json:"expires_at"`
}

func (n Notification) Expired(now time.Time) bool {
	return !n.ExpiresAt.IsZero() && now.After(n.ExpiresAt)
}
