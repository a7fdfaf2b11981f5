package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityUrgent  = "urgent"
)

var broadcastSeverities = map[string]struct{}{
	SeverityInfo:    {},
	SeverityWarning: {},
	SeverityUrgent:  {},
}

func IsValidSeverity(s string) bool {
	_, ok := broadcastSeverities[s]
	return ok
}

// Broadcast is an admin-issued announcement. BuildingName empty means all
// buildings. Deleting a broadcast cascades to every notification that
// references it and retracts it from every previously-notified recipient.
type Broadcast struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID      string        `bson:"adminId" json:"admin_id"`
	Message      string        `bson:"message" json:"message"`
	Severity     string        `bson:"severity" json:"severity"`
	BuildingName string        `bson:"buildingName,omitempty" json:"building_name,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt" json:"created_at"`
}
