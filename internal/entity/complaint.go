package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Complaint statuses form a flat set: any value may transition to any
// other. The source product imposes no ordering and we keep that behavior.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusResolved   = "Resolved"
)

var complaintStatuses = map[string]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusResolved:   {},
}

func IsValidStatus(s string) bool {
	_, ok := complaintStatuses[s]
	return ok
}

const (
	CategoryPlumbing    = "Plumbing"
	CategoryElectrical  = "Electrical"
	CategoryCleanliness = "Cleanliness"
	CategorySecurity    = "Security"
	CategoryNoise       = "Noise"
	CategoryParking     = "Parking"
	CategoryOther       = "Other"
)

var complaintCategories = map[string]struct{}{
	CategoryPlumbing:    {},
	CategoryElectrical:  {},
	CategoryCleanliness: {},
	CategorySecurity:    {},
	CategoryNoise:       {},
	CategoryParking:     {},
	CategoryOther:       {},
}

func IsValidCategory(c string) bool {
	_, ok := complaintCategories[c]
	return ok
}

// Comment author is a tagged variant: AuthorRole selects which directory
// AuthorID resolves against at read time.
const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
)

type Comment struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorRole string        `bson:"authorRole" json:"author_role"`
	AuthorID   string        `bson:"authorId" json:"author_id"`
	Body       string        `bson:"body" json:"body"`
	CreatedAt  time.Time     `bson:"createdAt" json:"created_at"`
}

type Complaint struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string        `bson:"title" json:"title"`
	Description  string        `bson:"description" json:"description"`
	Category     string        `bson:"category" json:"category"`
	Status       string        `bson:"status" json:"status"`
	OwnerID      string        `bson:"ownerId" json:"owner_id"`
	BuildingID   string        `bson:"buildingId" json:"building_id"`
	BuildingName string        `bson:"buildingName" json:"building_name"`
	Comments     []Comment     `bson:"comments" json:"comments"`
	// Likes is a set: a resident id appears at most once.
	Likes     []string  `bson:"likes" json:"likes"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}
