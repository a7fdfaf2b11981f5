package entity

import (
	"time"

	"github.com/google/uuid"
)

// Building carries the occupancy counters guarded by the invariant
// FilledFlats + EmptyFlats == TotalFlats. Counters are only ever mutated
// through conditional single-statement updates, never read-then-write.
type Building struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	TotalFlats  int64     `gorm:"not null" json:"total_flats"`
	FilledFlats int64     `gorm:"not null;default:0" json:"filled_flats"`
	EmptyFlats  int64     `gorm:"not null" json:"empty_flats"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Resident struct {
	ID         uuid.UUID `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	BuildingID uuid.UUID `gorm:"index;not null;uniqueIndex:idx_building_flat" json:"building_id"`
	// BuildingName mirrors Building.Name and must always agree with
	// BuildingID. Events resolve rooms by display name.
	BuildingName string    `gorm:"not null" json:"building_name"`
	Flat         int64     `gorm:"not null;uniqueIndex:idx_building_flat" json:"flat"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
