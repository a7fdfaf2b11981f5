package stats_dto

import "time"

type BuildingOccupancy struct {
	BuildingID   string `json:"building_id"`
	BuildingName string `json:"building_name"`
	TotalFlats   int64  `json:"total_flats"`
	FilledFlats  int64  `json:"filled_flats"`
	EmptyFlats   int64  `json:"empty_flats"`
	Complaints   int64  `json:"complaints"`
}

// StatsSnapshot is the admin dashboard aggregate. It is recomputed from
// the source records by the background engine, never adjusted
// incrementally.
type StatsSnapshot struct {
	TotalComplaints int64               `json:"total_complaints"`
	ByStatus        map[string]int64    `json:"by_status"`
	ByCategory      map[string]int64    `json:"by_category"`
	Buildings       []BuildingOccupancy `json:"buildings"`
	GeneratedAt     time.Time           `json:"generated_at"`
}
