package building_dto

type BuildingResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalFlats  int64  `json:"total_flats"`
	FilledFlats int64  `json:"filled_flats"`
	EmptyFlats  int64  `json:"empty_flats"`
}

type ResidentResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BuildingID   string `json:"building_id"`
	BuildingName string `json:"building_name"`
	Flat         int64  `json:"flat"`
}
