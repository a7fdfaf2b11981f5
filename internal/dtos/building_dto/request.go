package building_dto

type CreateBuildingRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	TotalFlats int64  `json:"total_flats" validate:"required,min=1"`
}

type ResizeBuildingRequest struct {
	TotalFlats int64 `json:"total_flats" validate:"required,min=1"`
}

type AddResidentRequest struct {
	ResidentID string `json:"resident_id" validate:"required,uuid"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Flat       int64  `json:"flat" validate:"required,min=1"`
}

type MoveResidentRequest struct {
	TargetBuildingID string `json:"target_building_id" validate:"required,uuid"`
	Flat             int64  `json:"flat" validate:"required,min=1"`
}
