package broadcast_dto

type CreateBroadcastRequest struct {
	Message      string `json:"message" validate:"required,min=1,max=2000"`
	Severity     string `json:"severity" validate:"required,oneof=info warning urgent"`
	BuildingName string `json:"building_name" validate:"omitempty,min=1,max=100"`
}

type ListBroadcastsRequest struct {
	Page  int64 `json:"page" validate:"omitempty,min=1"`
	Limit int64 `json:"limit" validate:"omitempty,min=1,max=100"`
}
