package notification_dto

type ListNotificationsRequest struct {
	Page  int64 `json:"page" validate:"omitempty,min=1"`
	Limit int64 `json:"limit" validate:"omitempty,min=1,max=100"`
}
