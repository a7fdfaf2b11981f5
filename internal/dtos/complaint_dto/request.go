package complaint_dto

type CreateComplaintRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,min=1,max=5000"`
	Category    string `json:"category" validate:"required,oneof=Plumbing Electrical Cleanliness Security Noise Parking Other"`
}

type UpdateComplaintRequest struct {
	Title       string `json:"title" validate:"omitempty,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,min=1,max=5000"`
	Category    string `json:"category" validate:"omitempty,oneof=Plumbing Electrical Cleanliness Security Noise Parking Other"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending InProgress Resolved"`
}

type AddCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

type ListComplaintsRequest struct {
	Page  int64 `json:"page" validate:"omitempty,min=1"`
	Limit int64 `json:"limit" validate:"omitempty,min=1,max=100"`
}
