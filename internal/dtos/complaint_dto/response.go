package complaint_dto

import "time"

type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorRole string    `json:"author_role"`
	AuthorID   string    `json:"author_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type ComplaintResponse struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Category     string            `json:"category"`
	Status       string            `json:"status"`
	OwnerID      string            `json:"owner_id"`
	BuildingID   string            `json:"building_id"`
	BuildingName string            `json:"building_name"`
	Comments     []CommentResponse `json:"comments"`
	Likes        []string          `json:"likes"`
	LikeCount    int               `json:"like_count"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type ListComplaintsResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
	Total      int64               `json:"total"`
	Page       int64               `json:"page"`
	Limit      int64               `json:"limit"`
}

type ToggleLikeResponse struct {
	ComplaintID string `json:"complaint_id"`
	Liked       bool   `json:"liked"`
	LikeCount   int    `json:"like_count"`
}
