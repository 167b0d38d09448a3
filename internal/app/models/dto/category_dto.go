package dto

import (
	"time"

	"github.com/tolgakurt/forumcore/internal/app/models"
)

// CreateCategoryRequest represents category creation data. ItemCount and the
// latest-activity fields are deliberately absent: they are derived state and
// never accepted from clients.
type CreateCategoryRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=discussion article"`
	Visible *bool  `json:"visible"`
}

// UpdateCategoryRequest represents category update data.
type UpdateCategoryRequest struct {
	Name    string `json:"name" binding:"required"`
	Visible *bool  `json:"visible"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID                     int64      `json:"id"`
	Name                   string     `json:"name"`
	Type                   string     `json:"type"`
	ItemCount              int        `json:"itemCount"`
	LatestDiscussionAuthor *string    `json:"latestDiscussionAuthor,omitempty"`
	LatestDiscussionDate   *time.Time `json:"latestDiscussionDate,omitempty"`
	Visible                bool       `json:"visible"`
}

// CategoryListResponse represents a list of categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// NewCategoryResponse maps a model to its response shape.
func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:                     c.ID,
		Name:                   c.Name,
		Type:                   string(c.Type),
		ItemCount:              c.ItemCount,
		LatestDiscussionAuthor: c.LatestDiscussionAuthor,
		LatestDiscussionDate:   c.LatestDiscussionDate,
		Visible:                c.Visible,
	}
}

// NewCategoryListResponse maps a slice of categories.
func NewCategoryListResponse(categories []*models.Category) CategoryListResponse {
	resp := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, NewCategoryResponse(c))
	}
	return resp
}
