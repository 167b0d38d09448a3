package dto

import (
	"time"

	"github.com/tolgakurt/forumcore/internal/app/models"
)

// CreateDiscussionRequest represents discussion creation data. Status and
// ReplyCount are not part of the request on purpose: status always starts at
// the configured default and the counter is maintained by the write path.
// Guest fields are used when no authenticated host user is attached.
type CreateDiscussionRequest struct {
	Subject    string `json:"subject" binding:"required"`
	CategoryID int64  `json:"categoryId" binding:"required,gt=0"`
	Body       string `json:"body" binding:"required"`
	Private    bool   `json:"private"`
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
}

// AppendPostRequest represents a reply to an existing discussion.
type AppendPostRequest struct {
	Body       string `json:"body" binding:"required"`
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
}

// PostResponse represents a post in API responses. Guest emails are not
// echoed back.
type PostResponse struct {
	ID           int64     `json:"id"`
	DiscussionID int64     `json:"discussionId"`
	Body         string    `json:"body"`
	AuthorName   string    `json:"authorName"`
	Registered   bool      `json:"registered"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DiscussionResponse represents a discussion in API responses.
type DiscussionResponse struct {
	ID         int64          `json:"id"`
	CategoryID int64          `json:"categoryId"`
	Subject    string         `json:"subject"`
	Status     string         `json:"status"`
	Closed     bool           `json:"closed"`
	ReplyCount int            `json:"replyCount"`
	Private    bool           `json:"private"`
	AuthorName string         `json:"authorName,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	Posts      []PostResponse `json:"posts,omitempty"`
}

// DiscussionListResponse represents a list of discussions.
type DiscussionListResponse struct {
	Discussions []DiscussionResponse `json:"discussions"`
}

// NewPostResponse maps a post model to its response shape.
func NewPostResponse(p *models.Post) PostResponse {
	return PostResponse{
		ID:           p.ID,
		DiscussionID: p.DiscussionID,
		Body:         p.Body,
		AuthorName:   p.AuthorName,
		Registered:   p.ByRegisteredUser(),
		CreatedAt:    p.CreatedAt,
	}
}

// NewDiscussionResponse maps a discussion model, including loaded posts.
func NewDiscussionResponse(d *models.Discussion, statuses models.StatusList) DiscussionResponse {
	resp := DiscussionResponse{
		ID:         d.ID,
		CategoryID: d.CategoryID,
		Subject:    d.Subject,
		Status:     d.Status,
		Closed:     d.Closed(statuses),
		ReplyCount: d.ReplyCount,
		Private:    d.Private,
		AuthorName: d.AuthorName(),
		CreatedAt:  d.CreatedAt,
	}
	for _, p := range d.Posts {
		resp.Posts = append(resp.Posts, NewPostResponse(p))
	}
	return resp
}

// NewDiscussionListResponse maps a slice of discussions without their posts.
func NewDiscussionListResponse(discussions []*models.Discussion, statuses models.StatusList) DiscussionListResponse {
	resp := DiscussionListResponse{Discussions: make([]DiscussionResponse, 0, len(discussions))}
	for _, d := range discussions {
		r := NewDiscussionResponse(d, statuses)
		r.Posts = nil
		resp.Discussions = append(resp.Discussions, r)
	}
	return resp
}
