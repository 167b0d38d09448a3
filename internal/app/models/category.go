package models

import "time"

// Category is a named bucket for discussions or articles. ItemCount and the
// latest-activity fields are denormalized: ItemCount tracks the number of
// non-private discussions in the category, and the latest fields cache the
// author and time of the most recent post for fast index rendering.
type Category struct {
	ID                     int64        `json:"id"`
	Name                   string       `json:"name"`
	Type                   CategoryType `json:"type"`
	ItemCount              int          `json:"itemCount"`
	LatestDiscussionAuthor *string      `json:"latestDiscussionAuthor,omitempty"`
	LatestDiscussionDate   *time.Time   `json:"latestDiscussionDate,omitempty"`
	Visible                bool         `json:"visible"`
	CreatedAt              time.Time    `json:"createdAt"`
	UpdatedAt              time.Time    `json:"updatedAt"`
}
