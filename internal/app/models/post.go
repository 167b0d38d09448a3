package models

import "time"

// Post is a single message within a discussion. The author is either a host
// user (AuthorType/AuthorID set) or a guest (name and email supplied free
// text). AuthorName and AuthorEmail are resolved once at creation time so
// the forum never has to join into host-owned user tables: for a linked user
// they hold that user's display name and email, for a guest the guest
// fields. A linked user always wins over guest fields.
type Post struct {
	ID           int64     `json:"id"`
	DiscussionID int64     `json:"discussionId"`
	Body         string    `json:"body"`
	AuthorName   string    `json:"authorName"`
	AuthorEmail  string    `json:"authorEmail,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`

	AuthorType *string `json:"authorType,omitempty"`
	AuthorID   *int64  `json:"authorId,omitempty"`
}

// ByRegisteredUser reports whether the post was written by a linked host user.
func (p *Post) ByRegisteredUser() bool {
	return p.AuthorType != nil && p.AuthorID != nil
}

// SameAuthor reports whether two posts were written by the same author:
// matching host linkage for registered users, matching email for guests.
func (p *Post) SameAuthor(other *Post) bool {
	if p.ByRegisteredUser() && other.ByRegisteredUser() {
		return *p.AuthorType == *other.AuthorType && *p.AuthorID == *other.AuthorID
	}
	if p.ByRegisteredUser() != other.ByRegisteredUser() {
		return false
	}
	return p.AuthorEmail != "" && p.AuthorEmail == other.AuthorEmail
}
