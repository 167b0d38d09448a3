package models

import "time"

// SubjectMaxLength is the upper bound on discussion subjects.
const SubjectMaxLength = 50

// Discussion is a topic thread inside a category. It owns an ordered
// sequence of posts, oldest first; the first post carries the opening
// message. ReplyCount counts the posts after the first one and is only ever
// mutated by the write path, never by client input.
type Discussion struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"categoryId"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	ReplyCount int       `json:"replyCount"`
	Private    bool      `json:"private"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Author linkage into the host application's user schema. Nil for
	// discussions opened by guests.
	AuthorType *string `json:"authorType,omitempty"`
	AuthorID   *int64  `json:"authorId,omitempty"`

	// Related entities
	Category *Category `json:"category,omitempty"`
	Posts    []*Post   `json:"posts,omitempty"`
}

// Closed reports whether the discussion's status is the final entry of the
// configured status list.
func (d *Discussion) Closed(statuses StatusList) bool {
	return len(statuses) > 0 && d.Status == statuses.Closed()
}

// AuthorName returns the display name of the discussion starter, resolved
// from the first post: the linked user's name when one was attached, else
// the guest name. Empty when no posts are loaded.
func (d *Discussion) AuthorName() string {
	if len(d.Posts) == 0 {
		return ""
	}
	return d.Posts[0].AuthorName
}

// HasAuthor reports whether a host user owns this discussion.
func (d *Discussion) HasAuthor() bool {
	return d.AuthorType != nil && d.AuthorID != nil
}

// CreatedBy reports whether the candidate may act as the discussion's
// creator. Admins always may. The second return value is false only when the
// question is indeterminate: the discussion has no owning user and no
// candidate was supplied.
func (d *Discussion) CreatedBy(candidate *ActingUser) (createdBy bool, known bool) {
	if candidate == nil {
		if d.HasAuthor() {
			return false, true
		}
		return false, false
	}
	if candidate.Admin {
		return true, true
	}
	if !d.HasAuthor() {
		return false, true
	}
	return *d.AuthorType == candidate.HostType && *d.AuthorID == candidate.HostID, true
}
