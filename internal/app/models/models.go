package models

// CategoryType distinguishes discussion buckets from article buckets.
type CategoryType string

const (
	CategoryTypeDiscussion CategoryType = "discussion"
	CategoryTypeArticle    CategoryType = "article"
)

// Valid reports whether the value is one of the known category types.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeDiscussion || t == CategoryTypeArticle
}

// StatusList is the ordered list of discussion statuses from configuration.
// The first entry is the default for new discussions; the last entry marks a
// discussion as closed.
type StatusList []string

// Default returns the status assigned to newly created discussions.
func (s StatusList) Default() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Closed returns the status value that marks a discussion closed.
func (s StatusList) Closed() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

// Contains reports whether the value is a configured status.
func (s StatusList) Contains(value string) bool {
	for _, v := range s {
		if v == value {
			return true
		}
	}
	return false
}

// ActingUser is the host application's authenticated user as seen by the
// forum: a linkage reference plus the display fields the forum needs. It is
// resolved once at the request boundary and passed explicitly into services;
// a nil ActingUser means an anonymous (guest) request.
type ActingUser struct {
	HostType string
	HostID   int64
	Name     string
	Email    string
	Admin    bool
}
