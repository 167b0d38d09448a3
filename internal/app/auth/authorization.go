package auth

import (
	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
)

// AuthorizationService answers capability questions about acting users. The
// forum does not own user records; everything it needs arrives on the
// ActingUser resolved at the request boundary.
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// IsAdmin reports whether the acting user carries the admin capability.
func (s *AuthorizationService) IsAdmin(actor *models.ActingUser) bool {
	return actor != nil && actor.Admin
}

// RequireAdmin fails with an access-denied error unless the actor is an
// admin. Called before any domain state is read or mutated.
func (s *AuthorizationService) RequireAdmin(actor *models.ActingUser) error {
	if actor == nil {
		return apperrors.NewAccessDeniedError("authentication required")
	}
	if !actor.Admin {
		return apperrors.NewAccessDeniedError("admin capability required")
	}
	return nil
}

// CanModifyDiscussion reports whether the actor may delete or otherwise
// manage a discussion: admins always, otherwise only a known creator.
func (s *AuthorizationService) CanModifyDiscussion(actor *models.ActingUser, discussion *models.Discussion) bool {
	createdBy, known := discussion.CreatedBy(actor)
	return known && createdBy
}

// CanModifyPost reports whether the actor may delete a post: admins always,
// otherwise the registered author of the post.
func (s *AuthorizationService) CanModifyPost(actor *models.ActingUser, post *models.Post) bool {
	if actor == nil {
		return false
	}
	if actor.Admin {
		return true
	}
	if !post.ByRegisteredUser() {
		return false
	}
	return *post.AuthorType == actor.HostType && *post.AuthorID == actor.HostID
}
