package services

import (
	"context"
	"strings"

	"github.com/tolgakurt/forumcore/internal/app/auth"
	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/app/models/dto"
	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
	"github.com/tolgakurt/forumcore/internal/pkg/validation"
	"github.com/tolgakurt/forumcore/internal/userlink"
)

// PostService handles replies to discussions and post deletion.
type PostService struct {
	posts       PostStore
	discussions DiscussionStore
	notifier    *NotificationService
	authz       *auth.AuthorizationService
	registry    *userlink.Registry
}

// NewPostService creates a new post service instance
func NewPostService(
	posts PostStore,
	discussions DiscussionStore,
	notifier *NotificationService,
	authz *auth.AuthorizationService,
	registry *userlink.Registry,
) *PostService {
	return &PostService{
		posts:       posts,
		discussions: discussions,
		notifier:    notifier,
		authz:       authz,
		registry:    registry,
	}
}

// Append adds a reply to a discussion. The reply counter and the category's
// latest-activity fields move with the insert; the starter is notified
// afterwards, outside the transaction.
func (s *PostService) Append(ctx context.Context, actor *models.ActingUser, discussionID int64, req dto.AppendPostRequest) (*models.Post, error) {
	verr := apperrors.NewValidationError()
	if validation.IsBlank(req.Body) {
		verr.Add("body", "can't be blank")
	}
	validateAuthorInfo(s.registry, actor, req.GuestName, req.GuestEmail, verr)
	if verr.HasErrors() {
		return nil, verr
	}

	// Loaded before the write so the notification has the opening post at
	// hand; existence is re-checked inside the append transaction.
	discussion, err := s.discussions.GetByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		DiscussionID: discussionID,
		Body:         strings.TrimSpace(req.Body),
	}
	assignPostAuthor(post, actor, req.GuestName, req.GuestEmail)

	if err := s.posts.Append(ctx, post); err != nil {
		return nil, err
	}

	if len(discussion.Posts) > 0 {
		go s.notifier.NotifyNewReply(discussion, discussion.Posts[0], post)
	}

	return post, nil
}

// Delete removes a post and reverses its counter and latest-activity
// effects. Admins may delete any post; a registered author may delete their
// own. Deleting the opening post removes the whole discussion.
func (s *PostService) Delete(ctx context.Context, actor *models.ActingUser, id int64) (discussionDeleted bool, err error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	if !s.authz.CanModifyPost(actor, post) {
		return false, apperrors.NewAccessDeniedError("not the post author")
	}

	return s.posts.Delete(ctx, id)
}
