package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tolgakurt/forumcore/internal/app/auth"
	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/app/models/dto"
	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
	"github.com/tolgakurt/forumcore/internal/pkg/validation"
	"github.com/tolgakurt/forumcore/internal/userlink"
)

// DiscussionService handles discussion-related operations: creation with the
// opening post, listings, and deletion. The acting user is always passed in
// explicitly; nil means a guest.
type DiscussionService struct {
	discussions DiscussionStore
	categories  CategoryStore
	notifier    *NotificationService
	authz       *auth.AuthorizationService
	registry    *userlink.Registry
	statuses    models.StatusList
	latestLimit int
}

// NewDiscussionService creates a new discussion service instance
func NewDiscussionService(
	discussions DiscussionStore,
	categories CategoryStore,
	notifier *NotificationService,
	authz *auth.AuthorizationService,
	registry *userlink.Registry,
	statuses models.StatusList,
	latestLimit int,
) *DiscussionService {
	return &DiscussionService{
		discussions: discussions,
		categories:  categories,
		notifier:    notifier,
		authz:       authz,
		registry:    registry,
		statuses:    statuses,
		latestLimit: latestLimit,
	}
}

// Statuses exposes the configured status list for response rendering.
func (s *DiscussionService) Statuses() models.StatusList {
	return s.statuses
}

// Create validates and persists a discussion with its opening post in one
// transaction, then dispatches notifications outside of it. Counters are
// untouched when validation fails.
func (s *DiscussionService) Create(ctx context.Context, actor *models.ActingUser, req dto.CreateDiscussionRequest) (*models.Discussion, error) {
	verr := apperrors.NewValidationError()

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		verr.Add("subject", "can't be blank")
	} else if len([]rune(subject)) > models.SubjectMaxLength {
		verr.Add("subject", fmt.Sprintf("must be %d characters or less", models.SubjectMaxLength))
	}

	if validation.IsBlank(req.Body) {
		verr.Add("body", "can't be blank")
	}

	if req.CategoryID <= 0 {
		verr.Add("category", "can't be blank")
	} else if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		if err == apperrors.ErrCategoryNotFound {
			verr.Add("category", "does not exist")
		} else {
			return nil, fmt.Errorf("error checking category: %w", err)
		}
	}

	s.validateAuthor(actor, req.GuestName, req.GuestEmail, verr)
	if verr.HasErrors() {
		return nil, verr
	}

	discussion := &models.Discussion{
		CategoryID: req.CategoryID,
		Subject:    subject,
		Status:     s.statuses.Default(),
		Private:    req.Private,
	}
	firstPost := &models.Post{
		Body: strings.TrimSpace(req.Body),
	}
	s.assignAuthor(discussion, firstPost, actor, req.GuestName, req.GuestEmail)

	if err := s.discussions.CreateWithFirstPost(ctx, discussion, firstPost); err != nil {
		return nil, err
	}

	// Notification is best-effort and must never block or abort the write.
	go s.notifier.NotifyNewDiscussion(discussion, firstPost)

	return discussion, nil
}

// GetByID retrieves a discussion with its posts, oldest first.
func (s *DiscussionService) GetByID(ctx context.Context, id int64) (*models.Discussion, error) {
	return s.discussions.GetByID(ctx, id)
}

// LatestForCategory returns the newest public discussions of a category.
// A non-positive limit falls back to the configured default.
func (s *DiscussionService) LatestForCategory(ctx context.Context, categoryID int64, limit int) ([]*models.Discussion, error) {
	if limit <= 0 {
		limit = s.latestLimit
	}

	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	return s.discussions.LatestForCategory(ctx, categoryID, limit)
}

// ListByAuthor returns the discussions authored by a registered host user.
func (s *DiscussionService) ListByAuthor(ctx context.Context, hostType string, hostID int64) ([]*models.Discussion, error) {
	if !s.registry.IsRegistered(hostType) {
		return nil, apperrors.NewValidationError().Add("authorType", "is not a registered user type")
	}
	return s.discussions.ListByAuthor(ctx, hostType, hostID)
}

// Delete removes a discussion and its posts. Only an admin or the
// discussion's known creator may do this.
func (s *DiscussionService) Delete(ctx context.Context, actor *models.ActingUser, id int64) error {
	discussion, err := s.discussions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.authz.CanModifyDiscussion(actor, discussion) {
		return apperrors.NewAccessDeniedError("not the discussion creator")
	}

	return s.discussions.Delete(ctx, id)
}

// validateAuthor enforces the author contract shared by discussions and
// replies: a registered user must come from an activated host type, and a
// guest must leave a name and a reachable email.
func (s *DiscussionService) validateAuthor(actor *models.ActingUser, guestName, guestEmail string, verr *apperrors.ValidationError) {
	validateAuthorInfo(s.registry, actor, guestName, guestEmail, verr)
}

// assignAuthor resolves the author onto the discussion and post. A linked
// host user wins over guest fields.
func (s *DiscussionService) assignAuthor(discussion *models.Discussion, post *models.Post, actor *models.ActingUser, guestName, guestEmail string) {
	if actor != nil {
		hostType := actor.HostType
		hostID := actor.HostID
		discussion.AuthorType = &hostType
		discussion.AuthorID = &hostID
		assignPostAuthor(post, actor, guestName, guestEmail)
		return
	}
	assignPostAuthor(post, nil, guestName, guestEmail)
}

func validateAuthorInfo(registry *userlink.Registry, actor *models.ActingUser, guestName, guestEmail string, verr *apperrors.ValidationError) {
	if actor != nil {
		if !registry.IsRegistered(actor.HostType) {
			verr.Add("author", fmt.Sprintf("host user type %q is not registered", actor.HostType))
		}
		return
	}

	if validation.IsBlank(guestName) {
		verr.Add("guestName", "can't be blank")
	}
	// A guest email is required whenever no registered user is attached; it
	// is what reply notifications are sent to.
	if validation.IsBlank(guestEmail) {
		verr.Add("guestEmail", "can't be blank")
	} else if !validation.IsValidEmail(guestEmail) {
		verr.Add("guestEmail", "is not a valid email address")
	}
}

func assignPostAuthor(post *models.Post, actor *models.ActingUser, guestName, guestEmail string) {
	if actor != nil {
		hostType := actor.HostType
		hostID := actor.HostID
		post.AuthorType = &hostType
		post.AuthorID = &hostID
		post.AuthorName = actor.Name
		post.AuthorEmail = actor.Email
		return
	}
	post.AuthorName = strings.TrimSpace(guestName)
	post.AuthorEmail = strings.TrimSpace(guestEmail)
}
