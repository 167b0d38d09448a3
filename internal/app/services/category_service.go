package services

import (
	"context"
	"fmt"

	"github.com/tolgakurt/forumcore/internal/app/auth"
	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/app/models/dto"
	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
	"github.com/tolgakurt/forumcore/internal/pkg/validation"
)

// CategoryService handles category-related operations. Listings are public;
// every mutation requires the admin capability, checked before anything is
// read or written.
type CategoryService struct {
	categories CategoryStore
	authz      *auth.AuthorizationService
}

// NewCategoryService creates a new category service instance
func NewCategoryService(categories CategoryStore, authz *auth.AuthorizationService) *CategoryService {
	return &CategoryService{
		categories: categories,
		authz:      authz,
	}
}

// ListDiscussionCategories returns the visible discussion categories.
func (s *CategoryService) ListDiscussionCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categories.ListByType(ctx, models.CategoryTypeDiscussion)
}

// ListArticleCategories returns the visible article categories.
func (s *CategoryService) ListArticleCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categories.ListByType(ctx, models.CategoryTypeArticle)
}

// ListAll returns every category, hidden ones included, for the admin
// listing. Requires the admin capability.
func (s *CategoryService) ListAll(ctx context.Context, actor *models.ActingUser) ([]*models.Category, error) {
	if err := s.authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	return s.categories.ListAll(ctx)
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// Create creates a new category on behalf of an admin.
func (s *CategoryService) Create(ctx context.Context, actor *models.ActingUser, req dto.CreateCategoryRequest) (*models.Category, error) {
	if err := s.authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	verr := apperrors.NewValidationError()
	if validation.IsBlank(req.Name) {
		verr.Add("name", "can't be blank")
	}
	categoryType := models.CategoryType(req.Type)
	if !categoryType.Valid() {
		verr.Add("type", "must be discussion or article")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	category := &models.Category{
		Name:    req.Name,
		Type:    categoryType,
		Visible: true,
	}
	if req.Visible != nil {
		category.Visible = *req.Visible
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}

	return category, nil
}

// Update updates a category's editable fields on behalf of an admin.
func (s *CategoryService) Update(ctx context.Context, actor *models.ActingUser, id int64, req dto.UpdateCategoryRequest) (*models.Category, error) {
	if err := s.authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if validation.IsBlank(req.Name) {
		return nil, apperrors.NewValidationError().Add("name", "can't be blank")
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	if req.Visible != nil {
		category.Visible = *req.Visible
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("error updating category: %w", err)
	}

	return category, nil
}

// Delete deletes a category on behalf of an admin. Both failure modes are
// surfaced distinctly: an unresolvable id and a category that still has
// discussions.
func (s *CategoryService) Delete(ctx context.Context, actor *models.ActingUser, id int64) error {
	if err := s.authz.RequireAdmin(actor); err != nil {
		return err
	}

	return s.categories.Delete(ctx, id)
}
