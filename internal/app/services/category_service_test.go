package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolgakurt/forumcore/internal/app/auth"
	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/app/models/dto"
	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
)

func newCategoryService(store *fakeCategoryStore) *CategoryService {
	return NewCategoryService(store, auth.NewAuthorizationService())
}

func adminActor() *models.ActingUser {
	return &models.ActingUser{HostType: "User", HostID: 1, Name: "Admin", Email: "admin@example.com", Admin: true}
}

func regularActor() *models.ActingUser {
	return &models.ActingUser{HostType: "User", HostID: 2, Name: "Reg", Email: "reg@example.com"}
}

// TestCategoryService_Create verifies an admin can create a category with
// derived fields starting at zero.
func TestCategoryService_Create(t *testing.T) {
	store := newFakeCategoryStore()
	svc := newCategoryService(store)

	category, err := svc.Create(context.Background(), adminActor(), dto.CreateCategoryRequest{
		Name: "General",
		Type: "discussion",
	})
	require.NoError(t, err)

	assert.Equal(t, "General", category.Name)
	assert.Equal(t, models.CategoryTypeDiscussion, category.Type)
	assert.True(t, category.Visible)
	assert.Equal(t, 0, category.ItemCount)
}

// TestCategoryService_Create_RequiresAdmin verifies authorization is checked
// before validation and persistence.
func TestCategoryService_Create_RequiresAdmin(t *testing.T) {
	store := newFakeCategoryStore()
	svc := newCategoryService(store)

	_, err := svc.Create(context.Background(), regularActor(), dto.CreateCategoryRequest{Name: "General", Type: "discussion"})
	assert.True(t, errors.Is(err, apperrors.ErrAccessDenied))

	_, err = svc.Create(context.Background(), nil, dto.CreateCategoryRequest{Name: "General", Type: "discussion"})
	assert.True(t, errors.Is(err, apperrors.ErrAccessDenied))

	assert.Empty(t, store.categories)
}

// TestCategoryService_Create_Validation verifies blank names and unknown
// types are rejected with field-level messages.
func TestCategoryService_Create_Validation(t *testing.T) {
	store := newFakeCategoryStore()
	svc := newCategoryService(store)

	_, err := svc.Create(context.Background(), adminActor(), dto.CreateCategoryRequest{Name: "  ", Type: "bucket"})
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "type")
	assert.Empty(t, store.categories)
}

// TestCategoryService_Update verifies name and visibility edits.
func TestCategoryService_Update(t *testing.T) {
	store := newFakeCategoryStore()
	existing := store.add(&models.Category{Name: "Old", Type: models.CategoryTypeDiscussion, Visible: true})
	svc := newCategoryService(store)

	hidden := false
	updated, err := svc.Update(context.Background(), adminActor(), existing.ID, dto.UpdateCategoryRequest{
		Name:    "New",
		Visible: &hidden,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.False(t, updated.Visible)
}

// TestCategoryService_Update_NotFound verifies unknown ids surface as not found.
func TestCategoryService_Update_NotFound(t *testing.T) {
	svc := newCategoryService(newFakeCategoryStore())

	_, err := svc.Update(context.Background(), adminActor(), 404, dto.UpdateCategoryRequest{Name: "New"})
	assert.True(t, errors.Is(err, apperrors.ErrCategoryNotFound))
}

// TestCategoryService_Delete_BlockedWhileNonEmpty verifies a category that
// still holds discussions cannot be deleted.
func TestCategoryService_Delete_BlockedWhileNonEmpty(t *testing.T) {
	store := newFakeCategoryStore()
	store.add(&models.Category{Name: "Busy", Type: models.CategoryTypeDiscussion, Visible: true})
	store.deleteErr = apperrors.ErrCategoryHasDiscussions
	svc := newCategoryService(store)

	err := svc.Delete(context.Background(), adminActor(), 1)
	assert.True(t, errors.Is(err, apperrors.ErrCategoryHasDiscussions))
}

// TestCategoryService_Delete_RequiresAdmin verifies only admins may delete.
func TestCategoryService_Delete_RequiresAdmin(t *testing.T) {
	store := newFakeCategoryStore()
	store.add(&models.Category{Name: "General", Type: models.CategoryTypeDiscussion, Visible: true})
	svc := newCategoryService(store)

	err := svc.Delete(context.Background(), regularActor(), 1)
	assert.True(t, errors.Is(err, apperrors.ErrAccessDenied))
	assert.Len(t, store.categories, 1)
}

// TestCategoryService_Listings verifies type filtering of the public listings.
func TestCategoryService_Listings(t *testing.T) {
	store := newFakeCategoryStore()
	store.add(&models.Category{Name: "General", Type: models.CategoryTypeDiscussion, Visible: true})
	store.add(&models.Category{Name: "News", Type: models.CategoryTypeArticle, Visible: true})
	store.add(&models.Category{Name: "Hidden", Type: models.CategoryTypeDiscussion, Visible: false})
	svc := newCategoryService(store)

	discussions, err := svc.ListDiscussionCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, discussions, 1)
	assert.Equal(t, "General", discussions[0].Name)

	articles, err := svc.ListArticleCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "News", articles[0].Name)
}

// TestCategoryService_ListAll verifies the admin listing includes hidden
// categories of every type and is gated on the admin capability.
func TestCategoryService_ListAll(t *testing.T) {
	store := newFakeCategoryStore()
	store.add(&models.Category{Name: "General", Type: models.CategoryTypeDiscussion, Visible: true})
	store.add(&models.Category{Name: "News", Type: models.CategoryTypeArticle, Visible: true})
	store.add(&models.Category{Name: "Hidden", Type: models.CategoryTypeDiscussion, Visible: false})
	svc := newCategoryService(store)

	categories, err := svc.ListAll(context.Background(), adminActor())
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	_, err = svc.ListAll(context.Background(), regularActor())
	assert.True(t, errors.Is(err, apperrors.ErrAccessDenied))

	_, err = svc.ListAll(context.Background(), nil)
	assert.True(t, errors.Is(err, apperrors.ErrAccessDenied))
}
