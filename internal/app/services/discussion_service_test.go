package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolgakurt/forumcore/internal/app/auth"
	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/app/models/dto"
	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
)

type discussionFixture struct {
	svc         *DiscussionService
	discussions *fakeDiscussionStore
	categories  *fakeCategoryStore
	sender      *fakeSender
	categoryID  int64
}

func newDiscussionFixture(t *testing.T) *discussionFixture {
	t.Helper()
	categories := newFakeCategoryStore()
	category := categories.add(&models.Category{Name: "General", Type: models.CategoryTypeDiscussion, Visible: true})
	discussions := newFakeDiscussionStore()
	sender := &fakeSender{}

	svc := NewDiscussionService(
		discussions,
		categories,
		testNotifier(sender, "admin@example.com"),
		auth.NewAuthorizationService(),
		testRegistry("User"),
		models.StatusList{"Open", "Resolved"},
		5,
	)
	return &discussionFixture{
		svc:         svc,
		discussions: discussions,
		categories:  categories,
		sender:      sender,
		categoryID:  category.ID,
	}
}

func validCreateRequest(categoryID int64) dto.CreateDiscussionRequest {
	return dto.CreateDiscussionRequest{
		Subject:    "Help with setup",
		CategoryID: categoryID,
		Body:       "Something went wrong.",
	}
}

// TestDiscussionService_Create_RegisteredUser verifies a logged-in user's
// discussion takes the default status and carries the user linkage, with the
// opening post resolved from the acting user rather than guest fields.
func TestDiscussionService_Create_RegisteredUser(t *testing.T) {
	f := newDiscussionFixture(t)
	actor := &models.ActingUser{HostType: "User", HostID: 42, Name: "Alice", Email: "alice@example.com"}

	req := validCreateRequest(f.categoryID)
	req.GuestName = "Ignored"
	req.GuestEmail = "ignored@example.com"

	discussion, err := f.svc.Create(context.Background(), actor, req)
	require.NoError(t, err)

	assert.Equal(t, "Open", discussion.Status)
	assert.Equal(t, 0, discussion.ReplyCount)
	require.NotNil(t, discussion.AuthorType)
	assert.Equal(t, "User", *discussion.AuthorType)
	require.NotNil(t, discussion.AuthorID)
	assert.Equal(t, int64(42), *discussion.AuthorID)

	require.Len(t, discussion.Posts, 1)
	assert.Equal(t, "Alice", discussion.Posts[0].AuthorName)
	assert.Equal(t, "alice@example.com", discussion.Posts[0].AuthorEmail)
	assert.Equal(t, 1, f.discussions.createCalls)
}

// TestDiscussionService_Create_Guest verifies guest discussions carry no
// linkage and store the guest's name and email on the opening post.
func TestDiscussionService_Create_Guest(t *testing.T) {
	f := newDiscussionFixture(t)

	req := validCreateRequest(f.categoryID)
	req.GuestName = "Visitor"
	req.GuestEmail = "visitor@example.com"

	discussion, err := f.svc.Create(context.Background(), nil, req)
	require.NoError(t, err)

	assert.Nil(t, discussion.AuthorType)
	assert.Nil(t, discussion.AuthorID)
	require.Len(t, discussion.Posts, 1)
	assert.Equal(t, "Visitor", discussion.Posts[0].AuthorName)
	assert.Equal(t, "visitor@example.com", discussion.Posts[0].AuthorEmail)
}

// TestDiscussionService_Create_SubjectBounds verifies the 50-character
// subject limit counts runes, accepting 50 and rejecting 51.
func TestDiscussionService_Create_SubjectBounds(t *testing.T) {
	f := newDiscussionFixture(t)
	actor := &models.ActingUser{HostType: "User", HostID: 1, Name: "A", Email: "a@example.com"}

	req := validCreateRequest(f.categoryID)
	req.Subject = strings.Repeat("ü", 50)
	_, err := f.svc.Create(context.Background(), actor, req)
	assert.NoError(t, err)

	req.Subject = strings.Repeat("ü", 51)
	_, err = f.svc.Create(context.Background(), actor, req)
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "subject")
}

// TestDiscussionService_Create_Validation verifies invalid input collects
// field errors and never reaches the store.
func TestDiscussionService_Create_Validation(t *testing.T) {
	f := newDiscussionFixture(t)

	_, err := f.svc.Create(context.Background(), nil, dto.CreateDiscussionRequest{
		Subject:    "  ",
		CategoryID: 0,
		Body:       "",
		GuestName:  "",
		GuestEmail: "not-an-email",
	})
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "subject")
	assert.Contains(t, verr.Fields, "body")
	assert.Contains(t, verr.Fields, "category")
	assert.Contains(t, verr.Fields, "guestName")
	assert.Contains(t, verr.Fields, "guestEmail")

	assert.Equal(t, 0, f.discussions.createCalls)
}

// TestDiscussionService_Create_UnknownCategory verifies a dangling category
// reference is reported as a field error.
func TestDiscussionService_Create_UnknownCategory(t *testing.T) {
	f := newDiscussionFixture(t)
	actor := &models.ActingUser{HostType: "User", HostID: 1, Name: "A", Email: "a@example.com"}

	req := validCreateRequest(404)
	_, err := f.svc.Create(context.Background(), actor, req)
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "category")
}

// TestDiscussionService_Create_UnregisteredUserType verifies an actor from a
// host type that was never activated is rejected.
func TestDiscussionService_Create_UnregisteredUserType(t *testing.T) {
	f := newDiscussionFixture(t)
	actor := &models.ActingUser{HostType: "Robot", HostID: 1, Name: "R", Email: "r@example.com"}

	_, err := f.svc.Create(context.Background(), actor, validCreateRequest(f.categoryID))
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "author")
	assert.Equal(t, 0, f.discussions.createCalls)
}

// TestDiscussionService_LatestForCategory verifies the default limit kicks
// in and unknown categories are rejected.
func TestDiscussionService_LatestForCategory(t *testing.T) {
	f := newDiscussionFixture(t)
	for i := 0; i < 7; i++ {
		f.discussions.add(&models.Discussion{CategoryID: f.categoryID, Subject: "S"})
	}

	out, err := f.svc.LatestForCategory(context.Background(), f.categoryID, 0)
	require.NoError(t, err)
	assert.Len(t, out, 5)

	out, err = f.svc.LatestForCategory(context.Background(), f.categoryID, 2)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = f.svc.LatestForCategory(context.Background(), 404, 0)
	assert.True(t, errors.Is(err, apperrors.ErrCategoryNotFound))
}

// TestDiscussionService_LatestForCategory_ExcludesPrivate verifies private
// discussions never show up in the public listing.
func TestDiscussionService_LatestForCategory_ExcludesPrivate(t *testing.T) {
	f := newDiscussionFixture(t)
	f.discussions.add(&models.Discussion{CategoryID: f.categoryID, Subject: "Public"})
	f.discussions.add(&models.Discussion{CategoryID: f.categoryID, Subject: "Secret", Private: true})

	out, err := f.svc.LatestForCategory(context.Background(), f.categoryID, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Public", out[0].Subject)
}

// TestDiscussionService_ListByAuthor verifies the host type gate.
func TestDiscussionService_ListByAuthor(t *testing.T) {
	f := newDiscussionFixture(t)
	hostType := "User"
	hostID := int64(42)
	f.discussions.add(&models.Discussion{CategoryID: f.categoryID, Subject: "Mine", AuthorType: &hostType, AuthorID: &hostID})

	out, err := f.svc.ListByAuthor(context.Background(), "User", 42)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = f.svc.ListByAuthor(context.Background(), "Robot", 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

// TestDiscussionService_Delete_Authorization verifies who may delete: the
// admin and the owning user yes, everyone else no.
func TestDiscussionService_Delete_Authorization(t *testing.T) {
	f := newDiscussionFixture(t)
	hostType := "User"
	hostID := int64(42)
	owned := f.discussions.add(&models.Discussion{CategoryID: f.categoryID, Subject: "Owned", AuthorType: &hostType, AuthorID: &hostID})

	// A different registered user is denied
	err := f.svc.Delete(context.Background(), &models.ActingUser{HostType: "User", HostID: 7}, owned.ID)
	assert.True(t, errors.Is(err, apperrors.ErrAccessDenied))

	// An anonymous caller is denied
	err = f.svc.Delete(context.Background(), nil, owned.ID)
	assert.True(t, errors.Is(err, apperrors.ErrAccessDenied))

	// The owner succeeds
	err = f.svc.Delete(context.Background(), &models.ActingUser{HostType: "User", HostID: 42}, owned.ID)
	assert.NoError(t, err)

	// An admin can delete anything, including guest discussions
	guest := f.discussions.add(&models.Discussion{CategoryID: f.categoryID, Subject: "Guest"})
	err = f.svc.Delete(context.Background(), &models.ActingUser{HostType: "User", HostID: 1, Admin: true}, guest.ID)
	assert.NoError(t, err)
}

// TestDiscussionService_Delete_GuestDiscussionNonAdmin verifies a guest
// discussion cannot be deleted by a non-admin, even though nobody owns it.
func TestDiscussionService_Delete_GuestDiscussionNonAdmin(t *testing.T) {
	f := newDiscussionFixture(t)
	guest := f.discussions.add(&models.Discussion{CategoryID: f.categoryID, Subject: "Guest"})

	err := f.svc.Delete(context.Background(), &models.ActingUser{HostType: "User", HostID: 42}, guest.ID)
	assert.True(t, errors.Is(err, apperrors.ErrAccessDenied))
	assert.Equal(t, 0, f.discussions.deleteCalls)
}
