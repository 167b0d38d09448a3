package services

import (
	"context"

	"github.com/tolgakurt/forumcore/internal/app/models"
)

// Services defined in this package:
// - CategoryService: admin-gated CRUD and public listings over categories
// - DiscussionService: discussion creation, listings, derivations, deletion
// - PostService: replies and post deletion with counter reversal
// - NotificationService: best-effort outbound notifications

// The store interfaces are what the services need from the persistence
// layer; the pgx repositories satisfy them, and the tests substitute
// in-memory fakes.

// CategoryStore is the persistence surface for categories.
type CategoryStore interface {
	ListByType(ctx context.Context, categoryType models.CategoryType) ([]*models.Category, error)
	ListAll(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}

// DiscussionStore is the persistence surface for discussions.
type DiscussionStore interface {
	CreateWithFirstPost(ctx context.Context, discussion *models.Discussion, firstPost *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Discussion, error)
	LatestForCategory(ctx context.Context, categoryID int64, limit int) ([]*models.Discussion, error)
	ListByAuthor(ctx context.Context, hostType string, hostID int64) ([]*models.Discussion, error)
	Delete(ctx context.Context, id int64) error
}

// PostStore is the persistence surface for posts.
type PostStore interface {
	Append(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Delete(ctx context.Context, id int64) (discussionDeleted bool, err error)
}
