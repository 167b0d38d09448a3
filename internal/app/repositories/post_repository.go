package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/db"
	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
)

// PostRepository handles database operations for posts
type PostRepository struct {
	db *db.PostgresDB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(database *db.PostgresDB) *PostRepository {
	return &PostRepository{db: database}
}

// Append adds a reply to an existing discussion. The reply counter and the
// category's latest-activity fields move in the same transaction as the
// insert.
func (r *PostRepository) Append(ctx context.Context, post *models.Post) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var categoryID int64
		err := tx.QueryRow(ctx,
			`SELECT category_id FROM discussions WHERE id = $1`, post.DiscussionID,
		).Scan(&categoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrDiscussionNotFound
			}
			return fmt.Errorf("error fetching discussion: %w", err)
		}

		if err := insertPost(ctx, tx, post); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE discussions SET reply_count = reply_count + 1, updated_at = NOW() WHERE id = $1`,
			post.DiscussionID)
		if err != nil {
			return fmt.Errorf("error incrementing reply count: %w", err)
		}

		return bumpCategoryActivity(ctx, tx, categoryID, post.AuthorName, post.CreatedAt)
	})
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := r.db.Pool.QueryRow(ctx,
		`
		SELECT id, discussion_id, body, author_name, author_email, author_type, author_id, created_at
		FROM posts
		WHERE id = $1
		`,
		id,
	).Scan(&p.ID, &p.DiscussionID, &p.Body, &p.AuthorName, &p.AuthorEmail, &p.AuthorType, &p.AuthorID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &p, nil
}

// Delete removes a post and reverses its side effects: the reply counter is
// recomputed and the category's latest-activity fields are rebuilt from the
// surviving posts. Deleting a discussion's opening post deletes the whole
// discussion, posts and all.
func (r *PostRepository) Delete(ctx context.Context, id int64) (discussionDeleted bool, err error) {
	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var discussionID, categoryID int64
		var private bool
		err := tx.QueryRow(ctx,
			`
			SELECT p.discussion_id, d.category_id, d.private
			FROM posts p
			JOIN discussions d ON d.id = p.discussion_id
			WHERE p.id = $1
			`,
			id,
		).Scan(&discussionID, &categoryID, &private)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrPostNotFound
			}
			return fmt.Errorf("error fetching post: %w", err)
		}

		var firstPostID int64
		err = tx.QueryRow(ctx,
			`SELECT id FROM posts WHERE discussion_id = $1 ORDER BY created_at, id LIMIT 1`,
			discussionID,
		).Scan(&firstPostID)
		if err != nil {
			return fmt.Errorf("error finding first post: %w", err)
		}

		if firstPostID == id {
			// The opening post carries the discussion; removing it removes
			// the whole thread.
			if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE discussion_id = $1`, discussionID); err != nil {
				return fmt.Errorf("error deleting posts: %w", err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM discussions WHERE id = $1`, discussionID); err != nil {
				return fmt.Errorf("error deleting discussion: %w", err)
			}
			if !private {
				if err := adjustItemCount(ctx, tx, categoryID, -1); err != nil {
					return err
				}
			}
			discussionDeleted = true
			return recomputeCategoryActivity(ctx, tx, categoryID)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting post: %w", err)
		}

		// Recompute instead of decrementing so the counter self-heals.
		_, err = tx.Exec(ctx,
			`
			UPDATE discussions
			SET reply_count = (SELECT COUNT(*) - 1 FROM posts WHERE discussion_id = $1),
			    updated_at = NOW()
			WHERE id = $1
			`,
			discussionID)
		if err != nil {
			return fmt.Errorf("error recomputing reply count: %w", err)
		}

		return recomputeCategoryActivity(ctx, tx, categoryID)
	})
	return discussionDeleted, err
}
