package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/db"
)

// Helpers shared by the discussion and post write paths. All of them run on
// the caller's transaction so counter and latest-activity updates commit or
// roll back together with the row that triggered them.

func insertPost(ctx context.Context, tx db.ConnOrTx, post *models.Post) error {
	err := tx.QueryRow(ctx,
		`
		INSERT INTO posts (discussion_id, body, author_name, author_email, author_type, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
		`,
		post.DiscussionID,
		post.Body,
		post.AuthorName,
		post.AuthorEmail,
		post.AuthorType,
		post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting post: %w", err)
	}
	return nil
}

// adjustItemCount applies a relative change to a category's discussion
// counter. The in-place arithmetic serializes concurrent writers on the
// category row, so no increment is ever lost.
func adjustItemCount(ctx context.Context, tx db.ConnOrTx, categoryID int64, delta int) error {
	_, err := tx.Exec(ctx,
		`UPDATE categories SET item_count = item_count + $2, updated_at = NOW() WHERE id = $1`,
		categoryID, delta)
	if err != nil {
		return fmt.Errorf("error adjusting category item count: %w", err)
	}
	return nil
}

// bumpCategoryActivity records the author and time of the newest post on the
// owning category. Runs on every post, not only the first; last writer wins.
func bumpCategoryActivity(ctx context.Context, tx db.ConnOrTx, categoryID int64, authorName string, at time.Time) error {
	_, err := tx.Exec(ctx,
		`
		UPDATE categories
		SET latest_discussion_author = $2, latest_discussion_date = $3, updated_at = NOW()
		WHERE id = $1
		`,
		categoryID, authorName, at)
	if err != nil {
		return fmt.Errorf("error updating category latest activity: %w", err)
	}
	return nil
}

// recomputeCategoryActivity rebuilds the latest-activity fields from the
// surviving posts after a deletion. Clears them when the category has no
// posts left.
func recomputeCategoryActivity(ctx context.Context, tx db.ConnOrTx, categoryID int64) error {
	_, err := tx.Exec(ctx,
		`
		UPDATE categories c
		SET latest_discussion_author = latest.author_name,
		    latest_discussion_date   = latest.created_at,
		    updated_at               = NOW()
		FROM (
			SELECT p.author_name, p.created_at
			FROM posts p
			JOIN discussions d ON d.id = p.discussion_id
			WHERE d.category_id = $1
			ORDER BY p.created_at DESC, p.id DESC
			LIMIT 1
		) AS latest
		WHERE c.id = $1
		`,
		categoryID)
	if err != nil {
		return fmt.Errorf("error recomputing category latest activity: %w", err)
	}

	// The FROM-subquery form updates nothing when the category is empty, so
	// clear stale fields explicitly in that case.
	_, err = tx.Exec(ctx,
		`
		UPDATE categories c
		SET latest_discussion_author = NULL, latest_discussion_date = NULL, updated_at = NOW()
		WHERE c.id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM posts p
			JOIN discussions d ON d.id = p.discussion_id
			WHERE d.category_id = $1
		  )
		`,
		categoryID)
	if err != nil {
		return fmt.Errorf("error clearing category latest activity: %w", err)
	}
	return nil
}
