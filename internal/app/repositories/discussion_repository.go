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

const discussionColumns = "id, category_id, subject, status, reply_count, private, author_type, author_id, created_at, updated_at"

// DiscussionRepository handles database operations for discussions
type DiscussionRepository struct {
	db *db.PostgresDB
}

// NewDiscussionRepository creates a new DiscussionRepository
func NewDiscussionRepository(database *db.PostgresDB) *DiscussionRepository {
	return &DiscussionRepository{db: database}
}

func scanDiscussion(row pgx.Row) (*models.Discussion, error) {
	var d models.Discussion
	err := row.Scan(
		&d.ID,
		&d.CategoryID,
		&d.Subject,
		&d.Status,
		&d.ReplyCount,
		&d.Private,
		&d.AuthorType,
		&d.AuthorID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateWithFirstPost persists a discussion together with its opening post in
// a single transaction: both succeed or neither does. The category counter
// and latest-activity fields move in the same transaction.
func (r *DiscussionRepository) CreateWithFirstPost(ctx context.Context, discussion *models.Discussion, firstPost *models.Post) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var categoryID int64
		err := tx.QueryRow(ctx, `SELECT id FROM categories WHERE id = $1`, discussion.CategoryID).Scan(&categoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCategoryNotFound
			}
			return fmt.Errorf("error checking category: %w", err)
		}

		err = tx.QueryRow(ctx,
			`
			INSERT INTO discussions (category_id, subject, status, private, author_type, author_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, reply_count, created_at, updated_at
			`,
			discussion.CategoryID,
			discussion.Subject,
			discussion.Status,
			discussion.Private,
			discussion.AuthorType,
			discussion.AuthorID,
		).Scan(&discussion.ID, &discussion.ReplyCount, &discussion.CreatedAt, &discussion.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error inserting discussion: %w", err)
		}

		firstPost.DiscussionID = discussion.ID
		if err := insertPost(ctx, tx, firstPost); err != nil {
			return err
		}

		// ItemCount tracks non-private discussions only.
		if !discussion.Private {
			if err := adjustItemCount(ctx, tx, discussion.CategoryID, 1); err != nil {
				return err
			}
		}

		if err := bumpCategoryActivity(ctx, tx, discussion.CategoryID, firstPost.AuthorName, firstPost.CreatedAt); err != nil {
			return err
		}

		discussion.Posts = []*models.Post{firstPost}
		return nil
	})
}

// GetByID retrieves a discussion with its posts, oldest first.
func (r *DiscussionRepository) GetByID(ctx context.Context, id int64) (*models.Discussion, error) {
	query := `SELECT ` + discussionColumns + ` FROM discussions WHERE id = $1`

	d, err := scanDiscussion(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx,
		`
		SELECT id, discussion_id, body, author_name, author_email, author_type, author_id, created_at
		FROM posts
		WHERE discussion_id = $1
		ORDER BY created_at, id
		`,
		id)
	if err != nil {
		return nil, fmt.Errorf("error loading posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Post
		err := rows.Scan(
			&p.ID,
			&p.DiscussionID,
			&p.Body,
			&p.AuthorName,
			&p.AuthorEmail,
			&p.AuthorType,
			&p.AuthorID,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}
		d.Posts = append(d.Posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return d, nil
}

// LatestForCategory returns the newest public discussions for a category,
// newest first, at most limit of them. Private discussions never appear in
// listings regardless of the limit.
func (r *DiscussionRepository) LatestForCategory(ctx context.Context, categoryID int64, limit int) ([]*models.Discussion, error) {
	rows, err := r.db.Pool.Query(ctx,
		`
		SELECT `+discussionColumns+`
		FROM discussions
		WHERE category_id = $1 AND private = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT $2
		`,
		categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	discussions, err := collectDiscussions(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachFirstPostAuthors(ctx, discussions); err != nil {
		return nil, err
	}

	return discussions, nil
}

// ListByAuthor returns the discussions a host user authored, newest first.
// This is the host-side association established by user type registration;
// private discussions are included because the owner is asking.
func (r *DiscussionRepository) ListByAuthor(ctx context.Context, hostType string, hostID int64) ([]*models.Discussion, error) {
	rows, err := r.db.Pool.Query(ctx,
		`
		SELECT `+discussionColumns+`
		FROM discussions
		WHERE author_type = $1 AND author_id = $2
		ORDER BY created_at DESC, id DESC
		`,
		hostType, hostID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	return collectDiscussions(rows)
}

// Delete removes a discussion and all its posts. The category counter is
// decremented by exactly one: it tracks discussions, not posts.
func (r *DiscussionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var categoryID int64
		var private bool
		err := tx.QueryRow(ctx,
			`SELECT category_id, private FROM discussions WHERE id = $1`, id,
		).Scan(&categoryID, &private)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrDiscussionNotFound
			}
			return fmt.Errorf("error fetching discussion: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE discussion_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting posts: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM discussions WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting discussion: %w", err)
		}

		if !private {
			if err := adjustItemCount(ctx, tx, categoryID, -1); err != nil {
				return err
			}
		}

		// The deleted posts may have been the category's newest activity;
		// rebuild the denormalized fields from whatever survives.
		return recomputeCategoryActivity(ctx, tx, categoryID)
	})
}

func collectDiscussions(rows pgx.Rows) ([]*models.Discussion, error) {
	discussions := []*models.Discussion{}
	for rows.Next() {
		d, err := scanDiscussion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning discussion: %w", err)
		}
		discussions = append(discussions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating discussions: %w", err)
	}
	return discussions, nil
}

// attachFirstPostAuthors loads just enough of each discussion's opening post
// for listings to render the starter's display name.
func (r *DiscussionRepository) attachFirstPostAuthors(ctx context.Context, discussions []*models.Discussion) error {
	for _, d := range discussions {
		var p models.Post
		err := r.db.Pool.QueryRow(ctx,
			`
			SELECT id, discussion_id, author_name, author_email, author_type, author_id, created_at
			FROM posts
			WHERE discussion_id = $1
			ORDER BY created_at, id
			LIMIT 1
			`,
			d.ID,
		).Scan(&p.ID, &p.DiscussionID, &p.AuthorName, &p.AuthorEmail, &p.AuthorType, &p.AuthorID, &p.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return fmt.Errorf("error loading first post: %w", err)
		}
		d.Posts = []*models.Post{&p}
	}
	return nil
}
