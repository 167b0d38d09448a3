package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/db"
	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
	"github.com/tolgakurt/forumcore/internal/pkg/dberrors"
)

const categoryColumns = "id, name, type, item_count, latest_discussion_author, latest_discussion_date, visible, created_at, updated_at"

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *db.PostgresDB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(database *db.PostgresDB) *CategoryRepository {
	return &CategoryRepository{db: database}
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Type,
		&c.ItemCount,
		&c.LatestDiscussionAuthor,
		&c.LatestDiscussionDate,
		&c.Visible,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByType retrieves the visible categories of the given type, ordered by
// name. Used by the discussion and article index views.
func (r *CategoryRepository) ListByType(ctx context.Context, categoryType models.CategoryType) ([]*models.Category, error) {
	builder := squirrel.Select(
		"id", "name", "type", "item_count", "latest_discussion_author",
		"latest_discussion_date", "visible", "created_at", "updated_at",
	).
		From("categories").
		Where("type = ?", string(categoryType)).
		Where("visible = TRUE").
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// ListAll retrieves every category regardless of type or visibility,
// ordered by type then name. Used by the admin listing.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]*models.Category, error) {
	builder := squirrel.Select(
		"id", "name", "type", "item_count", "latest_discussion_author",
		"latest_discussion_date", "visible", "created_at", "updated_at",
	).
		From("categories").
		OrderBy("type", "name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return c, nil
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, type, visible)
		VALUES ($1, $2, $3)
		RETURNING id, item_count, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		category.Name, string(category.Type), category.Visible,
	).Scan(&category.ID, &category.ItemCount, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "categories_name_type_key") {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// Update updates an existing category's editable fields.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, visible = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.Pool.Exec(ctx, query, category.Name, category.Visible, category.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "categories_name_type_key") {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// Delete deletes a category. Deletion is refused while discussions still
// reference the category.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCategoryHasDiscussions
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}
