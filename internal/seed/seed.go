package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/tolgakurt/forumcore/internal/app/models"
	appRepos "github.com/tolgakurt/forumcore/internal/app/repositories"
	"github.com/tolgakurt/forumcore/internal/db"
	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
)

// CreateDefaultData creates the starter categories if they don't exist.
// Safe to run on every boot; existing categories are left untouched.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	categoryRepo := appRepos.NewCategoryRepository(database)

	lgr.Info().Msg("Checking/Creating default categories...")

	defaults := []*appModels.Category{
		{Name: "General", Type: appModels.CategoryTypeDiscussion, Visible: true},
		{Name: "Announcements", Type: appModels.CategoryTypeArticle, Visible: true},
	}

	var finalErr error
	for _, category := range defaults {
		err := categoryRepo.Create(ctx, category)
		switch {
		case err == nil:
			lgr.Info().Str("name", category.Name).Str("type", string(category.Type)).Msg("Default category created")
		case errors.Is(err, apperrors.ErrConflict):
			lgr.Debug().Str("name", category.Name).Msg("Default category already exists")
		default:
			lgr.Error().Err(err).Str("name", category.Name).Msg("Error creating default category")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
