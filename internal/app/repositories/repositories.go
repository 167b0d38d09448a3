package repositories

import (
	"github.com/tolgakurt/forumcore/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CategoryRepository   *CategoryRepository
	DiscussionRepository *DiscussionRepository
	PostRepository       *PostRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CategoryRepository:   NewCategoryRepository(database),
		DiscussionRepository: NewDiscussionRepository(database),
		PostRepository:       NewPostRepository(database),
	}
}
