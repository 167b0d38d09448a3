package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
	"github.com/tolgakurt/forumcore/internal/userlink"
)

// In-memory stand-ins for the store interfaces and the outbound sender.
// They track calls so tests can assert what the services actually touched.

type fakeCategoryStore struct {
	categories map[int64]*models.Category
	nextID     int64
	createErr  error
	deleteErr  error
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[int64]*models.Category), nextID: 1}
}

func (f *fakeCategoryStore) add(category *models.Category) *models.Category {
	category.ID = f.nextID
	f.nextID++
	f.categories[category.ID] = category
	return category
}

func (f *fakeCategoryStore) ListByType(ctx context.Context, categoryType models.CategoryType) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range f.categories {
		if c.Type == categoryType && c.Visible {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryStore) ListAll(ctx context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryStore) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryStore) Create(ctx context.Context, category *models.Category) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(category)
	return nil
}

func (f *fakeCategoryStore) Update(ctx context.Context, category *models.Category) error {
	if _, ok := f.categories[category.ID]; !ok {
		return apperrors.ErrCategoryNotFound
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryStore) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.categories[id]; !ok {
		return apperrors.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

type fakeDiscussionStore struct {
	discussions map[int64]*models.Discussion
	nextID      int64
	createCalls int
	deleteCalls int
}

func newFakeDiscussionStore() *fakeDiscussionStore {
	return &fakeDiscussionStore{discussions: make(map[int64]*models.Discussion), nextID: 1}
}

func (f *fakeDiscussionStore) add(discussion *models.Discussion) *models.Discussion {
	discussion.ID = f.nextID
	f.nextID++
	f.discussions[discussion.ID] = discussion
	return discussion
}

func (f *fakeDiscussionStore) CreateWithFirstPost(ctx context.Context, discussion *models.Discussion, firstPost *models.Post) error {
	f.createCalls++
	f.add(discussion)
	firstPost.ID = discussion.ID
	firstPost.DiscussionID = discussion.ID
	discussion.Posts = []*models.Post{firstPost}
	return nil
}

func (f *fakeDiscussionStore) GetByID(ctx context.Context, id int64) (*models.Discussion, error) {
	d, ok := f.discussions[id]
	if !ok {
		return nil, apperrors.ErrDiscussionNotFound
	}
	return d, nil
}

func (f *fakeDiscussionStore) LatestForCategory(ctx context.Context, categoryID int64, limit int) ([]*models.Discussion, error) {
	var out []*models.Discussion
	for _, d := range f.discussions {
		if d.CategoryID == categoryID && !d.Private {
			out = append(out, d)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDiscussionStore) ListByAuthor(ctx context.Context, hostType string, hostID int64) ([]*models.Discussion, error) {
	var out []*models.Discussion
	for _, d := range f.discussions {
		if d.AuthorType != nil && *d.AuthorType == hostType && d.AuthorID != nil && *d.AuthorID == hostID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDiscussionStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.discussions[id]; !ok {
		return apperrors.ErrDiscussionNotFound
	}
	f.deleteCalls++
	delete(f.discussions, id)
	return nil
}

type fakePostStore struct {
	posts             map[int64]*models.Post
	nextID            int64
	appendCalls       int
	deleteCalls       int
	discussionDeleted bool
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[int64]*models.Post), nextID: 1}
}

func (f *fakePostStore) add(post *models.Post) *models.Post {
	post.ID = f.nextID
	f.nextID++
	f.posts[post.ID] = post
	return post
}

func (f *fakePostStore) Append(ctx context.Context, post *models.Post) error {
	f.appendCalls++
	f.add(post)
	return nil
}

func (f *fakePostStore) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return p, nil
}

func (f *fakePostStore) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.posts[id]; !ok {
		return false, apperrors.ErrPostNotFound
	}
	f.deleteCalls++
	delete(f.posts, id)
	return f.discussionDeleted, nil
}

// fakeSender records outbound messages. Services dispatch notifications from
// goroutines, so access is guarded.
type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

type sentMessage struct {
	Recipients  []string
	From        string
	Subject     string
	TemplateKey string
	Data        map[string]interface{}
}

func (f *fakeSender) Send(recipients []string, from, subject, templateKey string, data map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{
		Recipients:  recipients,
		From:        from,
		Subject:     subject,
		TemplateKey: templateKey,
		Data:        data,
	})
	return nil
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

func testRegistry(types ...string) *userlink.Registry {
	r := userlink.NewRegistry()
	for _, t := range types {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	r.Freeze()
	return r
}

func testNotifier(sender Sender, adminEmails ...string) *NotificationService {
	return NewNotificationService(sender, adminEmails, "forum@example.com", zerolog.Nop())
}
