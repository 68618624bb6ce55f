package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/orgsite-blog/internal/models"
	"github.com/orgsite-blog/internal/repository"
)

// MockPostRepository is an in-memory implementation of PostRepository that
// enforces slug uniqueness and serializes counter increments like a store would
type MockPostRepository struct {
	mu         sync.Mutex
	Posts      map[string]*models.Post
	SlugToID   map[string]string
	Err        error // returned by every operation when set
	CountCalls map[string]int
}

// Verify interface compliance
var _ repository.PostRepository = (*MockPostRepository)(nil)

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts:      make(map[string]*models.Post),
		SlugToID:   make(map[string]string),
		CountCalls: make(map[string]int),
	}
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	return &c
}

func (m *MockPostRepository) track(op string) error {
	m.CountCalls[op]++
	return m.Err
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("List"); err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, len(m.Posts))
	for _, p := range m.Posts {
		posts = append(posts, clonePost(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("Create"); err != nil {
		return err
	}

	if _, taken := m.SlugToID[post.Slug]; taken {
		return repository.ErrDuplicateSlug
	}
	m.Posts[post.ID] = clonePost(post)
	m.SlugToID[post.Slug] = post.ID
	return nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("GetByID"); err != nil {
		return nil, err
	}

	p, ok := m.Posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(p), nil
}

func (m *MockPostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("GetBySlug"); err != nil {
		return nil, err
	}

	id, ok := m.SlugToID[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(m.Posts[id]), nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("Update"); err != nil {
		return nil, err
	}

	stored, ok := m.Posts[post.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if owner, taken := m.SlugToID[post.Slug]; taken && owner != post.ID {
		return nil, repository.ErrDuplicateSlug
	}

	delete(m.SlugToID, stored.Slug)
	stored.Slug = post.Slug
	stored.Title = post.Title
	stored.Content = post.Content
	stored.Excerpt = post.Excerpt
	stored.Author = post.Author
	stored.Category = post.Category
	stored.Image = post.Image
	stored.Tags = append([]string{}, post.Tags...)
	stored.Status = post.Status
	m.SlugToID[stored.Slug] = stored.ID
	return clonePost(stored), nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("Delete"); err != nil {
		return err
	}

	p, ok := m.Posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(m.SlugToID, p.Slug)
	delete(m.Posts, id)
	return nil
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, slug string) (*models.Post, error) {
	return m.increment("IncrementViews", slug, func(p *models.Post) { p.Views++ })
}

func (m *MockPostRepository) IncrementLikes(ctx context.Context, slug string) (*models.Post, error) {
	return m.increment("IncrementLikes", slug, func(p *models.Post) { p.Likes++ })
}

func (m *MockPostRepository) increment(op, slug string, apply func(*models.Post)) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track(op); err != nil {
		return nil, err
	}

	id, ok := m.SlugToID[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := m.Posts[id]
	apply(p)
	return clonePost(p), nil
}

func (m *MockPostRepository) Stats(ctx context.Context) (*models.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("Stats"); err != nil {
		return nil, err
	}

	var stats models.Stats
	for _, p := range m.Posts {
		stats.Total++
		switch p.Status {
		case models.PostStatusPublished:
			stats.Published++
		case models.PostStatusDraft:
			stats.Drafts++
		}
		stats.TotalViews += p.Views
		stats.TotalLikes += p.Likes
	}
	return &stats, nil
}

// Calls returns how many times op was invoked
func (m *MockPostRepository) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CountCalls[op]
}

// MockHealthChecker is a store health check with a configurable result
type MockHealthChecker struct {
	Err error
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Err
}
