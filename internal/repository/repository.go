package repository

import (
	"context"
	"errors"

	"github.com/orgsite-blog/internal/database"
	"github.com/orgsite-blog/internal/models"
)

var (
	// ErrNotFound is returned when no post matches the id or slug
	ErrNotFound = errors.New("post not found")
	// ErrDuplicateSlug is returned when the store's unique slug index rejects a write
	ErrDuplicateSlug = errors.New("slug already exists")
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, slug string) (*models.Post, error)
	IncrementLikes(ctx context.Context, slug string) (*models.Post, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// HealthChecker is implemented by store connections
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post PostRepository
	// Store reports store reachability for the health endpoint
	Store HealthChecker
}

// New creates all repositories backed by PostgreSQL
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post:  NewPostRepo(db),
		Store: db,
	}
}

// NewMongo creates all repositories backed by MongoDB
func NewMongo(db *database.MongoDB) *Repositories {
	return &Repositories{
		Post:  NewMongoPostRepo(db.Posts()),
		Store: db,
	}
}
