package service

import (
	"context"
	"time"

	"github.com/orgsite-blog/internal/auth"
	"github.com/orgsite-blog/internal/config"
	"github.com/orgsite-blog/internal/models"
	"github.com/orgsite-blog/internal/repository"
	"github.com/rs/zerolog"
)

// PostService defines the interface for blog post operations
type PostService interface {
	List(ctx context.Context) ([]*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, slug string) (*models.Post, error)
	IncrementLikes(ctx context.Context, slug string) (*models.Post, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// AuthService defines the interface for the admin session
type AuthService interface {
	Login(username, password string) (string, *auth.Claims, error)
	Verify(token string) (*auth.Claims, error)
	TTL() time.Duration
}

// Services holds all service interfaces
type Services struct {
	Post PostService
	Auth AuthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, identity auth.IdentityProvider, tokens *auth.TokenManager, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Post: newPostService(repos.Post, log),
		Auth: newAuthService(identity, tokens, cfg.Auth.AdminUsername, log),
	}
}
