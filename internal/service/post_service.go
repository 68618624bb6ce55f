package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgsite-blog/internal/apperror"
	"github.com/orgsite-blog/internal/models"
	"github.com/orgsite-blog/internal/repository"
	"github.com/orgsite-blog/internal/validation"
	"github.com/orgsite-blog/pkg/slug"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService
type postService struct {
	posts repository.PostRepository
	now   func() time.Time
	log   zerolog.Logger
}

// newPostService creates a new PostService
func newPostService(posts repository.PostRepository, log zerolog.Logger) *postService {
	return &postService{
		posts: posts,
		now:   time.Now,
		log:   log.With().Str("service", "post").Logger(),
	}
}

// NewPostService creates a PostService over a repository with a custom clock
func NewPostService(posts repository.PostRepository, now func() time.Time, log zerolog.Logger) PostService {
	s := newPostService(posts, log)
	if now != nil {
		s.now = now
	}
	return s
}

// List returns all posts, newest first
func (s *postService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list posts", err)
	}
	return posts, nil
}

// GetBySlug returns a post by slug. Counters are not touched.
func (s *postService) GetBySlug(ctx context.Context, postSlug string) (*models.Post, error) {
	post, err := s.posts.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, s.translate(err, "get post")
	}
	return post, nil
}

// GetByID returns a post by id
func (s *postService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if !validation.IsValidID(id) {
		return nil, apperror.NotFound("post not found")
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "get post")
	}
	return post, nil
}

// Create normalizes, validates and stores a new post
func (s *postService) Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Slug:      strings.TrimSpace(req.Slug),
		Content:   strings.TrimSpace(req.Content),
		Excerpt:   strings.TrimSpace(req.Excerpt),
		Author:    strings.TrimSpace(req.Author),
		Category:  strings.TrimSpace(req.Category),
		Image:     strings.TrimSpace(req.Image),
		Tags:      validation.NormalizeTags(req.Tags),
		Status:    models.PostStatus(strings.TrimSpace(req.Status)),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if post.Slug == "" {
		post.Slug = slug.Make(post.Title)
	} else {
		post.Slug = slug.Make(post.Slug)
	}
	if post.Category == "" {
		post.Category = models.DefaultCategory
	}
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}

	if errs := validation.ValidatePost(post); len(errs) > 0 {
		return nil, apperror.Validation("invalid post", errs...)
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, s.translate(err, "create post")
	}

	s.log.Info().
		Str("post_id", post.ID).
		Str("slug", post.Slug).
		Str("status", string(post.Status)).
		Msg("Post created")

	return post, nil
}

// Update replaces the editable fields of an existing post
func (s *postService) Update(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post := *existing
	post.Title = strings.TrimSpace(req.Title)
	post.Content = strings.TrimSpace(req.Content)
	if req.Slug != nil {
		if normalized := slug.Make(strings.TrimSpace(*req.Slug)); normalized != "" {
			post.Slug = normalized
		}
	}
	if req.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Author != nil {
		post.Author = strings.TrimSpace(*req.Author)
	}
	if req.Category != nil {
		post.Category = strings.TrimSpace(*req.Category)
		if post.Category == "" {
			post.Category = models.DefaultCategory
		}
	}
	if req.Image != nil {
		post.Image = strings.TrimSpace(*req.Image)
	}
	if req.Tags != nil {
		post.Tags = validation.NormalizeTags(*req.Tags)
	}
	if req.Status != nil {
		post.Status = models.PostStatus(strings.TrimSpace(*req.Status))
	}

	if errs := validation.ValidatePost(&post); len(errs) > 0 {
		return nil, apperror.Validation("invalid post", errs...)
	}

	updated, err := s.posts.Update(ctx, &post)
	if err != nil {
		return nil, s.translate(err, "update post")
	}

	s.log.Info().
		Str("post_id", updated.ID).
		Str("slug", updated.Slug).
		Msg("Post updated")

	return updated, nil
}

// Delete removes a post by id
func (s *postService) Delete(ctx context.Context, id string) error {
	if !validation.IsValidID(id) {
		return apperror.NotFound("post not found")
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return s.translate(err, "delete post")
	}

	s.log.Info().Str("post_id", id).Msg("Post deleted")
	return nil
}

// IncrementViews adds one view to the post with the given slug
func (s *postService) IncrementViews(ctx context.Context, postSlug string) (*models.Post, error) {
	post, err := s.posts.IncrementViews(ctx, postSlug)
	if err != nil {
		return nil, s.translate(err, "increment views")
	}
	return post, nil
}

// IncrementLikes adds one like to the post with the given slug
func (s *postService) IncrementLikes(ctx context.Context, postSlug string) (*models.Post, error) {
	post, err := s.posts.IncrementLikes(ctx, postSlug)
	if err != nil {
		return nil, s.translate(err, "increment likes")
	}
	return post, nil
}

// Stats returns the dashboard counters
func (s *postService) Stats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.posts.Stats(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to load stats", err)
	}
	return stats, nil
}

// translate maps repository errors onto the application error kinds
func (s *postService) translate(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound("post not found")
	case errors.Is(err, repository.ErrDuplicateSlug):
		return apperror.Conflict("a post with this slug already exists", err)
	default:
		s.log.Error().Err(err).Str("op", op).Msg("Store operation failed")
		return apperror.Internal("failed to "+op, err)
	}
}
