package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/orgsite-blog/internal/database"
	"github.com/orgsite-blog/internal/models"
)

// PostgreSQL unique_violation
const uniqueViolation = "23505"

const postColumns = `id, slug, title, content, excerpt, author, category, image, tags, status, created_at, views, likes`

// postRepo is the concrete PostgreSQL implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID, &post.Slug, &post.Title, &post.Content, &post.Excerpt, &post.Author,
		&post.Category, &post.Image, pq.Array(&post.Tags), &post.Status, &post.CreatedAt,
		&post.Views, &post.Likes,
	)
	if err != nil {
		return nil, err
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.CreatedAt = post.CreatedAt.UTC()
	return &post, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// List retrieves all posts, newest first
func (r *postRepo) List(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Create inserts a new post
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Slug, post.Title, post.Content, post.Excerpt, post.Author,
		post.Category, post.Image, pq.Array(post.Tags), post.Status, post.CreatedAt,
		post.Views, post.Likes,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *postRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// GetBySlug retrieves a post by slug without touching its counters
func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return post, nil
}

// Update replaces the editable fields of a post. created_at, views and likes
// are never written here.
func (r *postRepo) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		UPDATE posts
		SET slug = $2, title = $3, content = $4, excerpt = $5, author = $6,
		    category = $7, image = $8, tags = $9, status = $10
		WHERE id = $1
		RETURNING ` + postColumns
	row := r.db.QueryRowContext(ctx, query,
		post.ID, post.Slug, post.Title, post.Content, post.Excerpt, post.Author,
		post.Category, post.Image, pq.Array(post.Tags), post.Status,
	)
	updated, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

// Delete removes a post by ID
func (r *postRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews atomically adds one view and returns the updated post
func (r *postRepo) IncrementViews(ctx context.Context, slug string) (*models.Post, error) {
	return r.increment(ctx, "views", slug)
}

// IncrementLikes atomically adds one like and returns the updated post
func (r *postRepo) IncrementLikes(ctx context.Context, slug string) (*models.Post, error) {
	return r.increment(ctx, "likes", slug)
}

// increment runs a single UPDATE so concurrent callers never lose an update.
// column is one of the two counter names, never user input.
func (r *postRepo) increment(ctx context.Context, column, slug string) (*models.Post, error) {
	query := `UPDATE posts SET ` + column + ` = ` + column + ` + 1 WHERE slug = $1 RETURNING ` + postColumns
	post, err := scanPost(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("increment %s: %w", column, err)
	}
	return post, nil
}

// Stats aggregates the dashboard counters
func (r *postRepo) Stats(ctx context.Context) (*models.Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'published'),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COALESCE(SUM(views), 0),
			COALESCE(SUM(likes), 0)
		FROM posts
	`
	var stats models.Stats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total, &stats.Published, &stats.Drafts, &stats.TotalViews, &stats.TotalLikes,
	)
	if err != nil {
		return nil, fmt.Errorf("post stats: %w", err)
	}
	return &stats, nil
}
