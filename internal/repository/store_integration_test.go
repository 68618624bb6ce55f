package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgsite-blog/internal/config"
	"github.com/orgsite-blog/internal/database"
	"github.com/orgsite-blog/internal/models"
	"github.com/orgsite-blog/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Integration tests run only when a store URL is provided:
//
//	TEST_POSTGRES_URL=postgres://... TEST_MONGO_URL=mongodb://... go test ./internal/repository/...
func testDatabaseConfig(url string) *config.DatabaseConfig {
	return &config.DatabaseConfig{
		URL:            url,
		MongoDatabase:  "orgsite_test_" + uuid.NewString()[:8],
		MaxOpenConns:   5,
		MaxIdleConns:   1,
		MaxLifetime:    time.Minute,
		ConnectTimeout: 5 * time.Second,
	}
}

func TestPostgresPostRepository(t *testing.T) {
	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}

	db, err := database.New(context.Background(), testDatabaseConfig(url), zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	if _, err := db.Exec("TRUNCATE posts"); err != nil {
		t.Fatalf("Failed to truncate: %v", err)
	}

	runStoreContract(t, repository.New(db))
}

func TestMongoPostRepository(t *testing.T) {
	url := os.Getenv("TEST_MONGO_URL")
	if url == "" {
		t.Skip("TEST_MONGO_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewMongo(ctx, testDatabaseConfig(url), zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer func() {
		db.Database.Drop(ctx)
		db.Close()
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		t.Fatalf("Failed to create indexes: %v", err)
	}

	runStoreContract(t, repository.NewMongo(db))
}

func runStoreContract(t *testing.T, repos *repository.Repositories) {
	ctx := context.Background()
	repo := repos.Post

	if err := repos.Store.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}

	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	post := newPost(uuid.NewString(), "contract-post", createdAt)
	post.Tags = []string{}
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := newPost(uuid.NewString(), "contract-post", createdAt)
	if err := repo.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicateSlug) {
		t.Errorf("Expected ErrDuplicateSlug, got %v", err)
	}

	stored, err := repo.GetBySlug(ctx, "contract-post")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if !stored.CreatedAt.Equal(createdAt) {
		t.Errorf("Expected createdAt %v, got %v", createdAt, stored.CreatedAt)
	}
	if stored.Tags == nil {
		t.Error("Expected empty tags to round-trip as a non-nil slice")
	}

	const n = 20
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := repo.IncrementViews(gctx, "contract-post")
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}

	stored.Slug = "contract-renamed"
	stored.Title = "Renamed"
	updated, err := repo.Update(ctx, stored)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Views != n {
		t.Errorf("Expected %d views, got %d", n, updated.Views)
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Errorf("Expected createdAt to survive update, got %v", updated.CreatedAt)
	}

	if _, err := repo.IncrementLikes(ctx, "contract-post"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for old slug, got %v", err)
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	want := models.Stats{Total: 1, Published: 1, TotalViews: n}
	if *stats != want {
		t.Errorf("Expected stats %+v, got %+v", want, *stats)
	}

	if err := repo.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, post.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}
