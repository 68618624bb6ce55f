package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/orgsite-blog/internal/mocks"
	"github.com/orgsite-blog/internal/models"
	"github.com/orgsite-blog/internal/service"
	"github.com/orgsite-blog/internal/validation"
	"github.com/orgsite-blog/internal/web"
	"github.com/orgsite-blog/pkg/slug"
	"github.com/rs/zerolog"
)

func seedPosts(n int) []*models.Post {
	categories := []string{"General", "Tech", "News", "Events"}
	posts := make([]*models.Post, n)
	base := time.Now()
	for i := 0; i < n; i++ {
		posts[i] = &models.Post{
			ID:        fmt.Sprintf("550e8400-e29b-41d4-a716-%012d", i),
			Slug:      fmt.Sprintf("post-%06d", i),
			Title:     fmt.Sprintf("Post number %d about Go", i),
			Content:   "Body",
			Excerpt:   "An excerpt that mentions deployment and testing",
			Category:  categories[i%len(categories)],
			Tags:      []string{"golang", "web", fmt.Sprintf("tag-%d", i%10)},
			Status:    models.PostStatusPublished,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return posts
}

// BenchmarkSlugMake benchmarks slug derivation with diacritic folding
func BenchmarkSlugMake(b *testing.B) {
	title := "İstanbul'da Güzel Bir Gün: Çalışma Notları & Öneriler"

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		slug.Make(title)
	}
}

// BenchmarkFilterPosts benchmarks the blog listing search over 1000 posts
func BenchmarkFilterPosts(b *testing.B) {
	posts := seedPosts(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		web.FilterPosts(posts, "tag-3", "Tech")
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "posts/sec")
}

// BenchmarkValidatePost benchmarks the full post validation pipeline
func BenchmarkValidatePost(b *testing.B) {
	post := seedPosts(1)[0]
	post.Image = "https://example.com/cover.png"

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validation.ValidatePost(post)
	}
}

// BenchmarkIncrementViewsParallel benchmarks contended counter increments
func BenchmarkIncrementViewsParallel(b *testing.B) {
	repo := mocks.NewMockPostRepository()
	svc := service.NewPostService(repo, nil, zerolog.Nop())
	post, err := svc.Create(context.Background(), &models.CreatePostRequest{Title: "Hot post", Content: "x"})
	if err != nil {
		b.Fatalf("Create failed: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			svc.IncrementViews(ctx, post.Slug)
		}
	})
}

// BenchmarkListPosts benchmarks listing through the service layer
func BenchmarkListPosts(b *testing.B) {
	repo := mocks.NewMockPostRepository()
	for _, p := range seedPosts(500) {
		repo.Create(context.Background(), p)
	}
	svc := service.NewPostService(repo, nil, zerolog.Nop())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		svc.List(context.Background())
	}
}
