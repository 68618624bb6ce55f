package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/orgsite-blog/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoPostRepo is the MongoDB implementation of PostRepository
type mongoPostRepo struct {
	coll *mongo.Collection
}

// NewMongoPostRepo creates a post repository over a MongoDB collection that
// carries a unique index on slug
func NewMongoPostRepo(coll *mongo.Collection) PostRepository {
	return &mongoPostRepo{coll: coll}
}

func normalizeDoc(post *models.Post) *models.Post {
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.CreatedAt = post.CreatedAt.UTC()
	return post
}

// List retrieves all posts, newest first
func (r *mongoPostRepo) List(ctx context.Context) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := make([]*models.Post, 0)
	for cursor.Next(ctx) {
		var post models.Post
		if err := cursor.Decode(&post); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, normalizeDoc(&post))
	}
	return posts, cursor.Err()
}

// Create inserts a new post
func (r *mongoPostRepo) Create(ctx context.Context, post *models.Post) error {
	_, err := r.coll.InsertOne(ctx, post)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *mongoPostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

// GetBySlug retrieves a post by slug without touching its counters
func (r *mongoPostRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.findOne(ctx, bson.D{{Key: "slug", Value: slug}})
}

func (r *mongoPostRepo) findOne(ctx context.Context, filter bson.D) (*models.Post, error) {
	var post models.Post
	err := r.coll.FindOne(ctx, filter).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return normalizeDoc(&post), nil
}

// Update replaces the editable fields of a post. createdAt, views and likes
// are never written here.
func (r *mongoPostRepo) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "slug", Value: post.Slug},
		{Key: "title", Value: post.Title},
		{Key: "content", Value: post.Content},
		{Key: "excerpt", Value: post.Excerpt},
		{Key: "author", Value: post.Author},
		{Key: "category", Value: post.Category},
		{Key: "image", Value: post.Image},
		{Key: "tags", Value: post.Tags},
		{Key: "status", Value: post.Status},
	}}}

	updated, err := r.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: post.ID}}, update)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateSlug
	}
	return updated, err
}

// Delete removes a post by ID
func (r *mongoPostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews atomically adds one view and returns the updated post
func (r *mongoPostRepo) IncrementViews(ctx context.Context, slug string) (*models.Post, error) {
	return r.increment(ctx, "views", slug)
}

// IncrementLikes atomically adds one like and returns the updated post
func (r *mongoPostRepo) IncrementLikes(ctx context.Context, slug string) (*models.Post, error) {
	return r.increment(ctx, "likes", slug)
}

func (r *mongoPostRepo) increment(ctx context.Context, field, slug string) (*models.Post, error) {
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: field, Value: 1}}}}
	post, err := r.findOneAndUpdate(ctx, bson.D{{Key: "slug", Value: slug}}, update)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("increment %s: %w", field, err)
	}
	return post, err
}

func (r *mongoPostRepo) findOneAndUpdate(ctx context.Context, filter, update bson.D) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return normalizeDoc(&post), nil
}

// Stats aggregates the dashboard counters
func (r *mongoPostRepo) Stats(ctx context.Context) (*models.Stats, error) {
	isStatus := func(status models.PostStatus) bson.D {
		return bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$status", string(status)}}}, 1, 0,
		}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "published", Value: bson.D{{Key: "$sum", Value: isStatus(models.PostStatusPublished)}}},
			{Key: "drafts", Value: bson.D{{Key: "$sum", Value: isStatus(models.PostStatusDraft)}}},
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$views"}}},
			{Key: "totalLikes", Value: bson.D{{Key: "$sum", Value: "$likes"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("post stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats models.Stats
	if cursor.Next(ctx) {
		if err := cursor.Decode(&stats); err != nil {
			return nil, fmt.Errorf("decode post stats: %w", err)
		}
	}
	return &stats, cursor.Err()
}
