package models

import (
	"time"
)

// PostStatus is the publication state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// DefaultCategory is assigned to posts created without a category
const DefaultCategory = "General"

// ValidStatuses defines allowed post statuses
var ValidStatuses = map[PostStatus]bool{
	PostStatusDraft:     true,
	PostStatusPublished: true,
}

// Post represents a blog post document
type Post struct {
	ID        string     `json:"id" bson:"_id"`
	Slug      string     `json:"slug" bson:"slug"`
	Title     string     `json:"title" bson:"title"`
	Content   string     `json:"content" bson:"content"`
	Excerpt   string     `json:"excerpt" bson:"excerpt"`
	Author    string     `json:"author" bson:"author"`
	Category  string     `json:"category" bson:"category"`
	Image     string     `json:"image" bson:"image"`
	Tags      []string   `json:"tags" bson:"tags"`
	Status    PostStatus `json:"status" bson:"status"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	Views     int64      `json:"views" bson:"views"`
	Likes     int64      `json:"likes" bson:"likes"`
}

// IsPublished reports whether the post is visible on the public pages
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// CreatePostRequest is the payload accepted by POST /api/blogs
type CreatePostRequest struct {
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Image    string   `json:"image"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
}

// UpdatePostRequest is the payload accepted by PUT /api/blogs/:id.
// Title and content are required; nil optional fields keep their stored value.
type UpdatePostRequest struct {
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Slug     *string   `json:"slug"`
	Excerpt  *string   `json:"excerpt"`
	Author   *string   `json:"author"`
	Category *string   `json:"category"`
	Image    *string   `json:"image"`
	Tags     *[]string `json:"tags"`
	Status   *string   `json:"status"`
}

// Stats summarizes the posts collection for the admin dashboard
type Stats struct {
	Total      int64 `json:"total" bson:"total"`
	Published  int64 `json:"published" bson:"published"`
	Drafts     int64 `json:"drafts" bson:"drafts"`
	TotalViews int64 `json:"totalViews" bson:"totalViews"`
	TotalLikes int64 `json:"totalLikes" bson:"totalLikes"`
}
