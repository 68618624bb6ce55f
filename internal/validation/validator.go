package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/orgsite-blog/internal/apperror"
	"github.com/orgsite-blog/internal/models"
	"github.com/orgsite-blog/pkg/slug"
)

// Field length limits
const (
	MaxTitleLength = 200
	MaxSlugLength  = 200
	MaxTagLength   = 50
	MaxTags        = 20
)

// ValidationError represents a single validation error
type ValidationError = apperror.FieldError

// ValidatePost validates a post about to be persisted. The post is expected
// to be normalized already (trimmed, defaults applied).
func ValidatePost(post *models.Post) []ValidationError {
	var errors []ValidationError

	// Validate title
	if post.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	} else if len([]rune(post.Title)) > MaxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title exceeds maximum of %d characters", MaxTitleLength),
		})
	}

	// Validate content
	if post.Content == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
	}

	// Validate slug
	if post.Slug == "" {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug is required and could not be derived from the title"})
	} else if !slug.Valid(post.Slug) {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)", Value: post.Slug})
	} else if len(post.Slug) > MaxSlugLength {
		errors = append(errors, ValidationError{
			Field:   "slug",
			Message: fmt.Sprintf("slug exceeds maximum of %d characters", MaxSlugLength),
		})
	}

	// Validate status
	if !models.ValidStatuses[post.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published",
			Value:   post.Status,
		})
	}

	// Validate image URL if present
	if post.Image != "" && !isHTTPURL(post.Image) {
		errors = append(errors, ValidationError{Field: "image", Message: "image must be an absolute http(s) URL", Value: post.Image})
	}

	// Validate tags
	if len(post.Tags) > MaxTags {
		errors = append(errors, ValidationError{
			Field:   "tags",
			Message: fmt.Sprintf("at most %d tags are allowed (has %d)", MaxTags, len(post.Tags)),
		})
	}
	for _, tag := range post.Tags {
		if len([]rune(tag)) > MaxTagLength {
			errors = append(errors, ValidationError{
				Field:   "tags",
				Message: fmt.Sprintf("tag exceeds maximum of %d characters", MaxTagLength),
				Value:   tag,
			})
		}
	}

	return errors
}

// NormalizeTags trims tags, drops empty entries and collapses duplicates
// (case-insensitively, keeping the first spelling).
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}

// IsValidID checks if a string is a valid post ID
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
