package web

import (
	"strings"

	"github.com/orgsite-blog/internal/models"
)

// AllCategories is the listing filter value that disables category filtering
const AllCategories = "all"

// AllStatuses is the dashboard filter value that disables status filtering
const AllStatuses = "all"

// Published returns the published posts, keeping their order
func Published(posts []*models.Post) []*models.Post {
	out := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if p.IsPublished() {
			out = append(out, p)
		}
	}
	return out
}

// Recent returns at most n posts from the head of an already sorted list
func Recent(posts []*models.Post, n int) []*models.Post {
	if len(posts) <= n {
		return posts
	}
	return posts[:n]
}

// Categories returns "all" followed by every distinct category in order of
// first appearance
func Categories(posts []*models.Post) []string {
	categories := []string{AllCategories}
	seen := map[string]bool{}
	for _, p := range posts {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// FilterPosts keeps posts whose title, excerpt or tags contain query
// (case-insensitive) and whose category matches. An empty query or the "all"
// category match everything.
func FilterPosts(posts []*models.Post, query, category string) []*models.Post {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterAdminPosts keeps posts matching query and status ("all", "published"
// or "draft")
func FilterAdminPosts(posts []*models.Post, query, status string) []*models.Post {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if status != "" && status != AllStatuses && string(p.Status) != status {
			continue
		}
		if !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p *models.Post, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Excerpt), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
