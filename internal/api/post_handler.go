package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgsite-blog/internal/auth"
	"github.com/orgsite-blog/internal/models"
	"github.com/orgsite-blog/internal/service"
	"github.com/rs/zerolog"
)

// PostHandler handles the blog post endpoints
type PostHandler struct {
	services *service.Services
	errs     *errorResponder
	log      zerolog.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(services *service.Services, errs *errorResponder, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		errs:     errs,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// List handles GET /api/blogs
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.services.Post.List(c.Request.Context())
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetBySlug handles GET /api/blogs/:slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.services.Post.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Create handles POST /api/blogs
func (h *PostHandler) Create(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.badRequest(c, err)
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), &req)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	h.logMutation(c, "create", post.ID)
	c.JSON(http.StatusCreated, post)
}

// Update handles PUT /api/blogs/:id
func (h *PostHandler) Update(c *gin.Context) {
	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.badRequest(c, err)
		return
	}

	post, err := h.services.Post.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	h.logMutation(c, "update", post.ID)
	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/blogs/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Post.Delete(c.Request.Context(), id); err != nil {
		h.errs.respond(c, err)
		return
	}

	h.logMutation(c, "delete", id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Post deleted",
	})
}

// IncrementViews handles POST /api/blogs/increment-views/:slug
func (h *PostHandler) IncrementViews(c *gin.Context) {
	post, err := h.services.Post.IncrementViews(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// IncrementLikes handles POST /api/blogs/increment-likes/:slug
func (h *PostHandler) IncrementLikes(c *gin.Context) {
	post, err := h.services.Post.IncrementLikes(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Stats handles GET /api/admin/stats
func (h *PostHandler) Stats(c *gin.Context) {
	stats, err := h.services.Post.Stats(c.Request.Context())
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *PostHandler) logMutation(c *gin.Context, action, postID string) {
	event := h.log.Info().Str("action", action).Str("post_id", postID)
	if claims, ok := auth.PrincipalFrom(c.Request.Context()); ok {
		event = event.Str("admin", claims.Username)
	}
	event.Msg("Post mutated")
}
