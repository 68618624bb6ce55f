// Package web renders the public site and the admin screens. Reads go through
// the post service directly; writes are made by the browser against /api.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/orgsite-blog/internal/apperror"
	"github.com/orgsite-blog/internal/config"
	"github.com/orgsite-blog/internal/models"
	"github.com/orgsite-blog/internal/service"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// HomePostCount is the number of recent posts on the home page
const HomePostCount = 3

// DashboardRecentCount is the number of recent posts on the dashboard
const DashboardRecentCount = 5

var pageNames = []string{
	"home",
	"blog_list",
	"blog_detail",
	"admin_login",
	"admin_dashboard",
	"admin_form",
	"error",
}

// Handler serves the HTML pages
type Handler struct {
	services   *service.Services
	cookieName string
	pages      map[string]*template.Template
	log        zerolog.Logger
}

// NewHandler parses the embedded templates
func NewHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) (*Handler, error) {
	md := NewMarkdown()
	funcs := template.FuncMap{
		"markdown": md.Render,
		"date":     func(t time.Time) string { return t.Format("2 Jan 2006") },
		"join":     strings.Join,
		"year":     func() int { return time.Now().Year() },
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Handler{
		services:   services,
		cookieName: cfg.Auth.CookieName,
		pages:      pages,
		log:        log.With().Str("handler", "web").Logger(),
	}, nil
}

// Mount registers the page routes and static assets
func (h *Handler) Mount(router *gin.Engine, adminGuard gin.HandlerFunc) {
	static, _ := fs.Sub(staticFS, "static")
	router.StaticFS("/static", http.FS(static))

	router.GET("/", h.Home)
	router.GET("/blog", h.BlogList)
	router.GET("/blog/:slug", h.BlogDetail)

	router.GET("/admin", h.AdminLogin)
	admin := router.Group("/admin", adminGuard)
	{
		admin.GET("/dashboard", h.AdminDashboard)
		admin.GET("/posts/new", h.AdminNewPost)
		admin.GET("/posts/:id/edit", h.AdminEditPost)
	}
}

// Entry renders the home page for unmatched deep links
func (h *Handler) Entry(c *gin.Context) {
	h.Home(c)
}

// page is the data shared by every template
type page struct {
	Title   string
	Section string
	Msg     *Messages
	Data    interface{}
}

func (h *Handler) render(c *gin.Context, status int, name, title, section string, data interface{}) {
	c.Render(status, render.HTML{
		Template: h.pages[name],
		Name:     "layout.html",
		Data: page{
			Title:   title,
			Section: section,
			Msg:     NewMessages(c.GetHeader("Accept-Language")),
			Data:    data,
		},
	})
}

type errorView struct {
	Message string
	Retry   string
}

// renderError shows a generic localized banner. Internals are only logged.
func (h *Handler) renderError(c *gin.Context, err error, retry bool) {
	msgs := NewMessages(c.GetHeader("Accept-Language"))

	status := http.StatusInternalServerError
	view := errorView{Message: msgs.Get(msgErrorGeneric)}
	if apperror.Is(err, apperror.KindNotFound) {
		status = http.StatusNotFound
		view.Message = msgs.Get(msgErrorNotFound)
	} else {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Page failed to load")
		if retry {
			view.Retry = c.Request.URL.RequestURI()
		}
	}

	h.render(c, status, "error", msgs.Get(msgErrorTitle), "", view)
}

// Home handles GET /
func (h *Handler) Home(c *gin.Context) {
	posts, err := h.services.Post.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err, false)
		return
	}

	h.render(c, http.StatusOK, "home", "Home", "home", Recent(Published(posts), HomePostCount))
}

type blogListView struct {
	Posts      []*models.Post
	Categories []string
	Query      string
	Category   string
	Count      int
}

// BlogList handles GET /blog
func (h *Handler) BlogList(c *gin.Context) {
	posts, err := h.services.Post.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err, false)
		return
	}

	published := Published(posts)
	query := c.Query("q")
	category := c.DefaultQuery("category", AllCategories)
	filtered := FilterPosts(published, query, category)

	h.render(c, http.StatusOK, "blog_list", "Blog", "blog", blogListView{
		Posts:      filtered,
		Categories: Categories(published),
		Query:      query,
		Category:   category,
		Count:      len(filtered),
	})
}

// BlogDetail handles GET /blog/:slug. Each render counts one view.
func (h *Handler) BlogDetail(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	existing, err := h.services.Post.GetBySlug(ctx, slug)
	if err != nil {
		h.renderError(c, err, false)
		return
	}
	if !existing.IsPublished() {
		h.renderError(c, apperror.NotFound("post not found"), false)
		return
	}

	post, err := h.services.Post.IncrementViews(ctx, slug)
	if err != nil {
		h.renderError(c, err, false)
		return
	}

	h.render(c, http.StatusOK, "blog_detail", post.Title, "blog", post)
}

// hasSession reports whether the request carries a valid session cookie
func (h *Handler) hasSession(c *gin.Context) bool {
	token, err := c.Cookie(h.cookieName)
	if err != nil {
		return false
	}
	_, err = h.services.Auth.Verify(token)
	return err == nil
}

type loginView struct {
	Next string
}

// AdminLogin handles GET /admin
func (h *Handler) AdminLogin(c *gin.Context) {
	next := safeNext(c.Query("next"))
	if h.hasSession(c) {
		c.Redirect(http.StatusFound, next)
		return
	}

	h.render(c, http.StatusOK, "admin_login", "Admin login", "admin", loginView{Next: next})
}

// safeNext only allows local admin paths as a post-login target
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/admin/dashboard"
}

type dashboardView struct {
	Stats  *models.Stats
	Recent []*models.Post
	Posts  []*models.Post
	Query  string
	Status string
}

// AdminDashboard handles GET /admin/dashboard
func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.services.Post.Stats(ctx)
	if err != nil {
		h.renderError(c, err, true)
		return
	}
	posts, err := h.services.Post.List(ctx)
	if err != nil {
		h.renderError(c, err, true)
		return
	}

	query := c.Query("q")
	status := c.DefaultQuery("status", AllStatuses)

	h.render(c, http.StatusOK, "admin_dashboard", "Dashboard", "admin", dashboardView{
		Stats:  stats,
		Recent: Recent(posts, DashboardRecentCount),
		Posts:  FilterAdminPosts(posts, query, status),
		Query:  query,
		Status: status,
	})
}

type formView struct {
	Post   *models.Post
	IsEdit bool
}

// AdminNewPost handles GET /admin/posts/new
func (h *Handler) AdminNewPost(c *gin.Context) {
	h.render(c, http.StatusOK, "admin_form", "New post", "admin", formView{
		Post: &models.Post{Category: models.DefaultCategory, Status: models.PostStatusDraft, Tags: []string{}},
	})
}

// AdminEditPost handles GET /admin/posts/:id/edit
func (h *Handler) AdminEditPost(c *gin.Context) {
	post, err := h.services.Post.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err, true)
		return
	}

	h.render(c, http.StatusOK, "admin_form", "Edit post", "admin", formView{Post: post, IsEdit: true})
}
