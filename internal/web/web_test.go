package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgsite-blog/internal/api"
	"github.com/orgsite-blog/internal/auth"
	"github.com/orgsite-blog/internal/config"
	"github.com/orgsite-blog/internal/mocks"
	"github.com/orgsite-blog/internal/models"
	"github.com/orgsite-blog/internal/service"
	"github.com/orgsite-blog/internal/web"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSite struct {
	router *gin.Engine
	repo   *mocks.MockPostRepository
	posts  service.PostService
	tokens *auth.TokenManager
}

func setupSite(t *testing.T) *testSite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:  config.EnvDevelopment,
		Auth: config.AuthConfig{CookieName: "token", AdminUsername: "admin", TokenTTL: time.Hour},
	}
	repo := mocks.NewMockPostRepository()
	tokens := auth.NewTokenManager("web-secret", time.Hour)
	services := &service.Services{
		Post: service.NewPostService(repo, nil, zerolog.Nop()),
		Auth: service.NewAuthService(mocks.NewMockIdentityProvider("admin", "1234"), tokens, "admin", zerolog.Nop()),
	}

	handler, err := web.NewHandler(services, cfg, zerolog.Nop())
	require.NoError(t, err)

	return &testSite{
		router: api.NewRouter(services, &mocks.MockHealthChecker{}, handler, cfg, zerolog.Nop()),
		repo:   repo,
		posts:  services.Post,
		tokens: tokens,
	}
}

func (s *testSite) create(t *testing.T, title, status, category string) *models.Post {
	t.Helper()
	post, err := s.posts.Create(context.Background(), &models.CreatePostRequest{
		Title:    title,
		Content:  "Hello **world**",
		Excerpt:  "About " + title,
		Category: category,
		Status:   status,
	})
	require.NoError(t, err)
	return post
}

func (s *testSite) get(path string, cookie *http.Cookie, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testSite) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, _, err := s.tokens.Issue("admin")
	require.NoError(t, err)
	return &http.Cookie{Name: "token", Value: token}
}

func TestHomeShowsThreeRecentPublished(t *testing.T) {
	site := setupSite(t)
	for _, title := range []string{"One", "Two", "Three", "Four"} {
		site.create(t, title, "published", "")
		time.Sleep(2 * time.Millisecond)
	}
	site.create(t, "Hidden Draft", "draft", "")

	w := site.get("/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "/blog/four")
	assert.Contains(t, body, "/blog/three")
	assert.Contains(t, body, "/blog/two")
	assert.NotContains(t, body, "/blog/one")
	assert.NotContains(t, body, "hidden-draft")
}

func TestBlogListFilters(t *testing.T) {
	site := setupSite(t)
	site.create(t, "Go Tips", "published", "Tech")
	site.create(t, "Office Move", "published", "News")
	site.create(t, "Secret", "draft", "Tech")

	w := site.get("/blog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "2 posts")
	assert.Contains(t, body, `<option value="all" selected>`)
	assert.Contains(t, body, `<option value="Tech"`)
	assert.NotContains(t, body, "/blog/secret")

	w = site.get("/blog?category=News", nil)
	assert.Contains(t, w.Body.String(), "/blog/office-move")
	assert.NotContains(t, w.Body.String(), "/blog/go-tips")

	w = site.get("/blog?q=tips", nil)
	assert.Contains(t, w.Body.String(), "1 posts")
	assert.Contains(t, w.Body.String(), "/blog/go-tips")
}

func TestBlogDetailCountsOneViewPerRender(t *testing.T) {
	site := setupSite(t)
	post := site.create(t, "Counted", "published", "")

	for i := 1; i <= 3; i++ {
		w := site.get("/blog/"+post.Slug, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<strong>world</strong>")
	}

	stored, err := site.repo.GetBySlug(context.Background(), post.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.Views)
}

func TestBlogDetailHidesDraftsAndMissing(t *testing.T) {
	site := setupSite(t)
	draft := site.create(t, "Unfinished", "draft", "")

	w := site.get("/blog/"+draft.Slug, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, site.repo.Calls("IncrementViews"))

	w = site.get("/blog/nope", nil, "Accept-Language", "tr-TR")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Aradığınız sayfa bulunamadı.")
	assert.Contains(t, w.Body.String(), `lang="tr"`)
}

func TestAdminPagesRequireSession(t *testing.T) {
	site := setupSite(t)
	post := site.create(t, "Editable", "draft", "")

	for _, path := range []string{"/admin/dashboard", "/admin/posts/new", "/admin/posts/" + post.ID + "/edit"} {
		w := site.get(path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/admin?next="), path)
	}

	w := site.get("/admin/dashboard", &http.Cookie{Name: "token", Value: "forged"})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdminDashboard(t *testing.T) {
	site := setupSite(t)
	site.create(t, "Live Post", "published", "")
	site.create(t, "Work In Progress", "draft", "")
	cookie := site.sessionCookie(t)

	w := site.get("/admin/dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="stat-total">2<`)
	assert.Contains(t, body, `id="stat-published">1<`)
	assert.Contains(t, body, `id="stat-drafts">1<`)
	assert.Contains(t, body, "Work In Progress")

	w = site.get("/admin/dashboard?status=published", cookie)
	body = w.Body.String()
	assert.Contains(t, body, `href="/blog/live-post"`)
	assert.NotContains(t, body, `href="/blog/work-in-progress"`)
}

func TestAdminLoginRedirectsExistingSession(t *testing.T) {
	site := setupSite(t)

	w := site.get("/admin", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="login-form"`)

	w = site.get("/admin?next=/admin/posts/new", site.sessionCookie(t))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/posts/new", w.Header().Get("Location"))
}

func TestAdminEditForm(t *testing.T) {
	site := setupSite(t)
	post := site.create(t, "Form Post", "published", "Tech")
	cookie := site.sessionCookie(t)

	w := site.get("/admin/posts/"+post.ID+"/edit", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="form-post"`)
	assert.Contains(t, w.Body.String(), `data-id="`+post.ID+`"`)

	w = site.get("/admin/posts/not-a-uuid/edit", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreFailureShowsGenericBanner(t *testing.T) {
	site := setupSite(t)
	site.repo.Err = errors.New("pq: connection refused")

	w := site.get("/blog", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "We could not load this page.")
	assert.NotContains(t, w.Body.String(), "connection refused")

	cookie := site.sessionCookie(t)
	w = site.get("/admin/dashboard", cookie, "Accept-Language", "tr")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Tekrar dene")
	assert.Contains(t, w.Body.String(), `href="/admin/dashboard"`)
}

func TestDeepLinkFallsBackToHome(t *testing.T) {
	site := setupSite(t)

	w := site.get("/about/team", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hero-title")
}

func TestStaticAssets(t *testing.T) {
	site := setupSite(t)

	w := site.get("/static/js/blog.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sessionStorage")
}
