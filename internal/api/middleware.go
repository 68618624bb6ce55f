package api

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/orgsite-blog/internal/auth"
	"github.com/orgsite-blog/internal/service"
)

// PrincipalKey is the gin context key holding the verified session claims
const PrincipalKey = "principal"

// sessionGuard checks the session cookie before protected handlers run
type sessionGuard struct {
	auth       service.AuthService
	cookieName string
	errs       *errorResponder
}

func newSessionGuard(authService service.AuthService, cookieName string, errs *errorResponder) *sessionGuard {
	return &sessionGuard{auth: authService, cookieName: cookieName, errs: errs}
}

// verify returns the claims for the request's session cookie
func (g *sessionGuard) verify(c *gin.Context) (*auth.Claims, error) {
	token, _ := c.Cookie(g.cookieName)
	return g.auth.Verify(token)
}

func attachPrincipal(c *gin.Context, claims *auth.Claims) {
	c.Set(PrincipalKey, claims)
	c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), claims))
}

// RequireJSON rejects requests without a session with 401, and requests
// with an invalid or expired session with 403
func (g *sessionGuard) RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := g.verify(c)
		if err != nil {
			g.errs.respond(c, err)
			return
		}
		attachPrincipal(c, claims)
		c.Next()
	}
}

// RequireRedirect sends requests without a valid session to loginPath
func (g *sessionGuard) RequireRedirect(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := g.verify(c)
		if err != nil {
			target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		attachPrincipal(c, claims)
		c.Next()
	}
}
