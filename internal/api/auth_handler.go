package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgsite-blog/internal/config"
	"github.com/orgsite-blog/internal/service"
	"github.com/rs/zerolog"
)

// AuthHandler handles the admin session endpoints
type AuthHandler struct {
	services *service.Services
	cfg      *config.Config
	errs     *errorResponder
	log      zerolog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(services *service.Services, cfg *config.Config, errs *errorResponder, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		cfg:      cfg,
		errs:     errs,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.badRequest(c, err)
		return
	}

	token, claims, err := h.services.Auth.Login(req.Username, req.Password)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	h.setSessionCookie(c, token, claims.ExpiresAt.Time)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
	})
}

// Verify handles GET /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	token, _ := c.Cookie(h.cfg.Auth.CookieName)
	claims, err := h.services.Auth.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  claims,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookie(c),
		SameSite: http.SameSiteStrictMode,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expires time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.services.Auth.TTL().Seconds()),
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie(c),
		SameSite: http.SameSiteStrictMode,
	})
}

// secureCookie marks cookies Secure in production or behind TLS
func (h *AuthHandler) secureCookie(c *gin.Context) bool {
	return h.cfg.IsProduction() || c.Request.TLS != nil
}
