package service

import (
	"time"

	"github.com/orgsite-blog/internal/apperror"
	"github.com/orgsite-blog/internal/auth"
	"github.com/rs/zerolog"
)

// authService is the concrete implementation of AuthService
type authService struct {
	identity auth.IdentityProvider
	tokens   *auth.TokenManager
	admin    string
	log      zerolog.Logger
}

// newAuthService creates a new AuthService
func newAuthService(identity auth.IdentityProvider, tokens *auth.TokenManager, admin string, log zerolog.Logger) *authService {
	return &authService{
		identity: identity,
		tokens:   tokens,
		admin:    admin,
		log:      log.With().Str("service", "auth").Logger(),
	}
}

// NewAuthService creates an AuthService for a single admin account
func NewAuthService(identity auth.IdentityProvider, tokens *auth.TokenManager, admin string, log zerolog.Logger) AuthService {
	return newAuthService(identity, tokens, admin, log)
}

// Login checks the credentials and issues a session token
func (s *authService) Login(username, password string) (string, *auth.Claims, error) {
	if username == "" || password == "" || !s.identity.VerifyCredentials(username, password) {
		s.log.Warn().Str("username", username).Msg("Rejected login attempt")
		return "", nil, apperror.Unauthorized("invalid credentials")
	}

	token, claims, err := s.tokens.Issue(s.admin)
	if err != nil {
		return "", nil, apperror.Internal("failed to issue session token", err)
	}

	s.log.Info().
		Str("username", claims.Username).
		Time("expires_at", claims.ExpiresAt.Time).
		Msg("Admin logged in")

	return token, claims, nil
}

// Verify validates a session token. A missing token is unauthorized, a
// presented but rejected one is forbidden.
func (s *authService) Verify(token string) (*auth.Claims, error) {
	if token == "" {
		return nil, apperror.Unauthorized("authentication required")
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("Session token rejected")
		return nil, apperror.Forbidden("invalid or expired session", err)
	}
	return claims, nil
}

// TTL returns the session lifetime
func (s *authService) TTL() time.Duration {
	return s.tokens.TTL()
}
