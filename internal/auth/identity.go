// Package auth holds the administrator identity check and the signed session
// tokens issued after a successful login.
package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// IdentityProvider verifies login credentials. The deployment ships a single
// static administrator; a user table can implement the same interface.
type IdentityProvider interface {
	VerifyCredentials(username, password string) bool
}

// StaticProvider is an identity provider with exactly one account
type StaticProvider struct {
	username     string
	passwordHash []byte
}

// Compile-time check
var _ IdentityProvider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider for one username and its bcrypt hash
func NewStaticProvider(username, passwordHash string) (*StaticProvider, error) {
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	return &StaticProvider{
		username:     username,
		passwordHash: []byte(passwordHash),
	}, nil
}

// VerifyCredentials reports whether username and password match the account.
// The bcrypt comparison always runs so a wrong username costs the same time
// as a wrong password.
func (p *StaticProvider) VerifyCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(p.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(p.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
