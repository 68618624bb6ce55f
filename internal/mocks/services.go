package mocks

import (
	"sync"

	"github.com/orgsite-blog/internal/auth"
)

// MockIdentityProvider accepts exactly one username/password pair
type MockIdentityProvider struct {
	mu       sync.Mutex
	Username string
	Password string
	Attempts []string
}

// Verify interface compliance
var _ auth.IdentityProvider = (*MockIdentityProvider)(nil)

func NewMockIdentityProvider(username, password string) *MockIdentityProvider {
	return &MockIdentityProvider{
		Username: username,
		Password: password,
		Attempts: make([]string, 0),
	}
}

func (m *MockIdentityProvider) VerifyCredentials(username, password string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Attempts = append(m.Attempts, username)
	return username == m.Username && password == m.Password
}

// AttemptCount returns how many credential checks were made
func (m *MockIdentityProvider) AttemptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Attempts)
}
