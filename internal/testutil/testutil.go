package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// MockTime provides a controllable time source for deterministic testing.
// It is safe for concurrent use.
type MockTime struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockTime creates a new mock time provider.
func NewMockTime(t time.Time) *MockTime {
	return &MockTime{now: t}
}

// Now returns the current mock time.
func (m *MockTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock time forward by the given duration.
func (m *MockTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set sets the mock time to a specific value.
func (m *MockTime) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// GenerateRandomString returns a hex string of the given length.
func GenerateRandomString(length int) string {
	b := make([]byte, (length+1)/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)[:length]
}

// GenerateBearerToken creates a test OAuth2 token expiring in one hour.
func GenerateBearerToken() *oauth2.Token {
	return GenerateBearerTokenWithExpiry(time.Now().Add(time.Hour))
}

// GenerateBearerTokenWithExpiry creates a test OAuth2 token with a
// specific expiry.
func GenerateBearerTokenWithExpiry(expiry time.Time) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  GenerateRandomString(32),
		TokenType:    "Bearer",
		RefreshToken: GenerateRandomString(32),
		Expiry:       expiry,
	}
}
