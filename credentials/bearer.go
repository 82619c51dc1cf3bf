package credentials

import (
	"time"

	"golang.org/x/oauth2"

	"github.com/giantswarm/authflight"
)

// DefaultRefreshThreshold is how long before expiry a bearer credential
// starts reporting that it requires a refresh. Refreshing slightly early
// keeps requests from racing the expiry on the wire.
const DefaultRefreshThreshold = 30 * time.Second

// Bearer is a Credential backed by an OAuth2 token.
type Bearer struct {
	token     *oauth2.Token
	threshold time.Duration

	// now is the clock used for expiry checks; replaced in tests.
	now func() time.Time
}

// Compile-time interface check.
var _ authflight.Credential = (*Bearer)(nil)

// NewBearer creates a bearer credential with the default refresh threshold.
func NewBearer(token *oauth2.Token) *Bearer {
	return NewBearerWithThreshold(token, DefaultRefreshThreshold)
}

// NewBearerWithThreshold creates a bearer credential that reports
// RequiresRefresh once the token is within threshold of its expiry.
func NewBearerWithThreshold(token *oauth2.Token, threshold time.Duration) *Bearer {
	if threshold < 0 {
		threshold = DefaultRefreshThreshold
	}
	return &Bearer{
		token:     token,
		threshold: threshold,
		now:       time.Now,
	}
}

// Token returns the underlying OAuth2 token.
func (b *Bearer) Token() *oauth2.Token {
	return b.token
}

// AccessToken returns the access token value. Do not log it; use
// Fingerprint instead.
func (b *Bearer) AccessToken() string {
	if b.token == nil {
		return ""
	}
	return b.token.AccessToken
}

// RequiresRefresh reports whether the token is missing, expired, or
// within the refresh threshold of expiring. Tokens without an expiry
// never require refreshing.
func (b *Bearer) RequiresRefresh() bool {
	if b.token == nil || b.token.AccessToken == "" {
		return true
	}
	if b.token.Expiry.IsZero() {
		return false
	}
	return !b.now().Before(b.token.Expiry.Add(-b.threshold))
}

// Fingerprint returns a log-safe identifier for the access token.
func (b *Bearer) Fingerprint() string {
	return Fingerprint(b.AccessToken())
}
