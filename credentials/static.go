package credentials

import "github.com/giantswarm/authflight"

// Static is a Credential that never requires refreshing, such as a
// long-lived API key. An Authenticator may still replace it through
// SetCredential when the key is rotated out of band.
type Static struct {
	value string
}

var _ authflight.Credential = (*Static)(nil)

// NewStatic creates a static credential around the given secret value.
func NewStatic(value string) *Static {
	return &Static{value: value}
}

// Value returns the secret value. Do not log it; use Fingerprint instead.
func (s *Static) Value() string {
	return s.value
}

// RequiresRefresh always reports false.
func (s *Static) RequiresRefresh() bool {
	return false
}

// Fingerprint returns a log-safe identifier for the value.
func (s *Static) Fingerprint() string {
	return Fingerprint(s.value)
}
