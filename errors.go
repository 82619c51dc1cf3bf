package authflight

import "fmt"

// Stable error codes for programmatic matching and metrics attributes.
const (
	ErrorCodeMissingCredential = "missing_credential"
	ErrorCodeExcessiveRefresh  = "excessive_refresh"
)

// AuthError is an error produced by the interceptor itself, as opposed to
// errors propagated verbatim from an Authenticator's refresh.
type AuthError struct {
	Code        string // stable machine-readable code
	Description string // human-readable description
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Sentinel interceptor errors. Compare with errors.Is.
var (
	// ErrMissingCredential indicates no credential is set when one is required.
	ErrMissingCredential = &AuthError{
		Code:        ErrorCodeMissingCredential,
		Description: "no credential is set",
	}

	// ErrExcessiveRefresh indicates the refresh window rejected a refresh
	// attempt because too many already ran inside the trailing interval.
	ErrExcessiveRefresh = &AuthError{
		Code:        ErrorCodeExcessiveRefresh,
		Description: "too many credential refreshes within the refresh window",
	}
)
