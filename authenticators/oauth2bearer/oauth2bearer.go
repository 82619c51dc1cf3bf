// Package oauth2bearer implements an authflight.Authenticator for OAuth2
// bearer tokens. Requests are authenticated with an Authorization header
// and refreshed through the configured token endpoint using the token's
// refresh token.
package oauth2bearer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/giantswarm/authflight"
	"github.com/giantswarm/authflight/credentials"
)

// authorizationHeader is the header carrying the bearer token.
const authorizationHeader = "Authorization"

// Authenticator refreshes bearer credentials through an OAuth2 token
// endpoint.
type Authenticator struct {
	config     *oauth2.Config
	httpClient *http.Client
	logger     *slog.Logger
	threshold  time.Duration
}

// Compile-time interface check.
var _ authflight.Authenticator = (*Authenticator)(nil)

// Config holds the authenticator configuration.
type Config struct {
	// OAuth is the OAuth2 client configuration; its Endpoint.TokenURL is
	// where refreshes are sent (required).
	OAuth *oauth2.Config

	// HTTPClient is a custom HTTP client for token endpoint requests.
	// If not provided, a client with a 30 second timeout is used.
	HTTPClient *http.Client

	// Logger for structured logging (optional, uses slog.Default if not
	// provided).
	Logger *slog.Logger

	// RefreshThreshold is passed to refreshed bearer credentials. Default:
	// credentials.DefaultRefreshThreshold.
	RefreshThreshold time.Duration
}

// New creates a new OAuth2 bearer authenticator.
func New(cfg Config) (*Authenticator, error) {
	if cfg.OAuth == nil {
		return nil, fmt.Errorf("oauth2 config is required")
	}
	if cfg.OAuth.Endpoint.TokenURL == "" {
		return nil, fmt.Errorf("token URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	threshold := cfg.RefreshThreshold
	if threshold <= 0 {
		threshold = credentials.DefaultRefreshThreshold
	}

	return &Authenticator{
		config:     cfg.OAuth,
		httpClient: httpClient,
		logger:     logger,
		threshold:  threshold,
	}, nil
}

// Attach sets the Authorization header from the bearer credential.
// Non-bearer credentials are left unattached.
func (a *Authenticator) Attach(req *http.Request, credential authflight.Credential) {
	bearer, ok := credential.(*credentials.Bearer)
	if !ok {
		a.logger.Warn("Attach called with a non-bearer credential, request left unauthenticated")
		return
	}
	req.Header.Set(authorizationHeader, "Bearer "+bearer.AccessToken())
}

// Refresh exchanges the credential's refresh token for a new token at the
// configured endpoint and completes with a fresh bearer credential.
func (a *Authenticator) Refresh(credential authflight.Credential, complete func(authflight.Credential, error)) {
	bearer, ok := credential.(*credentials.Bearer)
	if !ok {
		complete(nil, fmt.Errorf("cannot refresh credential of type %T", credential))
		return
	}

	refreshToken := ""
	if tok := bearer.Token(); tok != nil {
		refreshToken = tok.RefreshToken
	}
	if refreshToken == "" {
		complete(nil, fmt.Errorf("credential has no refresh token"))
		return
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, a.httpClient)

	// Seed the token source with only the refresh token so the exchange
	// always runs instead of returning the expiring access token.
	source := a.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	newToken, err := source.Token()
	if err != nil {
		complete(nil, fmt.Errorf("token refresh failed: %w", err))
		return
	}

	// Endpoints that do not rotate refresh tokens omit the field; keep the
	// old one so the next refresh still works.
	if newToken.RefreshToken == "" {
		newToken.RefreshToken = refreshToken
	}

	a.logger.Debug("Refreshed bearer token",
		"fingerprint", credentials.Fingerprint(newToken.AccessToken),
		"expiry", newToken.Expiry,
	)
	complete(credentials.NewBearerWithThreshold(newToken, a.threshold), nil)
}

// IsAuthFailure reports whether the response is a 401 Unauthorized.
// Transport errors (err != nil, resp == nil) are not auth failures: the
// request never reached an authorization decision.
func (a *Authenticator) IsAuthFailure(req *http.Request, resp *http.Response, err error) bool {
	return resp != nil && resp.StatusCode == http.StatusUnauthorized
}

// IsAuthenticatedWith reports whether the request's Authorization header
// carries the given bearer credential.
func (a *Authenticator) IsAuthenticatedWith(req *http.Request, credential authflight.Credential) bool {
	bearer, ok := credential.(*credentials.Bearer)
	if !ok {
		return false
	}
	header := req.Header.Get(authorizationHeader)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return token == bearer.AccessToken()
}
