// Package authflight coordinates credential refresh for concurrent HTTP
// request pipelines.
//
// Many in-flight requests can share one credential (typically a bearer
// token) that may expire or be revoked at any moment. The Interceptor in
// this package attaches the current credential to outgoing requests,
// classifies failures that were caused by a rejected credential, and
// guarantees that no matter how many requests discover the problem
// concurrently, at most one refresh runs at a time. Requests arriving
// while a refresh is in flight are parked and resumed exactly once, in
// order, when the refresh resolves.
//
// The credential-specific work (attaching, refreshing, recognizing a
// rejection) is delegated to an Authenticator implementation. The credentials and authenticators
// subpackages ship ready-made implementations for OAuth2 bearer tokens
// and static API keys; the transport subpackage plugs the Interceptor
// into an http.RoundTripper.
package authflight
