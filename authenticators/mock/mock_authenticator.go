// Package mock provides a controllable Authenticator implementation for
// testing code that uses the authflight interceptor.
package mock

import (
	"net/http"
	"sync"

	"github.com/giantswarm/authflight"
)

// Authenticator is a mock implementation of authflight.Authenticator.
// Behavior is overridden per method through the Func fields; call counts
// are tracked for assertions. The zero value is not usable, use New.
type Authenticator struct {
	// AttachFunc is called when Attach is invoked.
	AttachFunc func(req *http.Request, credential authflight.Credential)

	// RefreshFunc is called when Refresh is invoked.
	RefreshFunc func(credential authflight.Credential, complete func(authflight.Credential, error))

	// IsAuthFailureFunc is called when IsAuthFailure is invoked.
	IsAuthFailureFunc func(req *http.Request, resp *http.Response, err error) bool

	// IsAuthenticatedWithFunc is called when IsAuthenticatedWith is invoked.
	IsAuthenticatedWithFunc func(req *http.Request, credential authflight.Credential) bool

	mu         sync.Mutex
	callCounts map[string]int
}

// Compile-time interface check.
var _ authflight.Authenticator = (*Authenticator)(nil)

// Credential is a trivial credential for tests. RequiresRefresh returns
// the value of the Stale field at each call.
type Credential struct {
	// Value identifies the credential in assertions.
	Value string

	// Stale controls RequiresRefresh.
	Stale bool
}

// RequiresRefresh implements authflight.Credential.
func (c *Credential) RequiresRefresh() bool {
	return c.Stale
}

// New creates a mock authenticator with default implementations: Attach
// sets an Authorization header from the mock credential value, Refresh
// completes immediately with a fresh credential, every 401 response is an
// auth failure, and IsAuthenticatedWith compares header values.
func New() *Authenticator {
	a := &Authenticator{
		callCounts: make(map[string]int),
	}

	a.AttachFunc = func(req *http.Request, credential authflight.Credential) {
		if c, ok := credential.(*Credential); ok {
			req.Header.Set("Authorization", "Bearer "+c.Value)
		}
	}
	a.RefreshFunc = func(credential authflight.Credential, complete func(authflight.Credential, error)) {
		complete(&Credential{Value: "refreshed"}, nil)
	}
	a.IsAuthFailureFunc = func(req *http.Request, resp *http.Response, err error) bool {
		return resp != nil && resp.StatusCode == http.StatusUnauthorized
	}
	a.IsAuthenticatedWithFunc = func(req *http.Request, credential authflight.Credential) bool {
		c, ok := credential.(*Credential)
		if !ok {
			return false
		}
		return req.Header.Get("Authorization") == "Bearer "+c.Value
	}

	return a
}

// Attach implements authflight.Authenticator.
func (a *Authenticator) Attach(req *http.Request, credential authflight.Credential) {
	a.recordCall("Attach")
	a.AttachFunc(req, credential)
}

// Refresh implements authflight.Authenticator.
func (a *Authenticator) Refresh(credential authflight.Credential, complete func(authflight.Credential, error)) {
	a.recordCall("Refresh")
	a.RefreshFunc(credential, complete)
}

// IsAuthFailure implements authflight.Authenticator.
func (a *Authenticator) IsAuthFailure(req *http.Request, resp *http.Response, err error) bool {
	a.recordCall("IsAuthFailure")
	return a.IsAuthFailureFunc(req, resp, err)
}

// IsAuthenticatedWith implements authflight.Authenticator.
func (a *Authenticator) IsAuthenticatedWith(req *http.Request, credential authflight.Credential) bool {
	a.recordCall("IsAuthenticatedWith")
	return a.IsAuthenticatedWithFunc(req, credential)
}

// CallCount returns how many times the named method was invoked.
func (a *Authenticator) CallCount(method string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.callCounts[method]
}

func (a *Authenticator) recordCall(method string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.callCounts[method]++
}
