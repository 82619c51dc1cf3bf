// Package authenticators groups the Authenticator implementations shipped
// with authflight. Each subpackage backs one authentication scheme behind
// the authflight.Authenticator contract; the mock subpackage provides a
// controllable implementation for tests.
package authenticators
