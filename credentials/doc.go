// Package credentials provides ready-made Credential implementations for
// the authflight interceptor: OAuth2-backed bearer tokens and static API
// keys. All types expose a log-safe fingerprint instead of their secret
// value.
package credentials
