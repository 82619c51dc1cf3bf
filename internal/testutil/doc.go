// Package testutil provides testing utilities and helpers for the
// authflight library.
package testutil
