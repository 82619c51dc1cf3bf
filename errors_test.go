package authflight

import (
	"errors"
	"fmt"
	"testing"
)

func TestAuthError_Error(t *testing.T) {
	err := &AuthError{Code: "some_code", Description: "something went wrong"}
	want := "some_code: something went wrong"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSentinelErrors_Matchable(t *testing.T) {
	wrapped := fmt.Errorf("adapt failed: %w", ErrMissingCredential)
	if !errors.Is(wrapped, ErrMissingCredential) {
		t.Error("wrapped ErrMissingCredential should match with errors.Is")
	}

	if errors.Is(ErrExcessiveRefresh, ErrMissingCredential) {
		t.Error("distinct sentinels should not match")
	}
}

func TestSentinelErrors_Codes(t *testing.T) {
	if ErrMissingCredential.Code != ErrorCodeMissingCredential {
		t.Errorf("ErrMissingCredential.Code = %q, want %q", ErrMissingCredential.Code, ErrorCodeMissingCredential)
	}
	if ErrExcessiveRefresh.Code != ErrorCodeExcessiveRefresh {
		t.Errorf("ErrExcessiveRefresh.Code = %q, want %q", ErrExcessiveRefresh.Code, ErrorCodeExcessiveRefresh)
	}
}
