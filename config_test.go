package authflight

import (
	"testing"
	"time"
)

func TestRefreshWindowConfig_Defaults(t *testing.T) {
	got := RefreshWindowConfig{}.applyDefaults()

	if got.Interval != DefaultRefreshInterval {
		t.Errorf("Interval = %v, want %v", got.Interval, DefaultRefreshInterval)
	}
	if got.MaximumAttempts != DefaultRefreshMaximumAttempts {
		t.Errorf("MaximumAttempts = %d, want %d", got.MaximumAttempts, DefaultRefreshMaximumAttempts)
	}
	if got.Disabled {
		t.Error("Disabled should default to false")
	}
}

func TestRefreshWindowConfig_ExplicitValuesKept(t *testing.T) {
	got := RefreshWindowConfig{
		Interval:        time.Minute,
		MaximumAttempts: 10,
		Disabled:        true,
	}.applyDefaults()

	if got.Interval != time.Minute {
		t.Errorf("Interval = %v, want %v", got.Interval, time.Minute)
	}
	if got.MaximumAttempts != 10 {
		t.Errorf("MaximumAttempts = %d, want 10", got.MaximumAttempts)
	}
	if !got.Disabled {
		t.Error("Disabled should be kept")
	}
}
