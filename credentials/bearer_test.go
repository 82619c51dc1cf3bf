package credentials

import (
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestBearer_RequiresRefresh(t *testing.T) {
	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		token     *oauth2.Token
		threshold time.Duration
		want      bool
	}{
		{
			name:      "nil token",
			token:     nil,
			threshold: DefaultRefreshThreshold,
			want:      true,
		},
		{
			name:      "empty access token",
			token:     &oauth2.Token{},
			threshold: DefaultRefreshThreshold,
			want:      true,
		},
		{
			name:      "no expiry never refreshes",
			token:     &oauth2.Token{AccessToken: "tok"},
			threshold: DefaultRefreshThreshold,
			want:      false,
		},
		{
			name:      "well before expiry",
			token:     &oauth2.Token{AccessToken: "tok", Expiry: base.Add(time.Hour)},
			threshold: DefaultRefreshThreshold,
			want:      false,
		},
		{
			name:      "inside threshold",
			token:     &oauth2.Token{AccessToken: "tok", Expiry: base.Add(10 * time.Second)},
			threshold: DefaultRefreshThreshold,
			want:      true,
		},
		{
			name:      "exactly at threshold boundary",
			token:     &oauth2.Token{AccessToken: "tok", Expiry: base.Add(DefaultRefreshThreshold)},
			threshold: DefaultRefreshThreshold,
			want:      true,
		},
		{
			name:      "already expired",
			token:     &oauth2.Token{AccessToken: "tok", Expiry: base.Add(-time.Minute)},
			threshold: DefaultRefreshThreshold,
			want:      true,
		},
		{
			name:      "zero threshold refreshes only at expiry",
			token:     &oauth2.Token{AccessToken: "tok", Expiry: base.Add(time.Second)},
			threshold: 0,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBearerWithThreshold(tt.token, tt.threshold)
			b.now = func() time.Time { return base }

			if got := b.RequiresRefresh(); got != tt.want {
				t.Errorf("RequiresRefresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBearer_NegativeThresholdUsesDefault(t *testing.T) {
	b := NewBearerWithThreshold(&oauth2.Token{AccessToken: "tok"}, -time.Second)
	if b.threshold != DefaultRefreshThreshold {
		t.Errorf("threshold = %v, want %v", b.threshold, DefaultRefreshThreshold)
	}
}

func TestBearer_AccessToken(t *testing.T) {
	b := NewBearer(&oauth2.Token{AccessToken: "secret-token"})
	if got := b.AccessToken(); got != "secret-token" {
		t.Errorf("AccessToken() = %q, want %q", got, "secret-token")
	}

	var empty Bearer
	if got := empty.AccessToken(); got != "" {
		t.Errorf("AccessToken() on zero value = %q, want empty", got)
	}
}
