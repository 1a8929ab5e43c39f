package models

import (
	"testing"
	"time"
)

func TestUser_HasClaimedOn(t *testing.T) {
	day := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastClaim *time.Time
		want      bool
	}{
		{
			name:      "never claimed",
			lastClaim: nil,
			want:      false,
		},
		{
			name:      "claimed earlier the same day",
			lastClaim: timePtr(time.Date(2024, 6, 15, 0, 5, 0, 0, time.UTC)),
			want:      true,
		},
		{
			name:      "claimed yesterday",
			lastClaim: timePtr(time.Date(2024, 6, 14, 23, 59, 0, 0, time.UTC)),
			want:      false,
		},
		{
			name:      "claimed last month",
			lastClaim: timePtr(time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{LastDailyClaim: tt.lastClaim}
			if got := user.HasClaimedOn(day); got != tt.want {
				t.Errorf("HasClaimedOn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
