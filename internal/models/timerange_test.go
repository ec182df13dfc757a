package models

import (
	"testing"
	"time"
)

func TestResolveTimeRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		token    string
		expected time.Duration
		bounded  bool
	}{
		{TimeRange1h, time.Hour, true},
		{TimeRange24h, 24 * time.Hour, true},
		{TimeRange7d, 7 * 24 * time.Hour, true},
		{TimeRange30d, 30 * 24 * time.Hour, true},
		{TimeRange90d, 90 * 24 * time.Hour, true},
		{TimeRangeAll, 0, false},
		// Unrecognized tokens fall back to "all" rather than failing.
		{"", 0, false},
		{"2h", 0, false},
		{"yesterday", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			since, ok := ResolveTimeRange(tt.token, now)
			if ok != tt.bounded {
				t.Fatalf("ResolveTimeRange(%q) bounded = %v, want %v", tt.token, ok, tt.bounded)
			}
			if !tt.bounded {
				return
			}
			if got := now.Sub(since); got != tt.expected {
				t.Errorf("ResolveTimeRange(%q) window = %v, want %v", tt.token, got, tt.expected)
			}
			if !since.Before(now) {
				t.Errorf("ResolveTimeRange(%q) bound %v is not before now", tt.token, since)
			}
		})
	}
}

func TestResolveTimeRangeBoundsAreOrdered(t *testing.T) {
	now := time.Now()
	tokens := []string{TimeRange1h, TimeRange24h, TimeRange7d, TimeRange30d, TimeRange90d}

	prev, _ := ResolveTimeRange(tokens[0], now)
	for _, token := range tokens[1:] {
		bound, ok := ResolveTimeRange(token, now)
		if !ok {
			t.Fatalf("token %q should resolve to a bound", token)
		}
		if !bound.Before(prev) {
			t.Errorf("bound for %q (%v) should be before the narrower window's bound (%v)", token, bound, prev)
		}
		prev = bound
	}
}
