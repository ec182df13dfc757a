package models

import "time"

// Symbolic time-range tokens accepted on list and stats queries.
const (
	TimeRange1h  = "1h"
	TimeRange24h = "24h"
	TimeRange7d  = "7d"
	TimeRange30d = "30d"
	TimeRange90d = "90d"
	TimeRangeAll = "all"

	DefaultTimeRange = TimeRange24h
)

var timeRangeWindows = map[string]time.Duration{
	TimeRange1h:  time.Hour,
	TimeRange24h: 24 * time.Hour,
	TimeRange7d:  7 * 24 * time.Hour,
	TimeRange30d: 30 * 24 * time.Hour,
	TimeRange90d: 90 * 24 * time.Hour,
}

// KnownTimeRanges lists the advertised tokens, narrowest first.
func KnownTimeRanges() []string {
	return []string{TimeRange1h, TimeRange24h, TimeRange7d, TimeRange30d, TimeRange90d, TimeRangeAll}
}

// ResolveTimeRange maps a symbolic token to an inclusive lower bound relative
// to now. "all" and any unrecognized token resolve to no bound (ok=false);
// unknown tokens are intentionally not an error. Callers must reuse one now
// instant across a request so count and fetch agree on the window.
func ResolveTimeRange(token string, now time.Time) (time.Time, bool) {
	window, ok := timeRangeWindows[token]
	if !ok {
		return time.Time{}, false
	}
	return now.Add(-window), true
}
