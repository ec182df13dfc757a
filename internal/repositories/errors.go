package repositories

import "errors"

// ErrNotFound is returned by GetByID lookups when no row matches. Repos map
// driver-level no-rows results to this so callers never branch on pgx errors.
var ErrNotFound = errors.New("not found")
