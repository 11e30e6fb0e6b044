// Package memory provides in-memory repository implementations backing
// deterministic, store-free unit tests. Each repository guards its maps
// with a mutex so concurrent callers observe the same uniqueness and
// conditional-update guarantees the PostgreSQL layer enforces.
package memory

import (
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
