package cache

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type CacheStats struct {
	CacheEntryId uuid.UUID

	Reads   atomic.Int64
	Created time.Time
}

func newCacheStats() *CacheStats {
	uid, err := uuid.NewV7()
	if err != nil {
		uid = uuid.New()
	}

	return &CacheStats{
		CacheEntryId: uid,
		Created:      time.Now(),
	}
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Items     int
	Hits      int64
	Misses    int64
	Evictions int64
}
