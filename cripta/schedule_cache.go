package cripta

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ScheduleCache keeps derived subkey schedules so that a batch of inputs
// under one key derives the schedule once. Entries are keyed by a digest of
// the key, never the key itself.
type ScheduleCache struct {
	cacheInstance *gocache.Cache
}

// NewScheduleCache creates a cache whose entries expire after ttl. A ttl of -1
// keeps entries until the process exits.
func NewScheduleCache(ttl time.Duration) *ScheduleCache {
	cleanup := 10 * time.Minute
	if ttl > 0 && ttl < cleanup {
		cleanup = ttl
	}
	return &ScheduleCache{cacheInstance: gocache.New(ttl, cleanup)}
}

// Get returns the schedule for key, deriving and storing it on a miss.
func (c *ScheduleCache) Get(key []uint8) (*SubkeySchedule, error) {
	if len(key) != KeySize {
		return DeriveSchedule(key)
	}

	id := cacheID(key)
	if cached, ok := c.cacheInstance.Get(id); ok {
		return cached.(*SubkeySchedule), nil
	}

	schedule, err := DeriveSchedule(key)
	if err != nil {
		return nil, err
	}
	c.cacheInstance.SetDefault(id, schedule)
	return schedule, nil
}

func (c *ScheduleCache) Len() int {
	return c.cacheInstance.ItemCount()
}

func cacheID(key []uint8) string {
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:])
}
