package pipeline

import (
	"fmt"
	"sync"

	"github.com/sells-group/fieldscout/internal/model"
)

// CoordKey builds the cache key for a coordinate pair. Five decimal places
// is about a meter of precision, enough that two zones sharing a key would
// get the same search results anyway.
func CoordKey(lat, lng float64) string {
	return fmt.Sprintf("%.5f,%.5f", lat, lng)
}

// coordCache deduplicates POI lookups within a single run. Safe for
// concurrent use by the enrichment workers.
type coordCache struct {
	mu      sync.Mutex
	entries map[string]*model.POIAssignment
}

func newCoordCache() *coordCache {
	return &coordCache{entries: make(map[string]*model.POIAssignment)}
}

func (c *coordCache) get(key string) (*model.POIAssignment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.entries[key]
	return a, ok
}

func (c *coordCache) put(key string, a *model.POIAssignment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = a
}
