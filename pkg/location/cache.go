package location

import (
	"fmt"
	"sync"
)

// cache is an unbounded in-memory lookup cache. Negative results are cached
// too, so a point known to have no building is not re-queried on repeated
// clicks near the same spot.
type cache[T any] struct {
	mu      sync.Mutex
	entries map[string]T
}

func newCache[T any]() *cache[T] {
	return &cache[T]{entries: make(map[string]T)}
}

func (c *cache[T]) get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *cache[T]) put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// bucketKey rounds a coordinate pair to precision decimal places so nearby
// selections share cache entries.
func bucketKey(lat, lng float64, precision int) string {
	return fmt.Sprintf("%.*f,%.*f", precision, lat, precision, lng)
}
