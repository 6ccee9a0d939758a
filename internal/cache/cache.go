package cache

import (
	"sync"

	"github.com/ObiAU/freshdigest/internal/models"
)

// Cache remembers which articles a run has already accepted, keyed by
// article ID. Feeds that aggregate several subscriptions can return the same
// story more than once.
type Cache struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func New() *Cache {
	return &Cache{
		seen: make(map[string]struct{}),
	}
}

// AddIfAbsent records the article and reports true, or reports false when an
// article with the same ID was already recorded.
func (c *Cache) AddIfAbsent(article models.Article) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.seen[article.ID]; exists {
		return false
	}
	c.seen[article.ID] = struct{}{}
	return true
}
