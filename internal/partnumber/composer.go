package partnumber

import (
	"sync"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/config"
)

// Composer memoizes Compose keyed by the normalized configuration
// fingerprint. It only remembers the most recent result, which is all a
// session rereading an unchanged state needs.
//
// Thread-safety: Composer is safe for concurrent use.
type Composer struct {
	cat *catalog.Catalog

	mu    sync.Mutex
	key   string
	value string
	hits  int
}

// NewComposer creates a Composer over cat.
func NewComposer(cat *catalog.Catalog) *Composer {
	return &Composer{cat: cat}
}

// PartNumber returns Compose(cfg) using the cached value when cfg is
// structurally unchanged since the last call.
func (c *Composer) PartNumber(cfg config.Configuration) string {
	key := Normalize(cfg, c.cat).Fingerprint()

	c.mu.Lock()
	defer c.mu.Unlock()
	if key == c.key && c.key != "" {
		c.hits++
		return c.value
	}
	c.key = key
	c.value = Compose(cfg, c.cat)
	return c.value
}

// Hits returns how many calls were served from the cache.
func (c *Composer) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}
