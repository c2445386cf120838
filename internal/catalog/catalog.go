// Package catalog maps canonical merchant tokens to category pairs. The
// mapping is built from an external enrichment feed plus accumulated manual
// corrections and is read-only during a classification run.
package catalog

import (
	"sync"

	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/models"
)

// Catalog holds the merchant-to-category mapping for one classification run.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]models.Category
	dirty   bool
	logger  logging.Logger
}

// New creates a Catalog from a pre-built entry map.
func New(entries map[string]models.Category, logger logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if entries == nil {
		entries = make(map[string]models.Category)
	}
	return &Catalog{entries: entries, logger: logger}
}

// Lookup returns the category pair for a merchant token. The lookup is
// exact-string and case-sensitive; normalization is the extractor's job.
func (c *Catalog) Lookup(token string) (models.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cat, ok := c.entries[token]
	return cat, ok
}

// Replace sets the category pair for a merchant token. Entries are replaced
// wholesale, never merged field by field.
func (c *Catalog) Replace(token string, cat models.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = cat
	c.dirty = true
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ShouldOverwrite reports whether a bulk enrichment pass may replace the
// given existing category. Only empty, unclassified or catch-all categories
// may be clobbered; anything more specific was assigned with higher
// confidence than a bulk pass carries.
func ShouldOverwrite(existing models.Category) bool {
	switch existing.Cat1 {
	case "", models.Cat1CatchAll, models.Cat1Unclassified:
		return true
	default:
		return false
	}
}
