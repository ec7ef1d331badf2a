package font

import (
	"fmt"
	"sync"

	"github.com/dirtybirdnj/gellyscape/diag"
)

type cacheKey struct {
	scope string
	name  string
}

type cacheEntry struct {
	once sync.Once
	cmap *CMap // nil when the ToUnicode stream could not be used
}

// Cache holds parsed ToUnicode CMaps keyed by resource scope and font
// name. Each CMap is built at most once; a stream that fails to decode or
// parse is remembered as having no CMap. Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*cacheEntry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*cacheEntry)}
}

// Load returns the CMap for the named font, building it from res on first
// use. Fonts without a ToUnicode stream return nil and are not recorded.
func (c *Cache) Load(scope, name string, res Resource, sink diag.Sink) *CMap {
	if res.ToUnicode == nil {
		return nil
	}

	key := cacheKey{scope: scope, name: name}
	c.mu.Lock()
	if c.entries == nil {
		c.entries = make(map[cacheKey]*cacheEntry)
	}
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		cm, err := buildCMap(res.ToUnicode)
		if err != nil {
			diag.OrDiscard(sink).Warn(diag.Warning{
				Stage:   diag.StageCMap,
				Offset:  -1,
				Message: fmt.Sprintf("font %s: %v", name, err),
			})
			return
		}
		c.mu.Lock()
		e.cmap = cm
		c.mu.Unlock()
	})
	return e.cmap
}

// Has reports whether an entry exists for the named font, and whether it
// holds a usable CMap.
func (c *Cache) Has(scope, name string) (present, usable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[cacheKey{scope: scope, name: name}]
	if !ok {
		return false, false
	}
	return true, e.cmap != nil
}

// Len returns the number of cached fonts, including failed ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func buildCMap(s *Stream) (*CMap, error) {
	data, err := s.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode ToUnicode: %w", err)
	}
	cm, err := ParseCMap(data)
	if err != nil {
		return nil, fmt.Errorf("parse ToUnicode: %w", err)
	}
	return cm, nil
}
