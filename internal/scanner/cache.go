package scanner

import (
	"hash/fnv"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of scan results a Cache keeps by default.
const DefaultCacheSize = 64

type cached struct {
	languageID string
	text       string
	tokens     []Token
}

// Cache memoizes scan results by language and text. It is safe for
// concurrent use.
type Cache struct {
	entries *lru.Cache[uint64, cached]
}

// NewCache returns a cache holding up to size results.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[uint64, cached](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Scan returns the cached tokens for text, computing them with scan on a
// miss. The returned slice is the caller's to modify.
func (c *Cache) Scan(text, languageID string, scan func(string) []Token) []Token {
	key := cacheKey(text, languageID)
	if e, ok := c.entries.Get(key); ok && e.text == text && e.languageID == languageID {
		return slices.Clone(e.tokens)
	}
	tokens := scan(text)
	c.entries.Add(key, cached{languageID: languageID, text: text, tokens: slices.Clone(tokens)})
	return tokens
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Resize changes the capacity, evicting the oldest results when shrinking.
func (c *Cache) Resize(size int) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c.entries.Resize(size)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func cacheKey(text, languageID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(languageID))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return h.Sum64()
}
