// Package cache provides the sharded LRU cache shared by the font registry
// and the filter kernel cache.
//
//	c := cache.New[string, *Metrics](64, cache.StringHasher)
//	m, err := c.GetOrCreate("GoRegular@16", func() (*Metrics, error) {
//		return measure(src, 16)
//	})
//
// # Thread Safety
//
// Cache is safe for concurrent use. It must not be copied after creation.
package cache
