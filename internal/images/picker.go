// Package images resolves a display image for an event from tag-keyed
// pool files. A pool is a plain text file of URLs or file names, one per
// line; missing pools fall through to the "general" pool and finally to
// a fixed URL, so resolution never yields an empty result.
package images

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultFallbackURL is the final image in the fallback chain.
const DefaultFallbackURL = "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?ixlib=rb-4.1.0&auto=format&fit=crop&q=80&w=1000"

// Resolver picks a display image for a tag set. Implementations must
// always return a non-empty URL.
type Resolver interface {
	Resolve(tags []string) string
}

// PoolResolver reads pools from <dir>/<tag>.txt. Pools are cached after
// the first read, including empty results so missing files are not
// re-read on every event.
type PoolResolver struct {
	dir      string
	fallback string

	mu    sync.Mutex
	pools map[string][]string
	randn func(n int) int
}

// NewPoolResolver creates a resolver over dir. An empty fallback uses
// DefaultFallbackURL.
func NewPoolResolver(dir, fallback string) *PoolResolver {
	if fallback == "" {
		fallback = DefaultFallbackURL
	}
	return &PoolResolver{
		dir:      dir,
		fallback: fallback,
		pools:    make(map[string][]string),
		randn:    rand.Intn,
	}
}

// Resolve picks one tag at random, then one image from its pool, falling
// back to the "general" pool and then to the fixed URL.
func (r *PoolResolver) Resolve(tags []string) string {
	normalized := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			normalized = append(normalized, t)
		}
	}

	if len(normalized) > 0 {
		tag := normalized[r.intn(len(normalized))]
		if url := r.pickFromPool(tag); url != "" {
			return url
		}
	}
	if url := r.pickFromPool("general"); url != "" {
		return url
	}
	return r.fallback
}

func (r *PoolResolver) pickFromPool(tag string) string {
	pool := r.loadPool(tag)
	if len(pool) == 0 {
		return ""
	}
	return pool[r.intn(len(pool))]
}

func (r *PoolResolver) loadPool(tag string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pool, ok := r.pools[tag]; ok {
		return pool
	}

	var items []string
	data, err := os.ReadFile(filepath.Join(r.dir, tag+".txt"))
	if err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
				items = append(items, line)
			} else {
				// Bare file names live under the tag's own directory.
				items = append(items, "/images/"+tag+"/"+line)
			}
		}
	}
	r.pools[tag] = items
	return items
}

func (r *PoolResolver) intn(n int) int {
	if n <= 1 {
		return 0
	}
	return r.randn(n)
}

// StaticResolver always returns the same URL. Used in tests and as the
// repository default when no pool directory is configured.
type StaticResolver string

func (s StaticResolver) Resolve([]string) string {
	if s == "" {
		return DefaultFallbackURL
	}
	return string(s)
}
