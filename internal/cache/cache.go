package cache

import (
	"sync"
	"time"

	"github.com/avandyk/marketbrief/internal/models"
)

// ImageCache remembers validation outcomes per image URL so the same chart
// surfaced by several topic queries is fetched and checked once.
type ImageCache struct {
	mu        sync.RWMutex
	images    map[string]models.ChartImage
	checkedAt map[string]time.Time
	retention time.Duration
}

func New(retention time.Duration) *ImageCache {
	return &ImageCache{
		images:    make(map[string]models.ChartImage),
		checkedAt: make(map[string]time.Time),
		retention: retention,
	}
}

// Get returns the cached validation result for a URL, if still fresh.
func (c *ImageCache) Get(url string) (models.ChartImage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ts, ok := c.checkedAt[url]
	if !ok || time.Since(ts) > c.retention {
		return models.ChartImage{}, false
	}

	img, ok := c.images[url]
	return img, ok
}

// Put records a validation result for a URL.
func (c *ImageCache) Put(img models.ChartImage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.images[img.URL] = img
	c.checkedAt[img.URL] = time.Now()
}

// Stats reports cache contents for the diagnostics output.
func (c *ImageCache) Stats() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	valid := 0
	for _, img := range c.images {
		if img.Valid {
			valid++
		}
	}

	return map[string]any{
		"cached":    len(c.images),
		"valid":     valid,
		"retention": c.retention.String(),
	}
}
