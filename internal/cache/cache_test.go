package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avandyk/marketbrief/internal/models"
)

func TestCacheGetPut(t *testing.T) {
	c := New(time.Hour)

	_, ok := c.Get("http://x/a.png")
	require.False(t, ok)

	c.Put(models.ChartImage{URL: "http://x/a.png", Format: "png", Valid: true})

	img, ok := c.Get("http://x/a.png")
	require.True(t, ok)
	require.True(t, img.Valid)
	require.Equal(t, "png", img.Format)
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Nanosecond)

	c.Put(models.ChartImage{URL: "http://x/a.png", Valid: true})
	time.Sleep(time.Millisecond)

	_, ok := c.Get("http://x/a.png")
	require.False(t, ok)
}

func TestCacheStats(t *testing.T) {
	c := New(time.Hour)
	c.Put(models.ChartImage{URL: "http://x/a.png", Valid: true})
	c.Put(models.ChartImage{URL: "http://x/b.png", Reason: "empty payload"})

	stats := c.Stats()
	require.Equal(t, 2, stats["cached"])
	require.Equal(t, 1, stats["valid"])
}
