package aggregator

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"sort"
	"sync"

	"github.com/avandyk/marketbrief/internal/cache"
	"github.com/avandyk/marketbrief/internal/models"
	"github.com/avandyk/marketbrief/internal/sources"
)

// Aggregator fans one search query out per topic, merges the results,
// deduplicates articles and chart images across the whole run, and validates
// image payloads. A failed topic never aborts the others.
type Aggregator struct {
	provider models.SearchProvider
	fetcher  models.ImageFetcher
	images   *cache.ImageCache
	log      *slog.Logger
}

func New(provider models.SearchProvider, fetcher models.ImageFetcher, imageCache *cache.ImageCache, log *slog.Logger) *Aggregator {
	return &Aggregator{
		provider: provider,
		fetcher:  fetcher,
		images:   imageCache,
		log:      log,
	}
}

// Collect queries every topic concurrently and returns one SearchResult per
// topic, in the order given. Articles are deduplicated by normalized-content
// hash across the entire merged set; the first topic to surface a story keeps
// it. Invalid images are flagged, not dropped.
func (a *Aggregator) Collect(ctx context.Context, topics []string) []models.SearchResult {
	results := make([]models.SearchResult, len(topics))

	var wg sync.WaitGroup
	for i, topic := range topics {
		wg.Add(1)
		go func(i int, topic string) {
			defer wg.Done()
			results[i] = a.collectTopic(ctx, topic)
		}(i, topic)
	}
	wg.Wait()

	a.dedupeArticles(results)
	a.dedupeImages(results)

	a.log.Debug("image validation cache", "stats", a.images.Stats())
	return results
}

func (a *Aggregator) collectTopic(ctx context.Context, topic string) models.SearchResult {
	articles, imageURLs, err := a.provider.Search(ctx, topic)
	if err != nil {
		a.log.Warn("topic query failed", "topic", topic, "error", err)
		return models.SearchResult{
			Topic: topic,
			Error: err.Error(),
		}
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Score > articles[j].Score
	})

	images := make([]models.ChartImage, 0, len(imageURLs))
	for _, url := range imageURLs {
		images = append(images, a.validateImage(ctx, url))
	}

	return models.SearchResult{
		Topic:    topic,
		Articles: articles,
		Images:   images,
		Success:  true,
	}
}

// validateImage fetches a candidate chart and checks it decodes to a
// recognized format with non-zero dimensions. Results are cached per URL so
// a chart surfaced by several topics is checked once.
func (a *Aggregator) validateImage(ctx context.Context, url string) models.ChartImage {
	if img, ok := a.images.Get(url); ok {
		return img
	}

	img := models.ChartImage{
		ID:  sources.GenerateHash(url)[:16],
		URL: url,
	}

	data, err := a.fetcher.Fetch(ctx, url)
	switch {
	case err != nil:
		img.Reason = fmt.Sprintf("download failed: %v", err)
	case len(data) == 0:
		img.Reason = "empty payload"
	default:
		cfg, format, decErr := image.DecodeConfig(bytes.NewReader(data))
		switch {
		case decErr != nil:
			img.Reason = fmt.Sprintf("unrecognized format: %v", decErr)
		case cfg.Width == 0 || cfg.Height == 0:
			img.Reason = "zero-dimension image"
		default:
			img.Data = data
			img.Format = format
			img.Valid = true
		}
	}

	if !img.Valid {
		a.log.Debug("image rejected", "url", url, "reason", img.Reason)
	}

	a.images.Put(img)
	return img
}

// dedupeArticles enforces the run-wide uniqueness invariant: no two articles
// in the merged set share a content hash.
func (a *Aggregator) dedupeArticles(results []models.SearchResult) {
	seen := make(map[string]struct{})
	for i := range results {
		kept := results[i].Articles[:0]
		for _, article := range results[i].Articles {
			if _, dup := seen[article.Hash]; dup {
				continue
			}
			seen[article.Hash] = struct{}{}
			kept = append(kept, article)
		}
		results[i].Articles = kept
	}
}

func (a *Aggregator) dedupeImages(results []models.SearchResult) {
	seen := make(map[string]struct{})
	for i := range results {
		kept := results[i].Images[:0]
		for _, img := range results[i].Images {
			if _, dup := seen[img.URL]; dup {
				continue
			}
			seen[img.URL] = struct{}{}
			kept = append(kept, img)
		}
		results[i].Images = kept
	}
}

// AllFailed reports whether every topic query failed.
func AllFailed(results []models.SearchResult) bool {
	for _, r := range results {
		if r.Success {
			return false
		}
	}
	return true
}

// CountArticles returns the number of unique articles across all topics.
func CountArticles(results []models.SearchResult) int {
	n := 0
	for _, r := range results {
		n += len(r.Articles)
	}
	return n
}

// MergedArticles flattens the deduplicated result set in topic order.
func MergedArticles(results []models.SearchResult) []models.Article {
	var merged []models.Article
	for _, r := range results {
		merged = append(merged, r.Articles...)
	}
	return merged
}

// ValidImages returns validated images in topic priority order.
func ValidImages(results []models.SearchResult) []models.ChartImage {
	var valid []models.ChartImage
	for _, r := range results {
		for _, img := range r.Images {
			if img.Valid {
				valid = append(valid, img)
			}
		}
	}
	return valid
}
