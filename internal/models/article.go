package models

import (
	"context"
	"time"
)

// Article is one deduplicated news item. Immutable once created; Hash is the
// normalized-content hash used as the uniqueness key across the whole run.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Topic       string    `json:"topic"`
	Score       float64   `json:"score"`
	PublishedAt time.Time `json:"published_at"`
	RetrievedAt time.Time `json:"retrieved_at"`
	Hash        string    `json:"hash"`
}

// ChartImage is a candidate chart for the report. Invalid images stay in the
// record for diagnostics and are dropped only at document assembly.
type ChartImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Data   []byte `json:"-"`
	Format string `json:"format"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// SearchResult holds everything one topic query produced. Topics run
// independently; a failed topic yields Success=false and an Error, never an
// aborted run on its own.
type SearchResult struct {
	Topic    string       `json:"topic"`
	Articles []Article    `json:"articles"`
	Images   []ChartImage `json:"images"`
	Success  bool         `json:"success"`
	Error    string       `json:"error,omitempty"`
}

// SearchProvider is the boundary to a search service.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]Article, []string, error)
	GetName() string
}

// ImageFetcher is the boundary to image retrieval.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
