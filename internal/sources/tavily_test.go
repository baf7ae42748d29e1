package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizedHashCollapsesTrivialDifferences(t *testing.T) {
	base := NormalizedHash("Fed Holds Rates Steady, Markets Rally")

	same := []string{
		"fed holds rates steady markets rally",
		"Fed holds rates steady; markets rally!",
		"  Fed   Holds Rates Steady,   Markets Rally  ",
		"FED HOLDS RATES STEADY - MARKETS RALLY",
	}
	for _, s := range same {
		require.Equal(t, base, NormalizedHash(s), "variant %q", s)
	}

	require.NotEqual(t, base, NormalizedHash("Fed holds rates steady, markets fall"))
}

func TestGenerateHashIsStable(t *testing.T) {
	require.Equal(t, GenerateHash("abc"), GenerateHash("abc"))
	require.NotEqual(t, GenerateHash("abc"), GenerateHash("abd"))
	require.Len(t, GenerateHash("abc"), 64)
}

func tavilyFixture(results int, images []string) map[string]any {
	items := make([]map[string]any, 0, results)
	for i := 0; i < results; i++ {
		items = append(items, map[string]any{
			"title":          "Story " + string(rune('A'+i)),
			"url":            "https://www.reuters.com/markets/" + string(rune('a'+i)),
			"content":        "content body",
			"score":          0.9 - float64(i)*0.1,
			"published_date": "2026-08-21T14:00:00Z",
		})
	}
	return map[string]any{"results": items, "images": images}
}

func TestSearchCapsArticlesAndImages(t *testing.T) {
	var captured tavilyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		images := make([]string, 12)
		for i := range images {
			images[i] = "https://charts.example.com/" + string(rune('a'+i)) + ".png"
		}
		require.NoError(t, json.NewEncoder(w).Encode(tavilyFixture(8, images)))
	}))
	defer srv.Close()

	client := NewTavilyClient("tvly-test", time.Second)
	client.endpoint = srv.URL

	articles, images, err := client.Search(context.Background(), "fed policy")
	require.NoError(t, err)

	require.Len(t, articles, maxArticlesPerQuery)
	require.Len(t, images, maxImagesPerQuery)

	require.Equal(t, "tvly-test", captured.APIKey)
	require.Contains(t, captured.Query, "fed policy")
	require.Contains(t, captured.Query, "US financial markets")
	require.Equal(t, "advanced", captured.SearchDepth)
	require.True(t, captured.IncludeImages)
	require.Contains(t, captured.IncludeDomains, "reuters.com")
}

func TestSearchPopulatesArticleFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(tavilyFixture(1, nil)))
	}))
	defer srv.Close()

	client := NewTavilyClient("tvly-test", time.Second)
	client.endpoint = srv.URL

	articles, _, err := client.Search(context.Background(), "earnings")
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	require.Equal(t, "Story A", a.Title)
	require.Equal(t, "earnings", a.Topic)
	require.Equal(t, 0.9, a.Score)
	require.Equal(t, 2026, a.PublishedAt.Year())
	require.NotEmpty(t, a.Hash)
	require.Regexp(t, `^tavily_[0-9a-f]{16}$`, a.ID)
	require.Equal(t, NormalizedHash(a.Title+" "+a.Content), a.Hash)
}

func TestSearchReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewTavilyClient("tvly-test", time.Second)
	client.endpoint = srv.URL

	_, _, err := client.Search(context.Background(), "q")
	require.ErrorContains(t, err, "status 502")
}
