package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avandyk/marketbrief/internal/models"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// financialDomains restricts results to established market-news outlets.
var financialDomains = []string{
	"reuters.com",
	"bloomberg.com",
	"cnbc.com",
	"marketwatch.com",
	"yahoo.com",
	"finviz.com",
}

const (
	maxArticlesPerQuery = 5
	maxImagesPerQuery   = 10
)

type TavilyClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

type tavilyRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	IncludeImages  bool     `json:"include_images"`
}

type tavilyResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		Score         float64 `json:"score"`
		PublishedDate string  `json:"published_date"`
	} `json:"results"`
	Images []string `json:"images"`
}

func NewTavilyClient(apiKey string, timeout time.Duration) *TavilyClient {
	return &TavilyClient{
		apiKey:   apiKey,
		endpoint: tavilyEndpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search runs one topic query and returns scored articles plus candidate
// chart image URLs. The query is widened with a market-context qualifier so
// narrow topics still land on financial coverage.
func (c *TavilyClient) Search(ctx context.Context, query string) ([]models.Article, []string, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:         c.apiKey,
		Query:          fmt.Sprintf("%s US financial markets stock market", query),
		SearchDepth:    "advanced",
		MaxResults:     10,
		IncludeDomains: financialDomains,
		IncludeImages:  true,
	})
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	var apiResp tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	articles := make([]models.Article, 0, len(apiResp.Results))
	for _, result := range apiResp.Results {
		if len(articles) >= maxArticlesPerQuery {
			break
		}

		publishedAt, _ := time.Parse(time.RFC3339, result.PublishedDate)

		articles = append(articles, models.Article{
			ID:          fmt.Sprintf("tavily_%s", GenerateHash(result.URL)[:16]),
			Title:       result.Title,
			Content:     result.Content,
			URL:         result.URL,
			Topic:       query,
			Score:       result.Score,
			PublishedAt: publishedAt,
			RetrievedAt: now,
			Hash:        NormalizedHash(result.Title + " " + result.Content),
		})
	}

	images := apiResp.Images
	if len(images) > maxImagesPerQuery {
		images = images[:maxImagesPerQuery]
	}

	return articles, images, nil
}

func (c *TavilyClient) GetName() string {
	return "tavily"
}
