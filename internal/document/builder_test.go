package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avandyk/marketbrief/internal/models"
)

func liveBlock(code string) models.LanguageBlock {
	return models.LanguageBlock{
		Language:   models.Language{Code: code, Direction: models.LeftToRight},
		Insights:   []string{"a", "b"},
		Provenance: models.Provenance{Backend: "openai", Attempts: 1},
	}
}

func fallbackBlock(code string, attempts int) models.LanguageBlock {
	return models.LanguageBlock{
		Language:   models.Language{Code: code, Direction: models.RightToLeft},
		Insights:   []string{"a", "b"},
		Provenance: models.Provenance{Backend: "static-fallback", Attempts: attempts, Fallback: true},
	}
}

func validImage(id string) models.ChartImage {
	return models.ChartImage{ID: id, URL: "http://x/" + id + ".png", Format: "png", Valid: true}
}

func TestBuildCompleteDocument(t *testing.T) {
	now := time.Now()
	blocks := []models.LanguageBlock{liveBlock("en"), liveBlock("ar")}
	results := []models.SearchResult{
		{Topic: "t1", Success: true, Images: []models.ChartImage{validImage("i1")}},
	}

	doc := NewBuilder(6).Build(now, blocks, results)

	require.Equal(t, models.StatusComplete, doc.Status)
	require.Equal(t, now, doc.GeneratedAt)
	require.Len(t, doc.Images, 1)
	require.Empty(t, doc.Warnings)
}

func TestBuildDegradedWhenAnyBlockFellBack(t *testing.T) {
	blocks := []models.LanguageBlock{liveBlock("en"), fallbackBlock("ar", 6)}
	results := []models.SearchResult{
		{Topic: "t1", Success: true, Images: []models.ChartImage{validImage("i1")}},
	}

	doc := NewBuilder(6).Build(time.Now(), blocks, results)

	require.Equal(t, models.StatusDegraded, doc.Status)
	require.Contains(t, doc.Warnings, "language ar used static fallback content after 6 attempts")
}

func TestBuildDegradedWithoutImages(t *testing.T) {
	blocks := []models.LanguageBlock{liveBlock("en")}
	results := []models.SearchResult{{Topic: "t1", Success: true}}

	doc := NewBuilder(6).Build(time.Now(), blocks, results)

	require.Equal(t, models.StatusDegraded, doc.Status)
	require.Empty(t, doc.Images)
}

func TestSelectImagesCapsAndKeepsTopicPriority(t *testing.T) {
	results := []models.SearchResult{
		{Topic: "t1", Success: true, Images: []models.ChartImage{
			validImage("a1"),
			{ID: "a2", URL: "http://x/a2.png", Valid: false, Reason: "empty payload"},
			validImage("a3"),
		}},
		{Topic: "t2", Success: true, Images: []models.ChartImage{
			validImage("b1"),
			validImage("b2"),
		}},
	}

	doc := NewBuilder(3).Build(time.Now(), []models.LanguageBlock{liveBlock("en")}, results)

	require.Len(t, doc.Images, 3)
	require.Equal(t, "a1", doc.Images[0].ID)
	require.Equal(t, "a3", doc.Images[1].ID)
	require.Equal(t, "b1", doc.Images[2].ID)
}

func TestBuildCollectsNonFatalWarnings(t *testing.T) {
	results := []models.SearchResult{
		{Topic: "fed policy", Success: false, Error: "status 502"},
		{Topic: "t2", Success: true, Images: []models.ChartImage{
			validImage("ok"),
			{URL: "http://bad/x.png", Valid: false, Reason: "unrecognized format: image: unknown format"},
		}},
	}
	blocks := []models.LanguageBlock{liveBlock("en"), fallbackBlock("he", 3)}

	doc := NewBuilder(6).Build(time.Now(), blocks, results)

	require.Equal(t, models.StatusDegraded, doc.Status)
	require.Contains(t, doc.Warnings, `topic "fed policy" failed: status 502`)
	require.Contains(t, doc.Warnings, "image http://bad/x.png rejected: unrecognized format: image: unknown format")
	require.Contains(t, doc.Warnings, "language he used static fallback content after 3 attempts")
	require.Len(t, doc.Warnings, 3)
}

func TestEnglishBlock(t *testing.T) {
	doc := models.AnalysisDocument{Blocks: []models.LanguageBlock{liveBlock("en"), liveBlock("hi")}}
	block, ok := doc.EnglishBlock()
	require.True(t, ok)
	require.Equal(t, "en", block.Language.Code)

	empty := models.AnalysisDocument{}
	_, ok = empty.EnglishBlock()
	require.False(t, ok)
}
