package render

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avandyk/marketbrief/internal/models"
)

func sampleDocument(t *testing.T) *models.AnalysisDocument {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	return &models.AnalysisDocument{
		GeneratedAt: time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC),
		Blocks: []models.LanguageBlock{
			{
				Language:   models.Language{Code: "en", Name: "English", Direction: models.LeftToRight},
				Insights:   []string{"S&P 500 rose 1.2%.", "Fed held rates steady."},
				Provenance: models.Provenance{Backend: "openai", Attempts: 1},
			},
			{
				Language:   models.Language{Code: "ar", Name: "Arabic", Direction: models.RightToLeft},
				Insights:   []string{"ارتفع مؤشر إس آند بي 500.", "ثبت الفيدرالي أسعار الفائدة."},
				Provenance: models.Provenance{Backend: "static-fallback", Attempts: 6, Fallback: true},
			},
		},
		Images: []models.ChartImage{
			{ID: "img1", URL: "http://x/1.png", Data: buf.Bytes(), Format: "png", Valid: true},
		},
		Status:   models.StatusDegraded,
		Warnings: []string{"language ar used static fallback content after 6 attempts"},
	}
}

func TestRenderText(t *testing.T) {
	doc := sampleDocument(t)
	path := filepath.Join(t.TempDir(), "summary.txt")

	require.NoError(t, RenderText(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	require.Contains(t, text, "Daily Financial Market Summary - 2026-08-23 14:30")
	require.Contains(t, text, "ENGLISH SUMMARY (ltr):")
	require.Contains(t, text, "ARABIC SUMMARY (rtl):")
	require.Contains(t, text, "1. S&P 500 rose 1.2%.")
	require.Contains(t, text, "ارتفع مؤشر")
	require.Contains(t, text, "(placeholder content: live generation was unavailable)")
	require.Contains(t, text, "NOTES:")
	require.Contains(t, text, "- language ar used static fallback content after 6 attempts")
}

func TestRenderJSONRoundTrip(t *testing.T) {
	doc := sampleDocument(t)
	path := filepath.Join(t.TempDir(), "analysis.json")

	require.NoError(t, RenderJSON(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.AnalysisDocument
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Equal(t, models.StatusDegraded, decoded.Status)
	require.Len(t, decoded.Blocks, 2)
	require.Equal(t, models.RightToLeft, decoded.Blocks[1].Language.Direction)
	require.Empty(t, decoded.Images[0].Data, "image payloads stay out of the json artifact")
	require.Equal(t, "http://x/1.png", decoded.Images[0].URL)
}

func TestPDFRenderWithoutUnicodeFont(t *testing.T) {
	doc := sampleDocument(t)
	path := filepath.Join(t.TempDir(), "report.pdf")
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	require.NoError(t, NewPDFRenderer("", log).Render(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
