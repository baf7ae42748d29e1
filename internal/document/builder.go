package document

import (
	"fmt"
	"time"

	"github.com/avandyk/marketbrief/internal/models"
)

// Builder assembles the terminal AnalysisDocument from the multilingual
// blocks and the aggregated search results. Total failure is decided before
// this stage; the builder only distinguishes complete from degraded.
type Builder struct {
	maxImages int
}

func NewBuilder(maxImages int) *Builder {
	return &Builder{maxImages: maxImages}
}

// Build merges blocks, the selected chart subset, and every non-fatal
// warning accumulated upstream into one document. Blocks must arrive in
// configured order with English first.
func (b *Builder) Build(now time.Time, blocks []models.LanguageBlock, results []models.SearchResult) models.AnalysisDocument {
	doc := models.AnalysisDocument{
		GeneratedAt: now,
		Blocks:      blocks,
		Images:      b.selectImages(results),
		Warnings:    collectWarnings(blocks, results),
	}

	doc.Status = models.StatusComplete
	if len(doc.Images) == 0 {
		doc.Status = models.StatusDegraded
	}
	for _, block := range blocks {
		if block.Provenance.Fallback {
			doc.Status = models.StatusDegraded
			break
		}
	}

	return doc
}

// selectImages takes the first maxImages valid charts in topic priority
// order. Invalid candidates were kept in the results for diagnostics and are
// dropped here.
func (b *Builder) selectImages(results []models.SearchResult) []models.ChartImage {
	selected := make([]models.ChartImage, 0, b.maxImages)
	for _, r := range results {
		for _, img := range r.Images {
			if len(selected) >= b.maxImages {
				return selected
			}
			if img.Valid {
				selected = append(selected, img)
			}
		}
	}
	return selected
}

func collectWarnings(blocks []models.LanguageBlock, results []models.SearchResult) []string {
	var warnings []string

	for _, r := range results {
		if !r.Success {
			warnings = append(warnings, fmt.Sprintf("topic %q failed: %s", r.Topic, r.Error))
		}
		for _, img := range r.Images {
			if !img.Valid {
				warnings = append(warnings, fmt.Sprintf("image %s rejected: %s", img.URL, img.Reason))
			}
		}
	}

	for _, block := range blocks {
		if block.Provenance.Fallback {
			warnings = append(warnings, fmt.Sprintf("language %s used static fallback content after %d attempts", block.Language.Code, block.Provenance.Attempts))
		}
	}

	return warnings
}
