package render

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/avandyk/marketbrief/internal/models"
)

// RenderText writes a plain UTF-8 rendition of every language block, which
// always carries the full translated content regardless of PDF font support.
func RenderText(doc *models.AnalysisDocument, path string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Daily Financial Market Summary - %s\n", doc.GeneratedAt.Format("2006-01-02 15:04"))
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, block := range doc.Blocks {
		fmt.Fprintf(&sb, "%s SUMMARY (%s):\n", strings.ToUpper(block.Language.Name), block.Language.Direction)
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for i, insight := range block.Insights {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, insight)
		}
		if block.Provenance.Fallback {
			sb.WriteString("(placeholder content: live generation was unavailable)\n")
		}
		sb.WriteString("\n")
	}

	if len(doc.Warnings) > 0 {
		sb.WriteString("NOTES:\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for _, warning := range doc.Warnings {
			fmt.Fprintf(&sb, "- %s\n", warning)
		}
	}

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// RenderJSON writes the full document for downstream consumers.
func RenderJSON(doc *models.AnalysisDocument, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
