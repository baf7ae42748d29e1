package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/avandyk/marketbrief/internal/models"
)

const pdfFontFamily = "report"

// PDFRenderer writes an AnalysisDocument as a multilingual PDF report. A
// UTF-8 TTF font is required for non-Latin scripts; without one, non-English
// sections degrade to a written notice pointing at the text output.
type PDFRenderer struct {
	fontPath string
	log      *slog.Logger
}

func NewPDFRenderer(fontPath string, log *slog.Logger) *PDFRenderer {
	return &PDFRenderer{fontPath: fontPath, log: log}
}

// Render writes the report to path.
func (r *PDFRenderer) Render(doc *models.AnalysisDocument, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)

	family := "Arial"
	unicodeOK := false
	if r.fontPath != "" {
		pdf.AddUTF8Font(pdfFontFamily, "", r.fontPath)
		pdf.AddUTF8Font(pdfFontFamily, "B", r.fontPath)
		if pdf.Err() {
			r.log.Warn("UTF-8 font unusable, falling back to core font", "path", r.fontPath, "error", pdf.Error())
			pdf = fpdf.New("P", "mm", "A4", "")
			pdf.SetMargins(15, 15, 15)
			pdf.SetAutoPageBreak(true, 15)
		} else {
			family = pdfFontFamily
			unicodeOK = true
		}
	}

	pdf.AddPage()

	pdf.SetFont(family, "B", 18)
	pdf.CellFormat(0, 12, "Daily Financial Market Summary", "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", doc.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for i, block := range doc.Blocks {
		if !unicodeOK && block.Language.Code != "en" {
			pdf.SetFont(family, "B", 13)
			pdf.CellFormat(0, 9, fmt.Sprintf("%s Summary", block.Language.Name), "", 1, "L", false, 0, "")
			pdf.SetFont(family, "", 10)
			pdf.MultiCell(0, 6, "This section requires a Unicode font (set PDF_FONT_PATH). See the text output for the translated content.", "", "L", false)
			pdf.Ln(4)
			continue
		}

		r.writeBlock(pdf, family, block)

		// Charts go after the English section, as in the source report.
		if i == 0 {
			r.writeImages(pdf, doc.Images)
		}
	}

	if len(doc.Warnings) > 0 {
		pdf.SetFont(family, "B", 11)
		pdf.CellFormat(0, 8, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont(family, "", 8)
		for _, warning := range doc.Warnings {
			pdf.MultiCell(0, 5, "- "+warning, "", "L", false)
		}
	}

	pdf.SetFont(family, "", 8)
	pdf.Ln(4)
	pdf.MultiCell(0, 5, "This report is generated automatically and is not investment advice.", "", "L", false)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func (r *PDFRenderer) writeBlock(pdf *fpdf.Fpdf, family string, block models.LanguageBlock) {
	align := "L"
	if block.Language.Direction == models.RightToLeft {
		align = "R"
	}

	pdf.SetFont(family, "B", 13)
	pdf.CellFormat(0, 9, fmt.Sprintf("%s Summary", block.Language.Name), "", 1, align, false, 0, "")

	pdf.SetFont(family, "", 10)
	for i, insight := range block.Insights {
		line := fmt.Sprintf("%d. %s", i+1, insight)
		pdf.MultiCell(0, 6, line, "", align, false)
	}

	if block.Provenance.Fallback {
		pdf.SetFont(family, "", 8)
		pdf.MultiCell(0, 5, "(placeholder content: live generation was unavailable)", "", align, false)
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) writeImages(pdf *fpdf.Fpdf, images []models.ChartImage) {
	for _, img := range images {
		opts := fpdf.ImageOptions{ImageType: strings.ToUpper(img.Format), ReadDpi: true}
		pdf.RegisterImageOptionsReader(img.ID, opts, bytes.NewReader(img.Data))
		if pdf.Err() {
			r.log.Warn("could not embed chart", "url", img.URL, "error", pdf.Error())
			pdf.ClearError()
			continue
		}
		pdf.ImageOptions(img.ID, 15, -1, 120, 0, true, opts, 0, "")
		pdf.Ln(4)
	}
}
