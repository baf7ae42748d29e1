package models

import "time"

// Direction is the text layout direction of a language block. It is carried
// as metadata so renderers never have to infer it from content.
type Direction string

const (
	LeftToRight Direction = "ltr"
	RightToLeft Direction = "rtl"
)

// Language pairs a BCP-47-ish code with its script direction and a display
// name used in report headings.
type Language struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Direction Direction `json:"direction"`
}

// Provenance records which backend produced a piece of generated text and at
// what retry cost.
type Provenance struct {
	Backend  string `json:"backend"`
	Attempts int    `json:"attempts"`
	Fallback bool   `json:"fallback"`
}

// LanguageBlock is the generated or translated content for one language:
// an ordered list of numbered insights plus directionality metadata.
type LanguageBlock struct {
	Language   Language   `json:"language"`
	Insights   []string   `json:"insights"`
	Provenance Provenance `json:"provenance"`
}

// DocumentStatus classifies the terminal artifact of one run.
type DocumentStatus string

const (
	StatusComplete DocumentStatus = "complete"
	StatusDegraded DocumentStatus = "degraded"
)

// AnalysisDocument is the terminal artifact of the pipeline: multilingual
// blocks (English first), the selected chart subset, and every non-fatal
// warning accumulated upstream.
type AnalysisDocument struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Blocks      []LanguageBlock `json:"blocks"`
	Images      []ChartImage    `json:"images"`
	Status      DocumentStatus  `json:"status"`
	Warnings    []string        `json:"warnings"`
}

// EnglishBlock returns the English block, which is always first when present.
func (d *AnalysisDocument) EnglishBlock() (LanguageBlock, bool) {
	if len(d.Blocks) == 0 {
		return LanguageBlock{}, false
	}
	return d.Blocks[0], true
}
