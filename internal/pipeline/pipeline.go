package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avandyk/marketbrief/internal/aggregator"
	"github.com/avandyk/marketbrief/internal/document"
	"github.com/avandyk/marketbrief/internal/llm"
	"github.com/avandyk/marketbrief/internal/models"
)

// State is one phase of a pipeline run. Transitions are one-way; there is no
// retry loop at this level — retries live inside the LLM gateway.
type State string

const (
	StateInit        State = "INIT"
	StateCollecting  State = "COLLECTING"
	StateGenerating  State = "GENERATING"
	StateTranslating State = "TRANSLATING"
	StateAssembling  State = "ASSEMBLING"
	StateDone        State = "DONE"
	StateAborted     State = "ABORTED"
)

// ErrNoData is returned when aggregation produced nothing to analyze: zero
// articles and zero valid images.
var ErrNoData = errors.New("no articles or images to analyze")

// Collector yields one SearchResult per topic.
type Collector interface {
	Collect(ctx context.Context, topics []string) []models.SearchResult
}

// Summarizer produces the English block and its translations.
type Summarizer interface {
	Summarize(ctx context.Context, articles []models.Article, english models.Language) models.LanguageBlock
	TranslateAll(ctx context.Context, english models.LanguageBlock, targets []models.Language) []models.LanguageBlock
}

// Pipeline sequences collection, generation, translation and assembly for
// one snapshot run. Every failure mode degrades except the zero-data
// condition, which aborts.
type Pipeline struct {
	collector Collector
	generator Summarizer
	builder   *document.Builder
	fallback  llm.FallbackTable
	topics    []string
	languages []models.Language
	log       *slog.Logger
	state     State
}

func New(collector Collector, gen Summarizer, builder *document.Builder, fallback llm.FallbackTable, topics []string, languages []models.Language, log *slog.Logger) *Pipeline {
	return &Pipeline{
		collector: collector,
		generator: gen,
		builder:   builder,
		fallback:  fallback,
		topics:    topics,
		languages: languages,
		log:       log,
		state:     StateInit,
	}
}

// State reports the current pipeline phase.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes one pipeline pass and returns either a document (complete or
// degraded) or, for the zero-data condition only, an error naming every
// topic failure.
func (p *Pipeline) Run(ctx context.Context) (*models.AnalysisDocument, error) {
	p.transition(StateCollecting)
	results := p.collector.Collect(ctx, p.topics)

	articles := aggregator.MergedArticles(results)
	images := aggregator.ValidImages(results)
	if len(articles) == 0 && len(images) == 0 {
		p.transition(StateAborted)
		return nil, fmt.Errorf("%w: %s", ErrNoData, describeFailures(results))
	}
	p.log.Info("collection finished", "articles", len(articles), "valid_images", len(images))

	p.transition(StateGenerating)
	english := p.summarizeEnglish(ctx, articles)

	p.transition(StateTranslating)
	translations := p.generator.TranslateAll(ctx, english, p.languages[1:])

	p.transition(StateAssembling)
	blocks := append([]models.LanguageBlock{english}, translations...)
	doc := p.builder.Build(time.Now(), blocks, results)

	p.transition(StateDone)
	p.log.Info("pipeline finished", "status", doc.Status, "warnings", len(doc.Warnings))
	return &doc, nil
}

// summarizeEnglish runs live generation when there is source material. With
// zero articles there is nothing to summarize, so the static fallback is used
// directly instead of spending backend quota on an empty prompt.
func (p *Pipeline) summarizeEnglish(ctx context.Context, articles []models.Article) models.LanguageBlock {
	english := p.languages[0]

	if len(articles) == 0 {
		p.log.Warn("no articles collected, summarizing from static fallback")
		return models.LanguageBlock{
			Language: english,
			Insights: splitFallback(p.fallback.Lookup(english.Code)),
			Provenance: models.Provenance{
				Backend:  llm.FallbackName,
				Fallback: true,
			},
		}
	}

	return p.generator.Summarize(ctx, articles, english)
}

func (p *Pipeline) transition(next State) {
	p.log.Debug("state transition", "from", string(p.state), "to", string(next))
	p.state = next
}

func describeFailures(results []models.SearchResult) string {
	var parts []string
	for _, r := range results {
		if !r.Success {
			parts = append(parts, fmt.Sprintf("topic %q: %s", r.Topic, r.Error))
		} else {
			parts = append(parts, fmt.Sprintf("topic %q: empty result", r.Topic))
		}
	}
	return strings.Join(parts, "; ")
}

func splitFallback(text string) []string {
	var insights []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i := strings.Index(line, ". "); i > 0 && i <= 3 {
			line = line[i+2:]
		}
		insights = append(insights, line)
	}
	return insights
}
