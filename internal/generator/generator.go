package generator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/avandyk/marketbrief/internal/llm"
	"github.com/avandyk/marketbrief/internal/models"
)

const (
	summaryMaxTokens     = 1024
	translationMaxTokens = 1536
)

// TextGenerator is what the generator needs from the LLM gateway.
type TextGenerator interface {
	Generate(ctx context.Context, req llm.Request) llm.Result
}

// Generator turns aggregated articles into an English insight list and
// translates it into the configured target languages. Every translation is
// sourced from the English block, never chained through another language.
type Generator struct {
	gateway      TextGenerator
	insightCount int
	maxArticles  int
	log          *slog.Logger
}

func New(gateway TextGenerator, insightCount, maxArticles int, log *slog.Logger) *Generator {
	return &Generator{
		gateway:      gateway,
		insightCount: insightCount,
		maxArticles:  maxArticles,
		log:          log,
	}
}

// Summarize produces the English LanguageBlock from the merged article set.
// The prompt context is bounded by maxArticles, dropping the oldest articles
// first when over budget.
func (g *Generator) Summarize(ctx context.Context, articles []models.Article, english models.Language) models.LanguageBlock {
	bounded := boundArticles(articles, g.maxArticles)

	result := g.gateway.Generate(ctx, llm.Request{
		System:      "You are a senior financial market analyst. You distill complex market information into clear, actionable insights for traders and investors.",
		Prompt:      g.buildSummaryPrompt(bounded),
		MaxTokens:   summaryMaxTokens,
		FallbackKey: english.Code,
	})

	insights := ParseInsights(result.Text, g.insightCount)
	g.log.Info("english summary generated",
		"backend", result.Provenance.Backend,
		"attempts", result.Provenance.Attempts,
		"insights", len(insights))

	return models.LanguageBlock{
		Language:   english,
		Insights:   insights,
		Provenance: result.Provenance,
	}
}

// Translate produces one target-language block from the English block. The
// target's directionality comes from its configuration, never from content.
// A count mismatch against the English source is repaired by truncating or
// padding with the corresponding English insights.
func (g *Generator) Translate(ctx context.Context, english models.LanguageBlock, target models.Language) models.LanguageBlock {
	result := g.gateway.Generate(ctx, llm.Request{
		System:      "You are a professional financial translator. You preserve financial terminology, numbered structure, and numerical data exactly.",
		Prompt:      g.buildTranslationPrompt(english, target),
		MaxTokens:   translationMaxTokens,
		FallbackKey: target.Code,
	})

	insights := ParseInsights(result.Text, len(english.Insights))
	insights = matchCount(insights, english.Insights)

	return models.LanguageBlock{
		Language:   target,
		Insights:   insights,
		Provenance: result.Provenance,
	}
}

// TranslateAll runs every non-English translation concurrently and returns
// blocks in the order of targets. It must only be called once the English
// block exists; translation is defined as English-sourced.
func (g *Generator) TranslateAll(ctx context.Context, english models.LanguageBlock, targets []models.Language) []models.LanguageBlock {
	blocks := make([]models.LanguageBlock, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target models.Language) {
			defer wg.Done()
			blocks[i] = g.Translate(ctx, english, target)
		}(i, target)
	}
	wg.Wait()

	return blocks
}

func (g *Generator) buildSummaryPrompt(articles []models.Article) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze these financial news articles and produce exactly %d numbered key insights about today's US markets.\n", g.insightCount)
	sb.WriteString("Each insight must be one self-contained sentence on its own line, formatted as \"1. ...\" through ")
	fmt.Fprintf(&sb, "\"%d. ...\".\n", g.insightCount)
	sb.WriteString("Do not use markdown emphasis, headers, or prose paragraphs.\n\nArticles:\n\n")

	for i, article := range articles {
		fmt.Fprintf(&sb, "Article %d (%s):\n", i+1, article.Topic)
		fmt.Fprintf(&sb, "Title: %s\n", article.Title)
		fmt.Fprintf(&sb, "Content: %s\n\n", truncate(article.Content, 400))
	}

	return sb.String()
}

func (g *Generator) buildTranslationPrompt(english models.LanguageBlock, target models.Language) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate the following %d numbered financial insights into %s.\n", len(english.Insights), target.Name)
	sb.WriteString("Keep exactly the same number of items in the same order. ")
	sb.WriteString("Use accurate financial terminology and preserve all numerical data exactly. ")
	sb.WriteString("Output only the numbered list, one item per line, no markdown emphasis.\n\n")

	for i, insight := range english.Insights {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, insight)
	}

	return sb.String()
}

// boundArticles enforces the prompt-size budget, dropping the oldest
// articles first.
func boundArticles(articles []models.Article, max int) []models.Article {
	if max <= 0 || len(articles) <= max {
		return articles
	}

	byAge := make([]models.Article, len(articles))
	copy(byAge, articles)
	sort.SliceStable(byAge, func(i, j int) bool {
		return byAge[i].PublishedAt.After(byAge[j].PublishedAt)
	})
	keep := make(map[string]struct{}, max)
	for _, a := range byAge[:max] {
		keep[a.Hash] = struct{}{}
	}

	bounded := make([]models.Article, 0, max)
	for _, a := range articles {
		if _, ok := keep[a.Hash]; ok {
			bounded = append(bounded, a)
		}
	}
	return bounded
}

// matchCount repairs a translated list whose length drifted from the English
// source: extra items are truncated, missing items are padded with the
// untranslated English insight so positions stay aligned.
func matchCount(insights, english []string) []string {
	if len(insights) > len(english) {
		return insights[:len(english)]
	}
	for i := len(insights); i < len(english); i++ {
		insights = append(insights, english[i])
	}
	return insights
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
