package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/avandyk/marketbrief/internal/aggregator"
	"github.com/avandyk/marketbrief/internal/cache"
	"github.com/avandyk/marketbrief/internal/config"
	"github.com/avandyk/marketbrief/internal/document"
	"github.com/avandyk/marketbrief/internal/generator"
	"github.com/avandyk/marketbrief/internal/llm"
	"github.com/avandyk/marketbrief/internal/logger"
	"github.com/avandyk/marketbrief/internal/pipeline"
	"github.com/avandyk/marketbrief/internal/render"
	"github.com/avandyk/marketbrief/internal/sources"
	"github.com/avandyk/marketbrief/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "marketbrief: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New("marketbrief", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	backends, err := llm.BuildBackends(ctx, cfg, log)
	if err != nil {
		return err
	}

	fallback := llm.DefaultFallbackTable()
	gateway := llm.NewGateway(backends, llm.Options{
		MaxAttempts:    cfg.BackendMaxAttempts,
		InitialBackoff: cfg.BackendInitialBackoff,
		MaxBackoff:     cfg.BackendMaxBackoff,
		MinLength:      cfg.MinGenerationLength,
	}, fallback, log)

	agg := aggregator.New(
		sources.NewTavilyClient(cfg.TavilyAPIKey, cfg.RequestTimeout),
		sources.NewHTTPImageFetcher(cfg.RequestTimeout),
		cache.New(24*time.Hour),
		log,
	)
	gen := generator.New(gateway, cfg.InsightCount, cfg.MaxArticlesPerPrompt, log)
	builder := document.NewBuilder(cfg.MaxImagesPerDocument)

	pipe := pipeline.New(agg, gen, builder, fallback, cfg.Topics, cfg.Languages, log)

	log.Info("starting analysis run", "topics", len(cfg.Topics), "languages", len(cfg.Languages))
	doc, err := pipe.Run(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoData) {
			return fmt.Errorf("run aborted: %w", err)
		}
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	stamp := doc.GeneratedAt.Format("20060102_150405")
	pdfPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("financial_report_%s.pdf", stamp))
	textPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("readable_summary_%s.txt", stamp))
	jsonPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("complete_analysis_%s.json", stamp))

	if err := render.NewPDFRenderer(cfg.PDFFontPath, log).Render(doc, pdfPath); err != nil {
		log.Error("pdf rendering failed", "error", err)
	} else {
		log.Info("pdf report written", "path", pdfPath)
	}
	if err := render.RenderText(doc, textPath); err != nil {
		log.Error("text rendering failed", "error", err)
	}
	if err := render.RenderJSON(doc, jsonPath); err != nil {
		log.Error("json rendering failed", "error", err)
	}

	if cfg.TelegramToken == "" || cfg.TelegramChannelID == "" {
		log.Warn("telegram not configured, skipping delivery")
	} else {
		notifier, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChannelID)
		if err != nil {
			log.Error("telegram setup failed", "error", err)
		} else if err := notifier.SendReport(doc); err != nil {
			log.Error("telegram delivery failed", "error", err)
		} else {
			log.Info("report delivered to telegram", "channel", cfg.TelegramChannelID)
		}
	}

	log.Info("analysis run finished", "status", doc.Status, "warnings", len(doc.Warnings))
	return nil
}
