package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/askpage/askpage/pkg/cache"
	cfgPkg "github.com/askpage/askpage/pkg/config"
	"github.com/askpage/askpage/pkg/fetcher"
	"github.com/askpage/askpage/pkg/llm"
	"github.com/askpage/askpage/pkg/qa"
	"github.com/askpage/askpage/pkg/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	config, err := parseFlags()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	if err := run(config, logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func parseFlags() (*cfgPkg.Config, error) {
	var configPath string
	var url, model, ollamaURL, questions, output, cacheFile string
	var topK, workers int

	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&url, "url", "", "Web page URL to answer questions about")
	flag.StringVar(&ollamaURL, "ollama-url", "", "Ollama server URL")
	flag.StringVar(&model, "model", "", "Embedding model to use")
	flag.StringVar(&questions, "questions", "", "Path to question file")
	flag.StringVar(&output, "output", "", "Path to response file")
	flag.StringVar(&cacheFile, "cache", "", "Path to page cache file")
	flag.IntVar(&topK, "top-k", 0, "Number of chunks to retrieve per question")
	flag.IntVar(&workers, "workers", 0, "Number of parallel answer workers")
	flag.Parse()

	config, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Command line flags override config file values
	if url != "" {
		config.Fetcher.URL = url
	}
	if ollamaURL != "" {
		config.LLM.BaseURL = ollamaURL
	}
	if model != "" {
		config.LLM.Model = model
	}
	if questions != "" {
		config.Files.Questions = questions
	}
	if output != "" {
		config.Files.Responses = output
	}
	if cacheFile != "" {
		config.Files.Cache = cacheFile
	}
	if topK > 0 {
		config.QA.TopK = topK
	}
	if workers > 0 {
		config.QA.Workers = workers
	}

	if errs := config.Validate(); len(errs) > 0 {
		for _, e := range errs {
			slog.Error("config validation", "err", e.Error())
		}
		return nil, fmt.Errorf("%d validation error(s)", len(errs))
	}

	return config, nil
}

func run(config *cfgPkg.Config, logger *slog.Logger) error {
	ctx := context.Background()

	logger.Info("starting page QA run")

	// Step 1: Fetch and clean page content, with cache check
	content, err := loadOrFetchContent(ctx, config, logger)
	if err != nil {
		return fmt.Errorf("failed to fetch or load content: %w", err)
	}

	// Step 2: Embed and store chunks
	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:   config.LLM.Model,
		BaseURL: config.LLM.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %w", err)
	}

	memStore := store.New(embedder, logger)

	storeSpinner := getSpinner(" Embedding page chunks...")
	err = memStore.Store(ctx, content)
	storeSpinner.Finish()
	if err != nil {
		return fmt.Errorf("failed to store embeddings: %w", err)
	}
	color.Green("✓ Stored %d chunks\n", memStore.Len())

	// Step 3: Load the question batch
	questions, err := qa.LoadQuestions(config.Files.Questions)
	if err != nil {
		return err
	}
	logger.Info("processing questions", "count", len(questions))

	// Step 4: Answer in parallel over a bounded worker pool
	engine := qa.NewEngine(memStore, qa.EngineConfig{
		TopK:   config.QA.TopK,
		Logger: logger,
	})

	bar := getProgressBar(len(questions), " Answering questions...")
	answers, err := engine.AnswerAll(ctx, questions, config.QA.Workers, func() {
		bar.Add(1)
	})
	bar.Finish()
	if err != nil {
		return fmt.Errorf("failed to answer questions: %w", err)
	}

	// Step 5: Write the response file
	if err := qa.SaveAnswers(config.Files.Responses, answers); err != nil {
		return err
	}

	color.Green("✓ Responses saved to %s\n", config.Files.Responses)
	return nil
}

func loadOrFetchContent(ctx context.Context, config *cfgPkg.Config, logger *slog.Logger) (string, error) {
	pageCache := cache.New(config.Files.Cache)

	if content, ok := pageCache.Load(); ok {
		logger.Info("loading content from cache", "path", config.Files.Cache)
		return content, nil
	}

	if config.Fetcher.URL == "" {
		return "", fmt.Errorf("no cached content and no page URL configured")
	}

	logger.Info("fetching page content", "url", config.Fetcher.URL)

	f := fetcher.NewWithConfig(fetcher.FetcherConfig{
		UserAgent: config.Fetcher.UserAgent,
		Timeout:   time.Duration(config.Fetcher.TimeoutSeconds) * time.Second,
		RateLimit: config.Fetcher.RateLimit,
		Logger:    logger,
	})

	page, err := f.Fetch(ctx, config.Fetcher.URL)
	if err != nil {
		return "", err
	}

	if err := pageCache.Save(page.Content); err != nil {
		// A broken cache only costs a refetch next run
		logger.Warn("failed to cache page content", "err", err)
	}

	return page.Content, nil
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("questions"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}
