package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/adrianlzt/jardin-du-the/internal/ai"
	"github.com/adrianlzt/jardin-du-the/internal/config"
	"github.com/adrianlzt/jardin-du-the/internal/httpx"
	"github.com/adrianlzt/jardin-du-the/internal/pipeline"
	"github.com/adrianlzt/jardin-du-the/internal/scraper"
	"github.com/adrianlzt/jardin-du-the/internal/sheet"
	"github.com/adrianlzt/jardin-du-the/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		urlsPath   = flag.String("urls", "", "file with one product url per line")
		name       = flag.String("name", "", "run name, used for cache files and the worksheet")
		configPath = flag.String("config", "", "optional yaml config file")
		workbook   = flag.String("out", "", "xlsx workbook path (overrides config)")
		sqlitePath = flag.String("sqlite", "", "sqlite database path (overrides config)")
		cacheDir   = flag.String("cache-dir", "", "stage cache directory (overrides config)")
	)
	flag.Parse()

	if *urlsPath == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "usage: teasheet -urls <file> -name <run> [-config file] [-out file.xlsx] [-sqlite file.db] [-cache-dir dir]")
		os.Exit(1)
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *workbook != "" {
		cfg.Output.Workbook = *workbook
	}
	if *sqlitePath != "" {
		cfg.Output.SQLite = *sqlitePath
	}
	if *cacheDir != "" {
		cfg.Cache.Dir = *cacheDir
	}

	urls, err := readURLList(*urlsPath)
	if err != nil {
		logger.Error("failed to read url list", "path", *urlsPath, "error", err)
		os.Exit(1)
	}

	fetcher := httpx.NewCollyFetcher(httpx.FetcherOptions{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.Fetch.Timeout(),
		PerHost:   cfg.Fetch.PerHostInterval(),
		Burst:     cfg.Fetch.Burst,
	})

	var gate *httpx.RobotsGate
	if !cfg.Fetch.DisableRobots {
		gate = httpx.NewRobotsGate(cfg.Fetch.UserAgent, nil)
	}

	var recorder pipeline.RunRecorder
	if cfg.Output.SQLite != "" {
		st, err := store.Open(cfg.Output.SQLite)
		if err != nil {
			logger.Error("failed to open sqlite store", "path", cfg.Output.SQLite, "error", err)
			os.Exit(1)
		}
		defer st.Close()
		recorder = st
	}

	p := pipeline.New(
		logger,
		pipeline.NewStageCache(cfg.Cache.Dir),
		gate,
		scraper.NewWooCommerceScraper(fetcher, cfg.Site.TitleTrimSuffix),
		newSuggester(cfg.AI),
		sheet.NewWorkbook(cfg.Output.Workbook),
		recorder,
	)

	result, err := p.Run(context.Background(), *name, urls)
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("done",
		"workbook", cfg.Output.Workbook,
		"items", len(result.Items),
		"terms", len(result.Vocabulary))
}

func newSuggester(cfg config.AI) ai.Client {
	switch strings.ToLower(cfg.Provider) {
	case "mock":
		return ai.NewMockClient()
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Println("OPENAI_API_KEY not set, falling back to the mock AI client")
			return ai.NewMockClient()
		}
		return ai.NewOpenAIClient(apiKey, cfg.BaseURL, cfg.Model)
	default:
		return ai.NewClient()
	}
}

func readURLList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
