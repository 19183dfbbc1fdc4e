package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/adrianlzt/jardin-du-the/internal/ai"
	"github.com/adrianlzt/jardin-du-the/internal/catalog"
	"github.com/adrianlzt/jardin-du-the/internal/httpx"
	"github.com/adrianlzt/jardin-du-the/internal/ingredient"
	"github.com/adrianlzt/jardin-du-the/internal/observability"
	"github.com/adrianlzt/jardin-du-the/internal/scraper"
	"github.com/adrianlzt/jardin-du-the/internal/sheet"
	"github.com/adrianlzt/jardin-du-the/internal/store"
	"github.com/adrianlzt/jardin-du-the/internal/urlutil"
)

// ErrNoItems means the run produced nothing to build a sheet from: every
// url was skipped, failed, or the list was empty. Failing beats writing a
// header-only worksheet that looks like a successful export.
var ErrNoItems = errors.New("no catalog items to process")

// SheetWriter renders a finished table. *sheet.Workbook is the production
// implementation.
type SheetWriter interface {
	WriteTable(table sheet.Table) error
}

// RunRecorder persists a finished run. *store.Store is the production
// implementation.
type RunRecorder interface {
	SaveRun(ctx context.Context, rec store.RunRecord) error
}

// Pipeline drives one run: scrape, suggest, build the vocabulary and
// presence matrix, then export. A nil gate skips the robots check, a nil
// writer or recorder skips that export.
type Pipeline struct {
	log      *slog.Logger
	cache    *StageCache
	gate     *httpx.RobotsGate
	scraper  scraper.ProductScraper
	suggest  ai.Client
	writer   SheetWriter
	recorder RunRecorder
}

// Result is what a run produced, with the stats observed along the way.
type Result struct {
	RunID      string
	Name       string
	Items      []catalog.Item
	Vocabulary []string
	Presence   [][]int
	Stats      observability.StatsSnapshot
}

func New(log *slog.Logger, cache *StageCache, gate *httpx.RobotsGate, sc scraper.ProductScraper, suggest ai.Client, writer SheetWriter, recorder RunRecorder) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if cache == nil {
		cache = NewStageCache("")
	}
	return &Pipeline{
		log:      log,
		cache:    cache,
		gate:     gate,
		scraper:  sc,
		suggest:  suggest,
		writer:   writer,
		recorder: recorder,
	}
}

func (p *Pipeline) Run(ctx context.Context, name string, urls []string) (*Result, error) {
	runID := ulid.Make().String()
	log := p.log.With("run_id", runID, "name", name)
	log.Info("run started", "urls", len(urls))

	items, err := p.initialItems(ctx, log, name, urls)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	items, err = p.extendedItems(ctx, log, name, items)
	if err != nil {
		return nil, err
	}

	vocabulary := ingredient.BuildVocabulary(items)
	presence := ingredient.BuildPresenceMatrix(items, vocabulary)
	log.Info("vocabulary built", "items", len(items), "terms", len(vocabulary))

	if p.writer != nil {
		table := sheet.BuildTable(name, items, vocabulary, presence)
		if err := p.writer.WriteTable(table); err != nil {
			observability.IncError(observability.ErrorSheet, "sheet")
			return nil, fmt.Errorf("write sheet failed: %w", err)
		}
		log.Info("sheet written", "rows", len(table.Rows), "columns", len(table.Header()))
	}

	if p.recorder != nil {
		rec := store.RunRecord{
			ID:         runID,
			Name:       name,
			CreatedAt:  time.Now().UTC(),
			Items:      items,
			Vocabulary: vocabulary,
			Presence:   presence,
		}
		if err := p.recorder.SaveRun(ctx, rec); err != nil {
			observability.IncError(observability.ErrorStore, "store")
			return nil, fmt.Errorf("save run failed: %w", err)
		}
		log.Info("run stored")
	}

	stats := observability.Snapshot()
	log.Info("run finished",
		"pages_fetched", stats.PagesFetched,
		"suggest_calls", stats.SuggestCalls,
		"robots_skips", stats.RobotsSkips,
		"errors", stats.ErrorsTotal)

	return &Result{
		RunID:      runID,
		Name:       name,
		Items:      items,
		Vocabulary: vocabulary,
		Presence:   presence,
		Stats:      stats,
	}, nil
}

// initialItems returns the scraped catalog, from cache when a previous
// run already fetched it.
func (p *Pipeline) initialItems(ctx context.Context, log *slog.Logger, name string, urls []string) ([]catalog.Item, error) {
	items, ok, err := p.cache.LoadInitial(name)
	if err != nil {
		return nil, err
	}
	if ok {
		log.Info("initial data loaded from cache", "items", len(items), "path", p.cache.InitialPath(name))
		return items, nil
	}

	items, err = p.scrapeAll(ctx, log, urls)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if err := p.cache.SaveInitial(name, items); err != nil {
		return nil, err
	}
	log.Info("initial data cached", "items", len(items), "path", p.cache.InitialPath(name))
	return items, nil
}

func (p *Pipeline) scrapeAll(ctx context.Context, log *slog.Logger, urls []string) ([]catalog.Item, error) {
	seen := make(map[string]struct{}, len(urls))
	var items []catalog.Item

	for _, raw := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		normalized, _, err := urlutil.Normalize(raw)
		if err != nil || !urlutil.IsFetchable(normalized) {
			log.Warn("skipping url", "url", raw)
			continue
		}
		if _, dup := seen[normalized]; dup {
			log.Warn("skipping duplicate url", "url", normalized)
			continue
		}
		seen[normalized] = struct{}{}

		if p.gate != nil && !p.gate.Allowed(ctx, normalized) {
			observability.IncRobotsSkip()
			log.Warn("robots.txt disallows url", "url", normalized)
			continue
		}

		start := time.Now()
		item, err := p.scraper.Scrape(ctx, normalized)
		observability.ObserveFetchDuration(time.Since(start).Seconds())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			observability.IncError(observability.ClassifyScrapeError(err), "scraper")
			log.Warn("scrape failed", "url", normalized, "error", err)
			continue
		}
		observability.IncPageFetched()
		observability.IncItemExtracted()
		if item.ImageURL == "" {
			log.Warn("product image not found", "url", normalized)
		}
		items = append(items, *item)
	}
	return items, nil
}

// extendedItems returns the catalog with suggested ingredient lists,
// from cache when a previous run already asked the model.
func (p *Pipeline) extendedItems(ctx context.Context, log *slog.Logger, name string, items []catalog.Item) ([]catalog.Item, error) {
	cached, ok, err := p.cache.LoadExtended(name)
	if err != nil {
		return nil, err
	}
	if ok {
		log.Info("extended data loaded from cache", "items", len(cached), "path", p.cache.ExtendedPath(name))
		return cached, nil
	}

	enriched := make([]catalog.Item, len(items))
	copy(enriched, items)
	for i := range enriched {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		observability.IncSuggestCall()
		candidates, err := p.suggest.SuggestIngredients(ctx, enriched[i])
		if err != nil {
			observability.IncError(observability.ClassifySuggestError(err), "ai")
			return nil, fmt.Errorf("suggest ingredients for %q failed: %w", enriched[i].URL, err)
		}
		observability.AddCandidatesSuggested(len(candidates))
		enriched[i].CandidateIngredients = candidates
	}

	if err := p.cache.SaveExtended(name, enriched); err != nil {
		return nil, err
	}
	log.Info("extended data cached", "items", len(enriched), "path", p.cache.ExtendedPath(name))
	return enriched, nil
}
