// Command export rebuilds the vocabulary and presence matrix from a cached
// run and writes everything to the SQLite store, without touching the
// network. Useful after tweaking normalization rules.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/adrianlzt/jardin-du-the/internal/ingredient"
	"github.com/adrianlzt/jardin-du-the/internal/pipeline"
	"github.com/adrianlzt/jardin-du-the/internal/store"
)

func main() {
	cacheDir := flag.String("cache", ".", "stage cache directory")
	name := flag.String("name", "", "run name used when the cache was written")
	dbPath := flag.String("db", "teas.db", "sqlite database path")
	flag.Parse()

	if *name == "" {
		log.Fatalf("missing -name")
	}

	cache := pipeline.NewStageCache(*cacheDir)
	items, ok, err := cache.LoadExtended(*name)
	if err != nil {
		log.Fatalf("load extended cache: %v", err)
	}
	if !ok {
		log.Fatalf("no extended cache for %q in %s", *name, *cacheDir)
	}
	if len(items) == 0 {
		log.Fatalf("extended cache for %q is empty", *name)
	}

	vocabulary := ingredient.BuildVocabulary(items)
	presence := ingredient.BuildPresenceMatrix(items, vocabulary)

	st, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	rec := store.RunRecord{
		ID:         ulid.Make().String(),
		Name:       *name,
		CreatedAt:  time.Now().UTC(),
		Items:      items,
		Vocabulary: vocabulary,
		Presence:   presence,
	}
	if err := st.SaveRun(context.Background(), rec); err != nil {
		log.Fatalf("save run: %v", err)
	}
	log.Printf("exported run %s (%d items, %d terms) to %s", rec.ID, len(items), len(vocabulary), *dbPath)
}
