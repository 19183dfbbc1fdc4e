package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrianlzt/jardin-du-the/internal/catalog"
)

// Stage cache files are keyed by run name. The initial file holds scraped
// items, the extended one adds the suggested ingredient lists, so reruns
// can skip either stage.
const (
	initialCacheSuffix  = "-initial-data.json"
	extendedCacheSuffix = "-extended-data.json"
)

type StageCache struct {
	dir string
}

func NewStageCache(dir string) *StageCache {
	if dir == "" {
		dir = "."
	}
	return &StageCache{dir: dir}
}

func (c *StageCache) InitialPath(name string) string {
	return filepath.Join(c.dir, name+initialCacheSuffix)
}

func (c *StageCache) ExtendedPath(name string) string {
	return filepath.Join(c.dir, name+extendedCacheSuffix)
}

func (c *StageCache) LoadInitial(name string) ([]catalog.Item, bool, error) {
	return c.load(c.InitialPath(name))
}

func (c *StageCache) SaveInitial(name string, items []catalog.Item) error {
	return c.save(c.InitialPath(name), items)
}

func (c *StageCache) LoadExtended(name string) ([]catalog.Item, bool, error) {
	return c.load(c.ExtendedPath(name))
}

func (c *StageCache) SaveExtended(name string, items []catalog.Item) error {
	return c.save(c.ExtendedPath(name), items)
}

func (c *StageCache) load(path string) ([]catalog.Item, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache %s failed: %w", path, err)
	}
	var items []catalog.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("parse cache %s failed: %w", path, err)
	}
	return items, true, nil
}

// save writes the cache with four-space indentation and unescaped text,
// keeping the French product names readable when the file is inspected.
func (c *StageCache) save(path string, items []catalog.Item) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir failed: %w", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode cache failed: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write cache %s failed: %w", path, err)
	}
	return nil
}
