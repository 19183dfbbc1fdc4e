package scraper

import (
	"context"

	"github.com/adrianlzt/jardin-du-the/internal/catalog"
)

// ProductScraper extracts one catalog item from a product page URL.
type ProductScraper interface {
	Name() string
	Scrape(ctx context.Context, pageURL string) (*catalog.Item, error)
}
