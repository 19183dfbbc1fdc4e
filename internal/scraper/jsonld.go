package scraper

import (
	"encoding/json"
	"strings"

	"github.com/adrianlzt/jardin-du-the/internal/catalog"
)

// applyJSONLD fills the gaps of an item from schema.org Product blocks
// embedded in the page. Scraped fields always win; JSON-LD is only a
// fallback for pages where the theme markup changed.
func applyJSONLD(item *catalog.Item, blocks []string) {
	for _, block := range blocks {
		var payload any
		if err := json.Unmarshal([]byte(block), &payload); err != nil {
			continue
		}
		for _, product := range findProducts(payload) {
			if item.Title == "" {
				item.Title = stringField(product, "name")
			}
			if item.ImageURL == "" {
				item.ImageURL = imageField(product["image"])
			}
			if item.Description == "" {
				item.Description = FlattenHTML(stringField(product, "description"))
			}
		}
	}
}

func findProducts(v any) []map[string]any {
	var products []map[string]any
	switch t := v.(type) {
	case map[string]any:
		if isProductType(t["@type"]) {
			products = append(products, t)
		}
		for _, val := range t {
			products = append(products, findProducts(val)...)
		}
	case []any:
		for _, val := range t {
			products = append(products, findProducts(val)...)
		}
	}
	return products
}

func isProductType(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, "Product")
	case []any:
		for _, val := range t {
			if s, ok := val.(string); ok && strings.EqualFold(s, "Product") {
				return true
			}
		}
	}
	return false
}

func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func imageField(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, val := range t {
			if s := imageField(val); s != "" {
				return s
			}
		}
	case map[string]any:
		return stringField(t, "url", "contentUrl")
	}
	return ""
}
