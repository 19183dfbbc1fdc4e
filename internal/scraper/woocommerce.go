package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/adrianlzt/jardin-du-the/internal/catalog"
	"github.com/adrianlzt/jardin-du-the/internal/httpx"
)

// defaultTitleSuffix is the storefront decoration appended to every page
// title, removed before the title goes into a catalog item.
const defaultTitleSuffix = " - Jardin du thé"

// The theme keeps each product field in a fixed place, so plain XPath
// queries are enough. Direct paragraph text comes first; when a paragraph
// only wraps child elements, their text is used instead.
const (
	shortDescriptionQuery = `//*[@class='woocommerce-product-details__short-description']/p`
	descriptionQuery      = `//*[@id="tab-description"]/p`
	ingredientsQuery      = `//*[@id="tab-ingredients"]/p`
	imageQuery            = `//*[@class='wp-post-image']`
)

// WooCommerceScraper reads product pages rendered by a WooCommerce theme.
type WooCommerceScraper struct {
	fetcher     *httpx.CollyFetcher
	titleSuffix string
}

func NewWooCommerceScraper(fetcher *httpx.CollyFetcher, titleSuffix string) *WooCommerceScraper {
	if titleSuffix == "" {
		titleSuffix = defaultTitleSuffix
	}
	return &WooCommerceScraper{fetcher: fetcher, titleSuffix: titleSuffix}
}

func (s *WooCommerceScraper) Name() string {
	return "woocommerce"
}

// Scrape fetches one product page and fills a catalog item from it. A page
// without a product image still yields an item; the caller decides how to
// report the gap.
func (s *WooCommerceScraper) Scrape(ctx context.Context, pageURL string) (*catalog.Item, error) {
	var body []byte
	var pageTitle string
	var ldBlocks []string

	err := s.fetcher.Fetch(ctx, pageURL, func(c *colly.Collector) {
		c.OnHTML("title", func(e *colly.HTMLElement) {
			if pageTitle == "" {
				pageTitle = strings.TrimSpace(e.Text)
			}
		})
		c.OnHTML(`script[type="application/ld+json"]`, func(e *colly.HTMLElement) {
			ldBlocks = append(ldBlocks, e.Text)
		})
		c.OnResponse(func(r *colly.Response) {
			body = append([]byte(nil), r.Body...)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s failed: %w", pageURL, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("fetch %s returned an empty body", pageURL)
	}

	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s failed: %w", pageURL, err)
	}

	item := &catalog.Item{
		URL:              pageURL,
		Title:            cleanTitle(pageTitle, s.titleSuffix),
		ShortDescription: textAtPath(doc, shortDescriptionQuery),
		Description:      textAtPath(doc, descriptionQuery),
		IngredientsText:  textAtPath(doc, ingredientsQuery),
		ImageURL:         imageSource(doc),
	}

	applyJSONLD(item, ldBlocks)
	if item.Title == "" {
		item.Title = pathTitleFromURL(pageURL)
	}
	return item, nil
}

// textAtPath joins the direct text of every node the query matches. When
// none of them carries direct text, the text of their child elements is
// used instead. Newlines and tabs from the page template are dropped.
func textAtPath(doc *html.Node, query string) string {
	nodes := htmlquery.Find(doc, query)
	if len(nodes) == 0 {
		return ""
	}
	parts := directTextParts(nodes)
	if len(parts) == 0 {
		parts = childTextParts(nodes)
	}
	joined := strings.Join(parts, " ")
	joined = strings.ReplaceAll(joined, "\n", "")
	joined = strings.ReplaceAll(joined, "\t", "")
	return strings.TrimSpace(joined)
}

func directTextParts(nodes []*html.Node) []string {
	var parts []string
	for _, node := range nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode && strings.TrimSpace(child.Data) != "" {
				parts = append(parts, child.Data)
			}
		}
	}
	return parts
}

func childTextParts(nodes []*html.Node) []string {
	var parts []string
	for _, node := range nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			parts = append(parts, directTextParts([]*html.Node{child})...)
		}
	}
	return parts
}

func imageSource(doc *html.Node) string {
	node := htmlquery.FindOne(doc, imageQuery)
	if node == nil {
		return ""
	}
	return strings.TrimSpace(htmlquery.SelectAttr(node, "src"))
}

func cleanTitle(title, suffix string) string {
	if suffix != "" {
		title = strings.ReplaceAll(title, suffix, "")
	}
	return strings.TrimSpace(title)
}

// pathTitleFromURL derives a readable title from the last path segment of
// a product URL, for pages whose head carries no usable title.
func pathTitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := ""
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			last = segments[i]
			break
		}
	}
	if last == "" {
		return ""
	}
	last = strings.ReplaceAll(last, "-", " ")
	last = strings.ReplaceAll(last, "_", " ")
	last = strings.TrimSpace(last)
	if last == "" {
		return ""
	}
	return cases.Title(language.Und).String(last)
}
