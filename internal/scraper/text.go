package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText walks an HTML subtree and returns its visible text, skipping
// script and style elements.
func ExtractText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// FlattenHTML reduces an HTML fragment to its visible text with single
// spaces between words. Descriptions inside JSON-LD blocks often carry
// markup, so they go through here before landing in a catalog item.
func FlattenHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(ExtractText(doc)), " ")
}
