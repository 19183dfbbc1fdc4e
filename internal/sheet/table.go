package sheet

import (
	"github.com/adrianlzt/jardin-du-the/internal/catalog"
)

// Table is the rendered form of one run: a fixed header, one row per
// product, and a presence flag per vocabulary term.
type Table struct {
	Name       string
	Vocabulary []string
	Rows       []Row
}

type Row struct {
	Title       string
	URL         string
	ImageURL    string
	Description string
	Presence    []int
}

// Header returns the first worksheet row. Term columns follow the three
// fixed columns in vocabulary order.
func (t Table) Header() []string {
	header := make([]string, 0, 3+len(t.Vocabulary))
	header = append(header, "title", "img", "description")
	return append(header, t.Vocabulary...)
}

// BuildTable lays items out against the vocabulary. Rows keep the order of
// the url list, columns keep vocabulary order, so two runs over the same
// input render identical tables.
func BuildTable(name string, items []catalog.Item, vocabulary []string, presence [][]int) Table {
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		var flags []int
		if i < len(presence) {
			flags = presence[i]
		}
		rows = append(rows, Row{
			Title:       item.Title,
			URL:         item.URL,
			ImageURL:    item.ImageURL,
			Description: item.FullDescription(),
			Presence:    flags,
		})
	}
	return Table{Name: name, Vocabulary: vocabulary, Rows: rows}
}
