package ingredient

import (
	"sort"
	"unicode/utf8"

	"github.com/adrianlzt/jardin-du-the/internal/catalog"
)

// maxTermRunes filters runaway suggester output; anything this long is a
// sentence, not an ingredient name.
const maxTermRunes = 50

// BuildVocabulary flattens every item's candidate ingredients into the
// run's vocabulary: normalize each entry, drop malformed ones, dedupe,
// sort ascending by code point. Empty input yields an empty vocabulary.
func BuildVocabulary(items []catalog.Item) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, it := range items {
		for _, candidate := range it.CandidateIngredients {
			term := Normalize(candidate)
			if utf8.RuneCountInString(term) >= maxTermRunes {
				continue
			}
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)
	return terms
}
