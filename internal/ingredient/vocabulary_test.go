package ingredient

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adrianlzt/jardin-du-the/internal/catalog"
)

func TestBuildVocabulary(t *testing.T) {
	items := []catalog.Item{
		{CandidateIngredients: []string{"Gingembre", "Poivre noir"}},
		{CandidateIngredients: []string{"poivre blanc", "Menthe verte", "gingembre"}},
	}

	got := BuildVocabulary(items)
	assert.Equal(t, []string{"gingembre", "menthe", "poivre"}, got)
}

func TestBuildVocabularyFiltersLongEntries(t *testing.T) {
	long := strings.Repeat("x", 60)
	exactly50 := strings.Repeat("y", 50)
	just49 := strings.Repeat("z", 49)

	items := []catalog.Item{
		{CandidateIngredients: []string{"gingembre", long, exactly50, just49}},
	}

	got := BuildVocabulary(items)
	assert.Equal(t, []string{"gingembre", just49}, got)
	for _, term := range got {
		assert.Less(t, len(term), 50)
	}
}

func TestBuildVocabularySortedUnique(t *testing.T) {
	items := []catalog.Item{
		{CandidateIngredients: []string{"thé vert", "cannelle", "Cannelle", "écorce d'orange", "orange"}},
		{CandidateIngredients: []string{"cardamome", "thé vert"}},
	}

	got := BuildVocabulary(items)

	assert.True(t, sort.StringsAreSorted(got))
	seen := make(map[string]struct{})
	for _, term := range got {
		_, dup := seen[term]
		assert.False(t, dup, "duplicate vocabulary term %q", term)
		seen[term] = struct{}{}
	}
	// "écorce d'orange" and "orange" collapse into one entry.
	assert.Equal(t, []string{"cannelle", "cardamome", "orange", "the vert"}, got)
}

func TestBuildVocabularyDeterministic(t *testing.T) {
	items := []catalog.Item{
		{CandidateIngredients: []string{"hibiscus", "pomme", "cynorrhodon"}},
		{CandidateIngredients: []string{"pomme", "Hibiscus", "raisin"}},
	}

	first := BuildVocabulary(items)
	second := BuildVocabulary(items)
	assert.Equal(t, first, second)
}

func TestBuildVocabularyEmptyInput(t *testing.T) {
	assert.Empty(t, BuildVocabulary(nil))
	assert.Empty(t, BuildVocabulary([]catalog.Item{{Title: "no candidates"}}))
}
