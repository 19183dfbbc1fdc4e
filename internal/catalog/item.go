package catalog

import "strings"

// Item is one scraped product page. The JSON tags match the stage cache
// documents written by earlier versions of this tool, so existing caches
// keep loading unchanged.
type Item struct {
	Title            string `json:"title"`
	URL              string `json:"url"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	IngredientsText  string `json:"ingredients"`
	ImageURL         string `json:"img"`

	// CandidateIngredients is populated by the suggest stage and may
	// contain noise, duplicates, and case variants.
	CandidateIngredients []string `json:"list_of_ingredients,omitempty"`
}

// CombinedText is the text handed to the ingredient suggester: every text
// field joined with a bare period.
func (it Item) CombinedText() string {
	return strings.Join([]string{it.Title, it.ShortDescription, it.Description, it.IngredientsText}, ".")
}

// FullDescription is the description cell written to the sheet. Unlike
// CombinedText it skips the title and joins with ". ".
func (it Item) FullDescription() string {
	return strings.Join([]string{it.ShortDescription, it.Description, it.IngredientsText}, ". ")
}
