package ingredient

import "github.com/adrianlzt/jardin-du-the/internal/catalog"

// BuildPresenceMatrix computes the |items| x |vocabulary| binary matrix.
// Each item's candidates are normalized once into a set, and a cell is 1
// iff the vocabulary term is in that set. Both sides of the comparison go
// through Normalize, so a folded synonym column still matches the unfolded
// candidate it was derived from. Exact equality only, never substring.
func BuildPresenceMatrix(items []catalog.Item, vocabulary []string) [][]int {
	terms := make([]string, len(vocabulary))
	for j, t := range vocabulary {
		terms[j] = Normalize(t)
	}

	matrix := make([][]int, len(items))
	for i, it := range items {
		set := make(map[string]struct{}, len(it.CandidateIngredients))
		for _, candidate := range it.CandidateIngredients {
			set[Normalize(candidate)] = struct{}{}
		}

		row := make([]int, len(terms))
		for j, term := range terms {
			if _, ok := set[term]; ok {
				row[j] = 1
			}
		}
		matrix[i] = row
	}
	return matrix
}
