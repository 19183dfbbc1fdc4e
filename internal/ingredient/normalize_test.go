package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Gingembre", "gingembre"},
		{"curly apostrophe", "écorce d’orange", "orange"},
		{"prefix with trailing space", "chips de banane", "banane"},
		{"prefix without trailing space", "morceaux de gingembre", "gingembre"},
		{"prefix elision", "morceaux d'ananas", "ananas"},
		{"bark prefix", "écorce de citron", "citron"},
		{"plural bark prefix", "écorces d'orange", "orange"},
		{"slices prefix", "tranches de pomme", "pomme"},
		{"roasted suffix", "gingembre grillé", "gingembre"},
		{"grated suffix", "noix de coco râpée", "noix de coco"},
		{"peppermint folds to mint", "menthe poivrée", "menthe"},
		{"spearmint folds to mint", "menthe verte", "menthe"},
		{"black pepper folds", "poivre noir", "poivre"},
		{"white pepper folds", "poivre blanc", "poivre"},
		{"pink pepper folds", "poivre rose", "poivre"},
		{"finger lime folds", "citron caviar", "citron"},
		{"lime folds", "citron vert", "citron"},
		{"plural cloves fold", "clous de girofle", "clou de girofle"},
		{"prickly pear folds", "figue de barbarie", "figue"},
		{"accents fold", "thé", "the"},
		{"cedilla folds", "açaï", "acaï"},
		{"circumflex folds", "pêche", "peche"},
		{"grave folds", "réglisse amère", "reglisse amere"},
		{"already canonical", "gingembre", "gingembre"},
		{"multiword survives", "clou de girofle", "clou de girofle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeRuleOrder(t *testing.T) {
	// Prefix stripping must run before synonym folding so the folded
	// form comes out bare, and accent folding must run last.
	assert.Equal(t, "poivre", Normalize("Morceaux de poivre noir"))
	assert.Equal(t, "citron", Normalize("Écorce de citron vert"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Gingembre",
		"morceaux de gingembre",
		"écorce d’orange",
		"menthe poivrée",
		"poivre noir",
		"clous de girofle",
		"figue de barbarie",
		"thé vert",
		"noix de coco râpée",
		"cannelle",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", in)
	}
}
