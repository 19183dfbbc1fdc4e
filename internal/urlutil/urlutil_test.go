package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantURL  string
		wantHost string
	}{
		{
			"already canonical",
			"https://jardin-du-the.com/produit/ginger-pepper",
			"https://jardin-du-the.com/produit/ginger-pepper",
			"jardin-du-the.com",
		},
		{
			"scheme defaulted",
			"jardin-du-the.com/produit/ginger-pepper",
			"https://jardin-du-the.com/produit/ginger-pepper",
			"jardin-du-the.com",
		},
		{
			"www and trailing slash stripped",
			"https://WWW.Jardin-du-the.com/produit/ginger-pepper/",
			"https://jardin-du-the.com/produit/ginger-pepper",
			"jardin-du-the.com",
		},
		{
			"tracking params dropped",
			"https://jardin-du-the.com/produit/sencha/?utm_source=news&utm_medium=mail",
			"https://jardin-du-the.com/produit/sencha",
			"jardin-du-the.com",
		},
		{
			"real params kept sorted",
			"https://jardin-du-the.com/produit/sencha?b=2&a=1&fbclid=xyz",
			"https://jardin-du-the.com/produit/sencha?a=1&b=2",
			"jardin-du-the.com",
		},
		{
			"fragment dropped",
			"https://jardin-du-the.com/produit/sencha#tab-ingredients",
			"https://jardin-du-the.com/produit/sencha",
			"jardin-du-the.com",
		},
		{
			"whitespace trimmed",
			"  https://jardin-du-the.com/produit/sencha \n",
			"https://jardin-du-the.com/produit/sencha",
			"jardin-du-the.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, host, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, got)
			assert.Equal(t, tt.wantHost, host)
		})
	}
}

func TestIsFetchable(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://jardin-du-the.com/produit/sencha", true},
		{"http://jardin-du-the.com/produit/sencha", true},
		{"jardin-du-the.com/produit/sencha", true},
		{"https://jardin-du-the.com/wp-content/uploads/the.png", false},
		{"https://jardin-du-the.com/style.css", false},
		{"", false},
		{"mailto:contact@jardin-du-the.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFetchable(tt.in))
		})
	}
}
