package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestExtractTextSkipsScriptAndStyle(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<html><head><style>p{color:red}</style></head>` +
			`<body><p>Thé vert</p><script>var x = 1;</script><p>Menthe</p></body></html>`))
	require.NoError(t, err)

	text := ExtractText(doc)
	assert.Contains(t, text, "Thé vert")
	assert.Contains(t, text, "Menthe")
	assert.NotContains(t, text, "color")
	assert.NotContains(t, text, "var x")
}

func TestExtractTextNilNode(t *testing.T) {
	assert.Equal(t, "", ExtractText(nil))
}

func TestFlattenHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain markup", "<p>Thé noir à la bergamote.</p>", "Thé noir à la bergamote."},
		{"collapses whitespace", "<div>\n\tThé   vert\n</div>", "Thé vert"},
		{"empty", "   ", ""},
		{"no markup", "déjà du texte", "déjà du texte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenHTML(tt.in))
		})
	}
}
