package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianlzt/jardin-du-the/internal/catalog"
)

func testItem() catalog.Item {
	return catalog.Item{
		Title:            "Thé vert Ginger Pepper",
		URL:              "https://boutique.example/produit/the-vert-ginger-pepper/",
		ShortDescription: "Gingembre et poivre noir.",
		Description:      "Thé vert parfumé au gingembre.",
		IngredientsText:  "thé vert (90 %), morceaux de gingembre, grains de poivre noir, arôme",
	}
}

func TestSuggestIngredientsSendsPromptAndParsesReply(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "")
	item := testItem()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4-1106-preview", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, "TEA TEXT: "+item.CombinedText())
		assert.Contains(t, req.Messages[0].Content, "thé vert (90 %)")

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"gingembre, poivre noir"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "")
	got, err := client.SuggestIngredients(context.Background(), item)

	require.NoError(t, err)
	assert.Equal(t, []string{"gingembre", "poivre noir"}, got)
}

func TestSuggestIngredientsReportsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "")
	_, err := client.SuggestIngredients(context.Background(), testItem())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestSuggestIngredientsReportsErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[],"error":{"message":"model overloaded","type":"server"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "")
	_, err := client.SuggestIngredients(context.Background(), testItem())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestSuggestIngredientsRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "")
	_, err := client.SuggestIngredients(context.Background(), testItem())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestSuggestIngredientsHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewOpenAIClient("test-key", server.URL, "")
	_, err := client.SuggestIngredients(ctx, testItem())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSplitReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"plain", "gingembre, poivre noir", []string{"gingembre", "poivre noir"}},
		{"trailing comma", "gingembre, poivre,", []string{"gingembre", "poivre"}},
		{"extra spaces", "  menthe ,  citron  ", []string{"menthe", "citron"}},
		{"empty reply", "", []string{}},
		{"only commas", ",,,", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitReply(tt.reply))
		})
	}
}

func TestMockClientSplitsScrapedIngredients(t *testing.T) {
	client := NewMockClient()
	got, err := client.SuggestIngredients(context.Background(), testItem())

	require.NoError(t, err)
	assert.Equal(t, []string{"thé vert (90 %)", "morceaux de gingembre", "grains de poivre noir", "arôme"}, got)
}

func TestNewClientSelectsProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "mock")
	t.Setenv("OPENAI_API_KEY", "")
	assert.IsType(t, &MockClient{}, NewClient())

	t.Setenv("AI_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	assert.IsType(t, &OpenAIClient{}, NewClient())

	t.Setenv("OPENAI_API_KEY", "")
	assert.IsType(t, &MockClient{}, NewClient())
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "abc", truncateText("abc", 5))
	assert.Equal(t, "abcde...", truncateText("abcdefgh", 5))
}
