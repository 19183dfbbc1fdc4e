package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/adrianlzt/jardin-du-the/internal/catalog"
)

// Client suggests ingredient candidates for a scraped catalog item.
type Client interface {
	SuggestIngredients(ctx context.Context, item catalog.Item) ([]string, error)
}

// NewClient picks a provider from the environment. AI_PROVIDER selects one
// explicitly, otherwise a configured API key wins and the mock client is
// the fallback so the pipeline stays usable offline.
func NewClient() Client {
	provider := strings.ToLower(os.Getenv("AI_PROVIDER"))

	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Println("OPENAI_API_KEY not set, falling back to the mock AI client")
			return NewMockClient()
		}
		return NewOpenAIClient(apiKey, "", "")
	case "mock":
		return NewMockClient()
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		return NewOpenAIClient(apiKey, "", "")
	}

	fmt.Println("No AI provider configured, using the mock AI client")
	return NewMockClient()
}

// MockClient answers without any network call by splitting the scraped
// ingredients text on commas, which is close to what the model returns
// for these pages. It keeps tests and offline runs deterministic.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) SuggestIngredients(ctx context.Context, item catalog.Item) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return splitReply(item.IngredientsText), nil
}

// splitReply turns a comma-separated reply into trimmed candidates. Empty
// pieces are dropped, so stray commas never become ghost terms.
func splitReply(reply string) []string {
	parts := strings.Split(reply, ",")
	candidates := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		candidates = append(candidates, part)
	}
	return candidates
}
