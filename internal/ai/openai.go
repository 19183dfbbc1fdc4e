package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/adrianlzt/jardin-du-the/internal/catalog"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4-1106-preview"
)

// ingredientPrompt steers the model towards the short comma-separated
// answer the rest of the pipeline parses. Wording and the worked example
// are tuned for the French tea descriptions this project scrapes; the
// {tea_text} marker is replaced with the combined product text.
const ingredientPrompt = `Extract ingredients given a description of a tea.
    The ingredients should be normalized, for example, "morceaux de gingembre" should be returned as "gingembre".
    'The vert' should not be considered as an ingredient.

    Example:

    PROMPT: Thé vert Ginger pepper. Gingembre et poivre noir. Thé vert parfumé au gingembre. Agrémenté de morceaux de gingembre et de poivre noir. thé vert (90 %), morceaux de gingembre, grains de poivre noir, arôme
    REPONSE: gingembre, poivre noir


    TEA TEXT: {tea_text}`

// OpenAIClient talks to the chat completions endpoint.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient builds a client for the given key. Empty baseURL and
// model fall back to the public endpoint and the pinned default model;
// OPENAI_MODEL overrides the model without a config change.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if model == "" {
		model = os.Getenv("OPENAI_MODEL")
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *OpenAIClient) SuggestIngredients(ctx context.Context, item catalog.Item) ([]string, error) {
	prompt := strings.ReplaceAll(ingredientPrompt, "{tea_text}", item.CombinedText())
	reply, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ingredient suggestion failed: %w", err)
	}
	return splitReply(reply), nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api returned status %d: %s", resp.StatusCode, truncateText(string(respBody), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse response failed: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("api returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func truncateText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
