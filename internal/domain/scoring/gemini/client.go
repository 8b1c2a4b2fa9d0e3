// Package gemini scores matches with a Gemini model instead of the rule
// strategy. The model returns dimension scores only; it produces no scoring
// contributions, so gemini-scored results carry no anchored evidence.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Client wraps the Google GenAI client for single-prompt text generation.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a client for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{client: client, model: model}, nil
}

// GenerateText sends the prompt and returns the concatenated textual parts of
// the first response.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", ErrNotInitialized
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt must not be empty")
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ErrEmptyResponse
	}
	return output, nil
}

// Model returns the model name used for generation.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
