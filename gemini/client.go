// Package gemini wraps the generative-text service behind a one-call
// interface. A single request is made per generation; a failed attempt is
// terminal and must be re-triggered by the user.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	// ErrGenerationFailed covers transport errors and non-success statuses
	// from the service.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrInvalidResponse covers a 2xx reply whose payload carries no usable
	// text. Kept distinct from transport failure so callers can surface it
	// separately.
	ErrInvalidResponse = errors.New("invalid AI response")
)

// Generator produces raw report text from an instruction prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client calls the Gemini API through the official SDK.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// New builds a Client for the given API key and model name.
func New(ctx context.Context, apiKey, modelName string) (*Client, error) {
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{client: c, model: c.GenerativeModel(modelName)}, nil
}

// Generate sends the prompt as the sole user message and returns the first
// candidate's text. No retries.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return firstText(resp)
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrInvalidResponse
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", ErrInvalidResponse
}
