// Package gemini adapts the Google Gemini API to llm.Client.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fridgechef/internal/llm"
)

// Config selects the models used for text and image prompts.
type Config struct {
	APIKey      string
	TextModel   string
	VisionModel string
	MaxTokens   int
}

// Client is a client for the Gemini API.
type Client struct {
	client *genai.Client
	cfg    Config
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}
	return &Client{client: client, cfg: cfg}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Complete sends the prompt, with the image first when present, and returns
// the concatenated text parts of the first candidate.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	name := c.cfg.TextModel
	var parts []genai.Part
	if req.Image != nil {
		name = c.cfg.VisionModel
		parts = append(parts, genai.ImageData(imageFormat(req.Image.MimeType), req.Image.Data))
	}
	parts = append(parts, genai.Text(req.Prompt))

	model := c.client.GenerativeModel(name)
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return responseText(resp)
}

// imageFormat converts a MIME type into the subtype genai.ImageData expects.
func imageFormat(mimeType string) string {
	_, sub, ok := strings.Cut(mimeType, "/")
	if !ok || sub == "" {
		return "jpeg"
	}
	return sub
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", llm.ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", llm.ErrEmptyResponse
	}
	return b.String(), nil
}
