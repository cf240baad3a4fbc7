// Package openrouter is a client for OpenAI-compatible chat completion APIs
// such as OpenRouter or a local LM Studio server.
package openrouter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fridgechef/internal/llm"
)

// Config selects the endpoint and models.
type Config struct {
	APIKey      string
	BaseURL     string
	TextModel   string
	VisionModel string
	MaxTokens   int
}

// Client represents a client for a chat completions endpoint.
type Client struct {
	httpClient *http.Client
	apiURL     string
	cfg        Config
}

// NewClient creates a new client. Call timeouts come from the request context.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		cfg:        cfg,
	}
}

// Request represents the request body for the chat completions API.
type Request struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

// Message represents a message in the request.
type Message struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// Content represents the content of a message.
type Content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL represents the image URL in the content.
type ImageURL struct {
	URL string `json:"url"`
}

// Response represents the response from the API. Providers report failures
// in the error field, sometimes with a 200 status.
type Response struct {
	Choices []Choice   `json:"choices"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the provider's error object.
type ErrorBody struct {
	Message string `json:"message"`
	Code    any    `json:"code,omitempty"`
}

// Choice represents a choice in the response.
type Choice struct {
	Message ResponseMessage `json:"message"`
}

// ResponseMessage represents a message in the response.
type ResponseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete sends one user message and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	model := c.cfg.TextModel
	content := []Content{{Type: "text", Text: req.Prompt}}
	if req.Image != nil {
		model = c.cfg.VisionModel
		content = append(content, Content{
			Type:     "image_url",
			ImageURL: &ImageURL{URL: dataURL(req.Image)},
		})
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}

	reqBytes, err := json.Marshal(Request{
		Model:     model,
		Messages:  []Message{{Role: "user", Content: content}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var out Response
	decodeErr := json.Unmarshal(body, &out)
	if decodeErr == nil && out.Error != nil {
		return "", &llm.APIError{StatusCode: resp.StatusCode, Message: out.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &llm.APIError{StatusCode: resp.StatusCode, Message: truncate(strings.TrimSpace(string(body)), 200)}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response body: %w", decodeErr)
	}

	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", llm.ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}

func dataURL(img *llm.Image) string {
	return "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
