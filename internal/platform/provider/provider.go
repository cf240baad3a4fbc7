// Package provider builds the configured llm.Client.
package provider

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"fridgechef/internal/config"
	"fridgechef/internal/llm"
	"fridgechef/internal/platform/gemini"
	"fridgechef/internal/platform/openrouter"
)

// GeminiModel is used for both prompt kinds when the Gemini provider is
// selected without explicit model names.
const GeminiModel = "gemini-1.5-flash"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a client for cfg.LLM whose calls are bounded by cfg's upstream
// timeout, and a closer releasing its resources.
func New(ctx context.Context, cfg *config.Config) (llm.Client, io.Closer, error) {
	lc := cfg.LLM
	switch lc.Provider {
	case config.ProviderOpenRouter:
		client := openrouter.NewClient(openrouter.Config{
			APIKey:      lc.APIKey,
			BaseURL:     lc.BaseURL,
			TextModel:   lc.TextModel,
			VisionModel: lc.VisionModel,
			MaxTokens:   lc.MaxTokens,
		}, &http.Client{})
		return llm.WithTimeout(client, cfg.HTTP.UpstreamTimeout), nopCloser{}, nil

	case config.ProviderGemini:
		defaults := config.Default().LLM
		textModel, visionModel := lc.TextModel, lc.VisionModel
		if textModel == defaults.TextModel {
			textModel = GeminiModel
		}
		if visionModel == defaults.VisionModel {
			visionModel = GeminiModel
		}
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      lc.APIKey,
			TextModel:   textModel,
			VisionModel: visionModel,
			MaxTokens:   lc.MaxTokens,
		})
		if err != nil {
			return nil, nil, err
		}
		return llm.WithTimeout(client, cfg.HTTP.UpstreamTimeout), client, nil
	}
	return nil, nil, errors.Errorf("unknown llm provider %q", lc.Provider)
}
