package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgechef/internal/config"
)

func TestNewOpenRouter(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.APIKey = "key"

	client, closer, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.NoError(t, closer.Close())
}

func TestNewUnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "local"

	_, _, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
