package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfield/rulecore/internal/infrastructure/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			cfg: config.LLMConfig{
				APIKey: "test-key",
			},
			wantErr: false,
		},
		{
			name: "valid config with model",
			cfg: config.LLMConfig{
				APIKey: "test-key",
				Model:  "gpt-4",
			},
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     config.LLMConfig{},
			wantErr: true,
			errMsg:  "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestNewClient_DefaultModel(t *testing.T) {
	client, err := NewClient(config.LLMConfig{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", client.model)

	client, err = NewClient(config.LLMConfig{APIKey: "test-key", Model: "gpt-4"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", client.model)
}
