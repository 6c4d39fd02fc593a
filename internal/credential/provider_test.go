package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
)

func TestConfigProvider_GetActiveCredential(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.Meta
		accountID string
		expected  string
	}{
		{
			name: "token específico da conta",
			cfg: config.Meta{
				AccessToken:     "padrao",
				TokensByAccount: map[string]string{"acc-1": "especifico"},
			},
			accountID: "acc-1",
			expected:  "especifico",
		},
		{
			name: "usa token padrão",
			cfg: config.Meta{
				AccessToken:     " padrao ",
				TokensByAccount: map[string]string{"acc-1": "especifico"},
			},
			accountID: "acc-2",
			expected:  "padrao",
		},
		{
			name:      "sem credencial",
			cfg:       config.Meta{},
			accountID: "acc-1",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := NewConfigProvider(tt.cfg).GetActiveCredential(context.Background(), tt.accountID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}
