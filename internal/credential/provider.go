package credential

import (
	"context"
	"errors"
	"strings"

	"github.com/vfg2006/traffic-sync-engine/internal/config"
)

//go:generate mockgen -source=provider.go -destination=mocks/provider_mock.go -package=mocks

var ErrNoActiveCredential = errors.New("conta sem credencial ativa")

// Provider resolve o token ativo de uma conta. String vazia indica que não há credencial.
type Provider interface {
	GetActiveCredential(ctx context.Context, accountID string) (string, error)
}

// ConfigProvider lê os tokens da configuração: primeiro o token específico da conta,
// depois o token padrão.
type ConfigProvider struct {
	tokens       map[string]string
	defaultToken string
}

func NewConfigProvider(cfg config.Meta) *ConfigProvider {
	tokens := make(map[string]string, len(cfg.TokensByAccount))
	for accountID, token := range cfg.TokensByAccount {
		tokens[accountID] = token
	}

	return &ConfigProvider{
		tokens:       tokens,
		defaultToken: strings.TrimSpace(cfg.AccessToken),
	}
}

func (p *ConfigProvider) GetActiveCredential(_ context.Context, accountID string) (string, error) {
	if token, ok := p.tokens[accountID]; ok && token != "" {
		return token, nil
	}
	return p.defaultToken, nil
}
