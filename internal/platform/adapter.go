package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/traffic-sync-engine/internal/domain"
)

//go:generate mockgen -source=adapter.go -destination=mocks/adapter_mock.go -package=mocks

var (
	ErrUnsupportedPlatform = errors.New("plataforma não suportada")
	ErrTokenExpired        = errors.New("token da plataforma expirado ou inválido")
	ErrThrottled           = errors.New("limite de requisições da plataforma atingido")
	ErrUnavailable         = errors.New("plataforma indisponível")
)

type Level string

const (
	LevelCampaign Level = "campaign"
	LevelAdGroup  Level = "adset"
	LevelAd       Level = "ad"
)

// InsightsRequest descreve uma busca de métricas. Breakdown vazio busca sem quebra.
type InsightsRequest struct {
	AccountExternalID string
	Token             string
	Level             Level
	DateRange         domain.DateRange
	Granularity       domain.Granularity
	Breakdown         domain.Breakdown
	CampaignIDs       []string
	AdIDs             []string
}

type TokenInfo struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
}

// Adapter é o contrato de uma plataforma de anúncios. Os registros devolvidos
// usam as chaves canônicas de record.go, com IDs externos. FetchAdCreatives sem
// IDs lista todos os criativos da conta.
type Adapter interface {
	Platform() domain.Platform
	FetchCampaigns(ctx context.Context, accountExternalID, token string, since *time.Time) ([]Record, error)
	FetchAdGroups(ctx context.Context, accountExternalID, token string, since *time.Time, campaignIDs []string) ([]Record, error)
	FetchAds(ctx context.Context, accountExternalID, token string, since *time.Time, campaignIDs, adGroupIDs []string) ([]Record, error)
	FetchAdCreatives(ctx context.Context, accountExternalID, token string, creativeIDs []string) ([]Record, error)
	FetchInsights(ctx context.Context, req InsightsRequest) ([]Record, error)
	ValidateToken(ctx context.Context, token string) (*TokenInfo, error)
}

// Registry resolve o adaptador da plataforma de cada conta
type Registry struct {
	adapters map[domain.Platform]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[domain.Platform]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Platform()] = a
	}
	return r
}

func (r *Registry) For(p domain.Platform) (Adapter, error) {
	if p == "" {
		p = domain.PlatformMeta
	}
	a, ok := r.adapters[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
	}
	return a, nil
}
