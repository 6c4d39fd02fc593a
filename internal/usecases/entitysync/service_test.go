package entitysync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/bulk"
	bulkmocks "github.com/vfg2006/traffic-sync-engine/infrastructure/database/bulk/mocks"
	repomocks "github.com/vfg2006/traffic-sync-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	credmocks "github.com/vfg2006/traffic-sync-engine/internal/credential/mocks"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
	platformmocks "github.com/vfg2006/traffic-sync-engine/internal/platform/mocks"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	accounts *repomocks.MockAccountRepository
	entities *repomocks.MockEntityRepository
	adapter  *platformmocks.MockAdapter
	creds    *credmocks.MockProvider
	store    map[domain.EntityTier]map[string]string
	written  map[string][]bulk.Row
	service  *entitysync.Service
}

// newFixture simula o banco com mapas em memória: o upsert grava external_id -> id
// e ExternalIDMap devolve o que já foi gravado.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	f := &fixture{
		accounts: repomocks.NewMockAccountRepository(ctrl),
		entities: repomocks.NewMockEntityRepository(ctrl),
		adapter:  platformmocks.NewMockAdapter(ctrl),
		creds:    credmocks.NewMockProvider(ctrl),
		store:    make(map[domain.EntityTier]map[string]string),
		written:  make(map[string][]bulk.Row),
	}
	upserter := bulkmocks.NewMockUpserter(ctrl)

	f.adapter.EXPECT().Platform().Return(domain.PlatformMeta).AnyTimes()

	f.entities.EXPECT().
		ExternalIDMap(gomock.Any(), gomock.Any(), "acc-1").
		DoAndReturn(func(_ context.Context, tier domain.EntityTier, _ string) (map[string]string, error) {
			out := make(map[string]string)
			for k, v := range f.store[tier] {
				out[k] = v
			}
			return out, nil
		}).
		AnyTimes()

	upserter.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), []string{"account_id", "external_id"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, table string, rows []bulk.Row, _, _ []string) (int64, error) {
			tier := domain.EntityTier(table)
			if f.store[tier] == nil {
				f.store[tier] = make(map[string]string)
			}
			for _, r := range rows {
				f.store[tier][r["external_id"].(string)] = r["id"].(string)
			}
			f.written[table] = append(f.written[table], rows...)
			return int64(len(rows)), nil
		}).
		AnyTimes()

	f.service = entitysync.NewService(
		f.accounts,
		f.entities,
		upserter,
		platform.NewRegistry(f.adapter),
		f.creds,
		config.EntitySync{},
		entitysync.WithClock(func() time.Time { return now }),
	)

	return f
}

func (f *fixture) withAccount(syncedAt *time.Time) {
	f.accounts.EXPECT().GetAccountByID(gomock.Any(), "acc-1").Return(&domain.AdAccount{
		ID:         "acc-1",
		ExternalID: "123",
		Platform:   domain.PlatformMeta,
		SyncedAt:   syncedAt,
	}, nil)
	f.creds.EXPECT().GetActiveCredential(gomock.Any(), "acc-1").Return("tok", nil)
}

func (f *fixture) expectCascade(adGroups, ads, linked int64) {
	gomock.InOrder(
		f.entities.EXPECT().DemoteOrphanedAdGroups(gomock.Any(), "acc-1", now).Return(adGroups, nil),
		f.entities.EXPECT().DemoteOrphanedAds(gomock.Any(), "acc-1").Return(ads, nil),
		f.entities.EXPECT().LinkCreatives(gomock.Any(), "acc-1").Return(linked, nil),
	)
}

func TestSyncAccount_PassadaCompletaNaOrdem(t *testing.T) {
	f := newFixture(t)
	f.withAccount(nil)
	f.expectCascade(0, 0, 0)

	gomock.InOrder(
		f.adapter.EXPECT().FetchCampaigns(gomock.Any(), "123", "tok", nil).Return([]platform.Record{
			{platform.KeyExternalID: "c1", platform.KeyName: "Campanha", platform.KeyStatus: "ACTIVE", platform.KeyEffectiveStatus: "ACTIVE"},
		}, nil),
		f.adapter.EXPECT().FetchAdGroups(gomock.Any(), "123", "tok", nil, nil).Return([]platform.Record{
			{platform.KeyExternalID: "s1", platform.KeyCampaignID: "c1", platform.KeyEffectiveStatus: "ACTIVE"},
			{platform.KeyExternalID: "s2", platform.KeyCampaignID: "c-desconhecida"},
		}, nil),
		f.adapter.EXPECT().FetchAdCreatives(gomock.Any(), "123", "tok", nil).Return([]platform.Record{
			{platform.KeyExternalID: "cr1", platform.KeyTitle: "Título"},
		}, nil),
		f.adapter.EXPECT().FetchAds(gomock.Any(), "123", "tok", nil, nil, nil).Return([]platform.Record{
			{platform.KeyExternalID: "a1", platform.KeyCampaignID: "c1", platform.KeyAdGroupID: "s1", platform.KeyCreativeID: "cr1", platform.KeyStatus: ""},
			{platform.KeyExternalID: "a2", platform.KeyCampaignID: "c1", platform.KeyAdGroupID: "s2"},
		}, nil),
	)

	f.entities.EXPECT().TombstoneMissing(gomock.Any(), domain.TierCampaigns, "acc-1", []string{"c1"}, now).Return(int64(1), nil)
	f.entities.EXPECT().TombstoneMissing(gomock.Any(), domain.TierAdGroups, "acc-1", []string{"s1", "s2"}, now).Return(int64(0), nil)
	f.entities.EXPECT().TombstoneMissing(gomock.Any(), domain.TierAds, "acc-1", []string{"a1", "a2"}, now).Return(int64(0), nil)
	f.accounts.EXPECT().UpdateSyncedAt(gomock.Any(), "acc-1", now).Return(nil)

	result, err := f.service.SyncAccount(context.Background(), "acc-1", entitysync.Options{})
	require.NoError(t, err)

	require.Len(t, result.Tiers, 4)
	assert.Equal(t, domain.TierCampaigns, result.Tiers[0].Tier)
	assert.Equal(t, domain.TierAdGroups, result.Tiers[1].Tier)
	assert.Equal(t, domain.TierCreatives, result.Tiers[2].Tier)
	assert.Equal(t, domain.TierAds, result.Tiers[3].Tier)
	for _, tr := range result.Tiers {
		assert.Equal(t, entitysync.ModeFull, tr.Mode)
	}
	assert.Equal(t, int64(1), result.Tiers[0].Tombstoned)
	assert.Equal(t, 1, result.Tiers[1].Skipped)
	assert.Equal(t, 1, result.Tiers[3].Skipped)
	require.NotNil(t, result.SyncedAt)
	assert.Equal(t, now, *result.SyncedAt)

	require.Len(t, f.written["ad_groups"], 1)
	assert.Equal(t, f.store[domain.TierCampaigns]["c1"], f.written["ad_groups"][0]["campaign_id"])

	require.Len(t, f.written["ads"], 1)
	ad := f.written["ads"][0]
	assert.Equal(t, f.store[domain.TierAdGroups]["s1"], ad["ad_group_id"])
	assert.Equal(t, f.store[domain.TierCreatives]["cr1"], ad["creative_id"])
	assert.Equal(t, "cr1", ad["creative_external_id"])
	assert.Nil(t, ad["status"])
	assert.Contains(t, ad, "deleted_at")
	assert.Nil(t, ad["deleted_at"])
}

func TestSyncAccount_Incremental(t *testing.T) {
	f := newFixture(t)
	syncedAt := now.Add(-6 * time.Hour)
	since := syncedAt.Add(-time.Hour)

	f.store[domain.TierCampaigns] = map[string]string{"c1": "id-c1"}
	f.withAccount(&syncedAt)
	f.expectCascade(0, 0, 0)

	f.entities.EXPECT().CountByAccount(gomock.Any(), gomock.Any(), "acc-1").Return(10, nil).Times(4)

	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), "123", "tok", &since).Return([]platform.Record{
		{platform.KeyExternalID: "c1", platform.KeyName: "Renomeada"},
	}, nil)
	f.adapter.EXPECT().FetchAdGroups(gomock.Any(), "123", "tok", &since, nil).Return(nil, nil)
	f.adapter.EXPECT().FetchAdCreatives(gomock.Any(), "123", "tok", nil).Return(nil, nil)
	f.adapter.EXPECT().FetchAds(gomock.Any(), "123", "tok", &since, nil, nil).Return(nil, nil)
	f.accounts.EXPECT().UpdateSyncedAt(gomock.Any(), "acc-1", now).Return(nil)

	result, err := f.service.SyncAccount(context.Background(), "acc-1", entitysync.Options{})
	require.NoError(t, err)

	for _, tr := range result.Tiers {
		assert.Equal(t, entitysync.ModeIncremental, tr.Mode)
		assert.Zero(t, tr.Tombstoned)
	}

	require.Len(t, f.written["campaigns"], 1)
	assert.Equal(t, "id-c1", f.written["campaigns"][0]["id"])
}

func TestSyncAccount_NivelVazioForcaPassadaCompleta(t *testing.T) {
	f := newFixture(t)
	syncedAt := now.Add(-time.Hour)
	f.withAccount(&syncedAt)
	f.expectCascade(0, 0, 0)

	f.entities.EXPECT().CountByAccount(gomock.Any(), domain.TierCampaigns, "acc-1").Return(0, nil)

	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), "123", "tok", nil).Return(nil, nil)
	f.entities.EXPECT().TombstoneMissing(gomock.Any(), domain.TierCampaigns, "acc-1", []string{}, now).Return(int64(0), nil)

	result, err := f.service.SyncAccount(context.Background(), "acc-1", entitysync.Options{
		Tiers: []domain.EntityTier{domain.TierCampaigns},
	})
	require.NoError(t, err)
	require.Len(t, result.Tiers, 1)
	assert.Equal(t, entitysync.ModeFull, result.Tiers[0].Mode)
	assert.Nil(t, result.SyncedAt)
}

func TestSyncAccount_FalhaNoNivelInterrompePassada(t *testing.T) {
	f := newFixture(t)
	f.withAccount(nil)
	f.expectCascade(2, 3, 0)

	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), "123", "tok", nil).Return([]platform.Record{
		{platform.KeyExternalID: "c1"},
	}, nil)
	f.entities.EXPECT().TombstoneMissing(gomock.Any(), domain.TierCampaigns, "acc-1", []string{"c1"}, now).Return(int64(0), nil)
	f.adapter.EXPECT().FetchAdGroups(gomock.Any(), "123", "tok", nil, nil).Return(nil, platform.ErrUnavailable)

	result, err := f.service.SyncAccount(context.Background(), "acc-1", entitysync.Options{})
	require.Error(t, err)

	var tierErr *entitysync.TierError
	require.True(t, errors.As(err, &tierErr))
	assert.Equal(t, domain.TierAdGroups, tierErr.Tier)
	assert.ErrorIs(t, err, platform.ErrUnavailable)

	require.NotNil(t, result)
	assert.Len(t, result.Tiers, 2)
	assert.Len(t, f.written["campaigns"], 1)
	assert.Equal(t, int64(2), result.AdGroupsDemoted)
	assert.Equal(t, int64(3), result.AdsDemoted)
	assert.Nil(t, result.SyncedAt)
}

func TestSyncAccount_CampanhaEncerradaRebaixaFilhos(t *testing.T) {
	f := newFixture(t)
	syncedAt := now.Add(-24 * time.Hour)
	since := syncedAt.Add(-time.Hour)

	f.store[domain.TierCampaigns] = map[string]string{"c1": "id-c1"}
	f.store[domain.TierAdGroups] = map[string]string{"s1": "id-s1"}
	f.store[domain.TierAds] = map[string]string{"a1": "id-a1"}
	f.withAccount(&syncedAt)

	f.entities.EXPECT().CountByAccount(gomock.Any(), gomock.Any(), "acc-1").Return(1, nil).Times(4)

	// A campanha terminou ontem; conjunto e anúncio não mudaram na plataforma
	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), "123", "tok", &since).Return([]platform.Record{
		{
			platform.KeyExternalID:      "c1",
			platform.KeyStatus:          "ACTIVE",
			platform.KeyEffectiveStatus: "ACTIVE",
			platform.KeyEndTime:         now.Add(-24 * time.Hour).Format(time.RFC3339),
		},
	}, nil)
	f.adapter.EXPECT().FetchAdGroups(gomock.Any(), "123", "tok", &since, nil).Return(nil, nil)
	f.adapter.EXPECT().FetchAdCreatives(gomock.Any(), "123", "tok", nil).Return(nil, nil)
	f.adapter.EXPECT().FetchAds(gomock.Any(), "123", "tok", &since, nil, nil).Return(nil, nil)

	f.expectCascade(1, 1, 0)
	f.accounts.EXPECT().UpdateSyncedAt(gomock.Any(), "acc-1", now).Return(nil)

	result, err := f.service.SyncAccount(context.Background(), "acc-1", entitysync.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.AdGroupsDemoted)
	assert.Equal(t, int64(1), result.AdsDemoted)
}

func TestSyncAccount_ErrosAntesDaBusca(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f *fixture)
		expected error
	}{
		{
			name: "conta não encontrada",
			setup: func(f *fixture) {
				f.accounts.EXPECT().GetAccountByID(gomock.Any(), "acc-1").Return(nil, nil)
			},
			expected: entitysync.ErrAccountNotFound,
		},
		{
			name: "sem credencial ativa",
			setup: func(f *fixture) {
				f.accounts.EXPECT().GetAccountByID(gomock.Any(), "acc-1").Return(&domain.AdAccount{ID: "acc-1", ExternalID: "123"}, nil)
				f.creds.EXPECT().GetActiveCredential(gomock.Any(), "acc-1").Return("", nil)
			},
			expected: entitysync.ErrNoActiveCredential,
		},
		{
			name: "plataforma não suportada",
			setup: func(f *fixture) {
				f.accounts.EXPECT().GetAccountByID(gomock.Any(), "acc-1").Return(&domain.AdAccount{ID: "acc-1", Platform: "tiktok"}, nil)
			},
			expected: platform.ErrUnsupportedPlatform,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			result, err := f.service.SyncAccount(context.Background(), "acc-1", entitysync.Options{ForceFullSync: true})
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

// simulateTombstones marca como excluídas as linhas do mapa em memória que ficaram de
// fora da passada. Linhas que voltam na passada são revividas pelo upsert.
func (f *fixture) simulateTombstones() {
	deleted := make(map[domain.EntityTier]map[string]bool)
	f.entities.EXPECT().
		TombstoneMissing(gomock.Any(), gomock.Any(), "acc-1", gomock.Any(), now).
		DoAndReturn(func(_ context.Context, tier domain.EntityTier, _ string, keep []string, _ time.Time) (int64, error) {
			if deleted[tier] == nil {
				deleted[tier] = make(map[string]bool)
			}
			kept := make(map[string]bool, len(keep))
			for _, id := range keep {
				kept[id] = true
				delete(deleted[tier], id)
			}

			var n int64
			for externalID := range f.store[tier] {
				if !kept[externalID] && !deleted[tier][externalID] {
					deleted[tier][externalID] = true
					n++
				}
			}
			return n, nil
		}).
		AnyTimes()
}

func TestSyncAccount_PassadasRepetidasSaoIdempotentes(t *testing.T) {
	f := newFixture(t)
	syncedAt := now.Add(-24 * time.Hour)
	since := syncedAt.Add(-time.Hour)

	f.store[domain.TierCampaigns] = map[string]string{"c1": "id-c1", "c-antiga": "id-antiga"}
	f.store[domain.TierAdGroups] = map[string]string{"s1": "id-s1"}
	f.store[domain.TierAds] = map[string]string{"a1": "id-a1"}
	f.simulateTombstones()

	f.accounts.EXPECT().GetAccountByID(gomock.Any(), "acc-1").Return(&domain.AdAccount{
		ID:         "acc-1",
		ExternalID: "123",
		Platform:   domain.PlatformMeta,
		SyncedAt:   &syncedAt,
	}, nil).Times(3)
	f.creds.EXPECT().GetActiveCredential(gomock.Any(), "acc-1").Return("tok", nil).Times(3)
	f.entities.EXPECT().DemoteOrphanedAdGroups(gomock.Any(), "acc-1", now).Return(int64(0), nil).Times(3)
	f.entities.EXPECT().DemoteOrphanedAds(gomock.Any(), "acc-1").Return(int64(0), nil).Times(3)
	f.entities.EXPECT().LinkCreatives(gomock.Any(), "acc-1").Return(int64(0), nil).Times(3)
	f.accounts.EXPECT().UpdateSyncedAt(gomock.Any(), "acc-1", now).Return(nil).Times(3)

	campaigns := []platform.Record{
		{platform.KeyExternalID: "c1", platform.KeyStatus: "ACTIVE", platform.KeyEffectiveStatus: "ACTIVE"},
	}
	adGroups := []platform.Record{
		{platform.KeyExternalID: "s1", platform.KeyCampaignID: "c1", platform.KeyEffectiveStatus: "ACTIVE"},
	}
	ads := []platform.Record{
		{platform.KeyExternalID: "a1", platform.KeyCampaignID: "c1", platform.KeyAdGroupID: "s1", platform.KeyEffectiveStatus: "ACTIVE"},
	}

	// Duas passadas completas forçadas e depois uma incremental
	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), "123", "tok", nil).Return(campaigns, nil).Times(2)
	f.adapter.EXPECT().FetchAdGroups(gomock.Any(), "123", "tok", nil, nil).Return(adGroups, nil).Times(2)
	f.adapter.EXPECT().FetchAds(gomock.Any(), "123", "tok", nil, nil, nil).Return(ads, nil).Times(2)
	f.adapter.EXPECT().FetchAdCreatives(gomock.Any(), "123", "tok", nil).Return(nil, nil).Times(3)

	f.entities.EXPECT().CountByAccount(gomock.Any(), gomock.Any(), "acc-1").Return(1, nil).Times(4)
	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), "123", "tok", &since).Return(campaigns, nil)
	f.adapter.EXPECT().FetchAdGroups(gomock.Any(), "123", "tok", &since, nil).Return(adGroups, nil)
	f.adapter.EXPECT().FetchAds(gomock.Any(), "123", "tok", &since, nil, nil).Return(ads, nil)

	first, err := f.service.SyncAccount(context.Background(), "acc-1", entitysync.Options{ForceFullSync: true})
	require.NoError(t, err)
	assert.Equal(t, entitysync.ModeFull, first.Tiers[0].Mode)
	assert.Equal(t, int64(1), first.Tiers[0].Tombstoned)
	assert.Zero(t, first.Tiers[1].Tombstoned)
	assert.Zero(t, first.Tiers[3].Tombstoned)

	second, err := f.service.SyncAccount(context.Background(), "acc-1", entitysync.Options{ForceFullSync: true})
	require.NoError(t, err)
	for _, tr := range second.Tiers {
		assert.Equal(t, entitysync.ModeFull, tr.Mode)
		assert.Zero(t, tr.Tombstoned, tr.Tier)
	}

	third, err := f.service.SyncAccount(context.Background(), "acc-1", entitysync.Options{})
	require.NoError(t, err)
	for _, tr := range third.Tiers {
		assert.Equal(t, entitysync.ModeIncremental, tr.Mode)
		assert.Zero(t, tr.Tombstoned, tr.Tier)
	}

	// Nenhuma linha nova: os IDs existentes foram reaproveitados em todas as passadas
	assert.Len(t, f.store[domain.TierCampaigns], 2)
	assert.Len(t, f.store[domain.TierAdGroups], 1)
	assert.Len(t, f.store[domain.TierAds], 1)

	require.Len(t, f.written["campaigns"], 3)
	for _, row := range f.written["campaigns"] {
		assert.Equal(t, "id-c1", row["id"])
	}
	require.Len(t, f.written["ad_groups"], 3)
	for _, row := range f.written["ad_groups"] {
		assert.Equal(t, "id-s1", row["id"])
		assert.Equal(t, "id-c1", row["campaign_id"])
	}
	require.Len(t, f.written["ads"], 3)
	for _, row := range f.written["ads"] {
		assert.Equal(t, "id-a1", row["id"])
	}
}

func TestSyncAccount_StatusDesconhecidoNaoDerrubaNivel(t *testing.T) {
	f := newFixture(t)
	f.withAccount(nil)
	f.expectCascade(0, 0, 0)
	f.simulateTombstones()

	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), "123", "tok", nil).Return([]platform.Record{
		{platform.KeyExternalID: "c1", platform.KeyStatus: "ACTIVE", platform.KeyEffectiveStatus: "ACTIVE"},
	}, nil)
	f.adapter.EXPECT().FetchAdGroups(gomock.Any(), "123", "tok", nil, nil).Return([]platform.Record{
		{platform.KeyExternalID: "s1", platform.KeyCampaignID: "c1", platform.KeyEffectiveStatus: "ACTIVE"},
	}, nil)
	f.adapter.EXPECT().FetchAdCreatives(gomock.Any(), "123", "tok", nil).Return(nil, nil)
	f.adapter.EXPECT().FetchAds(gomock.Any(), "123", "tok", nil, nil, nil).Return([]platform.Record{
		{platform.KeyExternalID: "a1", platform.KeyCampaignID: "c1", platform.KeyAdGroupID: "s1", platform.KeyStatus: "ACTIVE", platform.KeyEffectiveStatus: "PENDING_BILLING_INFO"},
		{platform.KeyExternalID: "a2", platform.KeyCampaignID: "c1", platform.KeyAdGroupID: "s1", platform.KeyStatus: "ACTIVE", platform.KeyEffectiveStatus: "PREAPPROVED"},
		{platform.KeyExternalID: "a3", platform.KeyCampaignID: "c1", platform.KeyAdGroupID: "s1", platform.KeyStatus: "ACTIVE", platform.KeyEffectiveStatus: "STATUS_NOVO"},
	}, nil)
	f.accounts.EXPECT().UpdateSyncedAt(gomock.Any(), "acc-1", now).Return(nil)

	result, err := f.service.SyncAccount(context.Background(), "acc-1", entitysync.Options{})
	require.NoError(t, err)
	require.NotNil(t, result.SyncedAt)

	require.Len(t, f.written["ads"], 3)
	byExternalID := make(map[string]bulk.Row)
	for _, row := range f.written["ads"] {
		byExternalID[row["external_id"].(string)] = row
	}
	assert.Equal(t, "PENDING_BILLING_INFO", byExternalID["a1"]["effective_status"])
	assert.Equal(t, "PREAPPROVED", byExternalID["a2"]["effective_status"])
	assert.Nil(t, byExternalID["a3"]["effective_status"])
	assert.Equal(t, "ACTIVE", byExternalID["a3"]["status"])
}
