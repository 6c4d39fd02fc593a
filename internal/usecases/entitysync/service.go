package entitysync

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/bulk"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/repository"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/credential"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/metrics"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"github.com/vfg2006/traffic-sync-engine/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/entity_sync_mock.go -package=mocks

const DefaultClockSkew = time.Hour

type Mode string

const (
	ModeFull        Mode = "full"
	ModeIncremental Mode = "incremental"
)

// Options controla uma passada. Tiers vazio sincroniza todos os níveis.
type Options struct {
	ForceFullSync bool                `json:"force_full_sync"`
	Tiers         []domain.EntityTier `json:"tiers"`
}

type TierResult struct {
	Tier       domain.EntityTier `json:"tier"`
	Mode       Mode              `json:"mode"`
	Since      *time.Time        `json:"since,omitempty"`
	Fetched    int               `json:"fetched"`
	Upserted   int64             `json:"upserted"`
	Skipped    int               `json:"skipped"`
	Tombstoned int64             `json:"tombstoned"`
}

type Result struct {
	AccountID       string       `json:"account_id"`
	Tiers           []TierResult `json:"tiers"`
	AdGroupsDemoted int64        `json:"ad_groups_demoted"`
	AdsDemoted      int64        `json:"ads_demoted"`
	CreativesLinked int64        `json:"creatives_linked"`
	SyncedAt        *time.Time   `json:"synced_at,omitempty"`
}

type EntitySyncer interface {
	SyncAccount(ctx context.Context, accountID string, opts Options) (*Result, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	entityRepository  repository.EntityRepository
	upserter          bulk.Upserter
	platforms         *platform.Registry
	credentials       credential.Provider
	clockSkew         time.Duration
	now               func() time.Time
}

type Option func(*Service)

// WithClock substitui o relógio usado para synced_at, tombamento e rebaixamento
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	accountRepository repository.AccountRepository,
	entityRepository repository.EntityRepository,
	upserter bulk.Upserter,
	platforms *platform.Registry,
	credentials credential.Provider,
	cfg config.EntitySync,
	opts ...Option,
) *Service {
	s := &Service{
		accountRepository: accountRepository,
		entityRepository:  entityRepository,
		upserter:          upserter,
		platforms:         platforms,
		credentials:       credentials,
		clockSkew:         cfg.ClockSkew,
		now:               time.Now,
	}
	if s.clockSkew <= 0 {
		s.clockSkew = DefaultClockSkew
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// pass guarda o estado de uma execução: conta, token e mapas de IDs externos por nível
type pass struct {
	account *domain.AdAccount
	adapter platform.Adapter
	token   string
	opts    Options
	now     time.Time
	idMaps  map[domain.EntityTier]map[string]string
}

// SyncAccount sincroniza campanhas, conjuntos, criativos e anúncios de uma conta,
// nessa ordem. Uma falha interrompe os níveis seguintes, mas os anteriores continuam
// gravados e o rebaixamento em cascata é executado mesmo assim.
func (s *Service) SyncAccount(ctx context.Context, accountID string, opts Options) (*Result, error) {
	start := time.Now()
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": accountID,
		"force_full": opts.ForceFullSync,
	})

	account, err := s.accountRepository.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conta %s: %w", accountID, err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	adapter, err := s.platforms.For(account.Platform)
	if err != nil {
		return nil, err
	}

	token, err := s.credentials.GetActiveCredential(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar credencial da conta %s: %w", accountID, err)
	}
	if token == "" {
		logger.Warn("Conta sem credencial ativa, sincronização de entidades ignorada")
		return nil, ErrNoActiveCredential
	}

	p := &pass{
		account: account,
		adapter: adapter,
		token:   token,
		opts:    opts,
		now:     s.now(),
		idMaps:  make(map[domain.EntityTier]map[string]string),
	}

	result := &Result{AccountID: account.ID}

	logger.Info("Iniciando sincronização de entidades")

	var syncErr error
	for _, tier := range requestedTiers(opts.Tiers) {
		tierResult, err := s.syncTier(ctx, p, tier)
		result.Tiers = append(result.Tiers, tierResult)
		if err != nil {
			logger.WithField("tier", tier).WithError(err).Error("Falha ao sincronizar nível, interrompendo a passada")
			syncErr = &TierError{Tier: tier, Err: err}
			break
		}
	}

	s.cascade(ctx, p, result)

	if syncErr == nil && coversAllTiers(opts.Tiers) {
		if err := s.accountRepository.UpdateSyncedAt(ctx, account.ID, p.now); err != nil {
			syncErr = fmt.Errorf("erro ao atualizar synced_at da conta %s: %w", accountID, err)
		} else {
			result.SyncedAt = &p.now
		}
	}

	status := "success"
	if syncErr != nil {
		status = "error"
	}
	metrics.SyncRuns.WithLabelValues("entities", status).Inc()
	metrics.SyncDuration.WithLabelValues("entities").Observe(time.Since(start).Seconds())

	logger.WithFields(log.Fields{
		"tiers":             len(result.Tiers),
		"ad_groups_demoted": result.AdGroupsDemoted,
		"ads_demoted":       result.AdsDemoted,
		"creatives_linked":  result.CreativesLinked,
		"duration":          time.Since(start).String(),
	}).Info("Sincronização de entidades finalizada")

	return result, syncErr
}

func (s *Service) syncTier(ctx context.Context, p *pass, tier domain.EntityTier) (TierResult, error) {
	tr := TierResult{Tier: tier}

	since, err := s.tierSince(ctx, p, tier)
	if err != nil {
		return tr, err
	}
	tr.Mode = ModeFull
	if since != nil {
		tr.Mode = ModeIncremental
		tr.Since = since
	}

	records, err := s.fetch(ctx, p, tier, since)
	if err != nil {
		return tr, err
	}
	tr.Fetched = len(records)

	rows, skipped, err := s.buildRows(ctx, p, tier, records)
	if err != nil {
		return tr, err
	}
	tr.Skipped = skipped

	n, err := s.upserter.Execute(ctx, string(tier), rows, uniqueColumns, updateColumns(rows))
	if err != nil {
		return tr, err
	}
	tr.Upserted = n

	// Recarrega o mapa para que os filhos enxerguem os IDs recém-criados
	delete(p.idMaps, tier)
	if _, err := s.idMap(ctx, p, tier); err != nil {
		return tr, err
	}

	if tr.Mode == ModeFull && tier != domain.TierCreatives {
		keep := make([]string, 0, len(records))
		for _, r := range records {
			if id := r.String(platform.KeyExternalID); id != "" {
				keep = append(keep, id)
			}
		}
		tombstoned, err := s.entityRepository.TombstoneMissing(ctx, tier, p.account.ID, keep, p.now)
		if err != nil {
			return tr, err
		}
		tr.Tombstoned = tombstoned
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": p.account.ID,
		"tier":       tier,
		"mode":       tr.Mode,
		"fetched":    tr.Fetched,
		"upserted":   tr.Upserted,
		"skipped":    tr.Skipped,
		"tombstoned": tr.Tombstoned,
	}).Info("Nível sincronizado")

	return tr, nil
}

// tierSince retorna nil para passada completa. A passada é completa quando forçada,
// quando a conta nunca foi sincronizada ou quando o nível ainda não tem linhas.
func (s *Service) tierSince(ctx context.Context, p *pass, tier domain.EntityTier) (*time.Time, error) {
	if p.opts.ForceFullSync || p.account.SyncedAt == nil {
		return nil, nil
	}

	count, err := s.entityRepository.CountByAccount(ctx, tier, p.account.ID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	since := p.account.SyncedAt.Add(-s.clockSkew)
	return &since, nil
}

func (s *Service) fetch(ctx context.Context, p *pass, tier domain.EntityTier, since *time.Time) ([]platform.Record, error) {
	ext := p.account.ExternalID

	switch tier {
	case domain.TierCampaigns:
		return p.adapter.FetchCampaigns(ctx, ext, p.token, since)
	case domain.TierAdGroups:
		return p.adapter.FetchAdGroups(ctx, ext, p.token, since, nil)
	case domain.TierCreatives:
		return p.adapter.FetchAdCreatives(ctx, ext, p.token, nil)
	case domain.TierAds:
		return p.adapter.FetchAds(ctx, ext, p.token, since, nil, nil)
	}

	return nil, fmt.Errorf("nível de entidade desconhecido: %s", tier)
}

func (s *Service) idMap(ctx context.Context, p *pass, tier domain.EntityTier) (map[string]string, error) {
	if m, ok := p.idMaps[tier]; ok {
		return m, nil
	}

	m, err := s.entityRepository.ExternalIDMap(ctx, tier, p.account.ID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]string)
	}
	p.idMaps[tier] = m

	return m, nil
}

func (s *Service) buildRows(ctx context.Context, p *pass, tier domain.EntityTier, records []platform.Record) ([]bulk.Row, int, error) {
	existing, err := s.idMap(ctx, p, tier)
	if err != nil {
		return nil, 0, err
	}

	var campaigns, adGroups, creatives map[string]string
	switch tier {
	case domain.TierAdGroups:
		if campaigns, err = s.idMap(ctx, p, domain.TierCampaigns); err != nil {
			return nil, 0, err
		}
	case domain.TierAds:
		if campaigns, err = s.idMap(ctx, p, domain.TierCampaigns); err != nil {
			return nil, 0, err
		}
		if adGroups, err = s.idMap(ctx, p, domain.TierAdGroups); err != nil {
			return nil, 0, err
		}
		if creatives, err = s.idMap(ctx, p, domain.TierCreatives); err != nil {
			return nil, 0, err
		}
	}

	rows := make([]bulk.Row, 0, len(records))
	skipped := 0
	for _, r := range records {
		externalID := r.String(platform.KeyExternalID)
		if externalID == "" {
			skipped++
			continue
		}

		id, ok := existing[externalID]
		if !ok {
			if id, err = utils.GenerateID(); err != nil {
				return nil, 0, fmt.Errorf("erro ao gerar ID para %s %s: %w", tier, externalID, err)
			}
		}

		row := bulk.Row{
			"id":          id,
			"account_id":  p.account.ID,
			"external_id": externalID,
			"name":        r.String(platform.KeyName),
			"raw":         r[platform.KeyRaw],
			"synced_at":   p.now,
		}

		switch tier {
		case domain.TierCampaigns:
			row["objective"] = r.String(platform.KeyObjective)
			row["status"] = enumValue(ctx, tier, r, platform.KeyStatus)
			row["effective_status"] = enumValue(ctx, tier, r, platform.KeyEffectiveStatus)
			row["daily_budget"] = r[platform.KeyDailyBudget]
			row["lifetime_budget"] = r[platform.KeyLifetimeBudget]
			row["start_time"] = r[platform.KeyStartTime]
			row["end_time"] = r[platform.KeyEndTime]
			row["created_time"] = r[platform.KeyCreatedTime]
			row["updated_time"] = r[platform.KeyUpdatedTime]
			row["deleted_at"] = nil

		case domain.TierAdGroups:
			campaignID, ok := campaigns[r.String(platform.KeyCampaignID)]
			if !ok {
				s.skipOrphan(ctx, p, tier, externalID, "campaign_id", r.String(platform.KeyCampaignID))
				skipped++
				continue
			}
			row["campaign_id"] = campaignID
			row["status"] = enumValue(ctx, tier, r, platform.KeyStatus)
			row["effective_status"] = enumValue(ctx, tier, r, platform.KeyEffectiveStatus)
			row["optimization_goal"] = r.String(platform.KeyOptimization)
			row["billing_event"] = r.String(platform.KeyBillingEvent)
			row["daily_budget"] = r[platform.KeyDailyBudget]
			row["lifetime_budget"] = r[platform.KeyLifetimeBudget]
			row["start_time"] = r[platform.KeyStartTime]
			row["end_time"] = r[platform.KeyEndTime]
			row["targeting"] = r[platform.KeyTargeting]
			row["updated_time"] = r[platform.KeyUpdatedTime]
			row["deleted_at"] = nil

		case domain.TierCreatives:
			row["status"] = r.String(platform.KeyStatus)
			row["title"] = r.String(platform.KeyTitle)
			row["body"] = r.String(platform.KeyBody)
			row["image_url"] = r.String(platform.KeyImageURL)
			row["thumbnail_url"] = r.String(platform.KeyThumbnailURL)
			row["call_to_action_type"] = r.String(platform.KeyCallToAction)
			row["object_story_spec"] = r[platform.KeyObjectStorySpec]

		case domain.TierAds:
			adGroupID, ok := adGroups[r.String(platform.KeyAdGroupID)]
			if !ok {
				s.skipOrphan(ctx, p, tier, externalID, "ad_group_id", r.String(platform.KeyAdGroupID))
				skipped++
				continue
			}
			campaignID, ok := campaigns[r.String(platform.KeyCampaignID)]
			if !ok {
				s.skipOrphan(ctx, p, tier, externalID, "campaign_id", r.String(platform.KeyCampaignID))
				skipped++
				continue
			}

			creativeExternalID := r.String(platform.KeyCreativeID)
			var creativeID any
			if cid, ok := creatives[creativeExternalID]; ok {
				creativeID = cid
			}

			row["campaign_id"] = campaignID
			row["ad_group_id"] = adGroupID
			row["creative_id"] = creativeID
			row["creative_external_id"] = nullableText(creativeExternalID)
			row["status"] = enumValue(ctx, tier, r, platform.KeyStatus)
			row["effective_status"] = enumValue(ctx, tier, r, platform.KeyEffectiveStatus)
			row["updated_time"] = r[platform.KeyUpdatedTime]
			row["deleted_at"] = nil
		}

		rows = append(rows, row)
	}

	return rows, skipped, nil
}

func (s *Service) skipOrphan(ctx context.Context, p *pass, tier domain.EntityTier, externalID, parentKey, parentExternalID string) {
	metrics.EntitiesSkipped.WithLabelValues(string(tier)).Inc()
	log.ForContext(ctx).WithFields(log.Fields{
		"account_id":  p.account.ID,
		"tier":        tier,
		"external_id": externalID,
		parentKey:     parentExternalID,
	}).Warn("Entidade ignorada: pai não encontrado")
}

// cascade rebaixa conjuntos e anúncios cujo pai não está mais ativo e liga
// anúncios a criativos que chegaram depois. Falhas são apenas registradas.
func (s *Service) cascade(ctx context.Context, p *pass, result *Result) {
	logger := log.ForContext(ctx).WithField("account_id", p.account.ID)

	n, err := s.entityRepository.DemoteOrphanedAdGroups(ctx, p.account.ID, p.now)
	if err != nil {
		logger.WithError(err).Error("Erro ao rebaixar conjuntos de anúncios")
	}
	result.AdGroupsDemoted = n

	// Depois dos conjuntos, para propagar o rebaixamento na mesma passada
	n, err = s.entityRepository.DemoteOrphanedAds(ctx, p.account.ID)
	if err != nil {
		logger.WithError(err).Error("Erro ao rebaixar anúncios")
	}
	result.AdsDemoted = n

	n, err = s.entityRepository.LinkCreatives(ctx, p.account.ID)
	if err != nil {
		logger.WithError(err).Error("Erro ao vincular criativos aos anúncios")
	}
	result.CreativesLinked = n
}

var uniqueColumns = []string{"account_id", "external_id"}

// updateColumns atualiza tudo exceto a chave e o ID interno
func updateColumns(rows []bulk.Row) []string {
	if len(rows) == 0 {
		return nil
	}

	columns := make([]string, 0, len(rows[0]))
	for name := range rows[0] {
		switch name {
		case "id", "account_id", "external_id":
			continue
		}
		columns = append(columns, name)
	}
	sort.Strings(columns)
	return columns
}

func requestedTiers(tiers []domain.EntityTier) []domain.EntityTier {
	if len(tiers) == 0 {
		return domain.TierOrder
	}

	requested := make(map[domain.EntityTier]bool, len(tiers))
	for _, t := range tiers {
		requested[t] = true
	}

	out := make([]domain.EntityTier, 0, len(tiers))
	for _, t := range domain.TierOrder {
		if requested[t] {
			out = append(out, t)
		}
	}
	return out
}

func coversAllTiers(tiers []domain.EntityTier) bool {
	return len(requestedTiers(tiers)) == len(domain.TierOrder)
}

// enumValue devolve o status aceito pelo tipo entity_status. Um valor que o banco não
// conhece vira NULL, para que um status novo da plataforma não derrube o nível inteiro.
func enumValue(ctx context.Context, tier domain.EntityTier, r platform.Record, key string) any {
	raw := r.String(key)
	if raw == "" {
		return nil
	}

	status, ok := domain.ParseEntityStatus(raw)
	if !ok {
		log.ForContext(ctx).WithFields(log.Fields{
			"tier":        tier,
			"external_id": r.String(platform.KeyExternalID),
			"field":       key,
			"status":      raw,
		}).Warn("Status desconhecido, gravando como NULL")
		return nil
	}
	return string(status)
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
