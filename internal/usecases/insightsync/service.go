package insightsync

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/bulk"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/repository"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/credential"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/metrics"
	"github.com/vfg2006/traffic-sync-engine/internal/notifier"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/insight_sync_mock.go -package=mocks

// DefaultChunkSize é o máximo de anúncios por requisição de métricas
const DefaultChunkSize = 50

type Request struct {
	AccountID      string             `json:"account_id"`
	DateRange      domain.DateRange   `json:"date_range"`
	Granularity    domain.Granularity `json:"granularity"`
	AdExternalIDs  []string           `json:"ad_external_ids"`
	SkipBreakdowns bool               `json:"skip_breakdowns"`
}

type Result struct {
	AccountID        string                     `json:"account_id"`
	Granularity      domain.Granularity         `json:"granularity"`
	DateRange        domain.DateRange           `json:"date_range"`
	AdsCount         int                        `json:"ads_count"`
	Chunks           int                        `json:"chunks"`
	FailedChunks     int                        `json:"failed_chunks"`
	RowsWritten      int64                      `json:"rows_written"`
	Breakdowns       map[domain.Breakdown]int64 `json:"breakdowns,omitempty"`
	FailedBreakdowns []domain.Breakdown         `json:"failed_breakdowns,omitempty"`
	RollupTriggered  bool                       `json:"rollup_triggered"`
	Totals           domain.Totals              `json:"totals"`
}

type InsightSyncer interface {
	Sync(ctx context.Context, req Request) (*Result, error)
	CleanupHourly(ctx context.Context, now time.Time) (int64, error)
}

// RollupTrigger agenda a consolidação de uma filial sem bloquear o chamador
type RollupTrigger interface {
	Trigger(branchID string, dateRange domain.DateRange)
}

type Service struct {
	accountRepository   repository.AccountRepository
	entityRepository    repository.EntityRepository
	adInsightRepository repository.AdInsightRepository
	upserter            bulk.Upserter
	platforms           *platform.Registry
	credentials         credential.Provider
	rollups             RollupTrigger
	notifier            notifier.Notifier
	chunkSize           int
	now                 func() time.Time
}

type Option func(*Service)

func WithRollupTrigger(t RollupTrigger) Option {
	return func(s *Service) {
		s.rollups = t
	}
}

func WithNotifier(n notifier.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	accountRepository repository.AccountRepository,
	entityRepository repository.EntityRepository,
	adInsightRepository repository.AdInsightRepository,
	upserter bulk.Upserter,
	platforms *platform.Registry,
	credentials credential.Provider,
	cfg config.InsightSync,
	opts ...Option,
) *Service {
	s := &Service{
		accountRepository:   accountRepository,
		entityRepository:    entityRepository,
		adInsightRepository: adInsightRepository,
		upserter:            upserter,
		platforms:           platforms,
		credentials:         credentials,
		chunkSize:           cfg.ChunkSize,
		now:                 time.Now,
	}
	if s.chunkSize <= 0 || s.chunkSize > DefaultChunkSize {
		s.chunkSize = DefaultChunkSize
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// pass reúne o que uma execução precisa: conta, token e anúncios selecionados
type pass struct {
	req     Request
	account *domain.AdAccount
	adapter platform.Adapter
	token   string
	now     time.Time
	ads     map[string]*domain.Ad // por ID externo
	written map[domain.InsightKey]bool
	result  *Result
}

// Sync busca e grava as métricas dos anúncios de uma conta no intervalo pedido.
// Falhas de busca de um lote são registradas e o lote é pulado; falhas de escrita
// interrompem a passada.
func (s *Service) Sync(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if req.Granularity == "" {
		req.Granularity = domain.GranularityDaily
	}
	if req.DateRange.Since.After(req.DateRange.Until) {
		return nil, ErrInvalidDateRange
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id":  req.AccountID,
		"granularity": req.Granularity,
		"range":       req.DateRange.String(),
	})

	account, err := s.accountRepository.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conta %s: %w", req.AccountID, err)
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
		return nil, fmt.Errorf("erro ao buscar credencial da conta %s: %w", req.AccountID, err)
	}
	if token == "" {
		logger.Warn("Conta sem credencial ativa, sincronização de métricas ignorada")
		return nil, ErrNoActiveCredential
	}

	ads, err := s.selectAds(ctx, account.ID, req)
	if err != nil {
		return nil, err
	}

	p := &pass{
		req:     req,
		account: account,
		adapter: adapter,
		token:   token,
		now:     s.now(),
		ads:     ads,
		written: make(map[domain.InsightKey]bool),
		result: &Result{
			AccountID:   account.ID,
			Granularity: req.Granularity,
			DateRange:   req.DateRange,
			AdsCount:    len(ads),
		},
	}

	if len(ads) == 0 {
		logger.Info("Nenhum anúncio elegível para sincronização de métricas")
		return p.result, nil
	}

	logger.WithField("ads_count", len(ads)).Info("Iniciando sincronização de métricas")

	if req.Granularity == domain.GranularityHourly {
		err = s.syncHourly(ctx, p)
	} else {
		err = s.syncDaily(ctx, p)
		if err == nil && !req.SkipBreakdowns && len(p.written) > 0 {
			err = s.syncBreakdowns(ctx, p)
		}
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.SyncRuns.WithLabelValues("insights", status).Inc()
	metrics.SyncDuration.WithLabelValues("insights").Observe(time.Since(start).Seconds())

	if err != nil {
		logger.WithError(err).Error("Sincronização de métricas interrompida")
		return p.result, err
	}

	s.triggerRollup(ctx, p)
	s.notify(ctx, p)

	logger.WithFields(log.Fields{
		"chunks":        p.result.Chunks,
		"failed_chunks": p.result.FailedChunks,
		"rows_written":  p.result.RowsWritten,
		"duration":      time.Since(start).String(),
	}).Info("Sincronização de métricas finalizada")

	return p.result, nil
}

// selectAds escolhe os anúncios entregáveis. IDs explícitos ignoram o filtro de status
// apenas na granularidade diária.
func (s *Service) selectAds(ctx context.Context, accountID string, req Request) (map[string]*domain.Ad, error) {
	var (
		ads []*domain.Ad
		err error
	)
	if len(req.AdExternalIDs) > 0 {
		ads, err = s.entityRepository.ListAdsByExternalIDs(ctx, accountID, req.AdExternalIDs)
	} else {
		ads, err = s.entityRepository.ListAdsByStatus(ctx, accountID, domain.DeliverableStatuses)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao listar anúncios da conta %s: %w", accountID, err)
	}

	filter := len(req.AdExternalIDs) == 0 || req.Granularity == domain.GranularityHourly

	selected := make(map[string]*domain.Ad, len(ads))
	for _, ad := range ads {
		if filter && !ad.EffectiveStatus.IsDeliverable() {
			continue
		}
		selected[ad.ExternalID] = ad
	}
	return selected, nil
}

func (s *Service) syncDaily(ctx context.Context, p *pass) error {
	for _, chunk := range chunkAds(p.ads, s.chunkSize) {
		p.result.Chunks++

		records, err := p.adapter.FetchInsights(ctx, platform.InsightsRequest{
			AccountExternalID: p.account.ExternalID,
			Token:             p.token,
			Level:             platform.LevelAd,
			DateRange:         p.req.DateRange,
			Granularity:       domain.GranularityDaily,
			AdIDs:             chunk,
		})
		if err != nil {
			s.chunkFailed(ctx, p, chunk, p.req.DateRange, err)
			continue
		}

		rows := make([]bulk.Row, 0, len(records))
		for _, r := range records {
			row, key, ok := dailyRow(p, r)
			if !ok {
				continue
			}
			rows = append(rows, row)
			p.written[key] = true
			p.result.Totals.Add(totalsOf(r))
		}

		n, err := s.upserter.Execute(ctx, bulk.TableInsights, rows, dailyUniqueColumns, updateColumns(rows, dailyUniqueColumns))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteInsights, err)
		}
		p.result.RowsWritten += n
	}

	return nil
}

// syncHourly faz uma busca por dia para cada lote. O crescimento de cada faixa usa
// a faixa anterior buscada nesta passada ou, na falta dela, a gravada no banco.
func (s *Service) syncHourly(ctx context.Context, p *pass) error {
	days := p.req.DateRange.Days()

	for _, chunk := range chunkAds(p.ads, s.chunkSize) {
		fetched := make([]hourlyRecord, 0)
		for _, day := range days {
			p.result.Chunks++

			records, err := p.adapter.FetchInsights(ctx, platform.InsightsRequest{
				AccountExternalID: p.account.ExternalID,
				Token:             p.token,
				Level:             platform.LevelAd,
				DateRange:         domain.SingleDay(day),
				Granularity:       domain.GranularityHourly,
				AdIDs:             chunk,
			})
			if err != nil {
				s.chunkFailed(ctx, p, chunk, domain.SingleDay(day), err)
				continue
			}

			for _, r := range records {
				if hr, ok := toHourlyRecord(p, r); ok {
					fetched = append(fetched, hr)
				}
			}
		}

		if len(fetched) == 0 {
			continue
		}

		stored, err := s.storedSlots(ctx, p, chunk, days)
		if err != nil {
			return err
		}

		slots := newSlotIndex(fetched, stored)
		rows := make([]bulk.Row, 0, len(fetched))
		for _, hr := range fetched {
			rows = append(rows, hourlyRow(p, hr, slots))
			p.result.Totals.Add(totalsOf(hr.record))
		}

		n, err := s.upserter.Execute(ctx, bulk.TableHourlyInsights, rows, hourlyUniqueColumns, updateColumns(rows, hourlyUniqueColumns))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteInsights, err)
		}
		p.result.RowsWritten += n
	}

	return nil
}

// storedSlots carrega do banco as faixas dos dias da passada e do dia anterior ao primeiro
func (s *Service) storedSlots(ctx context.Context, p *pass, chunk []string, days []time.Time) ([]domain.HourlyMetrics, error) {
	adIDs := make([]string, 0, len(chunk))
	for _, ext := range chunk {
		adIDs = append(adIDs, p.ads[ext].ID)
	}

	dates := make([]time.Time, 0, len(days)+1)
	if len(days) > 0 {
		dates = append(dates, days[0].AddDate(0, 0, -1))
	}
	dates = append(dates, days...)

	stored, err := s.adInsightRepository.HourlyRows(ctx, p.account.ID, adIDs, dates)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar faixas horárias gravadas: %w", err)
	}
	return stored, nil
}

func (s *Service) chunkFailed(ctx context.Context, p *pass, chunk []string, dateRange domain.DateRange, err error) {
	p.result.FailedChunks++
	metrics.InsightChunkFailures.WithLabelValues(string(p.req.Granularity)).Inc()

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id":  p.account.ID,
		"granularity": p.req.Granularity,
		"range":       dateRange.String(),
		"ads_count":   len(chunk),
	}).WithError(err).Error("Erro ao buscar métricas do lote, seguindo para o próximo")
}

func (s *Service) triggerRollup(ctx context.Context, p *pass) {
	if s.rollups == nil || p.req.Granularity != domain.GranularityDaily {
		return
	}
	if p.result.RowsWritten == 0 || !p.account.HasBranch() {
		return
	}

	s.rollups.Trigger(*p.account.BranchID, p.req.DateRange)
	p.result.RollupTriggered = true

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": p.account.ID,
		"branch_id":  *p.account.BranchID,
		"range":      p.req.DateRange.String(),
	}).Debug("Consolidação da filial agendada")
}

func (s *Service) notify(ctx context.Context, p *pass) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.Notify(ctx, domain.SyncSummary{
		AccountID:   p.account.ID,
		AccountName: p.account.Name,
		Granularity: p.req.Granularity,
		Range:       p.req.DateRange,
		AdsCount:    p.result.AdsCount,
		RowsWritten: p.result.RowsWritten,
		Totals:      p.result.Totals,
	})
	if err != nil {
		log.ForContext(ctx).WithField("account_id", p.account.ID).WithError(err).Warn("Erro ao notificar resumo da sincronização")
	}
}

// CleanupHourly remove as faixas horárias anteriores a ontem
func (s *Service) CleanupHourly(ctx context.Context, now time.Time) (int64, error) {
	before := domain.TruncateDay(now).AddDate(0, 0, -1)

	n, err := s.adInsightRepository.DeleteHourlyBefore(ctx, before)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("retention", "error").Inc()
		return 0, err
	}
	metrics.SyncRuns.WithLabelValues("retention", "success").Inc()

	log.ForContext(ctx).WithFields(log.Fields{
		"before":       before.Format(time.DateOnly),
		"rows_deleted": n,
	}).Info("Limpeza de métricas por hora finalizada")

	return n, nil
}
