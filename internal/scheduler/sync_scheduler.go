package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/repository"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"github.com/vfg2006/traffic-sync-engine/pkg/utils"
)

type JobType string

const (
	JobDaily     JobType = "daily"
	JobHourly    JobType = "hourly"
	JobRetention JobType = "retention"
)

var JobTypes = []JobType{JobDaily, JobHourly, JobRetention}

var (
	ErrUnknownJob = errors.New("tipo de job desconhecido")
	ErrJobRunning = errors.New("job já em andamento")
)

func ParseJobType(s string) (JobType, error) {
	for _, j := range JobTypes {
		if string(j) == s {
			return j, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownJob, s)
}

// SyncScheduler agenda as passadas de sincronização de todas as contas ativas:
// diária (entidades e métricas diárias), por hora (métricas do dia) e retenção.
type SyncScheduler struct {
	scheduler     *gocron.Scheduler
	config        config.Scheduler
	accountRepo   repository.AccountRepository
	entitySyncer  entitysync.EntitySyncer
	insightSyncer insightsync.InsightSyncer
	now           func() time.Time

	mu              sync.Mutex
	running         map[JobType]bool
	accountsRunning map[string]bool
	lastStartedAt   map[JobType]time.Time
	lastCompletedAt map[JobType]time.Time
}

func NewSyncScheduler(
	accountRepo repository.AccountRepository,
	entitySyncer entitysync.EntitySyncer,
	insightSyncer insightsync.InsightSyncer,
	cfg config.Scheduler,
) *SyncScheduler {
	if cfg.MaxConcurrentJobs <= 0 {
		cfg.MaxConcurrentJobs = 3
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 1
	}

	logrus.WithFields(logrus.Fields{
		"daily_cron":          cfg.DailyCron,
		"hourly_cron":         cfg.HourlyCron,
		"retention_cron":      cfg.RetentionCron,
		"lookback_days":       cfg.LookbackDays,
		"max_concurrent_jobs": cfg.MaxConcurrentJobs,
		"sync_enabled":        cfg.Enabled,
	}).Info("Configuração do agendador de sincronização carregada")

	return &SyncScheduler{
		scheduler:       gocron.NewScheduler(time.Local),
		config:          cfg,
		accountRepo:     accountRepo,
		entitySyncer:    entitySyncer,
		insightSyncer:   insightSyncer,
		now:             time.Now,
		running:         make(map[JobType]bool),
		accountsRunning: make(map[string]bool),
		lastStartedAt:   make(map[JobType]time.Time),
		lastCompletedAt: make(map[JobType]time.Time),
	}
}

// Start agenda os jobs e para o agendador quando ctx for cancelado
func (s *SyncScheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sincronização agendada desabilitada por configuração")
		return nil
	}

	crons := map[JobType]string{
		JobDaily:     s.config.DailyCron,
		JobHourly:    s.config.HourlyCron,
		JobRetention: s.config.RetentionCron,
	}

	for _, job := range JobTypes {
		job := job
		expr := crons[job]
		if expr == "" {
			continue
		}

		_, err := s.scheduler.Cron(expr).Do(func() {
			if err := s.Run(ctx, job); err != nil && !errors.Is(err, ErrJobRunning) {
				logrus.WithError(err).WithField("job", job).Error("Erro ao executar job agendado")
			}
		})
		if err != nil {
			return fmt.Errorf("erro ao agendar job %s: %w", job, err)
		}
		logrus.WithFields(logrus.Fields{"job": job, "cron": expr}).Info("Job de sincronização agendado")
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização")
		s.scheduler.Stop()
	}()

	return nil
}

// Run executa um job de forma síncrona. Um mesmo tipo de job não roda duas vezes ao mesmo tempo.
func (s *SyncScheduler) Run(ctx context.Context, job JobType) error {
	if _, err := ParseJobType(string(job)); err != nil {
		return err
	}

	if !s.begin(job) {
		logrus.WithField("job", job).Info("Job já em andamento, ignorando")
		return ErrJobRunning
	}
	defer s.finish(job)

	ctx, correlationID := log.WithCorrelationID(ctx)
	logger := log.ForContext(ctx).WithField("job", job)
	logger.WithField("correlation_id", correlationID).Info("Iniciando job de sincronização")

	start := time.Now()
	var err error
	switch job {
	case JobDaily:
		err = s.forEachAccount(ctx, s.syncDaily)
	case JobHourly:
		err = s.forEachAccount(ctx, s.syncHourly)
	case JobRetention:
		_, err = s.insightSyncer.CleanupHourly(ctx, s.now())
	}
	if err != nil {
		return err
	}

	logger.WithField("duration", time.Since(start).String()).Info("Job de sincronização concluído")
	return nil
}

// TriggerManualSync dispara um job em segundo plano
func (s *SyncScheduler) TriggerManualSync(job JobType) error {
	if _, err := ParseJobType(string(job)); err != nil {
		return err
	}
	if s.isRunning(job) {
		return ErrJobRunning
	}

	logrus.WithField("job", job).Info("Iniciando sincronização manual")
	go func() {
		if err := s.Run(context.Background(), job); err != nil && !errors.Is(err, ErrJobRunning) {
			logrus.WithError(err).WithField("job", job).Error("Erro na sincronização manual")
		}
	}()

	return nil
}

func (s *SyncScheduler) forEachAccount(ctx context.Context, fn func(context.Context, *domain.AdAccount)) error {
	accounts, err := s.accountRepo.ListAccounts(ctx, []domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		return fmt.Errorf("erro ao listar contas ativas: %w", err)
	}
	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta ativa encontrada para sincronização")
		return nil
	}

	// Semáforo limita quantas contas sincronizam ao mesmo tempo
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, account := range accounts {
		if account.ExternalID == "" {
			logrus.WithField("account_id", account.ID).Warn("Conta sem external_id. Pulando.")
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *domain.AdAccount) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			if !s.lockAccount(acc.ID) {
				logrus.WithField("account_id", acc.ID).Info("Conta já em sincronização, pulando")
				return
			}
			defer s.unlockAccount(acc.ID)

			fn(ctx, acc)
		}(account)
	}

	wg.Wait()
	return nil
}

func (s *SyncScheduler) syncDaily(ctx context.Context, acc *domain.AdAccount) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id":   acc.ID,
		"account_name": acc.Name,
	})

	if _, err := s.entitySyncer.SyncAccount(ctx, acc.ID, entitysync.Options{}); err != nil {
		logger.WithError(err).Error("Erro na sincronização de entidades")
		if errors.Is(err, entitysync.ErrNoActiveCredential) {
			return
		}
	}

	if _, err := s.insightSyncer.Sync(ctx, insightsync.Request{
		AccountID:   acc.ID,
		DateRange:   s.lookbackRange(acc),
		Granularity: domain.GranularityDaily,
	}); err != nil {
		logger.WithError(err).Error("Erro na sincronização de métricas diárias")
	}
}

func (s *SyncScheduler) syncHourly(ctx context.Context, acc *domain.AdAccount) {
	today := domain.TruncateDay(s.now().In(acc.Location()))

	if _, err := s.insightSyncer.Sync(ctx, insightsync.Request{
		AccountID:   acc.ID,
		DateRange:   domain.SingleDay(today),
		Granularity: domain.GranularityHourly,
	}); err != nil {
		log.ForContext(ctx).WithField("account_id", acc.ID).WithError(err).Error("Erro na sincronização de métricas por hora")
	}
}

// lookbackRange vai de ontem até LookbackDays dias atrás, no fuso da conta
func (s *SyncScheduler) lookbackRange(acc *domain.AdAccount) domain.DateRange {
	yesterday := utils.Yesterday(s.now().In(acc.Location()))
	return domain.DateRange{
		Since: yesterday.AddDate(0, 0, -(s.config.LookbackDays - 1)),
		Until: yesterday,
	}
}

func (s *SyncScheduler) begin(job JobType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running[job] {
		return false
	}
	s.running[job] = true
	s.lastStartedAt[job] = s.now()
	return true
}

func (s *SyncScheduler) finish(job JobType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running[job] = false
	s.lastCompletedAt[job] = s.now()
}

func (s *SyncScheduler) isRunning(job JobType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running[job]
}

func (s *SyncScheduler) lockAccount(accountID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accountsRunning[accountID] {
		return false
	}
	s.accountsRunning[accountID] = true
	return true
}

func (s *SyncScheduler) unlockAccount(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accountsRunning, accountID)
}

// GetStatus retorna o status atual do agendador
func (s *SyncScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make(map[string]any, len(JobTypes))
	for _, job := range JobTypes {
		jobs[string(job)] = map[string]any{
			"running":           s.running[job],
			"last_started_at":   s.lastStartedAt[job],
			"last_completed_at": s.lastCompletedAt[job],
		}
	}

	return map[string]any{
		"sync_enabled":        s.config.Enabled,
		"daily_cron":          s.config.DailyCron,
		"hourly_cron":         s.config.HourlyCron,
		"retention_cron":      s.config.RetentionCron,
		"lookback_days":       s.config.LookbackDays,
		"max_concurrent_jobs": s.config.MaxConcurrentJobs,
		"accounts_running":    len(s.accountsRunning),
		"retention_policy":    "métricas por hora mantidas até ontem",
		"jobs":                jobs,
	}
}
