package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/bulk"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/repository"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/credential"
	"github.com/vfg2006/traffic-sync-engine/internal/notifier"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
	"github.com/vfg2006/traffic-sync-engine/internal/ratelimit"
	"github.com/vfg2006/traffic-sync-engine/internal/scheduler"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/rollup"
)

// App reúne os componentes montados a partir da configuração. É usado pela
// API e pela linha de comando.
type App struct {
	Config        *config.Config
	DB            *postgres.Connection
	RateLimiter   *ratelimit.Limiter
	Authenticator *authenticating.Service
	Entities      *entitysync.Service
	Insights      *insightsync.Service
	Rollups       *rollup.Service
	Dispatcher    *rollup.Dispatcher
	Scheduler     *scheduler.SyncScheduler
	Accounts      repository.AccountRepository

	notifier *notifier.Async
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}
	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	accountRepo := repository.NewAccountRepository(conn)
	entityRepo := repository.NewEntityRepository(conn)
	adInsightRepo := repository.NewAdInsightRepository(conn)
	rollupRepo := repository.NewRollupRepository(conn)

	upserter := bulk.NewUpserter(conn, bulk.DefaultRegistry())

	limiter := ratelimit.New(ratelimit.Config{
		ThresholdPercent: cfg.RateLimit.ThresholdPercent,
		Cooldown:         cfg.RateLimit.Cooldown,
	})

	metaClient := metaclient.NewClient(cfg.Meta, limiter)
	platforms := platform.NewRegistry(meta.New(metaClient))
	credentials := credential.NewConfigProvider(cfg.Meta)

	rollupService := rollup.NewService(rollupRepo, upserter)
	dispatcher := rollup.NewDispatcher(rollupService, cfg.Rollup)

	async := notifier.NewAsync(notifier.NewLogNotifier())

	entities := entitysync.NewService(accountRepo, entityRepo, upserter, platforms, credentials, cfg.EntitySync)
	insights := insightsync.NewService(
		accountRepo,
		entityRepo,
		adInsightRepo,
		upserter,
		platforms,
		credentials,
		cfg.InsightSync,
		insightsync.WithRollupTrigger(dispatcher),
		insightsync.WithNotifier(async),
	)

	return &App{
		Config:        cfg,
		DB:            conn,
		RateLimiter:   limiter,
		Authenticator: authenticating.NewService(cfg.Auth),
		Entities:      entities,
		Insights:      insights,
		Rollups:       rollupService,
		Dispatcher:    dispatcher,
		Scheduler:     scheduler.NewSyncScheduler(accountRepo, entities, insights, cfg.Scheduler),
		Accounts:      accountRepo,
		notifier:      async,
	}, nil
}

// Start sobe os workers de consolidação
func (a *App) Start(ctx context.Context) {
	a.Dispatcher.Start(ctx)
}

// Close drena as filas e fecha a conexão com o banco
func (a *App) Close() {
	a.Dispatcher.Stop()
	a.notifier.Wait()

	if err := a.DB.Close(); err != nil {
		logrus.WithError(err).Error("Erro ao fechar conexão com PostgreSQL")
	}
}
