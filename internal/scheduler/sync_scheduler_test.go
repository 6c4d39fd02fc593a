package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync"
	entitymocks "github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync/mocks"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync"
	insightmocks "github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync/mocks"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"go.uber.org/mock/gomock"
)

type schedulerFixture struct {
	accountRepo   *mocks.MockAccountRepository
	entitySyncer  *entitymocks.MockEntitySyncer
	insightSyncer *insightmocks.MockInsightSyncer
	scheduler     *SyncScheduler
}

// Referência: 10 de março de 2025, 15h UTC
var referenceNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	f := &schedulerFixture{
		accountRepo:   mocks.NewMockAccountRepository(ctrl),
		entitySyncer:  entitymocks.NewMockEntitySyncer(ctrl),
		insightSyncer: insightmocks.NewMockInsightSyncer(ctrl),
	}
	f.scheduler = NewSyncScheduler(f.accountRepo, f.entitySyncer, f.insightSyncer, config.Scheduler{
		LookbackDays:      3,
		MaxConcurrentJobs: 2,
	})
	f.scheduler.now = func() time.Time { return referenceNow }
	return f
}

func TestSyncScheduler_RunDaily(t *testing.T) {
	activeOnly := []domain.AdAccountStatus{domain.AdAccountStatusActive}

	tests := []struct {
		name     string
		accounts []*domain.AdAccount
		setup    func(f *schedulerFixture)
	}{
		{
			name: "Sincroniza entidades e depois métricas diárias dos últimos dias",
			accounts: []*domain.AdAccount{
				{ID: "ACC001", ExternalID: "act_1", Name: "Loja A"},
			},
			setup: func(f *schedulerFixture) {
				gomock.InOrder(
					f.entitySyncer.EXPECT().
						SyncAccount(gomock.Any(), "ACC001", entitysync.Options{}).
						Return(&entitysync.Result{AccountID: "ACC001"}, nil),
					f.insightSyncer.EXPECT().
						Sync(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, req insightsync.Request) (*insightsync.Result, error) {
							assert.Equal(t, "ACC001", req.AccountID)
							assert.Equal(t, domain.GranularityDaily, req.Granularity)
							assert.Equal(t, "2025-03-07..2025-03-09", req.DateRange.String())
							return &insightsync.Result{AccountID: "ACC001"}, nil
						}),
				)
			},
		},
		{
			name: "Conta sem external_id é ignorada",
			accounts: []*domain.AdAccount{
				{ID: "ACC002", Name: "Loja sem integração"},
			},
			setup: func(f *schedulerFixture) {},
		},
		{
			name: "Sem credencial ativa não busca métricas",
			accounts: []*domain.AdAccount{
				{ID: "ACC003", ExternalID: "act_3"},
			},
			setup: func(f *schedulerFixture) {
				f.entitySyncer.EXPECT().
					SyncAccount(gomock.Any(), "ACC003", gomock.Any()).
					Return(nil, entitysync.ErrNoActiveCredential)
			},
		},
		{
			name: "Falha de uma camada ainda sincroniza métricas",
			accounts: []*domain.AdAccount{
				{ID: "ACC004", ExternalID: "act_4"},
			},
			setup: func(f *schedulerFixture) {
				f.entitySyncer.EXPECT().
					SyncAccount(gomock.Any(), "ACC004", gomock.Any()).
					Return(nil, &entitysync.TierError{Tier: domain.TierAds, Err: errors.New("timeout")})
				f.insightSyncer.EXPECT().
					Sync(gomock.Any(), gomock.Any()).
					Return(&insightsync.Result{}, nil)
			},
		},
		{
			name: "Várias contas sincronizam de forma independente",
			accounts: []*domain.AdAccount{
				{ID: "ACC005", ExternalID: "act_5"},
				{ID: "ACC006", ExternalID: "act_6"},
				{ID: "ACC007", ExternalID: "act_7"},
			},
			setup: func(f *schedulerFixture) {
				f.entitySyncer.EXPECT().SyncAccount(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&entitysync.Result{}, nil).Times(3)
				f.insightSyncer.EXPECT().Sync(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("falha na conta")).Times(3)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSchedulerFixture(t)
			f.accountRepo.EXPECT().ListAccounts(gomock.Any(), activeOnly).Return(tt.accounts, nil)
			tt.setup(f)

			err := f.scheduler.Run(context.Background(), JobDaily)
			require.NoError(t, err)
			assert.False(t, f.scheduler.isRunning(JobDaily))
		})
	}
}

func TestSyncScheduler_RunHourly(t *testing.T) {
	f := newSchedulerFixture(t)

	f.accountRepo.EXPECT().ListAccounts(gomock.Any(), gomock.Any()).
		Return([]*domain.AdAccount{{ID: "ACC001", ExternalID: "act_1"}}, nil)
	f.insightSyncer.EXPECT().
		Sync(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req insightsync.Request) (*insightsync.Result, error) {
			assert.Equal(t, domain.GranularityHourly, req.Granularity)
			assert.Equal(t, "2025-03-10..2025-03-10", req.DateRange.String())
			return &insightsync.Result{}, nil
		})

	require.NoError(t, f.scheduler.Run(context.Background(), JobHourly))
}

func TestSyncScheduler_RunRetention(t *testing.T) {
	f := newSchedulerFixture(t)

	f.insightSyncer.EXPECT().CleanupHourly(gomock.Any(), referenceNow).Return(int64(42), nil)

	require.NoError(t, f.scheduler.Run(context.Background(), JobRetention))

	status := f.scheduler.GetStatus()
	jobs := status["jobs"].(map[string]any)
	retention := jobs["retention"].(map[string]any)
	assert.Equal(t, false, retention["running"])
	assert.Equal(t, referenceNow, retention["last_completed_at"])
}

func TestSyncScheduler_RunGuards(t *testing.T) {
	t.Run("Job em andamento não roda de novo", func(t *testing.T) {
		f := newSchedulerFixture(t)
		require.True(t, f.scheduler.begin(JobDaily))

		err := f.scheduler.Run(context.Background(), JobDaily)
		assert.ErrorIs(t, err, ErrJobRunning)
		assert.ErrorIs(t, f.scheduler.TriggerManualSync(JobDaily), ErrJobRunning)
	})

	t.Run("Conta já em sincronização é pulada", func(t *testing.T) {
		f := newSchedulerFixture(t)
		require.True(t, f.scheduler.lockAccount("ACC001"))

		f.accountRepo.EXPECT().ListAccounts(gomock.Any(), gomock.Any()).
			Return([]*domain.AdAccount{{ID: "ACC001", ExternalID: "act_1"}}, nil)

		require.NoError(t, f.scheduler.Run(context.Background(), JobHourly))
	})

	t.Run("Erro ao listar contas é devolvido", func(t *testing.T) {
		f := newSchedulerFixture(t)
		dbErr := errors.New("conexão recusada")

		f.accountRepo.EXPECT().ListAccounts(gomock.Any(), gomock.Any()).Return(nil, dbErr)

		err := f.scheduler.Run(context.Background(), JobDaily)
		assert.ErrorIs(t, err, dbErr)
		assert.False(t, f.scheduler.isRunning(JobDaily))
	})

	t.Run("Tipo de job desconhecido", func(t *testing.T) {
		f := newSchedulerFixture(t)

		assert.ErrorIs(t, f.scheduler.Run(context.Background(), JobType("weekly")), ErrUnknownJob)
		assert.ErrorIs(t, f.scheduler.TriggerManualSync(JobType("weekly")), ErrUnknownJob)
	})
}

func TestParseJobType(t *testing.T) {
	for _, job := range JobTypes {
		got, err := ParseJobType(string(job))
		require.NoError(t, err)
		assert.Equal(t, job, got)
	}

	_, err := ParseJobType("")
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestSyncScheduler_StartDisabled(t *testing.T) {
	f := newSchedulerFixture(t)
	assert.NoError(t, f.scheduler.Start(context.Background()))
	assert.Equal(t, false, f.scheduler.GetStatus()["sync_enabled"])
}
