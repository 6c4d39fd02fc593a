package rollup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/bulk"
	bulkmocks "github.com/vfg2006/traffic-sync-engine/infrastructure/database/bulk/mocks"
	repomocks "github.com/vfg2006/traffic-sync-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/rollup"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/rollup/mocks"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"go.uber.org/mock/gomock"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestRecomputeDate(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockRollupRepository(ctrl)
	upserter := bulkmocks.NewMockUpserter(ctrl)

	stats := []domain.RollupStat{
		{BranchID: "filial-1", Date: day, Platform: domain.PlatformMeta, Spend: decimal.RequireFromString("30.75"), Impressions: 900, Clicks: 12, Results: 3, AccountsCount: 2},
	}
	repo.EXPECT().AggregateDaily(gomock.Any(), "filial-1", day).Return(stats, nil)

	upserter.EXPECT().
		Execute(gomock.Any(), bulk.TableRollupStats, gomock.Any(), []string{"branch_id", "date", "platform"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, rows []bulk.Row, _, update []string) (int64, error) {
			require.Len(t, rows, 1)
			assert.Equal(t, "filial-1", rows[0]["branch_id"])
			assert.Equal(t, "meta", rows[0]["platform"])
			assert.Equal(t, 2, rows[0]["accounts_count"])
			assert.NotContains(t, update, "id")
			return 1, nil
		})

	service := rollup.NewService(repo, upserter)

	// O horário é descartado: a consolidação é por data de calendário
	got, err := service.RecomputeDate(context.Background(), "filial-1", day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}

func TestRecomputeDate_RecalculoSubstituiTotais(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockRollupRepository(ctrl)
	upserter := bulkmocks.NewMockUpserter(ctrl)

	// Simula rollup_stats: uma linha por (filial, data, plataforma), conflito atualiza as colunas de update
	stored := make(map[string]bulk.Row)
	upserter.EXPECT().
		Execute(gomock.Any(), bulk.TableRollupStats, gomock.Any(), []string{"branch_id", "date", "platform"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, rows []bulk.Row, _, update []string) (int64, error) {
			for _, row := range rows {
				key := row["branch_id"].(string) + "|" + row["date"].(time.Time).Format(time.DateOnly) + "|" + row["platform"].(string)
				existing, ok := stored[key]
				if !ok {
					stored[key] = row
					continue
				}
				for _, col := range update {
					existing[col] = row[col]
				}
			}
			return int64(len(rows)), nil
		}).
		Times(2)

	gomock.InOrder(
		repo.EXPECT().AggregateDaily(gomock.Any(), "filial-1", day).Return([]domain.RollupStat{
			{Platform: domain.PlatformMeta, Spend: decimal.RequireFromString("30.75"), Impressions: 900, Clicks: 12, Results: 3, AccountsCount: 2},
		}, nil),
		repo.EXPECT().AggregateDaily(gomock.Any(), "filial-1", day).Return([]domain.RollupStat{
			{Platform: domain.PlatformMeta, Spend: decimal.RequireFromString("12.00"), Impressions: 400, Clicks: 5, Results: 1, AccountsCount: 1},
		}, nil),
	)

	service := rollup.NewService(repo, upserter)

	_, err := service.RecomputeDate(context.Background(), "filial-1", day)
	require.NoError(t, err)
	_, err = service.RecomputeDate(context.Background(), "filial-1", day)
	require.NoError(t, err)

	require.Len(t, stored, 1)
	row := stored["filial-1|2025-03-10|meta"]
	require.NotNil(t, row)
	assert.True(t, decimal.RequireFromString("12.00").Equal(row["spend"].(decimal.Decimal)))
	assert.Equal(t, int64(400), row["impressions"])
	assert.Equal(t, int64(5), row["clicks"])
	assert.Equal(t, int64(1), row["results"])
	assert.Equal(t, 1, row["accounts_count"])
}

func TestRecomputeDate_FilialSemContasNaoGrava(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockRollupRepository(ctrl)
	upserter := bulkmocks.NewMockUpserter(ctrl)
	repo.EXPECT().AggregateDaily(gomock.Any(), "filial-1", day).Return(nil, nil)

	got, err := rollup.NewService(repo, upserter).RecomputeDate(context.Background(), "filial-1", day)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecomputeRange(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockRollupRepository(ctrl)
	upserter := bulkmocks.NewMockUpserter(ctrl)

	dateRange, err := domain.NewDateRange(day, day.AddDate(0, 0, 2))
	require.NoError(t, err)

	gomock.InOrder(
		repo.EXPECT().AggregateDaily(gomock.Any(), "filial-1", day).Return([]domain.RollupStat{{Platform: domain.PlatformMeta}}, nil),
		repo.EXPECT().AggregateDaily(gomock.Any(), "filial-1", day.AddDate(0, 0, 1)).Return([]domain.RollupStat{{Platform: domain.PlatformMeta}}, nil),
		repo.EXPECT().AggregateDaily(gomock.Any(), "filial-1", day.AddDate(0, 0, 2)).Return(nil, errors.New("banco indisponível")),
	)
	upserter.EXPECT().Execute(gomock.Any(), bulk.TableRollupStats, gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil).Times(2)

	n, err := rollup.NewService(repo, upserter).RecomputeRange(context.Background(), "filial-1", dateRange)
	assert.Error(t, err)
	assert.Equal(t, 2, n)
}

func TestDispatcher_ProcessaJobs(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := mocks.NewMockAggregator(ctrl)
	aggregator.EXPECT().RecomputeRange(gomock.Any(), "filial-1", domain.SingleDay(day)).Return(1, nil)
	aggregator.EXPECT().RecomputeRange(gomock.Any(), "filial-2", domain.SingleDay(day)).Return(0, errors.New("falhou"))

	dispatcher := rollup.NewDispatcher(aggregator, config.Rollup{QueueSize: 10, Workers: 2})
	dispatcher.Start(context.Background())

	dispatcher.Trigger("filial-1", domain.SingleDay(day))
	dispatcher.Trigger("filial-2", domain.SingleDay(day))
	dispatcher.Stop()

	// Depois de parar, novos jobs são descartados sem panic
	dispatcher.Trigger("filial-3", domain.SingleDay(day))
}

func TestDispatcher_FilaCheiaNaoBloqueia(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := mocks.NewMockAggregator(ctrl)
	aggregator.EXPECT().RecomputeRange(gomock.Any(), "filial-1", gomock.Any()).Return(1, nil)

	dispatcher := rollup.NewDispatcher(aggregator, config.Rollup{QueueSize: 1})

	done := make(chan struct{})
	go func() {
		dispatcher.Trigger("filial-1", domain.SingleDay(day))
		dispatcher.Trigger("filial-2", domain.SingleDay(day))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Trigger bloqueou com a fila cheia")
	}

	dispatcher.Start(context.Background())
	dispatcher.Stop()
}
