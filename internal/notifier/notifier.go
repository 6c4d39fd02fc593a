package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
)

//go:generate mockgen -source=notifier.go -destination=mocks/notifier_mock.go -package=mocks

type Notifier interface {
	Notify(ctx context.Context, summary domain.SyncSummary) error
}

// LogNotifier registra o resumo no log
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, summary domain.SyncSummary) error {
	log.ForContext(ctx).WithFields(log.Fields{
		"account_id":   summary.AccountID,
		"account_name": summary.AccountName,
		"granularity":  summary.Granularity,
		"range":        summary.Range.String(),
		"ads_count":    summary.AdsCount,
		"rows_count":   summary.RowsWritten,
		"spend":        summary.Totals.Spend.StringFixed(2),
		"impressions":  summary.Totals.Impressions,
		"clicks":       summary.Totals.Clicks,
		"results":      summary.Totals.Results,
	}).Info("Resumo da sincronização de métricas")
	return nil
}

// Async entrega os resumos em segundo plano. Erros e panics do notificador
// são registrados e nunca chegam ao chamador.
type Async struct {
	next Notifier
	wg   sync.WaitGroup
}

func NewAsync(next Notifier) *Async {
	return &Async{next: next}
}

func (a *Async) Notify(ctx context.Context, summary domain.SyncSummary) error {
	correlationID := log.GetCorrelationID(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		bg := context.WithoutCancel(ctx)
		logger := log.ForContext(bg).WithField("account_id", summary.AccountID)

		defer func() {
			if r := recover(); r != nil {
				logger.WithError(fmt.Errorf("%v", r)).Error("Panic no notificador")
			}
		}()

		if err := a.next.Notify(bg, summary); err != nil {
			logger.WithError(err).WithField("correlation_id", correlationID).Error("Erro ao enviar notificação")
		}
	}()

	return nil
}

// Wait aguarda as notificações pendentes
func (a *Async) Wait() {
	a.wg.Wait()
}
