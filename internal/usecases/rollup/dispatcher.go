package rollup

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/metrics"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
)

const (
	DefaultQueueSize = 100
	jobTimeout       = 5 * time.Minute
)

type Job struct {
	BranchID  string
	DateRange domain.DateRange
}

// Dispatcher executa consolidações em segundo plano a partir de uma fila limitada.
// Trigger nunca bloqueia: com a fila cheia o job é descartado.
type Dispatcher struct {
	aggregator Aggregator
	jobs       chan Job
	workers    int

	mu      sync.Mutex
	started bool
	closed  bool
	wg      sync.WaitGroup
}

func NewDispatcher(aggregator Aggregator, cfg config.Rollup) *Dispatcher {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Dispatcher{
		aggregator: aggregator,
		jobs:       make(chan Job, queueSize),
		workers:    workers,
	}
}

// Start inicia os workers. Os jobs usam ctx como base.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(ctx)
	}

	log.L.WithField("workers", d.workers).Info("Fila de consolidação iniciada")
}

func (d *Dispatcher) Trigger(branchID string, dateRange domain.DateRange) {
	d.mu.Lock()
	defer d.mu.Unlock()

	logger := log.L.WithFields(log.Fields{
		"branch_id": branchID,
		"range":     dateRange.String(),
	})

	if d.closed {
		metrics.RollupJobs.WithLabelValues("dropped").Inc()
		logger.Warn("Fila de consolidação encerrada, job descartado")
		return
	}

	select {
	case d.jobs <- Job{BranchID: branchID, DateRange: dateRange}:
		metrics.RollupJobs.WithLabelValues("queued").Inc()
	default:
		metrics.RollupJobs.WithLabelValues("dropped").Inc()
		logger.Warn("Fila de consolidação cheia, job descartado")
	}
}

// Stop fecha a fila e espera os jobs pendentes terminarem
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) work(ctx context.Context) {
	defer d.wg.Done()

	for job := range d.jobs {
		d.run(ctx, job)
	}
}

func (d *Dispatcher) run(ctx context.Context, job Job) {
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), jobTimeout)
	defer cancel()

	logger := log.ForContext(jobCtx).WithFields(log.Fields{
		"branch_id": job.BranchID,
		"range":     job.DateRange.String(),
	})

	defer func() {
		if r := recover(); r != nil {
			metrics.RollupJobs.WithLabelValues("error").Inc()
			logger.WithField("panic", r).Error("Panic na consolidação da filial")
		}
	}()

	if _, err := d.aggregator.RecomputeRange(jobCtx, job.BranchID, job.DateRange); err != nil {
		metrics.RollupJobs.WithLabelValues("error").Inc()
		logger.WithError(err).Error("Erro ao consolidar filial")
		return
	}

	metrics.RollupJobs.WithLabelValues("success").Inc()
}
