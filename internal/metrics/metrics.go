package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Sincronizações por tipo (entities, insights, rollup) e resultado
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_sync_runs_total",
			Help: "Total de execuções de sincronização por tipo e resultado",
		},
		[]string{"kind", "status"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "traffic_sync_duration_seconds",
			Help:    "Duração das execuções de sincronização",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"kind"},
	)

	UpsertRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_upsert_rows_total",
			Help: "Linhas afetadas pelo upsert em lote por tabela",
		},
		[]string{"table"},
	)

	UpsertErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_upsert_errors_total",
			Help: "Falhas de escrita do upsert em lote por tabela",
		},
		[]string{"table"},
	)

	UpsertDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "traffic_upsert_duration_seconds",
			Help:    "Duração de cada comando de upsert em lote",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)

	PlatformRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_platform_requests_total",
			Help: "Requisições à plataforma de anúncios por endpoint e resultado",
		},
		[]string{"platform", "endpoint", "status"},
	)

	PlatformUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "traffic_platform_usage_percent",
			Help: "Último percentual de uso reportado pela plataforma por conta",
		},
		[]string{"account_id"},
	)

	RateLimitPauses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "traffic_rate_limit_pauses_total",
			Help: "Vezes em que uma conta entrou em pausa por uso elevado",
		},
	)

	RateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "traffic_rate_limit_wait_seconds",
			Help:    "Tempo de espera imposto pelo limitador",
			Buckets: []float64{0.1, 1, 5, 10, 20, 30, 60},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "traffic_circuit_breaker_state",
			Help: "Estado do circuit breaker (0=fechado, 1=meio-aberto, 2=aberto)",
		},
		[]string{"name"},
	)

	InsightChunkFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_insight_chunk_failures_total",
			Help: "Lotes de anúncios cuja busca de métricas falhou",
		},
		[]string{"granularity"},
	)

	EntitiesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_entities_skipped_total",
			Help: "Entidades filhas ignoradas por falta de pai conhecido",
		},
		[]string{"tier"},
	)

	RollupJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_rollup_jobs_total",
			Help: "Jobs de consolidação por resultado",
		},
		[]string{"status"},
	)

	HTTPRequests = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "traffic_http_request_duration_seconds",
			Help:    "Duração das requisições da API administrativa",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)
