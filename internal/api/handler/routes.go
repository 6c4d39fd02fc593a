package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/traffic-sync-engine/internal/api/handler/router"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/rollup"
	"github.com/vfg2006/traffic-sync-engine/pkg/middleware"
)

var adminOnly = []func(http.Handler) http.Handler{middleware.AdminOnly()}

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Sync(entities entitysync.EntitySyncer, insights insightsync.InsightSyncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/accounts/:id/entities",
			Method:      http.MethodPost,
			Handler:     SyncAccountEntities(entities),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/sync/accounts/:id/insights",
			Method:      http.MethodPost,
			Handler:     SyncAccountInsights(insights),
			Middlewares: adminOnly,
		},
	}
}

func Rollups(service rollup.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/rollups/:branch/rebuild",
			Method:      http.MethodPost,
			Handler:     RebuildRollup(service),
			Middlewares: adminOnly,
		},
	}
}

func CronJobs(runner CronRunner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(runner),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(runner),
			Middlewares: adminOnly,
		},
	}
}

func RateLimit(limiter RateLimitSnapshotter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ratelimit",
			Method:      http.MethodGet,
			Handler:     GetRateLimitStatus(limiter),
			Middlewares: adminOnly,
		},
	}
}
