package handler

import (
	"net/http"

	"github.com/vfg2006/traffic-sync-engine/internal/ratelimit"
)

type RateLimitSnapshotter interface {
	Snapshot() map[string]ratelimit.State
}

// GetRateLimitStatus mostra o uso de API conhecido por conta e as pausas em vigor
func GetRateLimitStatus(limiter RateLimitSnapshotter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"accounts": limiter.Snapshot(),
		})
	})
}
