package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync"
	"github.com/vfg2006/traffic-sync-engine/pkg/apiErrors"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"github.com/vfg2006/traffic-sync-engine/pkg/utils"
)

type entitySyncRequest struct {
	ForceFullSync bool     `json:"force_full_sync"`
	Tiers         []string `json:"tiers"`
}

type insightSyncRequest struct {
	Since          string   `json:"since"`
	Until          string   `json:"until"`
	Granularity    string   `json:"granularity"`
	AdIDs          []string `json:"ad_ids"`
	SkipBreakdowns bool     `json:"skip_breakdowns"`
}

// SyncAccountEntities executa a sincronização de entidades de uma conta e devolve o resumo
func SyncAccountEntities(service entitysync.EntitySyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger := log.ForContext(r.Context()).WithField("account_id", id)

		var body entitySyncRequest
		if err := decodeBody(r, &body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		opts := entitysync.Options{ForceFullSync: body.ForceFullSync}
		for _, t := range body.Tiers {
			tier, ok := domain.ParseEntityTier(t)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Camada de entidades inválida", t)
				return
			}
			opts.Tiers = append(opts.Tiers, tier)
		}

		logger.WithFields(log.Fields{
			"force_full_sync": opts.ForceFullSync,
			"tiers":           body.Tiers,
		}).Info("sync: sincronização de entidades solicitada")

		result, err := service.SyncAccount(r.Context(), id, opts)
		if err != nil {
			writeServiceError(w, r, errors.Wrapf(err, "conta %s", id), "Falha na sincronização de entidades")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

// SyncAccountInsights executa a sincronização de métricas de uma conta no intervalo pedido
func SyncAccountInsights(service insightsync.InsightSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger := log.ForContext(r.Context()).WithField("account_id", id)

		var body insightSyncRequest
		if err := decodeBody(r, &body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		if body.Since == "" || body.Until == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "since e until são obrigatórios", nil)
			return
		}

		since, err := utils.ParseDate(body.Since)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "since deve estar no formato YYYY-MM-DD", body.Since)
			return
		}
		until, err := utils.ParseDate(body.Until)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "until deve estar no formato YYYY-MM-DD", body.Until)
			return
		}

		dateRange, err := domain.NewDateRange(*since, *until)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
			return
		}

		granularity, err := domain.ParseGranularity(body.Granularity)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"date_range":  dateRange.String(),
			"granularity": granularity,
			"ads":         len(body.AdIDs),
		}).Info("sync: sincronização de métricas solicitada")

		result, err := service.Sync(r.Context(), insightsync.Request{
			AccountID:      id,
			DateRange:      dateRange,
			Granularity:    granularity,
			AdExternalIDs:  body.AdIDs,
			SkipBreakdowns: body.SkipBreakdowns,
		})
		if err != nil {
			writeServiceError(w, r, errors.Wrapf(err, "conta %s", id), "Falha na sincronização de métricas")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}
