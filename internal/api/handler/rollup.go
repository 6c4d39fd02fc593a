package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/rollup"
	"github.com/vfg2006/traffic-sync-engine/pkg/apiErrors"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"github.com/vfg2006/traffic-sync-engine/pkg/utils"
)

// RebuildRollup recalcula a consolidação diária de uma filial para o intervalo informado
// em ?since=YYYY-MM-DD&until=YYYY-MM-DD
func RebuildRollup(service rollup.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		branchID := httprouter.ParamsFromContext(r.Context()).ByName("branch")
		query := r.URL.Query()

		if query.Get("since") == "" || query.Get("until") == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "since e until são obrigatórios", nil)
			return
		}

		since, err := utils.ParseDate(query.Get("since"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "since deve estar no formato YYYY-MM-DD", nil)
			return
		}
		until, err := utils.ParseDate(query.Get("until"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "until deve estar no formato YYYY-MM-DD", nil)
			return
		}

		dateRange, err := domain.NewDateRange(*since, *until)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"branch_id":  branchID,
			"date_range": dateRange.String(),
		}).Info("rollup: reconstrução solicitada")

		rows, err := service.RecomputeRange(r.Context(), branchID, dateRange)
		if err != nil {
			writeServiceError(w, r, errors.Wrapf(err, "filial %s", branchID), "Falha ao reconstruir consolidação")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"branch_id":  branchID,
			"date_range": dateRange,
			"rows":       rows,
		})
	})
}
