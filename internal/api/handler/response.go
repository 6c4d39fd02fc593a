package handler

import (
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/scheduler"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync"
	"github.com/vfg2006/traffic-sync-engine/pkg/apiErrors"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Warn("Erro ao escrever resposta")
	}
}

// decodeBody aceita corpo vazio, mantendo os valores padrão de dst
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	return errors.Wrap(err, "corpo da requisição inválido")
}

// errorCode traduz os erros dos serviços para os códigos da API
func errorCode(err error) string {
	var tierErr *entitysync.TierError

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return apiErrors.ErrAccountNotFound
	case errors.Is(err, entitysync.ErrNoActiveCredential):
		return apiErrors.ErrNoActiveCredential
	case errors.Is(err, domain.ErrInvalidDateRange):
		return apiErrors.ErrInvalidDateRange
	case errors.Is(err, scheduler.ErrJobRunning):
		return apiErrors.ErrSyncRunning
	case errors.Is(err, scheduler.ErrUnknownJob):
		return apiErrors.ErrInvalidRequest
	case errors.As(err, &tierErr):
		return apiErrors.ErrTierFailed
	case errors.Is(err, insightsync.ErrWriteInsights), errors.Is(err, insightsync.ErrWriteBreakdowns):
		return apiErrors.ErrDatabaseOperation
	default:
		return apiErrors.ErrInternalServer
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	code := errorCode(err)

	logger := log.ForContext(r.Context()).WithFields(log.Fields{
		"code":  code,
		"cause": errors.Cause(err).Error(),
	}).WithError(err)
	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		logger.Error(message)
	} else {
		logger.Warn(message)
	}

	apiErrors.WriteError(w, code, message, err.Error())
}
