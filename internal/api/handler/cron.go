package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-engine/internal/scheduler"
	"github.com/vfg2006/traffic-sync-engine/pkg/apiErrors"
)

// CronRunner é o agendador visto pela API
type CronRunner interface {
	TriggerManualSync(job scheduler.JobType) error
	GetStatus() map[string]any
}

// RunCronJob dispara manualmente um job agendado (daily, hourly ou retention)
func RunCronJob(runner CronRunner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		job, err := scheduler.ParseJobType(cronType)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: daily, hourly, retention", nil)
			return
		}

		if err := runner.TriggerManualSync(job); err != nil {
			writeServiceError(w, r, errors.WithMessage(err, cronType), "Não foi possível iniciar a cron job")
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    job,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(runner CronRunner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, runner.GetStatus())
	})
}
