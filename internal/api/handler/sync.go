package handler

import (
	"net/http"
	"slices"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

// SyncJobType identifica o job disparado manualmente
const (
	SyncJobTypeSnapshots = "snapshots"
)

// SyncJob é o que a rota precisa de um job agendado.
type SyncJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// SyncJobs indexa os jobs pelo tipo usado na URL.
type SyncJobs map[string]SyncJob

// RunSyncJob dispara um job em background. Responde 409 se ele já está rodando.
func RunSyncJob(jobs SyncJobs) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		job, ok := jobs[jobType]
		if !ok || job == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de job inválido", map[string]any{
				"type":       jobType,
				"validTypes": jobs.types(),
			})
			return
		}

		if !job.TriggerManualSync() {
			logger.WithField("type", jobType).Warn("Job já em execução")
			apiErrors.WriteErrorWithStatus(w, http.StatusConflict, apiErrors.ErrInvalidRequest, "Job já está em execução", map[string]string{"type": jobType})
			return
		}

		logger.WithField("type", jobType).Info("Job disparado manualmente")

		writeJSON(w, http.StatusAccepted, map[string]any{
			"success": true,
			"message": "Job iniciado com sucesso",
			"type":    jobType,
		})
	})
}

func SyncStatus(jobs SyncJobs) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(jobs))
		for name, job := range jobs {
			if job != nil {
				status[name] = job.GetStatus()
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"jobs":    status,
		})
	})
}

func (j SyncJobs) types() []string {
	types := make([]string, 0, len(j))
	for name := range j {
		types = append(types, name)
	}
	slices.Sort(types)
	return types
}
