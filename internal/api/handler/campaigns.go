package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

func ListCampaigns(service insighting.Insighter, resolver *credentialing.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, req, err := reportRequest(r, resolver)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		report, err := service.ListCampaigns(r.Context(), req)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, reportResponse{Success: true, EntityReport: report})
	})
}

func ListAdSets(service insighting.Insighter, resolver *credentialing.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, req, err := reportRequest(r, resolver)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		req.ParentID = payload.CampaignID

		report, err := service.ListAdSets(r.Context(), req)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, reportResponse{Success: true, EntityReport: report})
	})
}

func ListAds(service insighting.Insighter, resolver *credentialing.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, req, err := reportRequest(r, resolver)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		req.ParentID = payload.AdSetID

		report, err := service.ListAds(r.Context(), req)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, reportResponse{Success: true, EntityReport: report})
	})
}

// reportForLevel escolhe a listagem pelo nível pedido. Sem nível, campanhas.
func reportForLevel(ctx context.Context, service insighting.Insighter, payload reportPayload, req insighting.ReportRequest) (*domain.EntityReport, error) {
	switch domain.EntityLevel(payload.Level) {
	case "", domain.EntityLevelCampaign:
		return service.ListCampaigns(ctx, req)
	case domain.EntityLevelAdSet:
		req.ParentID = payload.CampaignID
		return service.ListAdSets(ctx, req)
	case domain.EntityLevelAd:
		req.ParentID = payload.AdSetID
		return service.ListAds(ctx, req)
	default:
		return nil, insighting.NewInsightError(insighting.ErrInvalidLevel, apiErrors.ErrInvalidRequest, map[string]any{
			"level":       payload.Level,
			"validLevels": []domain.EntityLevel{domain.EntityLevelCampaign, domain.EntityLevelAdSet, domain.EntityLevelAd},
		})
	}
}

// ExportReport devolve o relatório do nível pedido em CSV.
func ExportReport(service insighting.Insighter, resolver *credentialing.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, req, err := reportRequest(r, resolver)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		report, err := reportForLevel(r.Context(), service, payload, req)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		// Monta em memória para ainda poder responder com erro JSON.
		var buf bytes.Buffer
		if err := reporting.WriteEntitiesCSV(&buf, report); err != nil {
			writeFailure(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reporting.ExportFileName(report)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar CSV")
		}
	})
}

// StreamCampaigns envia o relatório de campanhas como server-sent events a cada
// intervalo, até o cliente desconectar.
func StreamCampaigns(service insighting.Insighter, resolver *credentialing.Resolver, cfg config.Stream) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, req, err := reportRequest(r, resolver)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		interval := streamInterval(payload.IntervalSeconds, cfg)
		ctx := r.Context()
		logger := log.ForContext(ctx).WithFields(log.Fields{
			"ad_account_id": req.Credentials.AdAccountID,
			"interval":      interval.String(),
		})

		rc := http.NewResponseController(w)
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		logger.Info("Stream de campanhas iniciado")

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if !sendCampaignEvent(ctx, w, service, req) {
				logger.Warn("Stream de campanhas encerrado por erro")
				return
			}
			if err := rc.Flush(); err != nil {
				logger.WithError(err).Warn("Flush não suportado, encerrando stream")
				return
			}

			select {
			case <-ctx.Done():
				logger.Info("Cliente desconectou do stream")
				return
			case <-ticker.C:
			}
		}
	})
}

func streamInterval(requested int, cfg config.Stream) time.Duration {
	seconds := requested
	if seconds <= 0 {
		seconds = cfg.DefaultIntervalSeconds
	}
	if seconds < cfg.MinIntervalSeconds {
		seconds = cfg.MinIntervalSeconds
	}
	if seconds <= 0 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second
}

// sendCampaignEvent devolve false quando o stream deve parar. Erros de servidor
// são enviados e o stream continua; erros do cliente (token, conta) encerram.
func sendCampaignEvent(ctx context.Context, w http.ResponseWriter, service insighting.Insighter, req insighting.ReportRequest) bool {
	report, err := service.ListCampaigns(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		mapped := insighting.MapError(err)
		writeEvent(w, "error", apiErrors.APIError{
			Success: false,
			Code:    mapped.Code,
			Error:   mapped.Err.Error(),
			Details: mapped.Details,
		})
		return mapped.Status >= http.StatusInternalServerError
	}

	writeEvent(w, "report", reportResponse{Success: true, EntityReport: report})
	return true
}

func writeEvent(w http.ResponseWriter, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.L.WithError(err).Error("Erro ao serializar evento")
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
