package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

const maxSnapshotRangeDays = 366

func AccountInsights(service insighting.Insighter, resolver *credentialing.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, req, err := reportRequest(r, resolver)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		report, err := service.GetAccountInsights(r.Context(), req.Credentials, req.DatePreset)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, accountInsightsResponse{Success: true, AccountInsightsReport: report})
	})
}

// ComparePresets é a única rota que recusa períodos desconhecidos.
func ComparePresets(service insighting.Insighter, resolver *credentialing.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, req, err := reportRequest(r, resolver)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		comparison, err := service.CompareDatePresets(r.Context(), req.Credentials, payload.Presets)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, comparisonResponse{Success: true, PresetComparison: comparison})
	})
}

func LifetimeSpend(service insighting.Insighter, resolver *credentialing.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, req, err := reportRequest(r, resolver)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		diagnostics, err := service.LifetimeSpendDiagnostics(r.Context(), req.Credentials)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, lifetimeResponse{Success: true, LifetimeSpendDiagnostics: diagnostics})
	})
}

type snapshotsResponse struct {
	Success     bool                      `json:"success"`
	AdAccountID string                    `json:"adAccountId"`
	StartDate   string                    `json:"startDate"`
	EndDate     string                    `json:"endDate"`
	Snapshots   []*domain.InsightSnapshot `json:"snapshots"`
}

// AccessVerifier confirma que o token enxerga a conta pedida.
type AccessVerifier interface {
	VerifyAccess(ctx context.Context, accessToken, adAccountID string, known []domain.AdAccountOption) error
}

// InsightSnapshots lê o histórico diário gravado pelo job de snapshots. Como a
// leitura não passa pela Graph API, o acesso do token à conta é confirmado antes.
func InsightSnapshots(
	accounts repository.AccountRepository,
	snapshots repository.SnapshotRepository,
	verifier AccessVerifier,
	resolver *credentialing.Resolver,
	cookies *credentialing.CookieWriter,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		payload, req, err := reportRequest(r, resolver)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		startDate, endDate, ok := snapshotRange(w, payload)
		if !ok {
			return
		}

		known := sessionAccounts(r, payload.CredentialsInput, cookies)
		if err := verifier.VerifyAccess(r.Context(), req.Credentials.AccessToken, req.Credentials.AdAccountID, known); err != nil {
			writeAuthFailure(w, r, err)
			return
		}

		account, err := accounts.GetAccountByExternalID(r.Context(), req.Credentials.AdAccountID)
		if err != nil {
			logger.WithError(err).Error("Erro ao buscar conta dos snapshots")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar conta", nil)
			return
		}
		if account == nil {
			apiErrors.WriteErrorWithStatus(w, http.StatusNotFound, apiErrors.ErrMissingAdAccount, "Conta não conectada", map[string]string{
				"adAccountId": req.Credentials.AdAccountID,
			})
			return
		}

		items, err := snapshots.GetByDateRange(r.Context(), account.ID, startDate, endDate)
		if err != nil {
			logger.WithError(err).WithField("account_id", account.ID).Error("Erro ao buscar snapshots")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar snapshots", nil)
			return
		}
		if items == nil {
			items = []*domain.InsightSnapshot{}
		}

		writeJSON(w, http.StatusOK, snapshotsResponse{
			Success:     true,
			AdAccountID: req.Credentials.AdAccountID,
			StartDate:   startDate.Format(time.DateOnly),
			EndDate:     endDate.Format(time.DateOnly),
			Snapshots:   items,
		})
	})
}

// snapshotRange valida startDate/endDate. Sem datas, últimos 30 dias até hoje.
func snapshotRange(w http.ResponseWriter, payload reportPayload) (time.Time, time.Time, bool) {
	start, err := utils.ParseDate(payload.StartDate)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida", map[string]string{"field": "startDate"})
		return time.Time{}, time.Time{}, false
	}
	end, err := utils.ParseDate(payload.EndDate)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida", map[string]string{"field": "endDate"})
		return time.Time{}, time.Time{}, false
	}

	endDate := *end
	if endDate.IsZero() {
		endDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	startDate := *start
	if startDate.IsZero() {
		startDate = endDate.AddDate(0, 0, -29)
	}

	if startDate.After(endDate) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Data inicial posterior à final", nil)
		return time.Time{}, time.Time{}, false
	}
	if endDate.Sub(startDate) > maxSnapshotRangeDays*24*time.Hour {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Intervalo máximo excedido", map[string]int{"maxDays": maxSnapshotRangeDays})
		return time.Time{}, time.Time{}, false
	}

	return startDate, endDate, true
}
