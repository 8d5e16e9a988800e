package handler

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

var errInvalidPayload = errors.New("payload inválido")

// reportPayload reúne os campos aceitos pelas rotas de dados, tanto no corpo
// JSON (POST) quanto na query string (GET).
type reportPayload struct {
	domain.CredentialsInput
	DatePreset      string   `json:"datePreset"`
	Limit           int      `json:"limit"`
	CampaignID      string   `json:"campaignId"`
	AdSetID         string   `json:"adSetId"`
	Presets         []string `json:"presets"`
	Level           string   `json:"level"`
	TargetCPA       float64  `json:"targetCpa"`
	IntervalSeconds int      `json:"intervalSeconds"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
}

// payloadError indica o campo que não pôde ser lido.
type payloadError struct {
	Field string
	cause error
}

func (e *payloadError) Error() string {
	if e.Field == "" {
		return errInvalidPayload.Error()
	}
	return errInvalidPayload.Error() + ": " + e.Field
}

func (e *payloadError) Unwrap() []error {
	return []error{errInvalidPayload, e.cause}
}

func decodePayload(r *http.Request) (reportPayload, error) {
	var payload reportPayload

	if r.Method == http.MethodGet {
		return payloadFromQuery(r.URL.Query())
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return payload, &payloadError{cause: err}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, &payloadError{cause: err}
	}

	return payload, nil
}

func payloadFromQuery(query url.Values) (reportPayload, error) {
	payload := reportPayload{
		CredentialsInput: domain.CredentialsInput{
			AccessToken: query.Get("accessToken"),
			AdAccountID: query.Get("adAccountId"),
		},
		DatePreset: query.Get("datePreset"),
		CampaignID: query.Get("campaignId"),
		AdSetID:    query.Get("adSetId"),
		Level:      query.Get("level"),
		StartDate:  query.Get("startDate"),
		EndDate:    query.Get("endDate"),
	}

	for _, preset := range strings.Split(query.Get("presets"), ",") {
		if preset = strings.TrimSpace(preset); preset != "" {
			payload.Presets = append(payload.Presets, preset)
		}
	}

	var err error
	if payload.Limit, err = intParam(query, "limit"); err != nil {
		return payload, err
	}
	if payload.IntervalSeconds, err = intParam(query, "intervalSeconds"); err != nil {
		return payload, err
	}
	if raw := query.Get("targetCpa"); raw != "" {
		if payload.TargetCPA, err = strconv.ParseFloat(raw, 64); err != nil {
			return payload, &payloadError{Field: "targetCpa", cause: err}
		}
	}

	return payload, nil
}

func intParam(query url.Values, name string) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &payloadError{Field: name, cause: err}
	}
	return value, nil
}

// reportRequest decodifica o payload e resolve as credenciais (corpo primeiro, cookies depois).
func reportRequest(r *http.Request, resolver *credentialing.Resolver) (reportPayload, insighting.ReportRequest, error) {
	payload, err := decodePayload(r)
	if err != nil {
		return payload, insighting.ReportRequest{}, err
	}

	creds, err := resolver.Resolve(payload.CredentialsInput, r)
	if err != nil {
		return payload, insighting.ReportRequest{}, err
	}

	return payload, insighting.ReportRequest{
		Credentials: creds,
		DatePreset:  payload.DatePreset,
		Limit:       payload.Limit,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.L.WithError(err).Error("Erro ao serializar resposta")
	}
}

// writeFailure converte o erro para o envelope {success:false, code, error, details}.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var pErr *payloadError
	if errors.As(err, &pErr) {
		var details any
		if pErr.Field != "" {
			details = map[string]string{"field": pErr.Field}
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de requisição inválido", details)
		return
	}

	mapped := insighting.MapError(err)

	logger := log.ForContext(r.Context()).WithFields(log.Fields{
		"path":   r.URL.Path,
		"code":   mapped.Code,
		"status": mapped.Status,
	}).WithError(err)
	if mapped.Status >= http.StatusInternalServerError {
		logger.Error("Falha ao processar requisição")
	} else {
		logger.Warn("Requisição recusada")
	}

	apiErrors.WriteErrorWithStatus(w, mapped.Status, mapped.Code, mapped.Err.Error(), mapped.Details)
}

type reportResponse struct {
	Success bool `json:"success"`
	*domain.EntityReport
}

type accountInsightsResponse struct {
	Success bool `json:"success"`
	*domain.AccountInsightsReport
}

type comparisonResponse struct {
	Success bool `json:"success"`
	*domain.PresetComparison
}

type lifetimeResponse struct {
	Success bool `json:"success"`
	*insighting.LifetimeSpendDiagnostics
}
