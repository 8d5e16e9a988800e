package insighting

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
)

var (
	ErrMissingCredentials = errors.New("credenciais ausentes")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrInvalidDatePreset  = errors.New("período inválido")
	ErrMissingPresets     = errors.New("nenhum período informado")
	ErrUpstreamAPI        = errors.New("erro retornado pela API do Meta")
	ErrNetwork            = errors.New("falha de rede ao acessar a API do Meta")
	ErrParse              = errors.New("resposta inválida da API do Meta")
	ErrMissingEntityID    = errors.New("identificador da entidade não informado")
	ErrInvalidEntityID    = errors.New("identificador da entidade inválido")
	ErrInvalidLevel       = errors.New("nível de relatório inválido")
	ErrTokenExpired       = errors.New("token do Meta expirado ou revogado")
	ErrInternal           = errors.New("erro interno")
)

// InsightError carrega o código da API, o status HTTP e os detalhes devolvidos ao cliente.
type InsightError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Status  int    // Status HTTP, espelhado da Graph API quando existir
	Details any    // Detalhes adicionais
	cause   error
}

func (e *InsightError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.cause.Error())
	}
	return e.Err.Error()
}

func (e *InsightError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Err, e.cause}
	}
	return []error{e.Err}
}

// NewInsightError cria um erro com o status padrão do código.
func NewInsightError(err error, code string, details any) *InsightError {
	return &InsightError{
		Err:     err,
		Code:    code,
		Status:  apiErrors.StatusFor(code),
		Details: details,
	}
}

// MapError converte qualquer erro das camadas inferiores para a taxonomia da API.
func MapError(err error) *InsightError {
	if err == nil {
		return nil
	}

	var insightErr *InsightError
	if errors.As(err, &insightErr) {
		return insightErr
	}

	mapped := mapError(err)
	mapped.cause = err
	return mapped
}

func mapError(err error) *InsightError {
	var upstreamErr *metaclient.UpstreamError
	if errors.As(err, &upstreamErr) {
		mapped := NewInsightError(ErrUpstreamAPI, apiErrors.ErrUpstreamAPI, upstreamErr.Details())
		if upstreamErr.TokenExpired() {
			mapped.Err = ErrTokenExpired
			mapped.Code = apiErrors.ErrMetaTokenExpired
		}
		mapped.Status = upstreamErr.Status
		return mapped
	}

	var credentialErr *credentialing.CredentialError
	if errors.As(err, &credentialErr) {
		return NewInsightError(ErrInvalidCredentials, apiErrors.ErrInvalidMetaCredentials, map[string]string{"field": credentialErr.Field})
	}

	switch {
	case errors.Is(err, credentialing.ErrMissingAccessToken):
		return NewInsightError(ErrMissingCredentials, apiErrors.ErrMissingAccessToken, nil)
	case errors.Is(err, credentialing.ErrMissingAdAccount):
		return NewInsightError(ErrMissingCredentials, apiErrors.ErrMissingAdAccount, nil)
	case errors.Is(err, credentialing.ErrReauthorizationRequired):
		return NewInsightError(ErrTokenExpired, apiErrors.ErrMetaTokenExpired, nil)
	case errors.Is(err, domain.ErrInvalidDatePreset):
		return NewInsightError(ErrInvalidDatePreset, apiErrors.ErrInvalidDatePreset, map[string]any{
			"validPresets": domain.SupportedDatePresets(),
		})
	case errors.Is(err, metaclient.ErrNetwork):
		return NewInsightError(ErrNetwork, apiErrors.ErrNetwork, nil)
	case errors.Is(err, metaclient.ErrInvalidResponse), errors.Is(err, meta.ErrMalformedInsight):
		return NewInsightError(ErrParse, apiErrors.ErrParse, nil)
	}

	return &InsightError{
		Err:    ErrInternal,
		Code:   apiErrors.ErrInternalServer,
		Status: http.StatusInternalServerError,
	}
}
