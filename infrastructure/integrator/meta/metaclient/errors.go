package metaclient

import (
	"errors"
	"fmt"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
)

var (
	// ErrNetwork indica que nenhum dos transportes conseguiu falar com a API.
	ErrNetwork = errors.New("meta: network failure")
	// ErrInvalidResponse indica um corpo que não pôde ser decodificado.
	ErrInvalidResponse = errors.New("meta: invalid response body")
)

// UpstreamError é uma resposta não-2xx da Graph API.
type UpstreamError struct {
	Status   int
	Response *metadomain.ErrorResponse
	Raw      string
}

func (e *UpstreamError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("meta: upstream error status=%d code=%d: %s", e.Status, e.Response.Error.Code, e.Response.Error.Message)
	}
	return fmt.Sprintf("meta: upstream error status=%d: %s", e.Status, e.Raw)
}

// TokenExpired informa se a API recusou o token por expiração ou revogação.
func (e *UpstreamError) TokenExpired() bool {
	if e.Response != nil && e.Response.IsTokenExpired() {
		return true
	}
	return metadomain.ContainsTokenExpirationMessage(e.Raw)
}

// Details devolve o objeto de erro da API, ou o texto cru quando não é JSON.
func (e *UpstreamError) Details() any {
	if e.Response != nil {
		return e.Response.Error
	}
	return e.Raw
}

// ParseErrorResponse tenta parsear um erro da API do Meta
func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	if errorResp.Error.Message == "" && errorResp.Error.Code == 0 {
		return nil, errors.New("empty error object")
	}
	return &errorResp, nil
}
