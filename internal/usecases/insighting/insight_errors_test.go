package insighting

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		base   error
		code   string
		status int
	}{
		{"token ausente", credentialing.ErrMissingAccessToken, ErrMissingCredentials, apiErrors.ErrMissingAccessToken, http.StatusUnauthorized},
		{"conta ausente", credentialing.ErrMissingAdAccount, ErrMissingCredentials, apiErrors.ErrMissingAdAccount, http.StatusBadRequest},
		{"credencial inválida", &credentialing.CredentialError{Err: credentialing.ErrInvalidCredentials, Field: "adAccountId"}, ErrInvalidCredentials, apiErrors.ErrInvalidMetaCredentials, http.StatusBadRequest},
		{"reautorização", credentialing.ErrReauthorizationRequired, ErrTokenExpired, apiErrors.ErrMetaTokenExpired, http.StatusUnauthorized},
		{"período inválido", domain.ErrInvalidDatePreset, ErrInvalidDatePreset, apiErrors.ErrInvalidDatePreset, http.StatusBadRequest},
		{"rede", fmt.Errorf("%w: timeout", metaclient.ErrNetwork), ErrNetwork, apiErrors.ErrNetwork, http.StatusInternalServerError},
		{"json inválido", fmt.Errorf("%w: eof", metaclient.ErrInvalidResponse), ErrParse, apiErrors.ErrParse, http.StatusInternalServerError},
		{"valor malformado", fmt.Errorf("campaign 1: %w", meta.ErrMalformedInsight), ErrParse, apiErrors.ErrParse, http.StatusInternalServerError},
		{"desconhecido", errors.New("boom"), ErrInternal, apiErrors.ErrInternalServer, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)

			assert.ErrorIs(t, mapped, tt.base)
			assert.ErrorIs(t, mapped, tt.err)
			assert.Equal(t, tt.code, mapped.Code)
			assert.Equal(t, tt.status, mapped.Status)
		})
	}
}

func TestMapError_UpstreamTokenExpiredKeepsStatus(t *testing.T) {
	upstream := &metaclient.UpstreamError{
		Status:   http.StatusBadRequest,
		Response: &metadomain.ErrorResponse{Error: metadomain.ErrorDetails{Code: 190, Message: "Error validating access token"}},
	}

	mapped := MapError(fmt.Errorf("campaigns: %w", upstream))

	assert.ErrorIs(t, mapped, ErrTokenExpired)
	assert.Equal(t, apiErrors.ErrMetaTokenExpired, mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.Status)
	assert.Equal(t, upstream.Response.Error, mapped.Details)
}

func TestMapError_UpstreamTextBody(t *testing.T) {
	mapped := MapError(&metaclient.UpstreamError{Status: http.StatusServiceUnavailable, Raw: "service unavailable"})

	assert.Equal(t, http.StatusServiceUnavailable, mapped.Status)
	assert.Equal(t, "service unavailable", mapped.Details)
}

func TestMapError_PassThrough(t *testing.T) {
	original := NewInsightError(ErrMissingEntityID, apiErrors.ErrMissingRequiredData, nil)

	assert.Same(t, original, MapError(original))
	assert.Nil(t, MapError(nil))
}
