package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrMissingAccessToken, http.StatusUnauthorized},
		{ErrMissingAdAccount, http.StatusBadRequest},
		{ErrInvalidDatePreset, http.StatusBadRequest},
		{ErrNetwork, http.StatusInternalServerError},
		{ErrParse, http.StatusInternalServerError},
		{ErrUpstreamAPI, http.StatusBadGateway},
		{"XYZ_999", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "falhou", map[string]string{"campo": "valor"})

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, "falhou", body["error"])
			assert.NotNil(t, body["details"])
		})
	}
}

func TestWriteErrorWithStatus_MirrorsUpstream(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteErrorWithStatus(rec, http.StatusBadRequest, ErrUpstreamAPI, "erro da Graph API", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "details")
}

func TestWriteErrorWithStatus_IgnoresNonErrorStatus(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteErrorWithStatus(rec, http.StatusOK, ErrUpstreamAPI, "erro", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrParse).Code)

	apiErr := FromError(errors.New("quebrou"), ErrParse)
	assert.Equal(t, ErrParse, apiErr.Code)
	assert.Equal(t, "quebrou", apiErr.Error)
}
