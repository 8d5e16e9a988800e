package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/internal/api/handler"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/pkg/middleware"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.Server{Host: "127.0.0.1", Port: "0"},
		Session: config.Session{DashboardURL: "http://localhost:3000/dashboard", TokenMaxAgeDays: 60, AccountsMaxAgeDays: 30},
		Cors:    config.Cors{AllowedOrigins: []string{"http://localhost:3000"}},
		Admin:   config.Admin{Token: "admin-secret"},
		Stream:  config.Stream{DefaultIntervalSeconds: 30, MinIntervalSeconds: 10},
	}
}

func testDependencies() Dependencies {
	sealer := credentialing.NewCookieSealer("cookie-secret")
	return Dependencies{
		Resolver: credentialing.NewResolver(sealer),
		Cookies:  credentialing.NewCookieWriter(testConfig().Session, sealer),
		SyncJobs: handler.SyncJobs{},
	}
}

func TestNew_RequiresResolver(t *testing.T) {
	_, err := New(testConfig(), Dependencies{})
	require.Error(t, err)

	srv, err := New(testConfig(), testDependencies())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.httpServer.Addr)
}

func TestNewHandler_GlobalMiddlewares(t *testing.T) {
	h := NewHandler(testConfig(), testDependencies())

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.CorrelationIDHeader))
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewHandler_MissingCredentialsNeverReachServices(t *testing.T) {
	// Serviços nil: se a rota chamasse o serviço, o teste entraria em panic.
	h := NewHandler(testConfig(), testDependencies())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/campaigns/list", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "CRED_001")
}

func TestNewHandler_SyncRequiresAdminToken(t *testing.T) {
	h := NewHandler(testConfig(), testDependencies())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sync/status", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/sync/status", nil)
	req.Header.Set("Authorization", "Bearer admin-secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewHandler_Metrics(t *testing.T) {
	h := NewHandler(testConfig(), testDependencies())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ads_dashboard_requests_total{method="GET",path="/healthcheck",status="200"}`)
}
