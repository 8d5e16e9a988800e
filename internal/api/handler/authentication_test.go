package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	repomocks "github.com/vfg2006/ads-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	authmocks "github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var testSession = config.Session{
	DashboardURL:       "http://localhost:3000/dashboard",
	TokenMaxAgeDays:    60,
	AccountsMaxAgeDays: 30,
	SecureCookies:      true,
}

func newAuthenticator(t *testing.T) *authmocks.MockAuthenticator {
	return authmocks.NewMockAuthenticator(gomock.NewController(t))
}

func newCookieWriter() *credentialing.CookieWriter {
	return credentialing.NewCookieWriter(testSession, testSealer)
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestLogin_Redirects(t *testing.T) {
	service := newAuthenticator(t)
	service.EXPECT().LoginURL("/dashboard/campaigns").Return("https://www.facebook.com/v19.0/dialog/oauth?state=abc", nil)

	rec := httptest.NewRecorder()
	Login(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/login?redirectTo=/dashboard/campaigns", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://www.facebook.com/v19.0/dialog/oauth?state=abc", rec.Header().Get("Location"))
}

func TestCallback_SetsCookiesAndRedirects(t *testing.T) {
	service := newAuthenticator(t)
	service.EXPECT().Callback(gomock.Any(), "good-code", "signed-state").Return(&domain.Session{
		AccessToken:     testToken,
		ExpiresAt:       time.Now().Add(60 * 24 * time.Hour),
		AdAccounts:      []domain.AdAccountOption{{ID: "123", Name: "Loja"}},
		SelectedAccount: "123",
		RedirectTo:      "http://localhost:3000/dashboard",
	}, nil)

	rec := httptest.NewRecorder()
	Callback(service, newCookieWriter(), testSession).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=good-code&state=signed-state", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://localhost:3000/dashboard", rec.Header().Get("Location"))

	tokenCookie := cookieByName(rec, credentialing.AccessTokenCookie)
	require.NotNil(t, tokenCookie)
	assert.True(t, tokenCookie.HttpOnly)
	assert.True(t, tokenCookie.Secure)
	assert.NotContains(t, tokenCookie.Value, testToken)

	opened, err := testSealer.Open(tokenCookie.Value)
	require.NoError(t, err)
	assert.Equal(t, testToken, opened)

	selected := cookieByName(rec, credentialing.SelectedAccountCookie)
	require.NotNil(t, selected)
	assert.Equal(t, "123", selected.Value)
}

func TestCallback_Failures(t *testing.T) {
	t.Run("usuário negou", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Callback(newAuthenticator(t), newCookieWriter(), testSession).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/callback?error=access_denied&error_reason=user_denied", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "http://localhost:3000/dashboard?authError="+apiErrors.ErrOAuthDenied, rec.Header().Get("Location"))
	})

	t.Run("state inválido", func(t *testing.T) {
		service := newAuthenticator(t)
		service.EXPECT().Callback(gomock.Any(), "code", "forged").
			Return(nil, authenticating.NewAuthError(authenticating.ErrInvalidState, apiErrors.ErrInvalidOAuthState, ""))

		rec := httptest.NewRecorder()
		Callback(service, newCookieWriter(), testSession).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=code&state=forged", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "authError="+apiErrors.ErrInvalidOAuthState)
		assert.Nil(t, cookieByName(rec, credentialing.AccessTokenCookie))
	})

	t.Run("sem dashboard configurado", func(t *testing.T) {
		service := newAuthenticator(t)
		service.EXPECT().Callback(gomock.Any(), "", "").
			Return(nil, authenticating.NewAuthError(authenticating.ErrMissingCode, apiErrors.ErrMissingRequiredData, ""))

		rec := httptest.NewRecorder()
		Callback(service, newCookieWriter(), config.Session{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/callback", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeBody(t, rec)["code"])
	})
}

func TestLogout_ClearsCookies(t *testing.T) {
	service := newAuthenticator(t)
	service.EXPECT().Logout(gomock.Any(), "act_123").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: credentialing.SelectedAccountCookie, Value: "act_123"})
	rec := httptest.NewRecorder()

	Logout(service, newCookieWriter()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	for _, name := range []string{credentialing.AccessTokenCookie, credentialing.SelectedAccountCookie, credentialing.AdAccountsCookie} {
		cookie := cookieByName(rec, name)
		require.NotNil(t, cookie, name)
		assert.Equal(t, -1, cookie.MaxAge)
	}
}

func TestLogout_DatabaseError(t *testing.T) {
	service := newAuthenticator(t)
	service.EXPECT().Logout(gomock.Any(), "123").
		Return(authenticating.NewAuthError(authenticating.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, ""))

	rec := httptest.NewRecorder()
	Logout(service, newCookieWriter()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(`{"adAccountId":"123"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, cookieByName(rec, credentialing.AccessTokenCookie))
}

func TestStatus(t *testing.T) {
	t.Run("sem token", func(t *testing.T) {
		service := newAuthenticator(t)
		service.EXPECT().Status(gomock.Any(), "").Return(&domain.TokenStatus{Connected: false}, nil)

		rec := httptest.NewRecorder()
		Status(service, newResolver()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, decodeBody(t, rec)["connected"])
	})

	t.Run("token do cookie", func(t *testing.T) {
		service := newAuthenticator(t)
		service.EXPECT().Status(gomock.Any(), testToken).Return(&domain.TokenStatus{Connected: true, AppID: "app"}, nil)

		sealed, err := testSealer.Seal(testToken)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
		req.AddCookie(&http.Cookie{Name: credentialing.AccessTokenCookie, Value: sealed})
		req.AddCookie(&http.Cookie{Name: credentialing.SelectedAccountCookie, Value: "123"})
		rec := httptest.NewRecorder()

		Status(service, newResolver()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody(t, rec)
		assert.Equal(t, true, resp["connected"])
		assert.Equal(t, "123", resp["selectedAccount"])
	})
}

func TestListAccounts(t *testing.T) {
	service := newAuthenticator(t)
	service.EXPECT().ListAccounts(gomock.Any(), testToken).Return([]domain.AdAccountOption{{ID: "123"}, {ID: "456"}}, nil)

	rec := httptest.NewRecorder()
	ListAccounts(service, newResolver()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/accounts/list?accessToken="+testToken, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["adAccounts"], 2)
}

func TestListAccounts_MissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	ListAccounts(newAuthenticator(t), newResolver()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/accounts/list", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingAccessToken, decodeBody(t, rec)["code"])
}

func TestSelectAccount(t *testing.T) {
	service := newAuthenticator(t)
	service.EXPECT().SelectAccount(gomock.Any(), testToken, "act_123", gomock.Nil()).
		Return(&domain.AdAccount{ID: "acc-1", ExternalID: "123", Name: "Loja"}, nil)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"accessToken":"` + testToken + `","adAccountId":"act_123"}`)
	SelectAccount(service, newResolver(), newCookieWriter()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/accounts/select", body))

	require.Equal(t, http.StatusOK, rec.Code)
	selected := cookieByName(rec, credentialing.SelectedAccountCookie)
	require.NotNil(t, selected)
	assert.Equal(t, "123", selected.Value)
	assert.Equal(t, "acc-1", decodeBody(t, rec)["account"].(map[string]any)["id"])
}

func TestSelectAccount_ForgedAccountsCookieIsIgnored(t *testing.T) {
	forged := base64.RawURLEncoding.EncodeToString([]byte(`[{"id":"999","name":"Alheia"}]`))
	sealedToken, err := testSealer.Seal(testToken)
	require.NoError(t, err)

	tests := []struct {
		name  string
		body  string
		token string
		setup func(lister *authmocks.MockAccountLister)
	}{
		{
			name:  "token no corpo",
			body:  `{"accessToken":"EAAjunkjunkjunkjunkjunk","adAccountId":"999"}`,
			token: "EAAjunkjunkjunkjunkjunk",
			setup: func(lister *authmocks.MockAccountLister) {
				lister.EXPECT().ListAdAccounts(gomock.Any(), "EAAjunkjunkjunkjunkjunk").Return(nil, &metaclient.UpstreamError{
					Status: http.StatusBadRequest,
					Raw:    `{"error":{"message":"Invalid OAuth access token.","code":190}}`,
				})
			},
		},
		{
			name:  "token da própria sessão",
			body:  `{"adAccountId":"999"}`,
			token: testToken,
			setup: func(lister *authmocks.MockAccountLister) {
				lister.EXPECT().ListAdAccounts(gomock.Any(), testToken).Return([]domain.AdAccountOption{{ID: "123"}}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			lister := authmocks.NewMockAccountLister(ctrl)
			tt.setup(lister)

			// Sem expectativas: gravar conta ou credencial falha o teste.
			service := authenticating.NewService(
				&config.Config{},
				authmocks.NewMockMetaAuthClient(ctrl),
				lister,
				repomocks.NewMockAccountRepository(ctrl),
				authmocks.NewMockCredentialPersister(ctrl),
			)

			req := httptest.NewRequest(http.MethodPost, "/api/accounts/select", strings.NewReader(tt.body))
			req.AddCookie(&http.Cookie{Name: credentialing.AdAccountsCookie, Value: forged})
			req.AddCookie(&http.Cookie{Name: credentialing.AccessTokenCookie, Value: sealedToken})
			rec := httptest.NewRecorder()

			SelectAccount(service, newResolver(), newCookieWriter()).ServeHTTP(rec, req)

			assert.Contains(t, []int{http.StatusUnauthorized, http.StatusForbidden}, rec.Code)
			assert.Nil(t, cookieByName(rec, credentialing.SelectedAccountCookie))
		})
	}
}

func TestSelectAccount_Failures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "sem conta",
			body:       `{"accessToken":"` + testToken + `"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrMissingAdAccount,
		},
		{
			name:       "conta de outro usuário",
			body:       `{"accessToken":"` + testToken + `","adAccountId":"999"}`,
			err:        authenticating.NewAuthError(authenticating.ErrAccountNotAccessible, apiErrors.ErrInsufficientPrivilege, "999"),
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:       "erro inesperado",
			body:       `{"accessToken":"` + testToken + `","adAccountId":"999"}`,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newAuthenticator(t)
			if tt.err != nil {
				service.EXPECT().SelectAccount(gomock.Any(), testToken, "999", gomock.Any()).Return(nil, tt.err)
			}

			rec := httptest.NewRecorder()
			SelectAccount(service, newResolver(), newCookieWriter()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/accounts/select", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeBody(t, rec)["code"])
			assert.Nil(t, cookieByName(rec, credentialing.SelectedAccountCookie))
		})
	}
}
