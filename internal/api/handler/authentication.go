package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

type accountsResponse struct {
	Success         bool                     `json:"success"`
	AdAccounts      []domain.AdAccountOption `json:"adAccounts"`
	SelectedAccount string                   `json:"selectedAccount,omitempty"`
}

type selectAccountResponse struct {
	Success bool              `json:"success"`
	Account *domain.AdAccount `json:"account"`
}

type statusResponse struct {
	Success bool `json:"success"`
	*domain.TokenStatus
}

// Login redireciona para o diálogo OAuth do Meta.
func Login(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loginURL, err := service.LoginURL(r.URL.Query().Get("redirectTo"))
		if err != nil {
			writeAuthFailure(w, r, err)
			return
		}

		http.Redirect(w, r, loginURL, http.StatusFound)
	})
}

// Callback conclui o OAuth, grava os cookies e volta para o dashboard. Falhas
// também voltam para o dashboard, com o código do erro na query.
func Callback(service authenticating.Authenticator, cookies *credentialing.CookieWriter, cfg config.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		if denied := query.Get("error"); denied != "" {
			logger.WithFields(log.Fields{
				"error":        denied,
				"error_reason": query.Get("error_reason"),
			}).Warn("Usuário negou o acesso no diálogo do Meta")
			redirectWithError(w, r, cfg.DashboardURL, apiErrors.ErrOAuthDenied)
			return
		}

		session, err := service.Callback(r.Context(), query.Get("code"), query.Get("state"))
		if err != nil {
			code := apiErrors.ErrInternalServer
			var authErr *authenticating.AuthError
			if errors.As(err, &authErr) {
				code = authErr.Code
			}
			redirectWithError(w, r, cfg.DashboardURL, code)
			return
		}

		if err := cookies.SetSession(w, session); err != nil {
			logger.WithError(err).Error("Erro ao gravar cookies de sessão")
			redirectWithError(w, r, cfg.DashboardURL, apiErrors.ErrInternalServer)
			return
		}

		http.Redirect(w, r, session.RedirectTo, http.StatusFound)
	})
}

func redirectWithError(w http.ResponseWriter, r *http.Request, dashboardURL, code string) {
	target, err := url.Parse(dashboardURL)
	if err != nil || dashboardURL == "" {
		apiErrors.WriteError(w, code, "Falha na autenticação com o Meta", nil)
		return
	}

	values := target.Query()
	values.Set("authError", code)
	target.RawQuery = values.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}

// Logout apaga os cookies e remove o token guardado da conta selecionada.
func Logout(service authenticating.Authenticator, cookies *credentialing.CookieWriter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		adAccountID := payload.AdAccountID
		if adAccountID == "" {
			if cookie, err := r.Cookie(credentialing.SelectedAccountCookie); err == nil {
				adAccountID = cookie.Value
			}
		}

		if err := service.Logout(r.Context(), adAccountID); err != nil {
			writeAuthFailure(w, r, err)
			return
		}

		cookies.Clear(w)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
}

// Status consulta o debug_token do token do cookie. Sem token responde connected=false.
func Status(service authenticating.Authenticator, resolver *credentialing.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		token, err := resolver.ResolveToken(payload.CredentialsInput, r)
		if err != nil && !errors.Is(err, credentialing.ErrMissingAccessToken) {
			writeFailure(w, r, err)
			return
		}

		status, err := service.Status(r.Context(), token)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		if cookie, err := r.Cookie(credentialing.SelectedAccountCookie); err == nil && status.Connected {
			status.SelectedAccount = cookie.Value
		}

		writeJSON(w, http.StatusOK, statusResponse{Success: true, TokenStatus: status})
	})
}

func ListAccounts(service authenticating.Authenticator, resolver *credentialing.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		token, err := resolver.ResolveToken(payload.CredentialsInput, r)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		accounts, err := service.ListAccounts(r.Context(), token)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		response := accountsResponse{Success: true, AdAccounts: accounts}
		if cookie, err := r.Cookie(credentialing.SelectedAccountCookie); err == nil {
			response.SelectedAccount = cookie.Value
		}

		writeJSON(w, http.StatusOK, response)
	})
}

// SelectAccount valida a conta escolhida e grava o cookie fb_selected_account.
func SelectAccount(service authenticating.Authenticator, resolver *credentialing.Resolver, cookies *credentialing.CookieWriter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		token, err := resolver.ResolveToken(payload.CredentialsInput, r)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		if payload.AdAccountID == "" {
			writeFailure(w, r, credentialing.ErrMissingAdAccount)
			return
		}

		account, err := service.SelectAccount(r.Context(), token, payload.AdAccountID, sessionAccounts(r, payload.CredentialsInput, cookies))
		if err != nil {
			writeAuthFailure(w, r, err)
			return
		}

		selected := domain.NormalizeAdAccountID(payload.AdAccountID)
		if account != nil {
			selected = account.ExternalID
		}
		cookies.SetSelectedAccount(w, selected)

		log.ForContext(r.Context()).WithField("ad_account_id", selected).Info("Conta de anúncios selecionada")

		writeJSON(w, http.StatusOK, selectAccountResponse{Success: true, Account: account})
	})
}

// sessionAccounts só usa a lista selada do cookie quando o token também veio
// do cookie. Token enviado no corpo sempre passa pela Graph API.
func sessionAccounts(r *http.Request, input domain.CredentialsInput, cookies *credentialing.CookieWriter) []domain.AdAccountOption {
	if strings.TrimSpace(input.AccessToken) != "" {
		return nil
	}
	return cookies.ReadAdAccounts(r)
}

func writeAuthFailure(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if !errors.As(err, &authErr) {
		writeFailure(w, r, err)
		return
	}

	log.ForContext(r.Context()).WithError(err).WithField("code", authErr.Code).Warn("Falha na autenticação")

	var details any
	if authErr.Details != "" {
		details = authErr.Details
	}
	apiErrors.WriteError(w, authErr.Code, authErr.Err.Error(), details)
}
