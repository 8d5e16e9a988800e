package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

// AdminOnly protege as rotas operacionais com o token de administração.
// Sem token configurado as rotas ficam fechadas.
func AdminOnly(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminToken == "" {
				log.ForContext(r.Context()).Warn("Rota administrativa chamada sem ADMIN_TOKEN configurado")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Rotas administrativas desabilitadas", nil)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Authorization header is required", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token is required", nil)
				return
			}

			if subtle.ConstantTimeCompare([]byte(tokenString), []byte(adminToken)) != 1 {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"path":        r.URL.Path,
					"remote_addr": r.RemoteAddr,
				}).Warn("Token administrativo inválido")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Invalid token", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
