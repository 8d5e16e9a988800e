package credentialing

import (
	"net/http"
	"strings"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

const minAccessTokenLength = 20

// CookieSource é satisfeito por *http.Request.
type CookieSource interface {
	Cookie(name string) (*http.Cookie, error)
}

type Resolver struct {
	sealer Sealer
}

func NewResolver(sealer Sealer) *Resolver {
	return &Resolver{sealer: sealer}
}

// Resolve monta as credenciais da requisição. Campos do corpo têm prioridade
// sobre os cookies, campo a campo. Nenhuma chamada de rede é feita aqui.
func (r *Resolver) Resolve(input domain.CredentialsInput, cookies CookieSource) (domain.Credentials, error) {
	creds := domain.Credentials{
		AccessToken: strings.TrimSpace(input.AccessToken),
		AdAccountID: strings.TrimSpace(input.AdAccountID),
	}

	if creds.AccessToken == "" && cookies != nil {
		creds.AccessToken = r.tokenFromCookie(cookies)
	}

	if creds.AdAccountID == "" && cookies != nil {
		if cookie, err := cookies.Cookie(SelectedAccountCookie); err == nil {
			creds.AdAccountID = strings.TrimSpace(cookie.Value)
		}
	}

	if creds.AccessToken == "" {
		return domain.Credentials{}, ErrMissingAccessToken
	}
	if creds.AdAccountID == "" {
		return domain.Credentials{}, ErrMissingAdAccount
	}

	// O id vira caminho na Graph API: só dígitos, com ou sem act_.
	if !domain.IsValidAdAccountID(creds.AdAccountID) {
		return domain.Credentials{}, &CredentialError{Err: ErrInvalidCredentials, Field: "adAccountId"}
	}
	creds.AdAccountID = domain.NormalizeAdAccountID(creds.AdAccountID)

	return creds, nil
}

// ResolveToken é usado nas rotas que só precisam do token (listagem de contas, status).
func (r *Resolver) ResolveToken(input domain.CredentialsInput, cookies CookieSource) (string, error) {
	token := strings.TrimSpace(input.AccessToken)
	if token == "" && cookies != nil {
		token = r.tokenFromCookie(cookies)
	}
	if token == "" {
		return "", ErrMissingAccessToken
	}
	return token, nil
}

func (r *Resolver) tokenFromCookie(cookies CookieSource) string {
	cookie, err := cookies.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}

	token, err := r.sealer.Open(cookie.Value)
	if err != nil {
		// Cookie adulterado ou segredo trocado: tratado como ausente.
		log.L.WithError(err).Warn("credentials: ignoring unreadable access token cookie")
		return ""
	}

	return token
}

// Validate aplica a validação estrita usada na seleção de conta.
func Validate(creds domain.Credentials) error {
	if len(creds.AccessToken) < minAccessTokenLength {
		return &CredentialError{Err: ErrInvalidCredentials, Field: "accessToken"}
	}
	if !domain.IsValidAdAccountID(creds.AdAccountID) {
		return &CredentialError{Err: ErrInvalidCredentials, Field: "adAccountId"}
	}
	return nil
}
