package credentialing

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	AccessTokenCookie     = "fb_access_token"
	SelectedAccountCookie = "fb_selected_account"
	AdAccountsCookie      = "fb_ad_accounts"
)

const day = 24 * time.Hour

// CookieWriter grava e apaga os cookies de sessão do Meta.
type CookieWriter struct {
	cfg    config.Session
	sealer Sealer
}

func NewCookieWriter(cfg config.Session, sealer Sealer) *CookieWriter {
	return &CookieWriter{cfg: cfg, sealer: sealer}
}

func (c *CookieWriter) newCookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   c.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSession grava o token selado, a lista de contas e a conta selecionada.
func (c *CookieWriter) SetSession(w http.ResponseWriter, session *domain.Session) error {
	sealed, err := c.sealer.Seal(session.AccessToken)
	if err != nil {
		return err
	}

	accounts, err := json.Marshal(session.AdAccounts)
	if err != nil {
		return err
	}
	// A lista também é selada: ela dispensa a consulta à Graph API na seleção de conta.
	sealedAccounts, err := c.sealer.Seal(string(accounts))
	if err != nil {
		return err
	}

	http.SetCookie(w, c.newCookie(AccessTokenCookie, sealed, time.Duration(c.cfg.TokenMaxAgeDays)*day))
	http.SetCookie(w, c.newCookie(AdAccountsCookie, sealedAccounts, time.Duration(c.cfg.AccountsMaxAgeDays)*day))

	if session.SelectedAccount != "" {
		c.SetSelectedAccount(w, session.SelectedAccount)
	}

	return nil
}

func (c *CookieWriter) SetSelectedAccount(w http.ResponseWriter, adAccountID string) {
	http.SetCookie(w, c.newCookie(SelectedAccountCookie, domain.NormalizeAdAccountID(adAccountID), time.Duration(c.cfg.AccountsMaxAgeDays)*day))
}

// Clear expira os três cookies.
func (c *CookieWriter) Clear(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, SelectedAccountCookie, AdAccountsCookie} {
		cookie := c.newCookie(name, "", 0)
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		http.SetCookie(w, cookie)
	}
}

// ReadAdAccounts abre o cookie fb_ad_accounts. Cookie ausente, adulterado ou
// selado com outra chave devolve nil.
func (c *CookieWriter) ReadAdAccounts(cookies CookieSource) []domain.AdAccountOption {
	cookie, err := cookies.Cookie(AdAccountsCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	raw, err := c.sealer.Open(cookie.Value)
	if err != nil {
		log.L.WithError(err).Warn("credentials: ignoring unreadable ad accounts cookie")
		return nil
	}

	var accounts []domain.AdAccountOption
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil
	}

	return accounts
}
