package credentialing

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

func TestCookieSealer_RoundTrip(t *testing.T) {
	sealer := NewCookieSealer("segredo")

	first, err := sealer.Seal(testToken)
	require.NoError(t, err)
	second, err := sealer.Seal(testToken)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, testToken)

	plain, err := sealer.Open(first)
	require.NoError(t, err)
	assert.Equal(t, testToken, plain)
}

func TestCookieSealer_RejectsTampering(t *testing.T) {
	sealer := NewCookieSealer("segredo")
	sealed, err := sealer.Seal(testToken)
	require.NoError(t, err)

	tampered := []byte(sealed)
	middle := len(tampered) / 2
	if tampered[middle] == 'A' {
		tampered[middle] = 'g'
	} else {
		tampered[middle] = 'A'
	}

	_, err = sealer.Open(string(tampered))
	assert.ErrorIs(t, err, ErrInvalidSealedValue)

	_, err = sealer.Open("não-é-base64!")
	assert.ErrorIs(t, err, ErrInvalidSealedValue)

	_, err = NewCookieSealer("outro").Open(sealed)
	assert.ErrorIs(t, err, ErrInvalidSealedValue)
}

func TestCookieWriter_SetSessionAndRead(t *testing.T) {
	sealer := NewCookieSealer("segredo")
	writer := NewCookieWriter(config.Session{TokenMaxAgeDays: 60, AccountsMaxAgeDays: 30, SecureCookies: true}, sealer)
	rec := httptest.NewRecorder()

	err := writer.SetSession(rec, &domain.Session{
		AccessToken:     testToken,
		AdAccounts:      []domain.AdAccountOption{{ID: "1", Name: "Loja"}},
		SelectedAccount: "act_1",
	})
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 3)

	byName := map[string]*http.Cookie{}
	for _, cookie := range cookies {
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		byName[cookie.Name] = cookie
	}

	assert.Equal(t, 60*24*60*60, byName[AccessTokenCookie].MaxAge)
	assert.Equal(t, 30*24*60*60, byName[AdAccountsCookie].MaxAge)
	assert.Equal(t, "1", byName[SelectedAccountCookie].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	assert.NotContains(t, byName[AdAccountsCookie].Value, "Loja")

	accounts := writer.ReadAdAccounts(req)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Loja", accounts[0].Name)

	creds, err := NewResolver(sealer).Resolve(domain.CredentialsInput{}, req)
	require.NoError(t, err)
	assert.Equal(t, testToken, creds.AccessToken)
	assert.Equal(t, "1", creds.AdAccountID)
}

func TestCookieWriter_Clear(t *testing.T) {
	writer := NewCookieWriter(config.Session{}, NewCookieSealer("segredo"))
	rec := httptest.NewRecorder()

	writer.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 3)
	for _, cookie := range cookies {
		assert.Empty(t, cookie.Value)
		assert.Equal(t, -1, cookie.MaxAge)
	}
}

func TestReadAdAccounts_RejectsUnsealedList(t *testing.T) {
	writer := NewCookieWriter(config.Session{}, NewCookieSealer("segredo"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, writer.ReadAdAccounts(req))

	// Lista forjada em base64 simples, como o cliente conseguiria montar.
	forged := base64.RawURLEncoding.EncodeToString([]byte(`[{"id":"999","name":"Alheia"}]`))
	req.AddCookie(&http.Cookie{Name: AdAccountsCookie, Value: forged})
	assert.Nil(t, writer.ReadAdAccounts(req))

	otherKey, err := NewCookieSealer("outro").Seal(`[{"id":"999"}]`)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AdAccountsCookie, Value: otherKey})
	assert.Nil(t, writer.ReadAdAccounts(req))
}
