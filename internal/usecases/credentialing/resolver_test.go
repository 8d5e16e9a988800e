package credentialing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

const testToken = "EAAGm0PX4ZCpsBAKZCZCtest"

func requestWithCookies(t *testing.T, sealer Sealer, token, account string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/campaigns/list", nil)
	if token != "" {
		sealed, err := sealer.Seal(token)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: sealed})
	}
	if account != "" {
		req.AddCookie(&http.Cookie{Name: SelectedAccountCookie, Value: account})
	}
	return req
}

func TestResolve_BodyWinsOverCookies(t *testing.T) {
	sealer := NewCookieSealer("segredo")
	resolver := NewResolver(sealer)
	req := requestWithCookies(t, sealer, "cookie-token-aaaaaaaaaaaa", "111")

	creds, err := resolver.Resolve(domain.CredentialsInput{AccessToken: "body-token", AdAccountID: "act_222"}, req)

	require.NoError(t, err)
	assert.Equal(t, "body-token", creds.AccessToken)
	assert.Equal(t, "222", creds.AdAccountID)
}

func TestResolve_FallsBackFieldByField(t *testing.T) {
	sealer := NewCookieSealer("segredo")
	resolver := NewResolver(sealer)
	req := requestWithCookies(t, sealer, testToken, "act_111")

	creds, err := resolver.Resolve(domain.CredentialsInput{AdAccountID: "333"}, req)

	require.NoError(t, err)
	assert.Equal(t, testToken, creds.AccessToken)
	assert.Equal(t, "333", creds.AdAccountID)

	creds, err = resolver.Resolve(domain.CredentialsInput{}, req)
	require.NoError(t, err)
	assert.Equal(t, "111", creds.AdAccountID)
}

func TestResolve_MissingCredentials(t *testing.T) {
	sealer := NewCookieSealer("segredo")
	resolver := NewResolver(sealer)

	tests := []struct {
		name  string
		input domain.CredentialsInput
		req   *http.Request
		err   error
	}{
		{
			name: "nada informado",
			req:  httptest.NewRequest(http.MethodGet, "/", nil),
			err:  ErrMissingAccessToken,
		},
		{
			name:  "sem conta",
			input: domain.CredentialsInput{AccessToken: testToken},
			req:   httptest.NewRequest(http.MethodGet, "/", nil),
			err:   ErrMissingAdAccount,
		},
		{
			name:  "espaços em branco",
			input: domain.CredentialsInput{AccessToken: "   ", AdAccountID: "1"},
			req:   httptest.NewRequest(http.MethodGet, "/", nil),
			err:   ErrMissingAccessToken,
		},
		{
			name: "cookie de outra chave",
			req:  requestWithCookies(t, NewCookieSealer("outro"), testToken, "1"),
			err:  ErrMissingAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(tt.input, tt.req)

			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, ErrMissingCredentials)
		})
	}
}

func TestResolve_RejectsNonNumericAccount(t *testing.T) {
	resolver := NewResolver(NewCookieSealer("segredo"))

	for _, id := range []string{"1/../../me", "act_1?fields=id", "me", "act_"} {
		t.Run(id, func(t *testing.T) {
			_, err := resolver.Resolve(domain.CredentialsInput{AccessToken: testToken, AdAccountID: id}, nil)

			var credentialErr *CredentialError
			require.ErrorAs(t, err, &credentialErr)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Equal(t, "adAccountId", credentialErr.Field)
		})
	}
}

func TestResolve_NilCookieSource(t *testing.T) {
	resolver := NewResolver(NewCookieSealer("segredo"))

	_, err := resolver.Resolve(domain.CredentialsInput{AdAccountID: "1"}, nil)

	assert.ErrorIs(t, err, ErrMissingAccessToken)
}

func TestResolveToken(t *testing.T) {
	sealer := NewCookieSealer("segredo")
	resolver := NewResolver(sealer)

	token, err := resolver.ResolveToken(domain.CredentialsInput{}, requestWithCookies(t, sealer, testToken, ""))
	require.NoError(t, err)
	assert.Equal(t, testToken, token)

	_, err = resolver.ResolveToken(domain.CredentialsInput{}, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrMissingAccessToken)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		creds domain.Credentials
		field string
	}{
		{name: "válido com prefixo", creds: domain.Credentials{AccessToken: testToken, AdAccountID: "act_123"}},
		{name: "válido sem prefixo", creds: domain.Credentials{AccessToken: testToken, AdAccountID: "123"}},
		{name: "token curto", creds: domain.Credentials{AccessToken: "curto", AdAccountID: "123"}, field: "accessToken"},
		{name: "conta com letras", creds: domain.Credentials{AccessToken: testToken, AdAccountID: "act_12a"}, field: "adAccountId"},
		{name: "conta vazia", creds: domain.Credentials{AccessToken: testToken}, field: "adAccountId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.creds)

			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var credErr *CredentialError
			require.ErrorAs(t, err, &credErr)
			assert.Equal(t, tt.field, credErr.Field)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}
