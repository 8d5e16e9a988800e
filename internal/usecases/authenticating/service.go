package authenticating

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type Authenticator interface {
	LoginURL(redirectTo string) (string, error)
	Callback(ctx context.Context, code, state string) (*domain.Session, error)
	ListAccounts(ctx context.Context, accessToken string) ([]domain.AdAccountOption, error)
	SelectAccount(ctx context.Context, accessToken, adAccountID string, known []domain.AdAccountOption) (*domain.AdAccount, error)
	VerifyAccess(ctx context.Context, accessToken, adAccountID string, known []domain.AdAccountOption) error
	Status(ctx context.Context, accessToken string) (*domain.TokenStatus, error)
	Logout(ctx context.Context, adAccountID string) error
}

// MetaAuthClient é a parte do metaclient usada no fluxo OAuth.
type MetaAuthClient interface {
	ExchangeToken(ctx context.Context, accessToken string) (*metaclient.TokenResponse, error)
	DebugToken(ctx context.Context, accessToken string) (*metadomain.TokenDebugInfo, error)
}

type AccountLister interface {
	ListAdAccounts(ctx context.Context, accessToken string) ([]domain.AdAccountOption, error)
}

// CredentialPersister guarda a cópia do token usada pelos jobs.
type CredentialPersister interface {
	Persist(ctx context.Context, adAccountID, accessToken string, expiresAt time.Time) error
	Forget(ctx context.Context, adAccountID string) error
}

type Service struct {
	cfg         *config.Config
	oauth       *oauth2.Config
	client      MetaAuthClient
	accounts    AccountLister
	accountRepo repository.AccountRepository
	credentials CredentialPersister
	now         func() time.Time
}

func NewService(
	cfg *config.Config,
	client MetaAuthClient,
	accounts AccountLister,
	accountRepo repository.AccountRepository,
	credentials CredentialPersister,
) Authenticator {
	return &Service{
		cfg:         cfg,
		oauth:       newOAuthConfig(cfg.Meta),
		client:      client,
		accounts:    accounts,
		accountRepo: accountRepo,
		credentials: credentials,
		now:         time.Now,
	}
}

func newOAuthConfig(cfg config.Meta) *oauth2.Config {
	endpoint := facebook.Endpoint
	if cfg.OAuthAuthURL != "" {
		endpoint.AuthURL = cfg.OAuthAuthURL
	}
	if cfg.OAuthTokenURL != "" {
		endpoint.TokenURL = cfg.OAuthTokenURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &oauth2.Config{
		ClientID:     cfg.AppID,
		ClientSecret: cfg.AppSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       cfg.OAuthScopes,
		Endpoint:     endpoint,
	}
}

// LoginURL monta a URL do diálogo OAuth com o state assinado.
func (s *Service) LoginURL(redirectTo string) (string, error) {
	state, err := s.signState(safeRedirect(redirectTo, s.cfg.Session.DashboardURL))
	if err != nil {
		return "", wrapAuthError(ErrInvalidState, apiErrors.ErrInternalServer, err)
	}

	return s.oauth.AuthCodeURL(state), nil
}

func (s *Service) Callback(ctx context.Context, code, state string) (*domain.Session, error) {
	logger := log.ForContext(ctx)

	if strings.TrimSpace(code) == "" {
		return nil, NewAuthError(ErrMissingCode, apiErrors.ErrMissingRequiredData, "parâmetro code não informado")
	}

	claims, err := s.parseState(state)
	if err != nil {
		logger.WithError(err).Warn("State do OAuth rejeitado")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, wrapAuthError(ErrInvalidState, apiErrors.ErrExpiredToken, err)
		}
		return nil, wrapAuthError(ErrInvalidState, apiErrors.ErrInvalidOAuthState, err)
	}

	shortLived, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		logger.WithError(err).Error("Falha ao trocar o código de autorização")
		return nil, wrapAuthError(ErrCodeExchange, apiErrors.ErrExternalService, err)
	}

	longLived, err := s.client.ExchangeToken(ctx, shortLived.AccessToken)
	if err != nil {
		logger.WithError(err).Error("Falha ao obter token de longa duração")
		return nil, wrapAuthError(ErrTokenExchange, apiErrors.ErrExternalService, err)
	}

	adAccounts, err := s.accounts.ListAdAccounts(ctx, longLived.AccessToken)
	if err != nil {
		return nil, wrapAuthError(ErrAccountsLookup, apiErrors.ErrExternalService, err)
	}

	session := &domain.Session{
		AccessToken: longLived.AccessToken,
		ExpiresAt:   metaclient.CalculateTokenExpiration(s.now(), longLived.ExpiresIn),
		AdAccounts:  adAccounts,
		RedirectTo:  safeRedirect(claims.RedirectTo, s.cfg.Session.DashboardURL),
	}

	// Com uma única conta a seleção é automática.
	if len(adAccounts) == 1 {
		if err := s.connect(ctx, adAccounts[0], session.AccessToken, session.ExpiresAt); err != nil {
			return nil, err
		}
		session.SelectedAccount = adAccounts[0].ID
	}

	logger.WithFields(log.Fields{
		"ad_accounts": len(adAccounts),
		"selected":    session.SelectedAccount,
		"expires_at":  session.ExpiresAt,
	}).Info("Conexão com o Meta concluída")

	return session, nil
}

func (s *Service) ListAccounts(ctx context.Context, accessToken string) ([]domain.AdAccountOption, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, credentialing.ErrMissingAccessToken
	}

	return s.accounts.ListAdAccounts(ctx, accessToken)
}

// SelectAccount valida a conta escolhida contra as contas do usuário, grava a
// conta localmente e guarda o token para os jobs agendados.
func (s *Service) SelectAccount(ctx context.Context, accessToken, adAccountID string, known []domain.AdAccountOption) (*domain.AdAccount, error) {
	creds := domain.Credentials{AccessToken: accessToken, AdAccountID: adAccountID}
	if err := credentialing.Validate(creds); err != nil {
		var credentialErr *credentialing.CredentialError
		details := ""
		if errors.As(err, &credentialErr) {
			details = credentialErr.Field
		}
		authErr := NewAuthError(ErrInvalidSelection, apiErrors.ErrInvalidMetaCredentials, details)
		authErr.cause = err
		return nil, authErr
	}

	option, err := s.accessibleAccount(ctx, accessToken, adAccountID, known)
	if err != nil {
		return nil, err
	}

	if err := s.connect(ctx, option, accessToken, s.tokenExpiration(ctx, accessToken)); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetAccountByExternalID(ctx, option.ID)
	if err != nil {
		return nil, wrapAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err)
	}

	return account, nil
}

// VerifyAccess confirma que o token enxerga a conta antes de expor dados
// gravados localmente, que não passam pela Graph API.
func (s *Service) VerifyAccess(ctx context.Context, accessToken, adAccountID string, known []domain.AdAccountOption) error {
	if strings.TrimSpace(accessToken) == "" {
		return credentialing.ErrMissingAccessToken
	}

	_, err := s.accessibleAccount(ctx, accessToken, adAccountID, known)
	return err
}

// accessibleAccount procura a conta na lista selada da sessão e, se não
// estiver lá, nas contas que a Graph API devolve para o token.
func (s *Service) accessibleAccount(ctx context.Context, accessToken, adAccountID string, known []domain.AdAccountOption) (domain.AdAccountOption, error) {
	if option, ok := findAccount(known, adAccountID); ok {
		return option, nil
	}

	fresh, err := s.accounts.ListAdAccounts(ctx, accessToken)
	if err != nil {
		var upstreamErr *metaclient.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.Status >= 400 && upstreamErr.Status < 500 {
			log.ForContext(ctx).WithError(err).Warn("Token recusado pela Graph API")
			return domain.AdAccountOption{}, wrapAuthError(ErrTokenRejected, apiErrors.ErrInvalidToken, err)
		}
		return domain.AdAccountOption{}, wrapAuthError(ErrAccountsLookup, apiErrors.ErrExternalService, err)
	}

	option, ok := findAccount(fresh, adAccountID)
	if !ok {
		return domain.AdAccountOption{}, NewAuthError(ErrAccountNotAccessible, apiErrors.ErrInsufficientPrivilege, domain.NormalizeAdAccountID(adAccountID))
	}

	return option, nil
}

func (s *Service) connect(ctx context.Context, option domain.AdAccountOption, accessToken string, expiresAt time.Time) error {
	if _, err := s.accountRepo.SaveOrUpdate(ctx, option); err != nil {
		log.ForContext(ctx).WithError(err).WithField("ad_account_id", option.ID).Error("Erro ao salvar conta")
		return wrapAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err)
	}

	if err := s.credentials.Persist(ctx, option.ID, accessToken, expiresAt); err != nil {
		log.ForContext(ctx).WithError(err).WithField("ad_account_id", option.ID).Error("Erro ao armazenar credencial")
		return wrapAuthError(ErrCredentialPersistence, apiErrors.ErrDatabaseOperation, err)
	}

	return nil
}

// tokenExpiration consulta o debug_token. Se a consulta falhar assume a validade
// padrão de um token de longa duração.
func (s *Service) tokenExpiration(ctx context.Context, accessToken string) time.Time {
	info, err := s.client.DebugToken(ctx, accessToken)
	if err != nil || info.ExpiresAt <= 0 {
		if err != nil {
			log.ForContext(ctx).WithError(err).Warn("Não foi possível consultar a validade do token")
		}
		return metaclient.CalculateTokenExpiration(s.now(), 0)
	}

	return time.Unix(info.ExpiresAt, 0)
}

func (s *Service) Status(ctx context.Context, accessToken string) (*domain.TokenStatus, error) {
	if strings.TrimSpace(accessToken) == "" {
		return &domain.TokenStatus{Connected: false}, nil
	}

	info, err := s.client.DebugToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	status := &domain.TokenStatus{
		Connected: info.IsValid,
		AppID:     info.AppID,
		UserID:    info.UserID,
		Scopes:    info.Scopes,
	}
	if info.ExpiresAt > 0 {
		status.ExpiresAt = time.Unix(info.ExpiresAt, 0).UTC()
	}

	return status, nil
}

// Logout desativa a conta e remove o token guardado. Conta desconhecida não é erro.
func (s *Service) Logout(ctx context.Context, adAccountID string) error {
	if strings.TrimSpace(adAccountID) == "" {
		return nil
	}

	if err := s.accountRepo.UpdateStatus(ctx, adAccountID, domain.AdAccountStatusInactive); err != nil &&
		!errors.Is(err, repository.ErrAccountNotFound) {
		return wrapAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err)
	}

	if err := s.credentials.Forget(ctx, adAccountID); err != nil {
		return wrapAuthError(ErrCredentialPersistence, apiErrors.ErrDatabaseOperation, err)
	}

	return nil
}

func findAccount(accounts []domain.AdAccountOption, adAccountID string) (domain.AdAccountOption, bool) {
	id := domain.NormalizeAdAccountID(adAccountID)
	for _, account := range accounts {
		if domain.NormalizeAdAccountID(account.ID) == id {
			return account, true
		}
	}
	return domain.AdAccountOption{}, false
}
