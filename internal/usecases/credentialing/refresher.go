package credentialing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

//go:generate mockgen -source=refresher.go -destination=mocks/mock_refresher.go -package=mocks

// refreshWindow é a antecedência com que um token de longa duração é renovado.
const refreshWindow = 24 * time.Hour

type TokenExchanger interface {
	ExchangeToken(ctx context.Context, accessToken string) (*metaclient.TokenResponse, error)
}

// TokenRefresher mantém a cópia do token de cada conta usada pelos jobs agendados.
type TokenRefresher struct {
	exchanger TokenExchanger
	store     repository.CredentialStore
	sealer    Sealer
	now       func() time.Time

	refreshMutex sync.Mutex
}

func NewTokenRefresher(exchanger TokenExchanger, store repository.CredentialStore, sealer Sealer) *TokenRefresher {
	return &TokenRefresher{
		exchanger: exchanger,
		store:     store,
		sealer:    sealer,
		now:       time.Now,
	}
}

// Persist sela e grava o token da conta.
func (t *TokenRefresher) Persist(ctx context.Context, adAccountID, accessToken string, expiresAt time.Time) error {
	sealed, err := t.sealer.Seal(accessToken)
	if err != nil {
		return err
	}

	return t.store.Save(ctx, &domain.StoredCredential{
		AdAccountID: domain.NormalizeAdAccountID(adAccountID),
		SealedToken: sealed,
		ExpiresAt:   expiresAt,
		UpdatedAt:   t.now(),
	})
}

func (t *TokenRefresher) Forget(ctx context.Context, adAccountID string) error {
	return t.store.Delete(ctx, adAccountID)
}

// EnsureFresh devolve credenciais válidas para a conta, trocando o token
// quando ele expira dentro da janela de renovação.
func (t *TokenRefresher) EnsureFresh(ctx context.Context, adAccountID string) (domain.Credentials, error) {
	t.refreshMutex.Lock()
	defer t.refreshMutex.Unlock()

	logger := log.ForContext(ctx).WithField("ad_account_id", adAccountID)

	stored, err := t.store.Get(ctx, adAccountID)
	if err != nil {
		return domain.Credentials{}, err
	}
	if stored == nil {
		return domain.Credentials{}, ErrNoStoredCredential
	}

	token, err := t.sealer.Open(stored.SealedToken)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("credencial armazenada ilegível: %w", err)
	}

	creds := domain.Credentials{AccessToken: token, AdAccountID: domain.NormalizeAdAccountID(adAccountID)}

	if stored.ExpiresAt.Sub(t.now()) > refreshWindow {
		return creds, nil
	}

	logger.Infof("Token expira em %s, iniciando renovação", stored.ExpiresAt.Format(time.RFC3339))

	tokenResp, err := t.exchanger.ExchangeToken(ctx, token)
	if err != nil {
		var upstreamErr *metaclient.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.TokenExpired() {
			logger.Warn("Token expirado ou revogado, removendo credencial armazenada")
			if delErr := t.store.Delete(ctx, adAccountID); delErr != nil {
				logger.WithError(delErr).Error("Erro ao remover credencial expirada")
			}
			return domain.Credentials{}, ErrReauthorizationRequired
		}
		return domain.Credentials{}, fmt.Errorf("erro ao renovar token: %w", err)
	}

	expiresAt := metaclient.CalculateTokenExpiration(t.now(), tokenResp.ExpiresIn)
	if err := t.Persist(ctx, adAccountID, tokenResp.AccessToken, expiresAt); err != nil {
		return domain.Credentials{}, fmt.Errorf("erro ao gravar token renovado: %w", err)
	}

	logger.Infof("Token renovado com sucesso. Nova expiração: %s", expiresAt.Format(time.RFC3339))

	creds.AccessToken = tokenResp.AccessToken
	return creds, nil
}
