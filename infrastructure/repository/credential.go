package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

const credentialKeyPrefix = "credentials:"

// ErrCredentialExpired indica uma credencial cuja validade já passou.
var ErrCredentialExpired = errors.New("stored credential already expired")

// CredentialStore guarda o token selado de cada conta para os jobs agendados.
type CredentialStore interface {
	Save(ctx context.Context, credential *domain.StoredCredential) error
	Get(ctx context.Context, adAccountID string) (*domain.StoredCredential, error)
	Delete(ctx context.Context, adAccountID string) error
}

type redisCredentialStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewCredentialStore(client *redis.Client) CredentialStore {
	return &redisCredentialStore{
		client: client,
		now:    time.Now,
	}
}

func credentialKey(adAccountID string) string {
	return credentialKeyPrefix + domain.AdAccountPath(adAccountID)
}

// Save grava a credencial com TTL até a expiração do token.
func (s *redisCredentialStore) Save(ctx context.Context, credential *domain.StoredCredential) error {
	ttl := credential.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrCredentialExpired
	}

	payload, err := json.Marshal(credential)
	if err != nil {
		return fmt.Errorf("erro ao serializar credencial: %w", err)
	}

	if err := s.client.Set(ctx, credentialKey(credential.AdAccountID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar credencial no redis: %w", err)
	}

	return nil
}

// Get devolve nil quando não há credencial para a conta.
func (s *redisCredentialStore) Get(ctx context.Context, adAccountID string) (*domain.StoredCredential, error) {
	payload, err := s.client.Get(ctx, credentialKey(adAccountID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao ler credencial do redis: %w", err)
	}

	credential := &domain.StoredCredential{}
	if err := json.Unmarshal(payload, credential); err != nil {
		return nil, fmt.Errorf("erro ao deserializar credencial: %w", err)
	}

	return credential, nil
}

func (s *redisCredentialStore) Delete(ctx context.Context, adAccountID string) error {
	if err := s.client.Del(ctx, credentialKey(adAccountID)).Err(); err != nil {
		return fmt.Errorf("erro ao remover credencial do redis: %w", err)
	}
	return nil
}
