package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExchangeToken troca um token (curto ou longo) por um token de longa duração.
func (c *MetaClient) ExchangeToken(ctx context.Context, accessToken string) (*TokenResponse, error) {
	if accessToken == "" {
		return nil, errors.New("token de acesso não pode ser vazio")
	}

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", c.cfg.AppID)
	params.Add("client_secret", c.cfg.AppSecret)
	params.Add("fb_exchange_token", accessToken)

	resp, err := c.fetch(ctx, "token_exchange", fmt.Sprintf("%s/oauth/access_token?%s", c.cfg.URL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := resp.JSON(&tokenResp); err != nil {
		return nil, err
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: token retornado pela API é vazio", ErrInvalidResponse)
	}

	log.ForContext(ctx).Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}

// DebugToken obtém informações de debug sobre um token do Meta
func (c *MetaClient) DebugToken(ctx context.Context, accessToken string) (*metadomain.TokenDebugInfo, error) {
	params := url.Values{}
	params.Add("input_token", accessToken)
	params.Add("access_token", c.cfg.AppID+"|"+c.cfg.AppSecret)

	resp, err := c.fetch(ctx, "debug_token", fmt.Sprintf("%s/debug_token?%s", c.cfg.URL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var debugResp metadomain.TokenDebugResponse
	if err := resp.JSON(&debugResp); err != nil {
		return nil, err
	}

	return &debugResp.Data, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}

// CalculateTokenExpiration calcula a data de expiração do token com base no tempo de expiração em segundos
func CalculateTokenExpiration(now time.Time, expiresIn int64) time.Time {
	if expiresIn <= 0 {
		// Tokens de longa duração sem expires_in valem ~60 dias
		return now.Add(60 * 24 * time.Hour)
	}

	return now.Add(time.Duration(expiresIn) * time.Second)
}
