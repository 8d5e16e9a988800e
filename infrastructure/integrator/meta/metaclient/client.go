package metaclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxPages = 10
)

type Client interface {
	Get(ctx context.Context, operation string, req Request) (*Response, error)
	GetEntities(ctx context.Context, operation string, req Request) ([]metadomain.Entity, error)
	GetInsights(ctx context.Context, req Request) ([]metadomain.InsightRecord, error)
	GetAdAccounts(ctx context.Context, accessToken string) ([]metadomain.AdAccount, error)
	ExchangeToken(ctx context.Context, accessToken string) (*TokenResponse, error)
	DebugToken(ctx context.Context, accessToken string) (*metadomain.TokenDebugInfo, error)
}

// Doer é o mínimo que precisamos de um cliente HTTP.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type MetaClient struct {
	cfg      config.Meta
	primary  Doer
	fallback Doer
	maxPages int
}

type Option func(*MetaClient)

// WithHTTPClient troca o transporte principal.
func WithHTTPClient(doer Doer) Option {
	return func(c *MetaClient) {
		c.primary = doer
	}
}

// WithFallbackClient troca o transporte usado quando o principal falha.
func WithFallbackClient(doer Doer) Option {
	return func(c *MetaClient) {
		c.fallback = doer
	}
}

func NewClient(cfg config.Meta, opts ...Option) *MetaClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	client := &MetaClient{
		cfg:      cfg,
		primary:  &http.Client{Timeout: timeout},
		fallback: newFallbackClient(timeout),
		maxPages: maxPages,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}
