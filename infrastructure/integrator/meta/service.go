package meta

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type Integrator interface {
	ListEntities(ctx context.Context, query EntityQuery) ([]*domain.Entity, error)
	GetAccountInsights(ctx context.Context, creds domain.Credentials, datePreset string) (*AccountInsights, error)
	ListAdAccounts(ctx context.Context, accessToken string) ([]domain.AdAccountOption, error)
}

// EntityQuery descreve uma listagem de campanhas, conjuntos ou anúncios.
// ParentID é a campanha (para conjuntos) ou o conjunto (para anúncios).
type EntityQuery struct {
	Level       domain.EntityLevel
	Credentials domain.Credentials
	ParentID    string
	DatePreset  string
	Limit       int
}

// AccountInsights traz o relatório da conta e o registro cru usado no diagnóstico.
type AccountInsights struct {
	Report *domain.AccountInsightsReport
	Raw    *metadomain.InsightRecord
}

var entityFields = map[domain.EntityLevel][]string{
	domain.EntityLevelCampaign: {"id", "name", "status", "effective_status", "objective", "daily_budget", "lifetime_budget"},
	domain.EntityLevelAdSet:    {"id", "name", "status", "effective_status", "campaign_id", "daily_budget", "lifetime_budget"},
	domain.EntityLevelAd:       {"id", "name", "status", "effective_status", "campaign_id", "adset_id"},
}

var accountInsightFields = append(append([]string{}, metaclient.InsightFields...), "reach", "frequency", "date_start", "date_stop")

type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

func (s *MetaIntegrator) ListEntities(ctx context.Context, query EntityQuery) ([]*domain.Entity, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"level":         query.Level,
		"ad_account_id": query.Credentials.AdAccountID,
		"parent_id":     query.ParentID,
		"date_preset":   query.DatePreset,
	})

	fields, ok := entityFields[query.Level]
	if !ok {
		return nil, fmt.Errorf("meta: unsupported entity level %q", query.Level)
	}

	translation := domain.TranslateDatePreset(query.DatePreset)
	req := metaclient.Request{
		Path:        entityPath(query),
		AccessToken: query.Credentials.AccessToken,
		Fields:      append(append([]string{}, fields...), metaclient.InsightsField(translation, metaclient.InsightFields)),
		Limit:       query.Limit,
	}

	rawEntities, err := s.Client.GetEntities(ctx, string(query.Level), req)
	if err != nil {
		logger.WithError(err).Error("insights: failed to list entities from API")
		return nil, err
	}

	entities := make([]*domain.Entity, 0, len(rawEntities))
	for _, raw := range rawEntities {
		entity, err := ReshapeEntity(query.Level, raw)
		if err != nil {
			logger.WithError(err).WithField("entity_id", raw.ID).Error("insights: malformed entity insights")
			return nil, err
		}
		entities = append(entities, entity)
	}

	logger.WithField("count", len(entities)).Debug("insights: entities reshaped")

	return entities, nil
}

func (s *MetaIntegrator) GetAccountInsights(ctx context.Context, creds domain.Credentials, datePreset string) (*AccountInsights, error) {
	translation := domain.TranslateDatePreset(datePreset)

	params := url.Values{}
	if !translation.IsLifetime && translation.ExternalPreset != nil {
		params.Set("date_preset", *translation.ExternalPreset)
	}

	records, err := s.Client.GetInsights(ctx, metaclient.Request{
		Path:        accountPath(creds.AdAccountID) + "/insights",
		AccessToken: creds.AccessToken,
		Fields:      accountInsightFields,
		Params:      params,
	})
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"ad_account_id": creds.AdAccountID,
			"error":         err.Error(),
		}).Error("insights: failed to get ad account insights from API")
		return nil, err
	}

	var raw *metadomain.InsightRecord
	if len(records) > 0 {
		raw = &records[0]
	}

	metrics, err := ReshapeInsight(raw)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", creds.AdAccountID, err)
	}

	account := &domain.Entity{
		ID:          domain.AdAccountPath(creds.AdAccountID),
		Level:       domain.EntityLevelAccount,
		HasInsights: raw != nil,
		Metrics:     metrics,
	}

	report := &domain.AccountInsightsReport{
		AdAccountID: domain.NormalizeAdAccountID(creds.AdAccountID),
		DatePreset:  datePreset,
		Account:     account,
	}

	if raw != nil {
		account.DateStart = raw.DateStart
		account.DateStop = raw.DateStop

		if report.Reach, err = parseCount("reach", raw.Reach); err != nil {
			return nil, err
		}
		if report.Frequency, err = parseDecimal("frequency", raw.Frequency); err != nil {
			return nil, err
		}
	}

	return &AccountInsights{Report: report, Raw: raw}, nil
}

func (s *MetaIntegrator) ListAdAccounts(ctx context.Context, accessToken string) ([]domain.AdAccountOption, error) {
	accounts, err := s.Client.GetAdAccounts(ctx, accessToken)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("accounts: failed to list ad accounts from API")
		return nil, err
	}

	options := make([]domain.AdAccountOption, 0, len(accounts))
	for _, account := range accounts {
		id := account.AccountID
		if id == "" {
			id = domain.NormalizeAdAccountID(account.ID)
		}
		option := domain.AdAccountOption{
			ID:       id,
			Name:     account.Name,
			Currency: account.Currency,
			Status:   account.AccountStatus,
		}
		if account.Business != nil {
			option.BusinessID = account.Business.ID
			option.BusinessName = account.Business.Name
		}
		options = append(options, option)
	}

	return options, nil
}

// entityPath monta o caminho da listagem. Os ids são escapados para nunca
// mudarem de segmento nem abrirem uma query string.
func entityPath(query EntityQuery) string {
	account := accountPath(query.Credentials.AdAccountID)
	parent := url.PathEscape(query.ParentID)

	switch query.Level {
	case domain.EntityLevelAdSet:
		if parent != "" {
			return parent + "/adsets"
		}
		return account + "/adsets"
	case domain.EntityLevelAd:
		if parent != "" {
			return parent + "/ads"
		}
		return account + "/ads"
	default:
		return account + "/campaigns"
	}
}

func accountPath(adAccountID string) string {
	return url.PathEscape(domain.AdAccountPath(adAccountID))
}
