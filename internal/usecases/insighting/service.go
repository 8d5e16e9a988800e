package insighting

import (
	"context"
	"strings"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

const maxComparedPresets = 6

// ReportRequest são os parâmetros comuns das rotas de listagem.
type ReportRequest struct {
	Credentials domain.Credentials
	DatePreset  string
	ParentID    string
	Limit       int
}

// CampaignReporter é o subconjunto usado pelo job de snapshots.
type CampaignReporter interface {
	ListCampaigns(ctx context.Context, req ReportRequest) (*domain.EntityReport, error)
}

type Insighter interface {
	CampaignReporter
	ListAdSets(ctx context.Context, req ReportRequest) (*domain.EntityReport, error)
	ListAds(ctx context.Context, req ReportRequest) (*domain.EntityReport, error)
	GetAccountInsights(ctx context.Context, creds domain.Credentials, datePreset string) (*domain.AccountInsightsReport, error)
	CompareDatePresets(ctx context.Context, creds domain.Credentials, presets []string) (*domain.PresetComparison, error)
	LifetimeSpendDiagnostics(ctx context.Context, creds domain.Credentials) (*LifetimeSpendDiagnostics, error)
}

// LifetimeSpendDiagnostics confronta o gasto total da conta com a soma das campanhas.
type LifetimeSpendDiagnostics struct {
	AdAccountID       string                        `json:"adAccountId"`
	Account           *domain.AccountInsightsReport `json:"account"`
	CampaignsSummary  *domain.Summary               `json:"campaignsSummary"`
	CampaignCount     int                           `json:"campaignCount"`
	UnattributedSpend float64                       `json:"unattributedSpend"`
	RawInsight        *metadomain.InsightRecord     `json:"rawInsight"`
}

type Service struct {
	integrator         meta.Integrator
	compareConcurrency int
}

func NewService(cfg *config.Config, integrator meta.Integrator) Insighter {
	concurrency := cfg.Optimization.CompareConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Service{
		integrator:         integrator,
		compareConcurrency: concurrency,
	}
}

func (s *Service) ListCampaigns(ctx context.Context, req ReportRequest) (*domain.EntityReport, error) {
	req.ParentID = ""
	return s.listEntities(ctx, domain.EntityLevelCampaign, req)
}

func (s *Service) ListAdSets(ctx context.Context, req ReportRequest) (*domain.EntityReport, error) {
	if err := validateParentID(req.ParentID, "campaignId"); err != nil {
		return nil, err
	}
	return s.listEntities(ctx, domain.EntityLevelAdSet, req)
}

func (s *Service) ListAds(ctx context.Context, req ReportRequest) (*domain.EntityReport, error) {
	if err := validateParentID(req.ParentID, "adSetId"); err != nil {
		return nil, err
	}
	return s.listEntities(ctx, domain.EntityLevelAd, req)
}

// validateParentID exige o id numérico da Graph API, que vai direto para o caminho da URL.
func validateParentID(parentID, field string) error {
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return NewInsightError(ErrMissingEntityID, apiErrors.ErrMissingRequiredData, map[string]string{"field": field})
	}
	if !domain.IsValidEntityID(parentID) {
		return NewInsightError(ErrInvalidEntityID, apiErrors.ErrInvalidFormat, map[string]string{"field": field})
	}
	return nil
}

func (s *Service) listEntities(ctx context.Context, level domain.EntityLevel, req ReportRequest) (*domain.EntityReport, error) {
	datePreset := domain.ResolveDatePreset(req.DatePreset)

	entities, err := s.integrator.ListEntities(ctx, meta.EntityQuery{
		Level:       level,
		Credentials: req.Credentials,
		ParentID:    strings.TrimSpace(req.ParentID),
		DatePreset:  datePreset,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, MapError(err)
	}

	report := &domain.EntityReport{
		Level:       level,
		AdAccountID: domain.NormalizeAdAccountID(req.Credentials.AdAccountID),
		ParentID:    strings.TrimSpace(req.ParentID),
		DatePreset:  datePreset,
		Entities:    entities,
		Summary:     domain.Summarize(entities),
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"level":         level,
		"ad_account_id": report.AdAccountID,
		"entities":      report.Summary.EntityCount,
		"spend":         report.Summary.TotalSpend,
	}).Info("Relatório montado com sucesso")

	return report, nil
}

func (s *Service) GetAccountInsights(ctx context.Context, creds domain.Credentials, datePreset string) (*domain.AccountInsightsReport, error) {
	insights, err := s.integrator.GetAccountInsights(ctx, creds, domain.ResolveDatePreset(datePreset))
	if err != nil {
		return nil, MapError(err)
	}

	return insights.Report, nil
}

// CompareDatePresets busca a conta em vários períodos em paralelo, com limite de
// concorrência. Aqui os períodos são validados de forma estrita. Com exatamente
// dois períodos, o primeiro é a base e o segundo é comparado a ele.
func (s *Service) CompareDatePresets(ctx context.Context, creds domain.Credentials, presets []string) (*domain.PresetComparison, error) {
	presets = uniquePresets(presets)
	if len(presets) == 0 {
		return nil, NewInsightError(ErrMissingPresets, apiErrors.ErrMissingRequiredData, map[string]any{
			"validPresets": domain.SupportedDatePresets(),
		})
	}
	if len(presets) > maxComparedPresets {
		return nil, NewInsightError(ErrInvalidDatePreset, apiErrors.ErrInvalidRequest, map[string]any{
			"maxPresets": maxComparedPresets,
		})
	}

	for _, preset := range presets {
		if err := domain.ValidateDatePreset(preset); err != nil {
			mapped := MapError(err)
			mapped.Details = map[string]any{
				"invalidPreset": preset,
				"validPresets":  domain.SupportedDatePresets(),
			}
			return nil, mapped
		}
	}

	reports := make([]*domain.AccountInsightsReport, len(presets))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.compareConcurrency)

	for i, preset := range presets {
		group.Go(func() error {
			insights, err := s.integrator.GetAccountInsights(groupCtx, creds, preset)
			if err != nil {
				return err
			}
			reports[i] = insights.Report
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, MapError(err)
	}

	comparison := &domain.PresetComparison{
		AdAccountID: domain.NormalizeAdAccountID(creds.AdAccountID),
		Presets:     presets,
		Reports:     reports,
	}

	if len(reports) == 2 {
		comparison.Improvements = domain.Improvements(reports[0].Account.Metrics, reports[1].Account.Metrics)
		comparison.Trend = domain.ClassifyImprovement(comparison.Improvements)
	}

	return comparison, nil
}

func (s *Service) LifetimeSpendDiagnostics(ctx context.Context, creds domain.Credentials) (*LifetimeSpendDiagnostics, error) {
	logger := log.ForContext(ctx).WithField("ad_account_id", creds.AdAccountID)

	insights, err := s.integrator.GetAccountInsights(ctx, creds, string(domain.DatePresetLifetime))
	if err != nil {
		return nil, MapError(err)
	}

	campaigns, err := s.listEntities(ctx, domain.EntityLevelCampaign, ReportRequest{
		Credentials: creds,
		DatePreset:  string(domain.DatePresetLifetime),
	})
	if err != nil {
		return nil, err
	}

	unattributed := insights.Report.Account.Metrics.Spend - campaigns.Summary.TotalSpend

	diagnostics := &LifetimeSpendDiagnostics{
		AdAccountID:       domain.NormalizeAdAccountID(creds.AdAccountID),
		Account:           insights.Report,
		CampaignsSummary:  campaigns.Summary,
		CampaignCount:     len(campaigns.Entities),
		UnattributedSpend: utils.RoundWithTwoDecimalPlace(unattributed),
		RawInsight:        insights.Raw,
	}

	logger.WithFields(log.Fields{
		"account_spend":      insights.Report.Account.Metrics.Spend,
		"campaigns_spend":    campaigns.Summary.TotalSpend,
		"unattributed_spend": diagnostics.UnattributedSpend,
		"raw_insight":        utils.PrettyJson(insights.Raw),
	}).Debug("Diagnóstico de gasto lifetime")

	return diagnostics, nil
}

func uniquePresets(presets []string) []string {
	seen := make(map[string]struct{}, len(presets))
	result := make([]string, 0, len(presets))
	for _, preset := range presets {
		preset = strings.TrimSpace(preset)
		if preset == "" {
			continue
		}
		if _, ok := seen[preset]; ok {
			continue
		}
		seen[preset] = struct{}{}
		result = append(result, preset)
	}
	return result
}
