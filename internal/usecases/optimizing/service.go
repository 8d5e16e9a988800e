package optimizing

import (
	"context"
	"fmt"
	"sort"

	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

type Optimizer interface {
	Suggest(ctx context.Context, req SuggestionRequest) (*SuggestionReport, error)
}

type SuggestionRequest struct {
	insighting.ReportRequest
	Level     domain.EntityLevel
	TargetCPA float64
}

type SuggestionReport struct {
	AdAccountID string              `json:"adAccountId"`
	Level       domain.EntityLevel  `json:"level"`
	DatePreset  string              `json:"datePreset"`
	TargetCPA   float64             `json:"targetCpa"`
	Suggestions []domain.Suggestion `json:"suggestions"`
	Summary     *domain.Summary     `json:"summary"`
}

type OptimizationService struct {
	insighter  insighting.Insighter
	thresholds config.Optimization
}

func NewOptimizationService(cfg config.Optimization, insighter insighting.Insighter) Optimizer {
	return &OptimizationService{
		insighter:  insighter,
		thresholds: cfg,
	}
}

func (s *OptimizationService) Suggest(ctx context.Context, req SuggestionRequest) (*SuggestionReport, error) {
	var (
		report *domain.EntityReport
		err    error
	)

	switch req.Level {
	case "", domain.EntityLevelCampaign:
		report, err = s.insighter.ListCampaigns(ctx, req.ReportRequest)
	case domain.EntityLevelAdSet:
		report, err = s.insighter.ListAdSets(ctx, req.ReportRequest)
	case domain.EntityLevelAd:
		report, err = s.insighter.ListAds(ctx, req.ReportRequest)
	default:
		return nil, insighting.NewInsightError(ErrUnsupportedLevel, apiErrors.ErrInvalidRequest, map[string]any{"level": req.Level})
	}
	if err != nil {
		return nil, err
	}

	target := req.TargetCPA
	if target <= 0 {
		target = report.Summary.CPA
	}

	suggestions := Evaluate(report.Entities, s.thresholds, target)

	log.ForContext(ctx).WithFields(log.Fields{
		"ad_account_id": report.AdAccountID,
		"level":         report.Level,
		"suggestions":   len(suggestions),
		"target_cpa":    target,
	}).Info("Sugestões de otimização geradas")

	return &SuggestionReport{
		AdAccountID: report.AdAccountID,
		Level:       report.Level,
		DatePreset:  report.DatePreset,
		TargetCPA:   utils.RoundWithTwoDecimalPlace(target),
		Suggestions: suggestions,
		Summary:     report.Summary,
	}, nil
}

var priorityOrder = map[domain.SuggestionPriority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

// Evaluate aplica as regras a cada entidade. Entidades abaixo dos mínimos de
// impressões ou gasto recebem só insufficient_data.
func Evaluate(entities []*domain.Entity, thresholds config.Optimization, targetCPA float64) []domain.Suggestion {
	suggestions := make([]domain.Suggestion, 0)

	for _, entity := range entities {
		if entity == nil {
			continue
		}
		suggestions = append(suggestions, evaluateEntity(entity, thresholds, targetCPA)...)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return priorityOrder[suggestions[i].Priority] < priorityOrder[suggestions[j].Priority]
	})

	return suggestions
}

func evaluateEntity(entity *domain.Entity, thresholds config.Optimization, targetCPA float64) []domain.Suggestion {
	metrics := entity.Metrics
	suggest := func(kind domain.SuggestionType, priority domain.SuggestionPriority, metric string, current, threshold float64, message string) domain.Suggestion {
		return domain.Suggestion{
			EntityID:   entity.ID,
			EntityName: entity.Name,
			Level:      entity.Level,
			Type:       kind,
			Priority:   priority,
			Message:    message,
			Metric:     metric,
			Current:    utils.RoundWithTwoDecimalPlace(current),
			Threshold:  utils.RoundWithTwoDecimalPlace(threshold),
		}
	}

	if metrics.Impressions < thresholds.MinImpressions {
		return []domain.Suggestion{suggest(domain.SuggestionInsufficientData, domain.PriorityLow, "impressions",
			float64(metrics.Impressions), float64(thresholds.MinImpressions),
			"Poucas impressões para uma avaliação confiável")}
	}
	if metrics.Spend < thresholds.MinSpend {
		return []domain.Suggestion{suggest(domain.SuggestionInsufficientData, domain.PriorityLow, "spend",
			metrics.Spend, thresholds.MinSpend,
			"Gasto ainda baixo para uma avaliação confiável")}
	}

	var result []domain.Suggestion

	if metrics.CTR < thresholds.CTRWarningPercent {
		result = append(result, suggest(domain.SuggestionLowCTR, domain.PriorityMedium, "ctr",
			metrics.CTR, thresholds.CTRWarningPercent,
			"CTR abaixo do esperado: revise criativo e segmentação"))
	}

	if metrics.Conversions == 0 {
		return append(result, suggest(domain.SuggestionNoConversions, domain.PriorityHigh, "conversions",
			0, 1,
			fmt.Sprintf("Nenhuma compra registrada após %.2f de gasto", metrics.Spend)))
	}

	if limit := targetCPA * thresholds.CPAWarningMultiplier; targetCPA > 0 && metrics.CPA > limit {
		result = append(result, suggest(domain.SuggestionHighCPA, domain.PriorityHigh, "cpa",
			metrics.CPA, limit,
			"CPA acima do limite: reduza o orçamento ou pause"))
	}

	switch {
	case metrics.ROAS < 1:
		result = append(result, suggest(domain.SuggestionUnprofitable, domain.PriorityHigh, "roas",
			metrics.ROAS, 1,
			"Receita menor que o gasto"))
	case metrics.ROAS >= thresholds.ROASScaleThreshold:
		result = append(result, suggest(domain.SuggestionScaleWinner, domain.PriorityMedium, "roas",
			metrics.ROAS, thresholds.ROASScaleThreshold,
			"ROAS alto: candidato a aumento de orçamento"))
	}

	return result
}
