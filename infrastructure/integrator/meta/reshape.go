package meta

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

// ErrMalformedInsight indica um valor presente mas não numérico.
var ErrMalformedInsight = errors.New("meta: malformed insight value")

// ReshapeInsight converte um registro cru em métricas tipadas.
// Sem registro, todas as métricas são zero. Campos ausentes valem "0".
func ReshapeInsight(record *metadomain.InsightRecord) (domain.EntityMetrics, error) {
	if record == nil {
		return domain.EntityMetrics{}, nil
	}

	spend, err := parseDecimal("spend", record.Spend)
	if err != nil {
		return domain.EntityMetrics{}, err
	}
	impressions, err := parseCount("impressions", record.Impressions)
	if err != nil {
		return domain.EntityMetrics{}, err
	}
	clicks, err := parseCount("clicks", record.Clicks)
	if err != nil {
		return domain.EntityMetrics{}, err
	}
	ctr, err := parseDecimal("ctr", record.CTR)
	if err != nil {
		return domain.EntityMetrics{}, err
	}
	cpc, err := parseDecimal("cpc", record.CPC)
	if err != nil {
		return domain.EntityMetrics{}, err
	}

	conversions, err := sumPurchaseCounts(record.Actions)
	if err != nil {
		return domain.EntityMetrics{}, err
	}
	revenue, err := sumPurchaseValues(record.ActionValues)
	if err != nil {
		return domain.EntityMetrics{}, err
	}

	metrics := domain.EntityMetrics{
		Spend:       spend,
		Impressions: impressions,
		Clicks:      clicks,
		CTR:         ctr,
		CPC:         cpc,
		Conversions: conversions,
		Revenue:     revenue,
	}

	if spend > 0 {
		metrics.ROAS = revenue / spend
	}
	if conversions > 0 {
		metrics.CPA = spend / float64(conversions)
	}

	return metrics, nil
}

// ReshapeEntity converte uma entidade crua usando o primeiro registro de insights.
func ReshapeEntity(level domain.EntityLevel, raw metadomain.Entity) (*domain.Entity, error) {
	record := raw.Insights.FirstRecord()

	metrics, err := ReshapeInsight(record)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", level, raw.ID, err)
	}

	dailyBudget, err := normalizeBudget("daily_budget", raw.DailyBudget)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", level, raw.ID, err)
	}
	lifetimeBudget, err := normalizeBudget("lifetime_budget", raw.LifetimeBudget)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", level, raw.ID, err)
	}

	entity := &domain.Entity{
		ID:              raw.ID,
		Name:            raw.Name,
		Level:           level,
		Status:          raw.Status,
		EffectiveStatus: raw.EffectiveStatus,
		Objective:       raw.Objective,
		CampaignID:      raw.CampaignID,
		AdSetID:         raw.AdSetID,
		DailyBudget:     dailyBudget,
		LifetimeBudget:  lifetimeBudget,
		HasInsights:     record != nil,
		Metrics:         metrics,
	}

	if record != nil {
		entity.DateStart = record.DateStart
		entity.DateStop = record.DateStop

		entity.Results, err = objectiveResults(raw.Objective, record.Actions)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", level, raw.ID, err)
		}
	}

	return entity, nil
}

func sumPurchaseCounts(actions []metadomain.Action) (int64, error) {
	var total int64
	for _, action := range actions {
		if action.ActionType != metadomain.PixelPurchaseActionType {
			continue
		}
		value, err := parseCount("actions", action.Value)
		if err != nil {
			return 0, err
		}
		total += value
	}
	return total, nil
}

func sumPurchaseValues(actions []metadomain.Action) (float64, error) {
	var total float64
	for _, action := range actions {
		if action.ActionType != metadomain.PixelPurchaseActionType {
			continue
		}
		value, err := parseDecimal("action_values", action.Value)
		if err != nil {
			return 0, err
		}
		total += value
	}
	return total, nil
}

// objectiveResults soma as ações do tipo que representa o objetivo da campanha.
func objectiveResults(objective string, actions []metadomain.Action) (int64, error) {
	actionType, ok := metadomain.ObjectiveToActionType[objective]
	if !ok {
		return 0, nil
	}

	var total int64
	for _, action := range actions {
		if action.ActionType != actionType {
			continue
		}
		value, err := parseCount("actions", action.Value)
		if err != nil {
			return 0, err
		}
		total += value
	}
	return total, nil
}

// normalizeBudget converte o orçamento de centavos para a unidade da moeda.
func normalizeBudget(field, raw string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	minor, err := parseDecimal(field, raw)
	if err != nil {
		return nil, err
	}

	major := utils.RoundWithTwoDecimalPlace(minor / 100)
	return &major, nil
}

func valueOrZero(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "0"
	}
	return strings.TrimSpace(raw)
}

func parseDecimal(field, raw string) (float64, error) {
	value, err := strconv.ParseFloat(valueOrZero(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %s=%q", ErrMalformedInsight, field, raw)
	}
	return value, nil
}

// parseCount aceita inteiros e decimais sem parte fracionária ("3" ou "3.0").
func parseCount(field, raw string) (int64, error) {
	s := valueOrZero(raw)

	if value, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value, nil
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) ||
		math.Abs(value) >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %s=%q", ErrMalformedInsight, field, raw)
	}
	return int64(value), nil
}
