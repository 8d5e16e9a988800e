package domain

import "github.com/vfg2006/ads-dashboard-api/pkg/utils"

// Summary agrega as métricas de todas as entidades de um relatório.
type Summary struct {
	EntityCount      int     `json:"entityCount"`
	ActiveCount      int     `json:"activeCount"`
	TotalSpend       float64 `json:"totalSpend"`
	TotalImpressions int64   `json:"totalImpressions"`
	TotalClicks      int64   `json:"totalClicks"`
	TotalConversions int64   `json:"totalConversions"`
	TotalRevenue     float64 `json:"totalRevenue"`
	ROAS             float64 `json:"roas"`
	CPA              float64 `json:"cpa"`
	CTR              float64 `json:"ctr"`
	CPC              float64 `json:"cpc"`
}

// Summarize soma as métricas e recalcula os indicadores derivados sobre os totais.
func Summarize(entities []*Entity) *Summary {
	summary := &Summary{EntityCount: len(entities)}

	for _, entity := range entities {
		if entity == nil {
			continue
		}
		if entity.IsActive() {
			summary.ActiveCount++
		}
		summary.TotalSpend += entity.Metrics.Spend
		summary.TotalImpressions += entity.Metrics.Impressions
		summary.TotalClicks += entity.Metrics.Clicks
		summary.TotalConversions += entity.Metrics.Conversions
		summary.TotalRevenue += entity.Metrics.Revenue
	}

	if summary.TotalSpend > 0 {
		summary.ROAS = utils.RoundWithTwoDecimalPlace(summary.TotalRevenue / summary.TotalSpend)
	}
	if summary.TotalConversions > 0 {
		summary.CPA = utils.RoundWithTwoDecimalPlace(summary.TotalSpend / float64(summary.TotalConversions))
	}
	if summary.TotalImpressions > 0 {
		summary.CTR = utils.RoundWithTwoDecimalPlace(float64(summary.TotalClicks) / float64(summary.TotalImpressions) * 100)
	}
	if summary.TotalClicks > 0 {
		summary.CPC = utils.RoundWithTwoDecimalPlace(summary.TotalSpend / float64(summary.TotalClicks))
	}

	summary.TotalSpend = utils.RoundWithTwoDecimalPlace(summary.TotalSpend)
	summary.TotalRevenue = utils.RoundWithTwoDecimalPlace(summary.TotalRevenue)

	return summary
}

// EntityReport é a resposta das rotas de listagem.
type EntityReport struct {
	Level       EntityLevel `json:"level"`
	AdAccountID string      `json:"adAccountId"`
	ParentID    string      `json:"parentId,omitempty"`
	DatePreset  string      `json:"datePreset"`
	Entities    []*Entity   `json:"entities"`
	Summary     *Summary    `json:"summary"`
}

// AccountInsightsReport traz as métricas da conta inteira.
type AccountInsightsReport struct {
	AdAccountID string  `json:"adAccountId"`
	DatePreset  string  `json:"datePreset"`
	Account     *Entity `json:"account"`
	Reach       int64   `json:"reach"`
	Frequency   float64 `json:"frequency"`
}

// PresetComparison reúne os relatórios da conta em vários períodos.
type PresetComparison struct {
	AdAccountID  string                   `json:"adAccountId"`
	Presets      []string                 `json:"presets"`
	Reports      []*AccountInsightsReport `json:"reports"`
	Improvements map[string]float64       `json:"improvements,omitempty"`
	Trend        ImprovementStatus        `json:"trend,omitempty"`
}
