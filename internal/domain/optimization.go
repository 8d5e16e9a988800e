package domain

import "github.com/vfg2006/ads-dashboard-api/pkg/utils"

type SuggestionType string

const (
	SuggestionInsufficientData SuggestionType = "insufficient_data"
	SuggestionLowCTR           SuggestionType = "low_ctr"
	SuggestionHighCPA          SuggestionType = "high_cpa"
	SuggestionUnprofitable     SuggestionType = "unprofitable_roas"
	SuggestionScaleWinner      SuggestionType = "scale_winner"
	SuggestionNoConversions    SuggestionType = "no_conversions"
)

type SuggestionPriority string

const (
	PriorityHigh   SuggestionPriority = "high"
	PriorityMedium SuggestionPriority = "medium"
	PriorityLow    SuggestionPriority = "low"
)

// Suggestion é uma recomendação para uma entidade do relatório.
type Suggestion struct {
	EntityID   string             `json:"entityId"`
	EntityName string             `json:"entityName"`
	Level      EntityLevel        `json:"level"`
	Type       SuggestionType     `json:"type"`
	Priority   SuggestionPriority `json:"priority"`
	Message    string             `json:"message"`
	Metric     string             `json:"metric,omitempty"`
	Current    float64            `json:"current"`
	Threshold  float64            `json:"threshold"`
}

// ImprovementStatus classifica a variação entre dois períodos.
type ImprovementStatus string

const (
	ImprovementSuccessful ImprovementStatus = "successful"
	ImprovementNeutral    ImprovementStatus = "neutral"
	ImprovementNegative   ImprovementStatus = "negative"
)

// Improvements calcula a variação percentual entre dois conjuntos de métricas.
// CPA melhora quando cai; as demais métricas melhoram quando sobem.
// Métricas com valor anterior zero ficam de fora.
func Improvements(before, after EntityMetrics) map[string]float64 {
	pairs := map[string][2]float64{
		"ctr":         {before.CTR, after.CTR},
		"cpa":         {before.CPA, after.CPA},
		"roas":        {before.ROAS, after.ROAS},
		"conversions": {float64(before.Conversions), float64(after.Conversions)},
	}

	result := make(map[string]float64, len(pairs))
	for metric, pair := range pairs {
		if pair[0] == 0 {
			continue
		}
		change := (pair[1] - pair[0]) / pair[0] * 100
		if metric == "cpa" {
			change = -change
		}
		result[metric] = utils.RoundWithTwoDecimalPlace(change)
	}

	return result
}

// ClassifyImprovement usa a média das variações: acima de 5% é sucesso,
// acima de -5% é neutro.
func ClassifyImprovement(improvements map[string]float64) ImprovementStatus {
	if len(improvements) == 0 {
		return ImprovementNeutral
	}

	var total float64
	for _, change := range improvements {
		total += change
	}
	score := total / float64(len(improvements))

	switch {
	case score > 5:
		return ImprovementSuccessful
	case score > -5:
		return ImprovementNeutral
	default:
		return ImprovementNegative
	}
}
