package domain

type EntityLevel string

const (
	EntityLevelAccount  EntityLevel = "account"
	EntityLevelCampaign EntityLevel = "campaign"
	EntityLevelAdSet    EntityLevel = "adset"
	EntityLevelAd       EntityLevel = "ad"
)

const EffectiveStatusActive = "ACTIVE"

// EntityMetrics são as métricas já convertidas de uma entidade.
type EntityMetrics struct {
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	Conversions int64   `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	ROAS        float64 `json:"roas"`
	CPA         float64 `json:"cpa"`
}

// Entity é uma campanha, conjunto de anúncios, anúncio ou conta com suas métricas.
type Entity struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Level           EntityLevel   `json:"level"`
	Status          string        `json:"status,omitempty"`
	EffectiveStatus string        `json:"effectiveStatus,omitempty"`
	Objective       string        `json:"objective,omitempty"`
	CampaignID      string        `json:"campaignId,omitempty"`
	AdSetID         string        `json:"adSetId,omitempty"`
	DailyBudget     *float64      `json:"dailyBudget,omitempty"`
	LifetimeBudget  *float64      `json:"lifetimeBudget,omitempty"`
	DateStart       string        `json:"dateStart,omitempty"`
	DateStop        string        `json:"dateStop,omitempty"`
	Results         int64         `json:"results"`
	HasInsights     bool          `json:"hasInsights"`
	Metrics         EntityMetrics `json:"metrics"`
}

func (e *Entity) IsActive() bool {
	return e.EffectiveStatus == EffectiveStatusActive
}
