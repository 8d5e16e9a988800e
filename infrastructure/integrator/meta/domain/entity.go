package metadomain

// PixelPurchaseActionType é o único tipo de ação contado como conversão e receita.
const PixelPurchaseActionType = "offsite_conversion.fb_pixel_purchase"

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRecord é um registro de insights como vem da API: números em string.
type InsightRecord struct {
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	CTR          string   `json:"ctr"`
	CPC          string   `json:"cpc"`
	Reach        string   `json:"reach,omitempty"`
	Frequency    string   `json:"frequency,omitempty"`
	Actions      []Action `json:"actions,omitempty"`
	ActionValues []Action `json:"action_values,omitempty"`
	DateStart    string   `json:"date_start,omitempty"`
	DateStop     string   `json:"date_stop,omitempty"`
}

type InsightsEdge struct {
	Data []InsightRecord `json:"data"`
}

// FirstRecord devolve o primeiro registro ou nil quando não há insights.
func (e *InsightsEdge) FirstRecord() *InsightRecord {
	if e == nil || len(e.Data) == 0 {
		return nil
	}
	return &e.Data[0]
}

// Entity cobre campanhas, conjuntos de anúncios e anúncios.
type Entity struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Status          string        `json:"status"`
	EffectiveStatus string        `json:"effective_status"`
	Objective       string        `json:"objective,omitempty"`
	CampaignID      string        `json:"campaign_id,omitempty"`
	AdSetID         string        `json:"adset_id,omitempty"`
	DailyBudget     string        `json:"daily_budget,omitempty"`
	LifetimeBudget  string        `json:"lifetime_budget,omitempty"`
	Insights        *InsightsEdge `json:"insights,omitempty"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors  Cursors `json:"cursors"`
	Next     string  `json:"next,omitempty"`
	Previous string  `json:"previous,omitempty"`
}

type EntityPage struct {
	Data   []Entity `json:"data"`
	Paging Paging   `json:"paging"`
}

type InsightPage struct {
	Data   []InsightRecord `json:"data"`
	Paging Paging          `json:"paging"`
}

// Mapeamento de "objective" -> action_type que representa o resultado da campanha
var ObjectiveToActionType = map[string]string{
	"LINK_CLICKS":           "link_click",
	"POST_ENGAGEMENT":       "post_engagement",
	"PAGE_LIKES":            "like",
	"VIDEO_VIEWS":           "video_view",
	"LEAD_GENERATION":       "lead",
	"CONVERSIONS":           "offsite_conversion",
	"APP_INSTALLS":          "app_install",
	"PRODUCT_CATALOG_SALES": PixelPurchaseActionType,
	"MESSAGES":              "onsite_conversion.messaging_first_reply",
	"STORE_TRAFFIC":         "store_visit",
	"EVENT_RESPONSES":       "rsvp",
	"PURCHASE":              PixelPurchaseActionType,
	"OUTCOME_SALES":         PixelPurchaseActionType,
	"OUTCOME_LEADS":         "lead",
	"OUTCOME_TRAFFIC":       "link_click",
	"OUTCOME_ENGAGEMENT":    "onsite_conversion.messaging_conversation_started_7d",
}
