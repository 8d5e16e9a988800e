package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

func TestReshapeInsight_NilRecordIsZero(t *testing.T) {
	metrics, err := ReshapeInsight(nil)

	require.NoError(t, err)
	assert.Equal(t, domain.EntityMetrics{}, metrics)
}

func TestReshapeInsight_MissingFieldsDefaultToZero(t *testing.T) {
	metrics, err := ReshapeInsight(&metadomain.InsightRecord{Spend: "12.5"})

	require.NoError(t, err)
	assert.Equal(t, 12.5, metrics.Spend)
	assert.Zero(t, metrics.Impressions)
	assert.Zero(t, metrics.Clicks)
	assert.Zero(t, metrics.CTR)
	assert.Zero(t, metrics.CPC)
	assert.Zero(t, metrics.Conversions)
	assert.Zero(t, metrics.Revenue)
	assert.Zero(t, metrics.ROAS)
	assert.Zero(t, metrics.CPA)
}

func TestReshapeInsight_OnlyPixelPurchaseCounts(t *testing.T) {
	record := &metadomain.InsightRecord{
		Spend:       "50",
		Impressions: "1000",
		Clicks:      "20",
		CTR:         "2.0",
		CPC:         "2.5",
		Actions: []metadomain.Action{
			{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "2"},
			{ActionType: "link_click", Value: "5"},
			{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "1"},
		},
		ActionValues: []metadomain.Action{
			{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "150.50"},
			{ActionType: "offsite_conversion.fb_pixel_add_to_cart", Value: "999"},
		},
	}

	metrics, err := ReshapeInsight(record)

	require.NoError(t, err)
	assert.Equal(t, int64(3), metrics.Conversions)
	assert.InDelta(t, 150.5, metrics.Revenue, 1e-9)
	assert.InDelta(t, 3.01, metrics.ROAS, 1e-9)
	assert.InDelta(t, 50.0/3.0, metrics.CPA, 1e-9)
	assert.Equal(t, int64(1000), metrics.Impressions)
	assert.Equal(t, int64(20), metrics.Clicks)
	assert.Equal(t, 2.0, metrics.CTR)
	assert.Equal(t, 2.5, metrics.CPC)
}

func TestReshapeInsight_DerivedMetricsGuardZero(t *testing.T) {
	tests := []struct {
		name   string
		record *metadomain.InsightRecord
		roas   float64
		cpa    float64
	}{
		{
			name: "sem gasto mantém roas zero",
			record: &metadomain.InsightRecord{
				Spend:        "0",
				Actions:      []metadomain.Action{{ActionType: metadomain.PixelPurchaseActionType, Value: "2"}},
				ActionValues: []metadomain.Action{{ActionType: metadomain.PixelPurchaseActionType, Value: "80"}},
			},
			roas: 0,
			cpa:  0,
		},
		{
			name:   "sem conversões mantém cpa zero",
			record: &metadomain.InsightRecord{Spend: "40"},
			roas:   0,
			cpa:    0,
		},
		{
			name: "com gasto e conversões",
			record: &metadomain.InsightRecord{
				Spend:        "40",
				Actions:      []metadomain.Action{{ActionType: metadomain.PixelPurchaseActionType, Value: "4"}},
				ActionValues: []metadomain.Action{{ActionType: metadomain.PixelPurchaseActionType, Value: "100"}},
			},
			roas: 2.5,
			cpa:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics, err := ReshapeInsight(tt.record)

			require.NoError(t, err)
			assert.InDelta(t, tt.roas, metrics.ROAS, 1e-9)
			assert.InDelta(t, tt.cpa, metrics.CPA, 1e-9)
		})
	}
}

func TestReshapeInsight_RejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name   string
		record *metadomain.InsightRecord
	}{
		{name: "spend", record: &metadomain.InsightRecord{Spend: "abc"}},
		{name: "impressions", record: &metadomain.InsightRecord{Impressions: "1.5"}},
		{name: "clicks", record: &metadomain.InsightRecord{Clicks: "many"}},
		{name: "ctr", record: &metadomain.InsightRecord{CTR: "NaN"}},
		{name: "actions", record: &metadomain.InsightRecord{
			Actions: []metadomain.Action{{ActionType: metadomain.PixelPurchaseActionType, Value: "two"}},
		}},
		{name: "action_values", record: &metadomain.InsightRecord{
			ActionValues: []metadomain.Action{{ActionType: metadomain.PixelPurchaseActionType, Value: "R$10"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReshapeInsight(tt.record)

			assert.ErrorIs(t, err, ErrMalformedInsight)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestReshapeInsight_IgnoresMalformedNonPurchaseActions(t *testing.T) {
	metrics, err := ReshapeInsight(&metadomain.InsightRecord{
		Actions: []metadomain.Action{{ActionType: "link_click", Value: "n/a"}},
	})

	require.NoError(t, err)
	assert.Zero(t, metrics.Conversions)
}

func TestReshapeInsight_AcceptsWholeDecimalCounts(t *testing.T) {
	metrics, err := ReshapeInsight(&metadomain.InsightRecord{
		Impressions: "1200.0",
		Actions:     []metadomain.Action{{ActionType: metadomain.PixelPurchaseActionType, Value: "3.0"}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1200), metrics.Impressions)
	assert.Equal(t, int64(3), metrics.Conversions)
}

func TestReshapeInsight_RejectsCountsBeyondInt64(t *testing.T) {
	for _, raw := range []string{"1e30", "-1e30", "9.3e18"} {
		_, err := ReshapeInsight(&metadomain.InsightRecord{Impressions: raw})
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, ErrMalformedInsight)
		assert.Contains(t, err.Error(), "impressions")
	}
}

func TestReshapeEntity(t *testing.T) {
	raw := metadomain.Entity{
		ID:              "c1",
		Name:            "Black Friday",
		Status:          "ACTIVE",
		EffectiveStatus: "ACTIVE",
		Objective:       "OUTCOME_SALES",
		DailyBudget:     "5000",
		Insights: &metadomain.InsightsEdge{Data: []metadomain.InsightRecord{{
			Spend:        "50",
			DateStart:    "2024-05-01",
			DateStop:     "2024-05-07",
			Actions:      []metadomain.Action{{ActionType: metadomain.PixelPurchaseActionType, Value: "3"}},
			ActionValues: []metadomain.Action{{ActionType: metadomain.PixelPurchaseActionType, Value: "150.5"}},
		}}},
	}

	entity, err := ReshapeEntity(domain.EntityLevelCampaign, raw)

	require.NoError(t, err)
	assert.Equal(t, "c1", entity.ID)
	assert.Equal(t, domain.EntityLevelCampaign, entity.Level)
	assert.True(t, entity.HasInsights)
	require.NotNil(t, entity.DailyBudget)
	assert.Equal(t, 50.0, *entity.DailyBudget)
	assert.Nil(t, entity.LifetimeBudget)
	assert.Equal(t, int64(3), entity.Results)
	assert.Equal(t, "2024-05-01", entity.DateStart)
	assert.InDelta(t, 3.01, entity.Metrics.ROAS, 1e-9)
}

func TestReshapeEntity_WithoutInsights(t *testing.T) {
	entity, err := ReshapeEntity(domain.EntityLevelAd, metadomain.Entity{ID: "a1", AdSetID: "s1", CampaignID: "c1"})

	require.NoError(t, err)
	assert.False(t, entity.HasInsights)
	assert.Equal(t, domain.EntityMetrics{}, entity.Metrics)
	assert.Equal(t, "s1", entity.AdSetID)
	assert.Zero(t, entity.Results)
}

func TestReshapeEntity_MalformedBudget(t *testing.T) {
	_, err := ReshapeEntity(domain.EntityLevelAdSet, metadomain.Entity{ID: "s1", LifetimeBudget: "ten"})

	assert.ErrorIs(t, err, ErrMalformedInsight)
}
