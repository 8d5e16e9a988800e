package optimizing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting/mocks"
	"go.uber.org/mock/gomock"
)

var testThresholds = config.Optimization{
	MinImpressions:       1000,
	MinSpend:             10,
	CTRWarningPercent:    0.5,
	CPAWarningMultiplier: 1.5,
	ROASScaleThreshold:   3,
}

func entity(id string, metrics domain.EntityMetrics) *domain.Entity {
	return &domain.Entity{ID: id, Name: "Entidade " + id, Level: domain.EntityLevelCampaign, Metrics: metrics}
}

func typesOf(suggestions []domain.Suggestion) []domain.SuggestionType {
	types := make([]domain.SuggestionType, 0, len(suggestions))
	for _, s := range suggestions {
		types = append(types, s.Type)
	}
	return types
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		metrics   domain.EntityMetrics
		targetCPA float64
		expected  []domain.SuggestionType
	}{
		{
			name:     "poucas impressões",
			metrics:  domain.EntityMetrics{Impressions: 999, Spend: 100, CTR: 0.1},
			expected: []domain.SuggestionType{domain.SuggestionInsufficientData},
		},
		{
			name:     "gasto baixo",
			metrics:  domain.EntityMetrics{Impressions: 5000, Spend: 9.99},
			expected: []domain.SuggestionType{domain.SuggestionInsufficientData},
		},
		{
			name:     "sem conversões e ctr baixo",
			metrics:  domain.EntityMetrics{Impressions: 5000, Spend: 40, CTR: 0.3},
			expected: []domain.SuggestionType{domain.SuggestionNoConversions, domain.SuggestionLowCTR},
		},
		{
			name:      "cpa alto e prejuízo",
			metrics:   domain.EntityMetrics{Impressions: 5000, Spend: 100, CTR: 1, Conversions: 2, CPA: 50, ROAS: 0.8},
			targetCPA: 20,
			expected:  []domain.SuggestionType{domain.SuggestionHighCPA, domain.SuggestionUnprofitable},
		},
		{
			name:      "cpa no limite não alerta",
			metrics:   domain.EntityMetrics{Impressions: 5000, Spend: 60, CTR: 1, Conversions: 2, CPA: 30, ROAS: 2},
			targetCPA: 20,
			expected:  []domain.SuggestionType{},
		},
		{
			name:      "candidato a escala",
			metrics:   domain.EntityMetrics{Impressions: 5000, Spend: 60, CTR: 2, Conversions: 6, CPA: 10, ROAS: 3},
			targetCPA: 20,
			expected:  []domain.SuggestionType{domain.SuggestionScaleWinner},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions := Evaluate([]*domain.Entity{entity("c1", tt.metrics)}, testThresholds, tt.targetCPA)

			assert.Equal(t, tt.expected, typesOf(suggestions))
			for _, s := range suggestions {
				assert.Equal(t, "c1", s.EntityID)
				assert.NotEmpty(t, s.Message)
			}
		})
	}
}

func TestEvaluate_SortsByPriority(t *testing.T) {
	suggestions := Evaluate([]*domain.Entity{
		entity("novo", domain.EntityMetrics{Impressions: 10}),
		entity("escala", domain.EntityMetrics{Impressions: 5000, Spend: 60, CTR: 2, Conversions: 6, CPA: 10, ROAS: 4}),
		entity("perdendo", domain.EntityMetrics{Impressions: 5000, Spend: 60, CTR: 2, Conversions: 1, CPA: 60, ROAS: 0.5}),
		nil,
	}, testThresholds, 0)

	require.Len(t, suggestions, 3)
	assert.Equal(t, "perdendo", suggestions[0].EntityID)
	assert.Equal(t, domain.PriorityHigh, suggestions[0].Priority)
	assert.Equal(t, "escala", suggestions[1].EntityID)
	assert.Equal(t, "novo", suggestions[2].EntityID)
}

func TestSuggest_UsesAverageCPAWithoutTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	insighter := mocks.NewMockInsighter(ctrl)

	req := insighting.ReportRequest{Credentials: domain.Credentials{AccessToken: "token", AdAccountID: "123"}, DatePreset: "last_7d"}
	entities := []*domain.Entity{
		entity("barato", domain.EntityMetrics{Impressions: 5000, Spend: 20, CTR: 1, Conversions: 2, CPA: 10, ROAS: 2}),
		entity("caro", domain.EntityMetrics{Impressions: 5000, Spend: 80, CTR: 1, Conversions: 2, CPA: 40, ROAS: 1.5}),
	}
	insighter.EXPECT().ListCampaigns(gomock.Any(), req).Return(&domain.EntityReport{
		Level:       domain.EntityLevelCampaign,
		AdAccountID: "123",
		DatePreset:  "last_7d",
		Entities:    entities,
		Summary:     domain.Summarize(entities),
	}, nil)

	service := NewOptimizationService(testThresholds, insighter)
	report, err := service.Suggest(context.Background(), SuggestionRequest{ReportRequest: req})

	require.NoError(t, err)
	assert.Equal(t, 25.0, report.TargetCPA)
	require.Len(t, report.Suggestions, 1)
	assert.Equal(t, "caro", report.Suggestions[0].EntityID)
	assert.Equal(t, domain.SuggestionHighCPA, report.Suggestions[0].Type)
	assert.Equal(t, 37.5, report.Suggestions[0].Threshold)
}

func TestSuggest_AdSetLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	insighter := mocks.NewMockInsighter(ctrl)

	req := insighting.ReportRequest{Credentials: domain.Credentials{AccessToken: "token", AdAccountID: "123"}, ParentID: "c1"}
	insighter.EXPECT().ListAdSets(gomock.Any(), req).Return(&domain.EntityReport{
		Level:   domain.EntityLevelAdSet,
		Summary: domain.Summarize(nil),
	}, nil)

	report, err := NewOptimizationService(testThresholds, insighter).
		Suggest(context.Background(), SuggestionRequest{ReportRequest: req, Level: domain.EntityLevelAdSet, TargetCPA: 15})

	require.NoError(t, err)
	assert.Empty(t, report.Suggestions)
	assert.Equal(t, 15.0, report.TargetCPA)
}

func TestSuggest_RejectsAccountLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewOptimizationService(testThresholds, mocks.NewMockInsighter(ctrl))

	_, err := service.Suggest(context.Background(), SuggestionRequest{Level: domain.EntityLevelAccount})

	assert.ErrorIs(t, err, ErrUnsupportedLevel)
}
