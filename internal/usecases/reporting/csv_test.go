package reporting

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

func TestWriteEntitiesCSV(t *testing.T) {
	entities := []*domain.Entity{
		{
			ID:              "c1",
			Name:            "Black Friday, 2024",
			Level:           domain.EntityLevelCampaign,
			EffectiveStatus: "ACTIVE",
			Objective:       "OUTCOME_SALES",
			Results:         3,
			DateStart:       "2024-11-01",
			DateStop:        "2024-11-07",
			Metrics:         domain.EntityMetrics{Spend: 50, Impressions: 1000, Clicks: 20, CTR: 2, CPC: 2.5, Conversions: 3, Revenue: 150.5, ROAS: 3.01, CPA: 16.666},
		},
		nil,
	}
	report := &domain.EntityReport{
		Level:       domain.EntityLevelCampaign,
		AdAccountID: "123",
		DatePreset:  "last_7d",
		Entities:    entities,
		Summary:     domain.Summarize(entities),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEntitiesCSV(&buf, report))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeaders, records[0])
	assert.Equal(t, "Black Friday, 2024", records[1][1])
	assert.Equal(t, "50.00", records[1][5])
	assert.Equal(t, "16.67", records[1][13])
	assert.Equal(t, "3", records[1][14])
	assert.Equal(t, "total", records[2][0])
	assert.Equal(t, "150.50", records[2][11])
}

func TestWriteEntitiesCSV_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntitiesCSV(&buf, &domain.EntityReport{Level: domain.EntityLevelAd}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disco cheio")
}

func TestWriteEntitiesCSV_WriterError(t *testing.T) {
	err := WriteEntitiesCSV(failingWriter{}, &domain.EntityReport{})

	assert.Error(t, err)
}

func TestExportFileName(t *testing.T) {
	name := ExportFileName(&domain.EntityReport{Level: domain.EntityLevelAdSet, AdAccountID: "123", DatePreset: "lifetime"})

	assert.Equal(t, "adset_123_lifetime.csv", name)
}
