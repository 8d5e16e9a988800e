package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

var csvHeaders = []string{
	"id", "name", "level", "effective_status", "objective",
	"spend", "impressions", "clicks", "ctr", "cpc",
	"conversions", "revenue", "roas", "cpa", "results",
	"date_start", "date_stop",
}

// ExportFileName monta o nome sugerido para o download.
func ExportFileName(report *domain.EntityReport) string {
	return fmt.Sprintf("%s_%s_%s.csv", report.Level, report.AdAccountID, report.DatePreset)
}

// WriteEntitiesCSV escreve uma linha por entidade, seguida de uma linha de totais.
func WriteEntitiesCSV(w io.Writer, report *domain.EntityReport) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeaders); err != nil {
		return fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}

	for _, entity := range report.Entities {
		if entity == nil {
			continue
		}
		m := entity.Metrics
		row := []string{
			entity.ID,
			entity.Name,
			string(entity.Level),
			entity.EffectiveStatus,
			entity.Objective,
			formatDecimal(m.Spend),
			strconv.FormatInt(m.Impressions, 10),
			strconv.FormatInt(m.Clicks, 10),
			formatDecimal(m.CTR),
			formatDecimal(m.CPC),
			strconv.FormatInt(m.Conversions, 10),
			formatDecimal(m.Revenue),
			formatDecimal(m.ROAS),
			formatDecimal(m.CPA),
			strconv.FormatInt(entity.Results, 10),
			entity.DateStart,
			entity.DateStop,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("erro ao escrever entidade %s: %w", entity.ID, err)
		}
	}

	if s := report.Summary; s != nil {
		total := []string{
			"total", "", string(report.Level), "", "",
			formatDecimal(s.TotalSpend),
			strconv.FormatInt(s.TotalImpressions, 10),
			strconv.FormatInt(s.TotalClicks, 10),
			formatDecimal(s.CTR),
			formatDecimal(s.CPC),
			strconv.FormatInt(s.TotalConversions, 10),
			formatDecimal(s.TotalRevenue),
			formatDecimal(s.ROAS),
			formatDecimal(s.CPA),
			"", "", "",
		}
		if err := writer.Write(total); err != nil {
			return fmt.Errorf("erro ao escrever totais: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatDecimal(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
