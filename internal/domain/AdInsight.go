package domain

import (
	"time"
)

// InsightSnapshot representa as métricas de uma entidade em um dia, armazenadas no banco
type InsightSnapshot struct {
	ID         int64         `json:"id"`
	AccountID  string        `json:"accountId"`
	ExternalID string        `json:"externalId"`
	Level      EntityLevel   `json:"level"`
	EntityID   string        `json:"entityId"`
	EntityName string        `json:"entityName"`
	Date       time.Time     `json:"date"`
	Metrics    EntityMetrics `json:"metrics"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// SnapshotsFromReport converte um relatório em snapshots para a data informada.
func SnapshotsFromReport(account *AdAccount, report *EntityReport, date time.Time) []*InsightSnapshot {
	if report == nil {
		return nil
	}

	snapshots := make([]*InsightSnapshot, 0, len(report.Entities))
	for _, entity := range report.Entities {
		snapshots = append(snapshots, &InsightSnapshot{
			AccountID:  account.ID,
			ExternalID: account.ExternalID,
			Level:      report.Level,
			EntityID:   entity.ID,
			EntityName: entity.Name,
			Date:       date,
			Metrics:    entity.Metrics,
		})
	}

	return snapshots
}
