package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	snapshotsTable   = "insight_snapshots s"
	snapshotColumns  = "s.id, s.account_id, s.external_id, s.level, s.entity_id, COALESCE(s.entity_name, ''), s.date, s.metrics, s.created_at, s.updated_at"
	snapshotDateForm = "2006-01-02"
)

type SnapshotRepository interface {
	SaveOrUpdate(ctx context.Context, snapshots []*domain.InsightSnapshot) error
	GetByDateRange(ctx context.Context, accountID string, startDate, endDate time.Time) ([]*domain.InsightSnapshot, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type snapshotRepository struct {
	conn postgres.Queryer
}

func NewSnapshotRepository(conn postgres.Queryer) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func buildUpsertSnapshotsQuery(snapshots []*domain.InsightSnapshot) (string, []interface{}, error) {
	query := squirrel.StatementBuilder.
		Insert("insight_snapshots").
		Columns("account_id", "external_id", "level", "entity_id", "entity_name", "date", "metrics").
		PlaceholderFormat(squirrel.Dollar)

	for _, snapshot := range snapshots {
		metricsJSON, err := json.Marshal(snapshot.Metrics)
		if err != nil {
			return "", nil, fmt.Errorf("erro ao serializar métricas para JSON: %w", err)
		}

		query = query.Values(
			snapshot.AccountID,
			snapshot.ExternalID,
			snapshot.Level,
			snapshot.EntityID,
			snapshot.EntityName,
			snapshot.Date.Format(snapshotDateForm),
			metricsJSON,
		)
	}

	return query.Suffix(`
			ON CONFLICT (account_id, level, entity_id, date) DO UPDATE SET
				entity_name = EXCLUDED.entity_name,
				metrics = EXCLUDED.metrics,
				updated_at = NOW()
		`).ToSql()
}

// SaveOrUpdate grava todos os snapshots em um único INSERT.
func (r *snapshotRepository) SaveOrUpdate(ctx context.Context, snapshots []*domain.InsightSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	sqlQuery, args, err := buildUpsertSnapshotsQuery(snapshots)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.Exec(ctx, sqlQuery, args...); err != nil {
		return wrapDatabaseError(err)
	}

	return nil
}

func buildSnapshotsByDateRangeQuery(accountID string, startDate, endDate time.Time) (string, []interface{}, error) {
	return squirrel.
		Select(snapshotColumns).
		From(snapshotsTable).
		Where(squirrel.Eq{"s.account_id": accountID}).
		Where(squirrel.GtOrEq{"s.date": startDate.Format(snapshotDateForm)}).
		Where(squirrel.LtOrEq{"s.date": endDate.Format(snapshotDateForm)}).
		OrderBy("s.date ASC", "s.entity_name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *snapshotRepository) GetByDateRange(ctx context.Context, accountID string, startDate, endDate time.Time) ([]*domain.InsightSnapshot, error) {
	query, args, err := buildSnapshotsByDateRangeQuery(accountID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.InsightSnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshots: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *snapshotRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(snapshotDateForm)

	query, args, err := squirrel.
		Delete("insight_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, wrapDatabaseError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func scanSnapshot(row rowScanner) (*domain.InsightSnapshot, error) {
	snapshot := &domain.InsightSnapshot{}
	var metricsJSON []byte

	if err := row.Scan(
		&snapshot.ID,
		&snapshot.AccountID,
		&snapshot.ExternalID,
		&snapshot.Level,
		&snapshot.EntityID,
		&snapshot.EntityName,
		&snapshot.Date,
		&metricsJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if metricsJSON != nil {
		if err := json.Unmarshal(metricsJSON, &snapshot.Metrics); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de metrics: %w", err)
		}
	}

	return snapshot, nil
}
