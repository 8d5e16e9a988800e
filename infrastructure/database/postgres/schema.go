package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

// schema cria as tabelas usadas pela API. Todas as instruções são idempotentes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS business_manager (
		id          VARCHAR(21) PRIMARY KEY,
		external_id VARCHAR(64) NOT NULL UNIQUE,
		name        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id           VARCHAR(21) PRIMARY KEY,
		external_id  VARCHAR(64) NOT NULL UNIQUE,
		name         TEXT NOT NULL,
		currency     VARCHAR(8),
		business_id  VARCHAR(21) REFERENCES business_manager (id),
		status       VARCHAR(16) NOT NULL DEFAULT 'ACTIVE',
		connected_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS insight_snapshots (
		id          BIGSERIAL PRIMARY KEY,
		account_id  VARCHAR(21) NOT NULL REFERENCES accounts (id),
		external_id VARCHAR(64) NOT NULL,
		level       VARCHAR(16) NOT NULL,
		entity_id   VARCHAR(64) NOT NULL,
		entity_name TEXT,
		date        DATE NOT NULL,
		metrics     JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (account_id, level, entity_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_insight_snapshots_account_date ON insight_snapshots (account_id, date)`,
}

// Migrate aplica o schema numa única transação.
func Migrate(ctx context.Context, conn Conn) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, statement := range schema {
			if _, err := tx.ExecContext(ctx, statement); err != nil {
				return fmt.Errorf("erro ao aplicar instrução %d do schema: %w", i, err)
			}
		}

		log.ForContext(ctx).WithField("statements", len(schema)).Info("Schema do banco aplicado com sucesso")
		return nil
	})
}
