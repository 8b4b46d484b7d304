package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_matters",
		SQL: `CREATE TABLE IF NOT EXISTS matters (
  id            UUID         PRIMARY KEY DEFAULT uuid_generate_v4(),
  description   VARCHAR(128) NOT NULL,
  is_archived   BOOLEAN      NOT NULL DEFAULT FALSE,
  creation_date TIMESTAMPTZ  NOT NULL
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id             UUID         PRIMARY KEY DEFAULT uuid_generate_v4(),
  matter_id      UUID         NOT NULL REFERENCES matters (id),
  file_name      VARCHAR(128) NOT NULL,
  extension      VARCHAR(8)   NOT NULL,
  file_size      BIGINT       NOT NULL CHECK (file_size > 0),
  mime_type      TEXT         NOT NULL,
  checksum       CHAR(64)     NOT NULL,
  description    VARCHAR(512) NOT NULL DEFAULT '',
  is_checked_out BOOLEAN      NOT NULL DEFAULT FALSE,
  storage_path   TEXT         NOT NULL UNIQUE,
  created_at     TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_revisions",
		SQL: `CREATE TABLE IF NOT EXISTS revisions (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id       UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  revision_number   INTEGER     NOT NULL CHECK (revision_number BETWEEN 1 AND 999999),
  creation_date     TIMESTAMPTZ NOT NULL,
  modification_date TIMESTAMPTZ NOT NULL,
  is_deleted        BOOLEAN     NOT NULL DEFAULT FALSE,
  UNIQUE (document_id, revision_number)
);`,
	},
	{
		Name: "create_table_matter_activities",
		SQL: `CREATE TABLE IF NOT EXISTS matter_activities (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  matter_id   UUID        NOT NULL REFERENCES matters (id) ON DELETE CASCADE,
  document_id UUID        NULL,
  kind        TEXT        NOT NULL,
  occurred_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_matter_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_matter_id ON documents (matter_id);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_index_revisions_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_revisions_document_id ON revisions (document_id);`,
	},
	{
		Name: "create_index_activities_matter_occurred_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_activities_matter_occurred_at ON matter_activities (matter_id, occurred_at);`,
	},
}

// EnsureMigrated checks if the 'matters' sentinel table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db migration check")

	var exists bool
	query := "SELECT to_regclass('public.matters') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		log.Error("db migration failed",
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db migration skipped, schema already exists",
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db migration start", zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db migration step failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db migration step applied",
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db migration success", zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
