// Package migration bootstraps the careers page schema.
package migration

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the last step; its presence means the schema is complete.
const sentinelTable = "public.career_sections"

var steps = []migrationStep{
	{
		Name: "create_table_tenants",
		SQL: `CREATE TABLE IF NOT EXISTS tenants (
  id         TEXT        PRIMARY KEY,
  code       TEXT        UNIQUE,
  name       TEXT        NOT NULL,
  status     TEXT        NOT NULL DEFAULT 'active',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_company_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS company_profiles (
  id           TEXT        PRIMARY KEY,
  tenant_id    TEXT        NOT NULL UNIQUE,
  company_name TEXT        NOT NULL,
  address      JSONB       NOT NULL DEFAULT '{}'::jsonb,
  signatory    JSONB       NOT NULL DEFAULT '{}'::jsonb,
  meta         JSONB       NOT NULL DEFAULT '{}'::jsonb,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_company_profiles_published",
		SQL: `CREATE INDEX IF NOT EXISTS idx_company_profiles_published
  ON company_profiles ((meta->'careerCustomization'->>'isPublished'));`,
	},
	{
		Name: "create_table_career_seo",
		SQL: `CREATE TABLE IF NOT EXISTS career_seo (
  tenant_id        TEXT        NOT NULL,
  company_id       TEXT        NOT NULL,
  seo_title        VARCHAR(70)  NOT NULL,
  seo_description  VARCHAR(160) NOT NULL,
  seo_keywords     JSONB       NOT NULL DEFAULT '[]'::jsonb,
  seo_slug         TEXT        NOT NULL,
  seo_og_image_url TEXT        NOT NULL DEFAULT '',
  is_draft         BOOLEAN     NOT NULL DEFAULT true,
  is_published     BOOLEAN     NOT NULL DEFAULT false,
  published_at     TIMESTAMPTZ,
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (tenant_id, company_id)
);`,
	},
	{
		Name: "create_table_career_layouts",
		SQL: `CREATE TABLE IF NOT EXISTS career_layouts (
  tenant_id     TEXT        NOT NULL,
  company_id    TEXT        NOT NULL,
  layout_config JSONB       NOT NULL,
  is_draft      BOOLEAN     NOT NULL DEFAULT true,
  is_published  BOOLEAN     NOT NULL DEFAULT false,
  published_at  TIMESTAMPTZ,
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (tenant_id, company_id)
);`,
	},
	{
		Name: "create_table_career_sections",
		SQL: `CREATE TABLE IF NOT EXISTS career_sections (
  tenant_id     TEXT        NOT NULL,
  company_id    TEXT        NOT NULL,
  section_id    TEXT        NOT NULL,
  section_type  TEXT        NOT NULL CHECK (section_type IN ('hero', 'openings', 'about', 'benefits', 'testimonials', 'cta', 'custom')),
  section_order INTEGER     NOT NULL CHECK (section_order >= 0),
  content       JSONB       NOT NULL DEFAULT '{}'::jsonb,
  theme         JSONB,
  is_draft      BOOLEAN     NOT NULL DEFAULT true,
  is_published  BOOLEAN     NOT NULL DEFAULT false,
  published_at  TIMESTAMPTZ,
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (tenant_id, company_id, section_id)
);`,
	},
	{
		Name: "create_index_career_sections_order",
		SQL: `CREATE INDEX IF NOT EXISTS idx_career_sections_order
  ON career_sections (tenant_id, company_id, section_order);`,
	},
}

// EnsureMigrated creates the schema unless the sentinel table already exists.
// Every step is idempotent, so a partially applied schema is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *zap.Logger, dbHost string) error {
	start := time.Now()
	logger = logging.Component(logger, "database").With(zap.String("db_host", dbHost))

	logger.Info("checking schema", zap.String("event", "db_migration_check"))

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists); err != nil {
		logger.Error("schema check failed",
			zap.String("event", "db_migration_failed"),
			zap.Error(err),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return errors.Wrap(err, "check sentinel table")
	}

	if exists {
		logger.Info("schema already exists, skipping migration",
			zap.String("event", "db_migration_skip"),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return nil
	}

	logger.Info("applying schema", zap.String("event", "db_migration_start"), zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.Error("migration step failed",
				zap.String("event", "db_migration_failed"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Duration("duration_ms", time.Since(start)),
				zap.Duration("step_duration_ms", time.Since(stepStart)),
			)
			return errors.Wrapf(err, "migration step %s failed", step.Name)
		}

		logger.Info("migration step applied",
			zap.String("event", "db_migration_step"),
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration_ms", time.Since(stepStart)),
		)
	}

	logger.Info("schema migrated",
		zap.String("event", "db_migration_success"),
		zap.Duration("duration_ms", time.Since(start)),
	)
	return nil
}
