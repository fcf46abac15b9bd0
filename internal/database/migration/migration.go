package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
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
		Name: "create_table_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS profiles (
  user_id    UUID        PRIMARY KEY,
  email      TEXT        NOT NULL UNIQUE,
  app_role   TEXT        NOT NULL DEFAULT 'standard' CHECK (app_role IN ('admin', 'standard')),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS sessions (
  token      TEXT        PRIMARY KEY,
  user_id    UUID        NOT NULL REFERENCES profiles (user_id) ON DELETE CASCADE,
  expires_at TIMESTAMPTZ NOT NULL
);`,
	},
	{
		Name: "create_table_manpower",
		SQL: `CREATE TABLE IF NOT EXISTS manpower (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  advisor_code  TEXT        NOT NULL,
  advisor_name  TEXT        NOT NULL,
  team_name     TEXT,
  class         TEXT,
  unit_code     TEXT,
  status        TEXT,
  contract_date TEXT,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_settled_apps_details",
		SQL: `CREATE TABLE IF NOT EXISTS settled_apps_details (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  advisor_code      TEXT        NOT NULL,
  advisor_name      TEXT,
  process_date      TEXT,
  insured_name      TEXT,
  policy_number     TEXT,
  settled_apps      NUMERIC,
  agency_credits    NUMERIC,
  net_sales_credits NUMERIC,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_fy_commission_details",
		SQL: `CREATE TABLE IF NOT EXISTS fy_commission_details (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  code              TEXT        NOT NULL,
  process_date      TEXT,
  insured_name      TEXT,
  policy_number     TEXT,
  transaction_type  TEXT,
  fy_premium_php    NUMERIC,
  due_date          TEXT,
  rate              NUMERIC,
  fy_commission_php NUMERIC,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_manpower_advisor_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_manpower_advisor_name ON manpower (advisor_name);`,
	},
	{
		Name: "create_index_settled_apps_advisor_code",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_settled_apps_advisor_code ON settled_apps_details (advisor_code);`,
	},
	{
		Name: "create_index_fy_commission_code",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_fy_commission_code ON fy_commission_details (code);`,
	},
	{
		Name: "create_function_upload_with_deduplication",
		// Batch upsert used by the fy-commission path. For each record: delete
		// every row whose duplicate-field tuple matches (NULL-safe), then
		// reinsert with a fresh surrogate id. A failing record is reported in
		// the errors array and does not abort the batch.
		SQL: `CREATE OR REPLACE FUNCTION upload_with_deduplication(
  p_table_name       text,
  p_records          jsonb,
  p_duplicate_fields text[]
) RETURNS jsonb
LANGUAGE plpgsql
AS $$
DECLARE
  rec           jsonb;
  cond          text;
  fld           text;
  removed       bigint;
  total_removed bigint := 0;
  inserted      bigint := 0;
  errs          jsonb  := '[]'::jsonb;
BEGIN
  IF p_records IS NULL OR jsonb_typeof(p_records) <> 'array' THEN
    RETURN jsonb_build_object(
      'success', false,
      'inserted', 0,
      'duplicates_removed', 0,
      'errors', jsonb_build_array('records payload must be a json array'));
  END IF;

  cond := '';
  FOREACH fld IN ARRAY p_duplicate_fields LOOP
    IF cond <> '' THEN
      cond := cond || ' AND ';
    END IF;
    cond := cond || format('t.%I IS NOT DISTINCT FROM r.%I', fld, fld);
  END LOOP;

  FOR rec IN SELECT * FROM jsonb_array_elements(p_records) LOOP
    BEGIN
      rec := (rec - 'id') - 'created_at';

      EXECUTE format(
        'WITH r AS (SELECT * FROM jsonb_populate_record(NULL::%I, $1)),
              doomed AS (DELETE FROM %I t USING r WHERE %s RETURNING 1)
         SELECT count(*) FROM doomed',
        p_table_name, p_table_name, cond)
        USING rec INTO removed;
      total_removed := total_removed + removed;

      EXECUTE format(
        'INSERT INTO %I
         SELECT (jsonb_populate_record(NULL::%I,
           $1 || jsonb_build_object(''id'', uuid_generate_v4(), ''created_at'', now()))).*',
        p_table_name, p_table_name)
        USING rec;
      inserted := inserted + 1;
    EXCEPTION WHEN OTHERS THEN
      errs := errs || to_jsonb(SQLERRM);
    END;
  END LOOP;

  RETURN jsonb_build_object(
    'success', jsonb_array_length(errs) = 0,
    'inserted', inserted,
    'duplicates_removed', total_removed,
    'errors', errs);
END;
$$;`,
	},
}

// EnsureMigrated checks if the 'manpower' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.manpower') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
