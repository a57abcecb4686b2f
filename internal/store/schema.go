package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// dataTables lists the tables cleared by Reset, children first.
var dataTables = []string{
	"llm_request_events",
	"prompt_evaluations",
	"rage_results",
	"progress_snapshots",
}

// Timestamps are stored as unix milliseconds and booleans as 0/1 so both
// dialects scan into the same Go types.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS llm_request_events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sequence BIGINT NOT NULL,
  created_at BIGINT NOT NULL,
  provider TEXT NOT NULL,
  model TEXT NOT NULL,
  purpose TEXT NOT NULL DEFAULT '',
  input_tokens INTEGER NOT NULL DEFAULT 0,
  output_tokens INTEGER NOT NULL DEFAULT 0,
  latency_ms BIGINT NOT NULL DEFAULT 0,
  success INTEGER NOT NULL DEFAULT 0,
  error_message TEXT NOT NULL DEFAULT '',
  request_body TEXT NOT NULL DEFAULT '',
  response_body TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS prompt_evaluations (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sequence BIGINT NOT NULL,
  created_at BIGINT NOT NULL,
  user_id TEXT NOT NULL,
  prompt TEXT NOT NULL,
  intent TEXT NOT NULL,
  total REAL NOT NULL,
  learning REAL NOT NULL,
  specificity REAL NOT NULL,
  engagement REAL NOT NULL,
  passing INTEGER NOT NULL,
  lesson_id TEXT NOT NULL DEFAULT '',
  exercise_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS rage_results (
  id TEXT PRIMARY KEY,
  sequence BIGINT NOT NULL,
  created_at BIGINT NOT NULL,
  user_id TEXT NOT NULL,
  total_attempts INTEGER NOT NULL,
  time_elapsed_seconds INTEGER NOT NULL,
  max_rage_level TEXT NOT NULL,
  final_state TEXT NOT NULL,
  politeness_decay REAL NOT NULL,
  profanity_creativity INTEGER NOT NULL,
  caps_escalation INTEGER NOT NULL,
  plea_count INTEGER NOT NULL,
  philosophical_score REAL NOT NULL,
  entertaining_metric REAL NOT NULL,
  persistence_rating TEXT NOT NULL,
  legendary INTEGER NOT NULL,
  achievement TEXT NOT NULL DEFAULT '',
  commentary TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS progress_snapshots (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sequence BIGINT NOT NULL,
  created_at BIGINT NOT NULL,
  user_id TEXT NOT NULL,
  data TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_prompt_evaluations_user ON prompt_evaluations(user_id, sequence);
CREATE INDEX IF NOT EXISTS idx_rage_results_metric ON rage_results(entertaining_metric);
CREATE INDEX IF NOT EXISTS idx_progress_snapshots_user ON progress_snapshots(user_id, sequence);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS llm_request_events (
  id BIGSERIAL PRIMARY KEY,
  sequence BIGINT NOT NULL,
  created_at BIGINT NOT NULL,
  provider TEXT NOT NULL,
  model TEXT NOT NULL,
  purpose TEXT NOT NULL DEFAULT '',
  input_tokens INTEGER NOT NULL DEFAULT 0,
  output_tokens INTEGER NOT NULL DEFAULT 0,
  latency_ms BIGINT NOT NULL DEFAULT 0,
  success INTEGER NOT NULL DEFAULT 0,
  error_message TEXT NOT NULL DEFAULT '',
  request_body TEXT NOT NULL DEFAULT '',
  response_body TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS prompt_evaluations (
  id BIGSERIAL PRIMARY KEY,
  sequence BIGINT NOT NULL,
  created_at BIGINT NOT NULL,
  user_id TEXT NOT NULL,
  prompt TEXT NOT NULL,
  intent TEXT NOT NULL,
  total DOUBLE PRECISION NOT NULL,
  learning DOUBLE PRECISION NOT NULL,
  specificity DOUBLE PRECISION NOT NULL,
  engagement DOUBLE PRECISION NOT NULL,
  passing INTEGER NOT NULL,
  lesson_id TEXT NOT NULL DEFAULT '',
  exercise_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS rage_results (
  id TEXT PRIMARY KEY,
  sequence BIGINT NOT NULL,
  created_at BIGINT NOT NULL,
  user_id TEXT NOT NULL,
  total_attempts INTEGER NOT NULL,
  time_elapsed_seconds INTEGER NOT NULL,
  max_rage_level TEXT NOT NULL,
  final_state TEXT NOT NULL,
  politeness_decay DOUBLE PRECISION NOT NULL,
  profanity_creativity INTEGER NOT NULL,
  caps_escalation INTEGER NOT NULL,
  plea_count INTEGER NOT NULL,
  philosophical_score DOUBLE PRECISION NOT NULL,
  entertaining_metric DOUBLE PRECISION NOT NULL,
  persistence_rating TEXT NOT NULL,
  legendary INTEGER NOT NULL,
  achievement TEXT NOT NULL DEFAULT '',
  commentary TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS progress_snapshots (
  id BIGSERIAL PRIMARY KEY,
  sequence BIGINT NOT NULL,
  created_at BIGINT NOT NULL,
  user_id TEXT NOT NULL,
  data TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_prompt_evaluations_user ON prompt_evaluations(user_id, sequence);
CREATE INDEX IF NOT EXISTS idx_rage_results_metric ON rage_results(entertaining_metric);
CREATE INDEX IF NOT EXISTS idx_progress_snapshots_user ON progress_snapshots(user_id, sequence);
`

// ensureSchema creates all tables for the given dialect. Statements run one
// at a time since not every driver accepts multi-statement Exec.
func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	schema := schemaSQLite
	if driver == DriverPostgres {
		schema = schemaPostgres
	}
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
