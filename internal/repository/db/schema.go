package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the incidents / events / approvals tables and their
// indexes if missing. The unique index on incidents.cluster_key is what the
// aggregator's conflict-absorbing get-or-create relies on.
func EnsureSchema(ctx context.Context, conn *sqlx.DB, driver string) error {
	pk := "BIGSERIAL PRIMARY KEY"
	ts := "TIMESTAMPTZ"
	if driver == "sqlite3" {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
		ts = "DATETIME"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS incidents (
	id %s,
	title TEXT NOT NULL,
	cluster_key TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	count INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'open',
	last_seen %s NOT NULL
)`, pk, ts),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS events (
	id %s,
	source TEXT NOT NULL,
	event_type TEXT NOT NULL,
	raw TEXT NOT NULL DEFAULT '',
	normalized TEXT NOT NULL DEFAULT '',
	redacted TEXT NOT NULL DEFAULT '',
	residency_tag TEXT NOT NULL DEFAULT '',
	cluster_key TEXT NOT NULL,
	incident_id BIGINT NOT NULL REFERENCES incidents(id),
	created_at %s NOT NULL
)`, pk, ts),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS approvals (
	id %s,
	incident_id BIGINT NOT NULL REFERENCES incidents(id),
	action_name TEXT NOT NULL,
	approved_by TEXT NOT NULL DEFAULT 'human@operator',
	approved_at %s NOT NULL,
	notes TEXT NOT NULL DEFAULT ''
)`, pk, ts),
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_incidents_cluster_key ON incidents(cluster_key)`,
		`CREATE INDEX IF NOT EXISTS idx_events_cluster_key ON events(cluster_key)`,
		`CREATE INDEX IF NOT EXISTS idx_events_incident_id ON events(incident_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_source ON events(source)`,
		`CREATE INDEX IF NOT EXISTS idx_events_event_type ON events(event_type)`,
		`CREATE INDEX IF NOT EXISTS idx_approvals_incident_id ON approvals(incident_id)`,
	}

	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
