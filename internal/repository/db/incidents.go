package db

import (
	"context"
	"time"
)

type CreateIncidentParams struct {
	Title      string
	ClusterKey string
	Summary    string
	Count      int64
	Status     string
	LastSeen   time.Time
}

// CreateIncident inserts the incident for a new cluster key. When a
// concurrent transaction already holds the key, ON CONFLICT DO NOTHING makes
// the insert a row-less no-op instead of an error, so the enclosing
// transaction stays usable on postgres; callers see sql.ErrNoRows and
// re-select the winner.
func (q *Queries) CreateIncident(ctx context.Context, arg CreateIncidentParams) (Incident, error) {
	query := q.db.Rebind(`INSERT INTO incidents (title, cluster_key, summary, count, status, last_seen)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (cluster_key) DO NOTHING
RETURNING id`)
	inc := Incident{
		Title:      arg.Title,
		ClusterKey: arg.ClusterKey,
		Summary:    arg.Summary,
		Count:      arg.Count,
		Status:     arg.Status,
		LastSeen:   arg.LastSeen,
	}
	err := q.db.GetContext(ctx, &inc.ID, query,
		arg.Title, arg.ClusterKey, arg.Summary, arg.Count, arg.Status, arg.LastSeen)
	return inc, err
}

func (q *Queries) GetIncident(ctx context.Context, id int64) (Incident, error) {
	query := q.db.Rebind(`SELECT id, title, cluster_key, summary, count, status, last_seen
FROM incidents WHERE id = ?`)
	var inc Incident
	err := q.db.GetContext(ctx, &inc, query, id)
	return inc, err
}

func (q *Queries) GetIncidentByClusterKey(ctx context.Context, clusterKey string) (Incident, error) {
	query := q.db.Rebind(`SELECT id, title, cluster_key, summary, count, status, last_seen
FROM incidents WHERE cluster_key = ?`)
	var inc Incident
	err := q.db.GetContext(ctx, &inc, query, clusterKey)
	return inc, err
}

func (q *Queries) ListIncidents(ctx context.Context) ([]Incident, error) {
	query := `SELECT id, title, cluster_key, summary, count, status, last_seen
FROM incidents ORDER BY last_seen DESC, id DESC`
	incidents := []Incident{}
	err := q.db.SelectContext(ctx, &incidents, query)
	return incidents, err
}

type IncrementIncidentCountParams struct {
	ID       int64
	LastSeen time.Time
}

// IncrementIncidentCount bumps the rollup counter relative to the stored
// value, so concurrent batches appending to the same cluster never lose an
// increment. Returns the new count for summary building.
func (q *Queries) IncrementIncidentCount(ctx context.Context, arg IncrementIncidentCountParams) (int64, error) {
	query := q.db.Rebind(`UPDATE incidents SET count = count + 1, last_seen = ? WHERE id = ? RETURNING count`)
	var count int64
	err := q.db.GetContext(ctx, &count, query, arg.LastSeen, arg.ID)
	return count, err
}

type UpdateIncidentSummaryParams struct {
	ID      int64
	Summary string
}

func (q *Queries) UpdateIncidentSummary(ctx context.Context, arg UpdateIncidentSummaryParams) error {
	query := q.db.Rebind(`UPDATE incidents SET summary = ? WHERE id = ?`)
	_, err := q.db.ExecContext(ctx, query, arg.Summary, arg.ID)
	return err
}

type PromoteIncidentParams struct {
	ID      int64
	Summary string
}

// PromoteIncident flips a noise incident to open. The status guard makes the
// promotion idempotent under retries.
func (q *Queries) PromoteIncident(ctx context.Context, arg PromoteIncidentParams) error {
	query := q.db.Rebind(`UPDATE incidents SET status = ?, summary = ? WHERE id = ? AND status = ?`)
	_, err := q.db.ExecContext(ctx, query, StatusOpen, arg.Summary, arg.ID, StatusNoise)
	return err
}

func (q *Queries) CountIncidents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM incidents`)
	return n, err
}

func (q *Queries) CountActiveIncidents(ctx context.Context) (int64, error) {
	query := q.db.Rebind(`SELECT COUNT(*) FROM incidents WHERE status != ?`)
	var n int64
	err := q.db.GetContext(ctx, &n, query, StatusNoise)
	return n, err
}
