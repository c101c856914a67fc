package db

import (
	"context"
	"time"
)

type CreateEventParams struct {
	Source       string
	EventType    string
	Raw          string
	Normalized   string
	Redacted     string
	ResidencyTag string
	ClusterKey   string
	IncidentID   int64
	CreatedAt    time.Time
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	query := q.db.Rebind(`INSERT INTO events (source, event_type, raw, normalized, redacted, residency_tag, cluster_key, incident_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`)
	evt := Event{
		Source:       arg.Source,
		EventType:    arg.EventType,
		Raw:          arg.Raw,
		Normalized:   arg.Normalized,
		Redacted:     arg.Redacted,
		ResidencyTag: arg.ResidencyTag,
		ClusterKey:   arg.ClusterKey,
		IncidentID:   arg.IncidentID,
		CreatedAt:    arg.CreatedAt,
	}
	err := q.db.GetContext(ctx, &evt.ID, query,
		arg.Source, arg.EventType, arg.Raw, arg.Normalized, arg.Redacted,
		arg.ResidencyTag, arg.ClusterKey, arg.IncidentID, arg.CreatedAt)
	return evt, err
}

func (q *Queries) GetEvent(ctx context.Context, id int64) (Event, error) {
	query := q.db.Rebind(`SELECT id, source, event_type, raw, normalized, redacted, residency_tag, cluster_key, incident_id, created_at
FROM events WHERE id = ?`)
	var evt Event
	err := q.db.GetContext(ctx, &evt, query, id)
	return evt, err
}

type ListEventsByIncidentParams struct {
	IncidentID int64
	Limit      int64
}

func (q *Queries) ListEventsByIncident(ctx context.Context, arg ListEventsByIncidentParams) ([]Event, error) {
	query := q.db.Rebind(`SELECT id, source, event_type, raw, normalized, redacted, residency_tag, cluster_key, incident_id, created_at
FROM events WHERE incident_id = ? ORDER BY id DESC LIMIT ?`)
	events := []Event{}
	err := q.db.SelectContext(ctx, &events, query, arg.IncidentID, arg.Limit)
	return events, err
}

func (q *Queries) LatestEventByIncident(ctx context.Context, incidentID int64) (Event, error) {
	query := q.db.Rebind(`SELECT id, source, event_type, raw, normalized, redacted, residency_tag, cluster_key, incident_id, created_at
FROM events WHERE incident_id = ? ORDER BY id DESC LIMIT 1`)
	var evt Event
	err := q.db.GetContext(ctx, &evt, query, incidentID)
	return evt, err
}

type ListEventsByClusterKeyParams struct {
	ClusterKey string
	Limit      int64
}

// ListEventsByClusterKey returns the newest events first; the promotion
// heuristic inspects the two most recent.
func (q *Queries) ListEventsByClusterKey(ctx context.Context, arg ListEventsByClusterKeyParams) ([]Event, error) {
	query := q.db.Rebind(`SELECT id, source, event_type, raw, normalized, redacted, residency_tag, cluster_key, incident_id, created_at
FROM events WHERE cluster_key = ? ORDER BY id DESC LIMIT ?`)
	events := []Event{}
	err := q.db.SelectContext(ctx, &events, query, arg.ClusterKey, arg.Limit)
	return events, err
}

func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]RecentEvent, error) {
	query := q.db.Rebind(`SELECT e.id, e.incident_id, e.event_type, i.status AS incident_status, e.redacted
FROM events e
JOIN incidents i ON i.id = e.incident_id
ORDER BY e.id DESC LIMIT ?`)
	events := []RecentEvent{}
	err := q.db.SelectContext(ctx, &events, query, limit)
	return events, err
}

func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM events`)
	return n, err
}

// CountSuppressedEvents counts events beyond the first in each cluster, i.e.
// observations that did not open a new incident.
func (q *Queries) CountSuppressedEvents(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(c - 1), 0) FROM (
	SELECT COUNT(*) AS c FROM events GROUP BY cluster_key
) grouped`
	var n int64
	err := q.db.GetContext(ctx, &n, query)
	return n, err
}
