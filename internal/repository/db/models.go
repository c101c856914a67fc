package db

import "time"

// Incident status values. An incident is created open (actionable) or noise
// (benign); promotion moves noise to open exactly once. closed is reserved
// for analyst workflows outside the ingest core.
const (
	StatusOpen   = "open"
	StatusNoise  = "noise"
	StatusClosed = "closed"
)

// DefaultApprover is recorded when an approval carries no explicit operator.
const DefaultApprover = "human@operator"

// Incident is the deduplication target: one row per cluster key.
type Incident struct {
	ID         int64     `db:"id"`
	Title      string    `db:"title"`
	ClusterKey string    `db:"cluster_key"`
	Summary    string    `db:"summary"`
	Count      int64     `db:"count"`
	Status     string    `db:"status"`
	LastSeen   time.Time `db:"last_seen"`
}

// Event is the immutable raw observation record.
type Event struct {
	ID           int64     `db:"id"`
	Source       string    `db:"source"`
	EventType    string    `db:"event_type"`
	Raw          string    `db:"raw"`
	Normalized   string    `db:"normalized"`
	Redacted     string    `db:"redacted"`
	ResidencyTag string    `db:"residency_tag"`
	ClusterKey   string    `db:"cluster_key"`
	IncidentID   int64     `db:"incident_id"`
	CreatedAt    time.Time `db:"created_at"`
}

// Approval is one append-only analyst decision.
type Approval struct {
	ID         int64     `db:"id"`
	IncidentID int64     `db:"incident_id"`
	ActionName string    `db:"action_name"`
	ApprovedBy string    `db:"approved_by"`
	ApprovedAt time.Time `db:"approved_at"`
	Notes      string    `db:"notes"`
}

// RecentEvent is the events-joined-with-incident-status projection.
type RecentEvent struct {
	ID             int64  `db:"id"`
	IncidentID     int64  `db:"incident_id"`
	EventType      string `db:"event_type"`
	IncidentStatus string `db:"incident_status"`
	Redacted       string `db:"redacted"`
}
