package db

import "context"

// Querier is the full query surface of the store. Services depend on this
// interface; tests substitute the gomock implementation from
// internal/repository/mock.
type Querier interface {
	CreateIncident(ctx context.Context, arg CreateIncidentParams) (Incident, error)
	GetIncident(ctx context.Context, id int64) (Incident, error)
	GetIncidentByClusterKey(ctx context.Context, clusterKey string) (Incident, error)
	ListIncidents(ctx context.Context) ([]Incident, error)
	IncrementIncidentCount(ctx context.Context, arg IncrementIncidentCountParams) (int64, error)
	UpdateIncidentSummary(ctx context.Context, arg UpdateIncidentSummaryParams) error
	PromoteIncident(ctx context.Context, arg PromoteIncidentParams) error
	CountIncidents(ctx context.Context) (int64, error)
	CountActiveIncidents(ctx context.Context) (int64, error)

	CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error)
	GetEvent(ctx context.Context, id int64) (Event, error)
	ListEventsByIncident(ctx context.Context, arg ListEventsByIncidentParams) ([]Event, error)
	LatestEventByIncident(ctx context.Context, incidentID int64) (Event, error)
	ListEventsByClusterKey(ctx context.Context, arg ListEventsByClusterKeyParams) ([]Event, error)
	ListRecentEvents(ctx context.Context, limit int64) ([]RecentEvent, error)
	CountEvents(ctx context.Context) (int64, error)
	CountSuppressedEvents(ctx context.Context) (int64, error)

	CreateApproval(ctx context.Context, arg CreateApprovalParams) (Approval, error)
	ListApprovalsByIncident(ctx context.Context, incidentID int64) ([]Approval, error)
}

var _ Querier = (*Queries)(nil)
