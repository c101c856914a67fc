package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arc-self/soc-triage/internal/pipeline"
	db "github.com/arc-self/soc-triage/internal/repository/db"
)

const (
	recentEventsMax    = 500
	evidenceEventLimit = 50
	evidenceSampleSize = 3
)

type IncidentListItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Count   int64  `json:"count"`
	Status  string `json:"status"`
}

type IncidentDetail struct {
	IncidentListItem
	SampleRedacted string `json:"sample_redacted"`
}

type IncidentRef struct {
	IncidentID int64  `json:"incident_id"`
	ClusterKey string `json:"cluster_key"`
	Status     string `json:"status"`
}

type ClusterRef struct {
	IncidentRef
	Count int64 `json:"count"`
}

type ApprovalItem struct {
	ID         int64  `json:"id"`
	ActionName string `json:"action_name"`
	Notes      string `json:"notes"`
}

// ClusterExplanation is the evidence view of a clustering explanation. Both
// fields are omitted for an incident with no stored events, so the JSON
// carries an empty object rather than null.
type ClusterExplanation struct {
	Tokens map[string]string `json:"tokens,omitempty"`
	Window *pipeline.Window  `json:"window,omitempty"`
}

// IncidentEvidence bundles everything an analyst needs to judge a cluster:
// why the events grouped, what was redacted, and what has been approved.
type IncidentEvidence struct {
	IncidentID         int64              `json:"incident_id"`
	ClusterKey         string             `json:"cluster_key"`
	Status             string             `json:"status"`
	Count              int64              `json:"count"`
	WhyClustered       ClusterExplanation `json:"why_clustered"`
	EventSample        []string           `json:"event_sample"`
	RedactionAggregate map[string]int     `json:"redaction_aggregate"`
	Approvals          []ApprovalItem     `json:"approvals"`
}

type EventEvidence struct {
	EventID      int64  `json:"event_id"`
	ResidencyTag string `json:"residency_tag"`
	Redacted     string `json:"redacted"`
	IncidentID   int64  `json:"incident_id"`
	ClusterKey   string `json:"cluster_key"`
}

type RecentEventItem struct {
	ID             int64  `json:"id"`
	IncidentID     int64  `json:"incident_id"`
	EventType      string `json:"event_type"`
	IncidentStatus string `json:"incident_status"`
	Redacted       string `json:"redacted"`
}

type Metrics struct {
	Events                int64   `json:"events"`
	Incidents             int64   `json:"incidents"`
	IncidentsActive       int64   `json:"incidents_active"`
	SuppressedEvents      int64   `json:"suppressed_events"`
	SuppressionRate       float64 `json:"suppression_rate"`
	SuppressionRateActive float64 `json:"suppression_rate_active"`
	DupRate               float64 `json:"dup_rate"`
}

// QueryService is the read side: incident listings, evidence bundles and
// pipeline effectiveness metrics.
type QueryService interface {
	ListIncidents(ctx context.Context) ([]IncidentListItem, error)
	GetIncident(ctx context.Context, id int64) (IncidentDetail, error)
	IncidentEvidence(ctx context.Context, id int64) (IncidentEvidence, error)
	IncidentByEvent(ctx context.Context, eventID int64) (IncidentRef, error)
	IncidentByCluster(ctx context.Context, clusterKey string) (ClusterRef, error)
	EventEvidence(ctx context.Context, eventID int64) (EventEvidence, error)
	RecentEvents(ctx context.Context, limit int64) ([]RecentEventItem, error)
	Metrics(ctx context.Context) (Metrics, error)
}

type queryService struct {
	querier       db.Querier
	bucketSeconds int
	now           func() time.Time
}

func NewQueryService(q db.Querier, bucketSeconds int) QueryService {
	return &queryService{
		querier:       q,
		bucketSeconds: bucketSeconds,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *queryService) ListIncidents(ctx context.Context) ([]IncidentListItem, error) {
	rows, err := s.querier.ListIncidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	items := make([]IncidentListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, incidentItem(r))
	}
	return items, nil
}

func (s *queryService) GetIncident(ctx context.Context, id int64) (IncidentDetail, error) {
	incident, err := s.querier.GetIncident(ctx, id)
	if err != nil {
		return IncidentDetail{}, incidentLookupErr(err)
	}

	sample := ""
	latest, err := s.querier.LatestEventByIncident(ctx, id)
	switch {
	case err == nil:
		sample = latest.Redacted
	case !errors.Is(err, sql.ErrNoRows):
		return IncidentDetail{}, fmt.Errorf("latest event: %w", err)
	}

	return IncidentDetail{
		IncidentListItem: incidentItem(incident),
		SampleRedacted:   sample,
	}, nil
}

func (s *queryService) IncidentEvidence(ctx context.Context, id int64) (IncidentEvidence, error) {
	incident, err := s.querier.GetIncident(ctx, id)
	if err != nil {
		return IncidentEvidence{}, incidentLookupErr(err)
	}

	events, err := s.querier.ListEventsByIncident(ctx, db.ListEventsByIncidentParams{
		IncidentID: id,
		Limit:      evidenceEventLimit,
	})
	if err != nil {
		return IncidentEvidence{}, fmt.Errorf("list incident events: %w", err)
	}

	evidence := IncidentEvidence{
		IncidentID:         incident.ID,
		ClusterKey:         incident.ClusterKey,
		Status:             incident.Status,
		Count:              incident.Count,
		EventSample:        []string{},
		RedactionAggregate: map[string]int{},
		Approvals:          []ApprovalItem{},
	}

	if len(events) > 0 {
		latest := events[0]
		_, why := pipeline.ClusterKey(
			pipeline.Event{EventType: latest.EventType},
			latest.Normalized,
			s.now(),
			s.bucketSeconds,
		)
		evidence.WhyClustered = ClusterExplanation{Tokens: why.Tokens, Window: &why.Window}
	}

	for i, e := range events {
		if i < evidenceSampleSize {
			evidence.EventSample = append(evidence.EventSample, e.Redacted)
		}
		for kind, n := range pipeline.SentinelCounts(e.Redacted) {
			evidence.RedactionAggregate[kind] += n
		}
	}

	approvals, err := s.querier.ListApprovalsByIncident(ctx, id)
	if err != nil {
		return IncidentEvidence{}, fmt.Errorf("list approvals: %w", err)
	}
	for _, a := range approvals {
		evidence.Approvals = append(evidence.Approvals, ApprovalItem{
			ID:         a.ID,
			ActionName: a.ActionName,
			Notes:      a.Notes,
		})
	}
	return evidence, nil
}

func (s *queryService) IncidentByEvent(ctx context.Context, eventID int64) (IncidentRef, error) {
	event, err := s.querier.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return IncidentRef{}, fmt.Errorf("%w: event not found", ErrNotFound)
		}
		return IncidentRef{}, fmt.Errorf("get event: %w", err)
	}
	incident, err := s.querier.GetIncident(ctx, event.IncidentID)
	if err != nil {
		return IncidentRef{}, incidentLookupErr(err)
	}
	return IncidentRef{
		IncidentID: incident.ID,
		ClusterKey: incident.ClusterKey,
		Status:     incident.Status,
	}, nil
}

func (s *queryService) IncidentByCluster(ctx context.Context, clusterKey string) (ClusterRef, error) {
	incident, err := s.querier.GetIncidentByClusterKey(ctx, clusterKey)
	if err != nil {
		return ClusterRef{}, incidentLookupErr(err)
	}
	return ClusterRef{
		IncidentRef: IncidentRef{
			IncidentID: incident.ID,
			ClusterKey: incident.ClusterKey,
			Status:     incident.Status,
		},
		Count: incident.Count,
	}, nil
}

func (s *queryService) EventEvidence(ctx context.Context, eventID int64) (EventEvidence, error) {
	event, err := s.querier.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EventEvidence{}, fmt.Errorf("%w: event not found", ErrNotFound)
		}
		return EventEvidence{}, fmt.Errorf("get event: %w", err)
	}
	return EventEvidence{
		EventID:      event.ID,
		ResidencyTag: event.ResidencyTag,
		Redacted:     event.Redacted,
		IncidentID:   event.IncidentID,
		ClusterKey:   event.ClusterKey,
	}, nil
}

// RecentEvents clamps limit to [1, 500]. The default page size for an absent
// limit is the handler's concern; an explicit zero is floored to one row.
func (s *queryService) RecentEvents(ctx context.Context, limit int64) ([]RecentEventItem, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > recentEventsMax {
		limit = recentEventsMax
	}
	rows, err := s.querier.ListRecentEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}
	items := make([]RecentEventItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, RecentEventItem{
			ID:             r.ID,
			IncidentID:     r.IncidentID,
			EventType:      r.EventType,
			IncidentStatus: r.IncidentStatus,
			Redacted:       r.Redacted,
		})
	}
	return items, nil
}

func (s *queryService) Metrics(ctx context.Context) (Metrics, error) {
	events, err := s.querier.CountEvents(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("count events: %w", err)
	}
	incidents, err := s.querier.CountIncidents(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("count incidents: %w", err)
	}
	active, err := s.querier.CountActiveIncidents(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("count active incidents: %w", err)
	}
	suppressed, err := s.querier.CountSuppressedEvents(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("count suppressed events: %w", err)
	}

	m := Metrics{
		Events:           events,
		Incidents:        incidents,
		IncidentsActive:  active,
		SuppressedEvents: suppressed,
	}
	if events > 0 {
		m.SuppressionRate = round3(1.0 - float64(incidents)/float64(events))
		m.SuppressionRateActive = round3(1.0 - float64(active)/float64(events))
		m.DupRate = round3(float64(suppressed) / float64(events))
	}
	return m, nil
}

func incidentItem(r db.Incident) IncidentListItem {
	return IncidentListItem{
		ID:      r.ID,
		Title:   r.Title,
		Summary: r.Summary,
		Count:   r.Count,
		Status:  r.Status,
	}
}

func incidentLookupErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: incident not found", ErrNotFound)
	}
	return fmt.Errorf("get incident: %w", err)
}
