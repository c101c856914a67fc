package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/arc-self/soc-triage/internal/config"
	"github.com/arc-self/soc-triage/internal/notifier"
	"github.com/arc-self/soc-triage/internal/pipeline"
	db "github.com/arc-self/soc-triage/internal/repository/db"
)

// promotionWindow is how many recent same-cluster events the fail-then-success
// heuristic inspects; promotionThreshold is the failure count that trips it.
const (
	promotionWindow    = 8
	promotionThreshold = 5
)

// IngestSummary is the response body for a processed batch.
type IngestSummary struct {
	Ingested        int     `json:"ingested"`
	Events          int64   `json:"events"`
	Incidents       int64   `json:"incidents"`
	SuppressionRate float64 `json:"suppression_rate"`
}

// IngestService runs the redact/normalize/cluster/persist pipeline over
// event batches.
type IngestService interface {
	IngestBatch(ctx context.Context, events []pipeline.Event) (IngestSummary, error)
}

type ingestService struct {
	conn     *sqlx.DB
	querier  db.Querier
	cfg      config.Config
	notifier notifier.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewIngestService(conn *sqlx.DB, q db.Querier, cfg config.Config, n notifier.Notifier, logger *zap.Logger) IngestService {
	return &ingestService{
		conn:     conn,
		querier:  q,
		cfg:      cfg,
		notifier: n,
		log:      logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// IngestBatch processes events sequentially inside one transaction. Either
// the whole batch lands or none of it does. Lifecycle notices are published
// only after a successful commit.
func (s *ingestService) IngestBatch(ctx context.Context, events []pipeline.Event) (IngestSummary, error) {
	batchID := uuid.NewString()
	now := s.now()

	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("begin ingest batch: %w", err)
	}
	defer tx.Rollback()
	qtx := db.New(tx)

	ingested := 0
	var notices []pendingNotice
	for _, evt := range events {
		notice, err := s.ingestOne(ctx, qtx, evt, now)
		if err != nil {
			return IngestSummary{}, err
		}
		notices = append(notices, notice...)
		ingested++
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("commit ingest batch: %w", err)
	}

	for _, n := range notices {
		if err := n.publish(ctx, s.notifier); err != nil {
			s.log.Warn("incident notice publish failed",
				zap.String("batch_id", batchID),
				zap.Int64("incident_id", n.notice.IncidentID),
				zap.Error(err))
		}
	}

	totalEvents, err := s.querier.CountEvents(ctx)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("count events: %w", err)
	}
	totalIncidents, err := s.querier.CountIncidents(ctx)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("count incidents: %w", err)
	}
	rate := 0.0
	if totalEvents > 0 {
		rate = 1.0 - float64(totalIncidents)/float64(totalEvents)
	}

	s.log.Info("ingest batch processed",
		zap.String("batch_id", batchID),
		zap.Int("ingested", ingested),
		zap.Int64("events_total", totalEvents),
		zap.Int64("incidents_total", totalIncidents))

	return IngestSummary{
		Ingested:        ingested,
		Events:          totalEvents,
		Incidents:       totalIncidents,
		SuppressionRate: round3(rate),
	}, nil
}

// ingestOne runs one event through the pipeline and persists it. Redaction
// happens before clustering and summarizing so PII never reaches derived
// fields.
func (s *ingestService) ingestOne(ctx context.Context, qtx db.Querier, evt pipeline.Event, now time.Time) ([]pendingNotice, error) {
	redacted, _ := pipeline.Redact(evt.Message)
	tag := pipeline.ResidencyTag(evt, s.cfg.DefaultResidencyTag)

	redEvt := evt
	redEvt.Message = redacted
	normalized := pipeline.Normalize(redEvt)
	ck, _ := pipeline.ClusterKey(evt, normalized, now, s.cfg.BucketSeconds)

	status := db.StatusOpen
	if s.cfg.IsBenign(evt.EventType) {
		status = db.StatusNoise
	}

	incident, created, err := s.getOrCreateIncident(ctx, qtx, ck, pipeline.IncidentTitle(evt), status, now)
	if err != nil {
		return nil, fmt.Errorf("get or create incident: %w", err)
	}

	raw := ""
	if s.cfg.StoreRaw {
		raw = evt.Message
	}
	if _, err := qtx.CreateEvent(ctx, db.CreateEventParams{
		Source:       evt.Source,
		EventType:    evt.EventType,
		Raw:          raw,
		Normalized:   normalized,
		Redacted:     redacted,
		ResidencyTag: tag,
		ClusterKey:   ck,
		IncidentID:   incident.ID,
		CreatedAt:    now,
	}); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	count, err := qtx.IncrementIncidentCount(ctx, db.IncrementIncidentCountParams{
		ID:       incident.ID,
		LastSeen: now,
	})
	if err != nil {
		return nil, fmt.Errorf("increment incident count: %w", err)
	}
	if err := qtx.UpdateIncidentSummary(ctx, db.UpdateIncidentSummaryParams{
		ID:      incident.ID,
		Summary: pipeline.Summarize(redacted, count),
	}); err != nil {
		return nil, fmt.Errorf("update incident summary: %w", err)
	}

	var notices []pendingNotice
	if created {
		notices = append(notices, pendingNotice{
			subject: notifier.SubjectIncidentCreated,
			notice: notifier.IncidentNotice{
				IncidentID: incident.ID,
				Title:      incident.Title,
				ClusterKey: ck,
				Status:     status,
				OccurredAt: now,
			},
		})
	}

	if status == db.StatusNoise && incident.Status == db.StatusNoise {
		if promoted := s.maybePromote(ctx, qtx, incident, ck, now); promoted != nil {
			notices = append(notices, *promoted)
		}
	}
	return notices, nil
}

// getOrCreateIncident resolves the incident for a cluster key. A concurrent
// insert of the same key loses the race on the unique index: the conflicting
// insert is a row-less no-op rather than an error, keeping the transaction
// usable on postgres, and the loser re-reads the winner's row.
func (s *ingestService) getOrCreateIncident(ctx context.Context, qtx db.Querier, ck, title, status string, now time.Time) (db.Incident, bool, error) {
	incident, err := qtx.GetIncidentByClusterKey(ctx, ck)
	if err == nil {
		return incident, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return db.Incident{}, false, err
	}

	incident, err = qtx.CreateIncident(ctx, db.CreateIncidentParams{
		Title:      title,
		ClusterKey: ck,
		Summary:    "",
		Count:      0,
		Status:     status,
		LastSeen:   now,
	})
	if err == nil {
		return incident, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) && !db.IsUniqueViolation(err) {
		return db.Incident{}, false, err
	}
	incident, err = qtx.GetIncidentByClusterKey(ctx, ck)
	return incident, false, err
}

// maybePromote applies the fail-then-success burst heuristic to a noise
// incident. Errors never break ingest; the event still lands and promotion
// is retried on the next arrival.
func (s *ingestService) maybePromote(ctx context.Context, qtx db.Querier, incident db.Incident, ck string, now time.Time) *pendingNotice {
	recent, err := qtx.ListEventsByClusterKey(ctx, db.ListEventsByClusterKeyParams{
		ClusterKey: ck,
		Limit:      promotionWindow,
	})
	if err != nil {
		s.log.Warn("promotion check failed", zap.Int64("incident_id", incident.ID), zap.Error(err))
		return nil
	}

	failures := 0
	for _, r := range recent {
		if strings.ToLower(r.EventType) == "auth_failure" {
			failures++
		}
	}
	hasRecentSuccess := false
	for i, r := range recent {
		if i >= 2 {
			break
		}
		if strings.ToLower(r.EventType) == "auth_success" {
			hasRecentSuccess = true
		}
	}
	if failures < promotionThreshold || !hasRecentSuccess {
		return nil
	}

	summary := fmt.Sprintf("Promotion: %d failures then success (possible credential stuffing → takeover)", failures)
	if err := qtx.PromoteIncident(ctx, db.PromoteIncidentParams{ID: incident.ID, Summary: summary}); err != nil {
		s.log.Warn("promotion update failed", zap.Int64("incident_id", incident.ID), zap.Error(err))
		return nil
	}
	return &pendingNotice{
		subject: notifier.SubjectIncidentPromoted,
		notice: notifier.IncidentNotice{
			IncidentID: incident.ID,
			Title:      incident.Title,
			ClusterKey: ck,
			Status:     db.StatusOpen,
			OccurredAt: now,
		},
	}
}

type pendingNotice struct {
	subject string
	notice  notifier.IncidentNotice
}

func (p pendingNotice) publish(ctx context.Context, n notifier.Notifier) error {
	if p.subject == notifier.SubjectIncidentPromoted {
		return n.IncidentPromoted(ctx, p.notice)
	}
	return n.IncidentCreated(ctx, p.notice)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
