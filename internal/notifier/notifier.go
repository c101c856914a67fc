// Package notifier publishes incident lifecycle events to NATS JetStream so
// downstream consumers (dashboards, pagers) can react without polling.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// IncidentNotice is the wire envelope for incident lifecycle messages.
type IncidentNotice struct {
	NoticeID   string    `json:"notice_id"`
	IncidentID int64     `json:"incident_id"`
	Title      string    `json:"title"`
	ClusterKey string    `json:"cluster_key"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier emits incident lifecycle events. Publishing is best-effort;
// callers log failures rather than failing the ingest.
type Notifier interface {
	IncidentCreated(ctx context.Context, notice IncidentNotice) error
	IncidentPromoted(ctx context.Context, notice IncidentNotice) error
}

// Nop is used when NATS_URL is unset.
type Nop struct{}

func (Nop) IncidentCreated(context.Context, IncidentNotice) error  { return nil }
func (Nop) IncidentPromoted(context.Context, IncidentNotice) error { return nil }

// JetStreamNotifier publishes notices through a JetStream client.
type JetStreamNotifier struct {
	client *Client
	log    *zap.Logger
}

func NewJetStreamNotifier(client *Client, logger *zap.Logger) *JetStreamNotifier {
	return &JetStreamNotifier{client: client, log: logger}
}

func (n *JetStreamNotifier) IncidentCreated(ctx context.Context, notice IncidentNotice) error {
	return n.publish(ctx, SubjectIncidentCreated, notice)
}

func (n *JetStreamNotifier) IncidentPromoted(ctx context.Context, notice IncidentNotice) error {
	return n.publish(ctx, SubjectIncidentPromoted, notice)
}

func (n *JetStreamNotifier) publish(ctx context.Context, subject string, notice IncidentNotice) error {
	if notice.NoticeID == "" {
		notice.NoticeID = uuid.NewString()
	}
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	if _, err := n.client.JS.Publish(subject, payload, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	n.log.Debug("incident notice published",
		zap.String("subject", subject),
		zap.Int64("incident_id", notice.IncidentID))
	return nil
}
