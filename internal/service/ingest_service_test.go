package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/arc-self/soc-triage/internal/config"
	"github.com/arc-self/soc-triage/internal/notifier"
	"github.com/arc-self/soc-triage/internal/pipeline"
	db "github.com/arc-self/soc-triage/internal/repository/db"
	mockdb "github.com/arc-self/soc-triage/internal/repository/mock"
)

// recordingNotifier captures lifecycle notices for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	created  []notifier.IncidentNotice
	promoted []notifier.IncidentNotice
}

func (r *recordingNotifier) IncidentCreated(_ context.Context, n notifier.IncidentNotice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, n)
	return nil
}

func (r *recordingNotifier) IncidentPromoted(_ context.Context, n notifier.IncidentNotice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.promoted = append(r.promoted, n)
	return nil
}

var testIngestTime = time.Date(2025, 8, 22, 10, 0, 0, 0, time.UTC)

func newTestIngest(t *testing.T, cfg config.Config) (*ingestService, *sqlx.DB, *db.Queries, *recordingNotifier) {
	t.Helper()
	conn, driver, err := db.Open("sqlite:///" + filepath.Join(t.TempDir(), "soc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.EnsureSchema(context.Background(), conn, driver))

	if cfg.DefaultResidencyTag == "" {
		cfg.DefaultResidencyTag = "SA"
	}
	if cfg.BucketSeconds == 0 {
		cfg.BucketSeconds = 900
	}
	if cfg.BenignTypes == nil {
		cfg.BenignTypes = map[string]struct{}{"auth_success": {}}
	}
	if cfg.CriticalTypes == nil {
		cfg.CriticalTypes = map[string]struct{}{
			"auth_failure": {}, "mfa_bypass": {}, "api_key_use": {}, "privilege_escalation": {},
		}
	}

	queries := db.New(conn)
	rec := &recordingNotifier{}
	svc := &ingestService{
		conn:     conn,
		querier:  queries,
		cfg:      cfg,
		notifier: rec,
		log:      zaptest.NewLogger(t),
		now:      func() time.Time { return testIngestTime },
	}
	return svc, conn, queries, rec
}

func TestIngestBenignBecomesNoise(t *testing.T) {
	svc, _, queries, rec := newTestIngest(t, config.Config{})
	ctx := context.Background()

	summary, err := svc.IngestBatch(ctx, []pipeline.Event{{
		Source:    "auth",
		EventType: "auth_success",
		Message:   "login for user a@x.com from 1.2.3.4",
		TS:        "2025-08-22T10:00:00Z",
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Ingested)
	assert.Equal(t, int64(1), summary.Events)
	assert.Equal(t, int64(1), summary.Incidents)
	assert.Zero(t, summary.SuppressionRate)

	incidents, err := queries.ListIncidents(ctx)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, db.StatusNoise, incidents[0].Status)
	assert.Equal(t, int64(1), incidents[0].Count)

	latest, err := queries.LatestEventByIncident(ctx, incidents[0].ID)
	require.NoError(t, err)
	assert.Contains(t, latest.Redacted, "[REDACTED:EMAIL]")
	assert.Contains(t, latest.Redacted, "[REDACTED:IP]")
	assert.Empty(t, latest.Raw)

	require.Len(t, rec.created, 1)
	assert.Equal(t, db.StatusNoise, rec.created[0].Status)
	assert.Empty(t, rec.promoted)
}

func TestIngestCriticalOpensIncident(t *testing.T) {
	svc, _, queries, _ := newTestIngest(t, config.Config{})
	ctx := context.Background()

	_, err := svc.IngestBatch(ctx, []pipeline.Event{{
		Source:    "auth",
		EventType: "auth_failure",
		Message:   "login failed for user bob",
		User:      "bob",
		IP:        "9.9.9.9",
	}})
	require.NoError(t, err)

	incidents, err := queries.ListIncidents(ctx)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, db.StatusOpen, incidents[0].Status)
	assert.Equal(t, "auth - auth_failure", incidents[0].Title)
	assert.Contains(t, incidents[0].Summary, "1 hits")
}

func TestIngestEmptyBatch(t *testing.T) {
	svc, _, queries, _ := newTestIngest(t, config.Config{})
	ctx := context.Background()

	summary, err := svc.IngestBatch(ctx, nil)
	require.NoError(t, err)

	assert.Zero(t, summary.Ingested)
	assert.Zero(t, summary.Events)
	assert.Zero(t, summary.Incidents)
	assert.Zero(t, summary.SuppressionRate)

	n, err := queries.CountEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIngestBucketSplitsClusters(t *testing.T) {
	svc, _, queries, _ := newTestIngest(t, config.Config{})
	ctx := context.Background()

	base := pipeline.Event{
		Source:    "auth",
		EventType: "auth_failure",
		Message:   "login failed",
		User:      "bob",
		IP:        "1.2.3.4",
	}
	first := base
	first.TS = "2025-08-25T10:00:00Z"
	second := base
	second.TS = "2025-08-25T10:20:00Z"

	summary, err := svc.IngestBatch(ctx, []pipeline.Event{first, second})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Ingested)
	assert.Equal(t, int64(2), summary.Incidents)

	incidents, err := queries.ListIncidents(ctx)
	require.NoError(t, err)
	assert.Len(t, incidents, 2)
	assert.NotEqual(t, incidents[0].ClusterKey, incidents[1].ClusterKey)
}

func TestIngestRedactsPII(t *testing.T) {
	svc, _, queries, _ := newTestIngest(t, config.Config{})
	ctx := context.Background()

	_, err := svc.IngestBatch(ctx, []pipeline.Event{{
		Source:    "app",
		EventType: "suspicious_call",
		Message:   "User john.doe@example.com from 192.168.1.1 called +1 (416) 555-1212",
	}})
	require.NoError(t, err)

	incidents, err := queries.ListIncidents(ctx)
	require.NoError(t, err)
	require.Len(t, incidents, 1)

	latest, err := queries.LatestEventByIncident(ctx, incidents[0].ID)
	require.NoError(t, err)
	assert.NotContains(t, latest.Redacted, "example.com")
	assert.NotContains(t, latest.Redacted, "192.168.1.1")
	assert.NotContains(t, latest.Redacted, "416")

	total := 0
	for _, n := range pipeline.SentinelCounts(latest.Redacted) {
		total += n
	}
	assert.GreaterOrEqual(t, total, 3)
}

func TestIngestSuppressionRate(t *testing.T) {
	svc, _, _, _ := newTestIngest(t, config.Config{})
	ctx := context.Background()

	// 10 events collapsing into 3 clusters: 6 + 3 + 1.
	var batch []pipeline.Event
	add := func(user string, n int) {
		for i := 0; i < n; i++ {
			batch = append(batch, pipeline.Event{
				Source:    "auth",
				EventType: "auth_failure",
				Message:   "login failed",
				User:      user,
				IP:        "1.2.3.4",
				TS:        "2025-08-22T10:00:00Z",
			})
		}
	}
	add("alice", 6)
	add("bob", 3)
	add("carol", 1)

	summary, err := svc.IngestBatch(ctx, batch)
	require.NoError(t, err)

	assert.Equal(t, 10, summary.Ingested)
	assert.Equal(t, int64(10), summary.Events)
	assert.Equal(t, int64(3), summary.Incidents)
	assert.InDelta(t, 0.7, summary.SuppressionRate, 1e-9)
}

func TestIngestRollupInvariants(t *testing.T) {
	svc, _, queries, _ := newTestIngest(t, config.Config{})
	ctx := context.Background()

	var batch []pipeline.Event
	for i := 0; i < 4; i++ {
		batch = append(batch, pipeline.Event{
			Source:    "auth",
			EventType: "auth_failure",
			Message:   "login failed for user alice from 10.0.0.1",
			TS:        "2025-08-22T10:05:00Z",
		})
	}
	_, err := svc.IngestBatch(ctx, batch)
	require.NoError(t, err)

	incidents, err := queries.ListIncidents(ctx)
	require.NoError(t, err)
	require.Len(t, incidents, 1)

	inc := incidents[0]
	assert.Equal(t, int64(4), inc.Count)
	assert.Contains(t, inc.Summary, "4 hits")

	events, err := queries.ListEventsByIncident(ctx, db.ListEventsByIncidentParams{IncidentID: inc.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 4)
	for _, e := range events {
		assert.Equal(t, inc.ID, e.IncidentID)
		assert.Equal(t, inc.ClusterKey, e.ClusterKey)
	}
}

func TestIngestStoreRaw(t *testing.T) {
	svc, _, queries, _ := newTestIngest(t, config.Config{StoreRaw: true})
	ctx := context.Background()

	_, err := svc.IngestBatch(ctx, []pipeline.Event{{
		Source:    "auth",
		EventType: "auth_failure",
		Message:   "login failed for a@x.com",
	}})
	require.NoError(t, err)

	incidents, err := queries.ListIncidents(ctx)
	require.NoError(t, err)
	latest, err := queries.LatestEventByIncident(ctx, incidents[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "login failed for a@x.com", latest.Raw)
	assert.NotContains(t, latest.Redacted, "a@x.com")
}

func TestPromotionBurst(t *testing.T) {
	svc, _, queries, rec := newTestIngest(t, config.Config{})
	ctx := context.Background()

	success := pipeline.Event{
		Source:    "auth",
		EventType: "auth_success",
		Message:   "login ok",
		User:      "bob",
		IP:        "1.2.3.4",
		TS:        "2025-08-22T10:00:00Z",
	}
	// The success event's own cluster must already hold the failure burst;
	// event_type is part of the key, so the rows are seeded under the key the
	// success will land on.
	ck, _ := pipeline.ClusterKey(success, pipeline.Normalize(success), testIngestTime, 900)

	inc, err := queries.CreateIncident(ctx, db.CreateIncidentParams{
		Title:      "auth - auth_success",
		ClusterKey: ck,
		Status:     db.StatusNoise,
		Count:      5,
		LastSeen:   testIngestTime,
	})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = queries.CreateEvent(ctx, db.CreateEventParams{
			Source:     "auth",
			EventType:  "auth_failure",
			Redacted:   "login failed for user bob from [REDACTED:IP]",
			ClusterKey: ck,
			IncidentID: inc.ID,
			CreatedAt:  testIngestTime,
		})
		require.NoError(t, err)
	}

	_, err = svc.IngestBatch(ctx, []pipeline.Event{success})
	require.NoError(t, err)

	got, err := queries.GetIncidentByClusterKey(ctx, ck)
	require.NoError(t, err)
	assert.Equal(t, db.StatusOpen, got.Status)
	assert.True(t, strings.HasPrefix(got.Summary, "Promotion: 5 failures then success"), got.Summary)
	assert.Equal(t, int64(6), got.Count)

	require.Len(t, rec.promoted, 1)
	assert.Equal(t, inc.ID, rec.promoted[0].IncidentID)
	assert.Empty(t, rec.created)
}

func TestPromotionNeedsRecentSuccess(t *testing.T) {
	svc, _, queries, rec := newTestIngest(t, config.Config{})
	ctx := context.Background()

	success := pipeline.Event{
		Source:    "auth",
		EventType: "auth_success",
		Message:   "login ok",
		User:      "bob",
		IP:        "1.2.3.4",
		TS:        "2025-08-22T10:00:00Z",
	}
	ck, _ := pipeline.ClusterKey(success, pipeline.Normalize(success), testIngestTime, 900)

	inc, err := queries.CreateIncident(ctx, db.CreateIncidentParams{
		Title:      "auth - auth_success",
		ClusterKey: ck,
		Status:     db.StatusNoise,
		Count:      4,
		LastSeen:   testIngestTime,
	})
	require.NoError(t, err)
	// Only 4 failures: below the threshold.
	for i := 0; i < 4; i++ {
		_, err = queries.CreateEvent(ctx, db.CreateEventParams{
			Source:     "auth",
			EventType:  "auth_failure",
			ClusterKey: ck,
			IncidentID: inc.ID,
			CreatedAt:  testIngestTime,
		})
		require.NoError(t, err)
	}

	_, err = svc.IngestBatch(ctx, []pipeline.Event{success})
	require.NoError(t, err)

	got, err := queries.GetIncidentByClusterKey(ctx, ck)
	require.NoError(t, err)
	assert.Equal(t, db.StatusNoise, got.Status)
	assert.Empty(t, rec.promoted)
}

// Two concurrent batches can race on the same fresh cluster key. The loser's
// insert yields no row (or, defensively, a unique violation); it must re-read
// the winner's incident and attach its event there instead of failing the
// batch.
func TestIngestAttachesToConcurrentWinner(t *testing.T) {
	winner := db.Incident{
		ID:         9,
		Title:      "auth - auth_failure",
		ClusterKey: "ck",
		Status:     db.StatusOpen,
		Count:      2,
	}

	conflicts := []struct {
		name string
		err  error
	}{
		{"insert no-op", sql.ErrNoRows},
		{"unique violation", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}},
	}
	for _, tc := range conflicts {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			q := mockdb.NewMockQuerier(ctrl)

			gomock.InOrder(
				q.EXPECT().GetIncidentByClusterKey(gomock.Any(), gomock.Any()).Return(db.Incident{}, sql.ErrNoRows),
				q.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Return(db.Incident{}, tc.err),
				q.EXPECT().GetIncidentByClusterKey(gomock.Any(), gomock.Any()).Return(winner, nil),
			)
			q.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, arg db.CreateEventParams) (db.Event, error) {
					assert.Equal(t, winner.ID, arg.IncidentID)
					return db.Event{ID: 5, IncidentID: arg.IncidentID}, nil
				})
			q.EXPECT().IncrementIncidentCount(gomock.Any(), db.IncrementIncidentCountParams{
				ID:       winner.ID,
				LastSeen: testIngestTime,
			}).Return(int64(3), nil)
			q.EXPECT().UpdateIncidentSummary(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, arg db.UpdateIncidentSummaryParams) error {
					assert.Equal(t, winner.ID, arg.ID)
					assert.Contains(t, arg.Summary, "3 hits")
					return nil
				})

			svc := &ingestService{
				cfg: config.Config{
					DefaultResidencyTag: "SA",
					BucketSeconds:       900,
					BenignTypes:         map[string]struct{}{"auth_success": {}},
					CriticalTypes:       map[string]struct{}{"auth_failure": {}},
				},
				notifier: &recordingNotifier{},
				log:      zaptest.NewLogger(t),
				now:      func() time.Time { return testIngestTime },
			}

			notices, err := svc.ingestOne(context.Background(), q, pipeline.Event{
				Source:    "auth",
				EventType: "auth_failure",
				Message:   "login failed",
				User:      "bob",
				IP:        "1.2.3.4",
			}, testIngestTime)
			require.NoError(t, err)
			assert.Empty(t, notices, "the losing side must not announce a created incident")
		})
	}
}
