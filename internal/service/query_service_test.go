package service_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	db "github.com/arc-self/soc-triage/internal/repository/db"
	mockdb "github.com/arc-self/soc-triage/internal/repository/mock"
	"github.com/arc-self/soc-triage/internal/service"
)

func TestGetIncident(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(q *mockdb.MockQuerier)
		wantErr    bool
		wantSample string
	}{
		{
			name: "with sample event",
			setup: func(q *mockdb.MockQuerier) {
				q.EXPECT().GetIncident(gomock.Any(), int64(7)).Return(db.Incident{
					ID:     7,
					Title:  "auth - auth_failure",
					Count:  3,
					Status: db.StatusOpen,
				}, nil)
				q.EXPECT().LatestEventByIncident(gomock.Any(), int64(7)).Return(db.Event{
					ID:       12,
					Redacted: "login failed for user alice from [REDACTED:IP]",
				}, nil)
			},
			wantSample: "login failed for user alice from [REDACTED:IP]",
		},
		{
			name: "no events yet",
			setup: func(q *mockdb.MockQuerier) {
				q.EXPECT().GetIncident(gomock.Any(), int64(7)).Return(db.Incident{ID: 7}, nil)
				q.EXPECT().LatestEventByIncident(gomock.Any(), int64(7)).Return(db.Event{}, sql.ErrNoRows)
			},
			wantSample: "",
		},
		{
			name: "not found",
			setup: func(q *mockdb.MockQuerier) {
				q.EXPECT().GetIncident(gomock.Any(), int64(7)).Return(db.Incident{}, sql.ErrNoRows)
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQuerier := mockdb.NewMockQuerier(ctrl)
			tc.setup(mockQuerier)

			svc := service.NewQueryService(mockQuerier, 900)
			detail, err := svc.GetIncident(context.Background(), 7)

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, service.ErrNotFound)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantSample, detail.SampleRedacted)
			}
		})
	}
}

func TestIncidentEvidence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuerier := mockdb.NewMockQuerier(ctrl)
	mockQuerier.EXPECT().GetIncident(gomock.Any(), int64(3)).Return(db.Incident{
		ID:         3,
		ClusterKey: "ab12cd34ef56ab12",
		Status:     db.StatusOpen,
		Count:      2,
	}, nil)
	mockQuerier.EXPECT().ListEventsByIncident(gomock.Any(), db.ListEventsByIncidentParams{
		IncidentID: 3,
		Limit:      50,
	}).Return([]db.Event{
		{
			ID:         11,
			EventType:  "auth_failure",
			Normalized: "login failed for user alice from 10.0.0.1",
			Redacted:   "login failed for [REDACTED:EMAIL] from [REDACTED:IP]",
		},
		{
			ID:         10,
			EventType:  "auth_failure",
			Normalized: "login failed for user alice from 10.0.0.1",
			Redacted:   "login failed for [REDACTED:EMAIL] from [REDACTED:IP]",
		},
	}, nil)
	mockQuerier.EXPECT().ListApprovalsByIncident(gomock.Any(), int64(3)).Return([]db.Approval{
		{ID: 1, ActionName: "block_ip", Notes: "confirmed"},
	}, nil)

	svc := service.NewQueryService(mockQuerier, 900)
	ev, err := svc.IncidentEvidence(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, int64(3), ev.IncidentID)
	assert.Equal(t, "ab12cd34ef56ab12", ev.ClusterKey)
	require.NotNil(t, ev.WhyClustered.Window)
	assert.Equal(t, "auth_failure", ev.WhyClustered.Tokens["event_type"])
	assert.Contains(t, ev.WhyClustered.Tokens, "user")
	assert.Contains(t, ev.WhyClustered.Tokens, "ip")
	assert.Contains(t, ev.WhyClustered.Tokens, "time_bucket")
	assert.Equal(t, 900, ev.WhyClustered.Window.BucketSeconds)
	assert.NotEmpty(t, ev.WhyClustered.Window.WindowStartISO)
	assert.NotEmpty(t, ev.WhyClustered.Window.WindowEndISO)

	assert.Len(t, ev.EventSample, 2)
	assert.Equal(t, 2, ev.RedactionAggregate["EMAIL"])
	assert.Equal(t, 2, ev.RedactionAggregate["IP"])

	require.Len(t, ev.Approvals, 1)
	assert.Equal(t, "block_ip", ev.Approvals[0].ActionName)
}

func TestIncidentEvidenceNoEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuerier := mockdb.NewMockQuerier(ctrl)
	mockQuerier.EXPECT().GetIncident(gomock.Any(), int64(9)).Return(db.Incident{ID: 9}, nil)
	mockQuerier.EXPECT().ListEventsByIncident(gomock.Any(), gomock.Any()).Return([]db.Event{}, nil)
	mockQuerier.EXPECT().ListApprovalsByIncident(gomock.Any(), int64(9)).Return([]db.Approval{}, nil)

	svc := service.NewQueryService(mockQuerier, 900)
	ev, err := svc.IncidentEvidence(context.Background(), 9)
	require.NoError(t, err)

	assert.Empty(t, ev.WhyClustered.Tokens)
	assert.Nil(t, ev.WhyClustered.Window)
	assert.Empty(t, ev.EventSample)
	assert.Empty(t, ev.RedactionAggregate)
	assert.Empty(t, ev.Approvals)

	// The explanation serializes as an empty object, not null.
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"why_clustered":{}`)
}

func TestIncidentByEvent(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(q *mockdb.MockQuerier)
		wantErr bool
	}{
		{
			name: "resolves incident",
			setup: func(q *mockdb.MockQuerier) {
				q.EXPECT().GetEvent(gomock.Any(), int64(4)).Return(db.Event{ID: 4, IncidentID: 2}, nil)
				q.EXPECT().GetIncident(gomock.Any(), int64(2)).Return(db.Incident{
					ID: 2, ClusterKey: "ck", Status: db.StatusOpen,
				}, nil)
			},
		},
		{
			name: "event missing",
			setup: func(q *mockdb.MockQuerier) {
				q.EXPECT().GetEvent(gomock.Any(), int64(4)).Return(db.Event{}, sql.ErrNoRows)
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQuerier := mockdb.NewMockQuerier(ctrl)
			tc.setup(mockQuerier)

			svc := service.NewQueryService(mockQuerier, 900)
			ref, err := svc.IncidentByEvent(context.Background(), 4)

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, service.ErrNotFound)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(2), ref.IncidentID)
				assert.Equal(t, "ck", ref.ClusterKey)
			}
		})
	}
}

func TestRecentEventsClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int64
		wantLimit int64
	}{
		{"floor at zero", 0, 1},
		{"floor below zero", -3, 1},
		{"cap at five hundred", 9000, 500},
		{"passthrough", 25, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQuerier := mockdb.NewMockQuerier(ctrl)
			mockQuerier.EXPECT().ListRecentEvents(gomock.Any(), tc.wantLimit).Return([]db.RecentEvent{}, nil)

			svc := service.NewQueryService(mockQuerier, 900)
			_, err := svc.RecentEvents(context.Background(), tc.limit)
			require.NoError(t, err)
		})
	}
}

func TestMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuerier := mockdb.NewMockQuerier(ctrl)
	mockQuerier.EXPECT().CountEvents(gomock.Any()).Return(int64(10), nil)
	mockQuerier.EXPECT().CountIncidents(gomock.Any()).Return(int64(3), nil)
	mockQuerier.EXPECT().CountActiveIncidents(gomock.Any()).Return(int64(2), nil)
	mockQuerier.EXPECT().CountSuppressedEvents(gomock.Any()).Return(int64(7), nil)

	svc := service.NewQueryService(mockQuerier, 900)
	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), m.Events)
	assert.Equal(t, int64(3), m.Incidents)
	assert.Equal(t, int64(2), m.IncidentsActive)
	assert.Equal(t, int64(7), m.SuppressedEvents)
	assert.InDelta(t, 0.7, m.SuppressionRate, 1e-9)
	assert.InDelta(t, 0.8, m.SuppressionRateActive, 1e-9)
	assert.InDelta(t, 0.7, m.DupRate, 1e-9)
}

func TestMetricsEmptyStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuerier := mockdb.NewMockQuerier(ctrl)
	mockQuerier.EXPECT().CountEvents(gomock.Any()).Return(int64(0), nil)
	mockQuerier.EXPECT().CountIncidents(gomock.Any()).Return(int64(0), nil)
	mockQuerier.EXPECT().CountActiveIncidents(gomock.Any()).Return(int64(0), nil)
	mockQuerier.EXPECT().CountSuppressedEvents(gomock.Any()).Return(int64(0), nil)

	svc := service.NewQueryService(mockQuerier, 900)
	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	assert.Zero(t, m.SuppressionRate)
	assert.Zero(t, m.SuppressionRateActive)
	assert.Zero(t, m.DupRate)
}
