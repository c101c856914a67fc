package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arc-self/soc-triage/internal/playbooks"
	db "github.com/arc-self/soc-triage/internal/repository/db"
)

type ActionSuggestion struct {
	IncidentID int64    `json:"incident_id"`
	Actions    []string `json:"actions"`
}

type ApprovalReceipt struct {
	OK         bool  `json:"ok"`
	ApprovalID int64 `json:"approval_id"`
}

type ApproveActionInput struct {
	IncidentID int64
	ActionName string
	ApprovedBy string
	Notes      string
}

// ApprovalService suggests playbook actions for an incident and records
// analyst approvals. Approvals are append-only; nothing here executes the
// approved action.
type ApprovalService interface {
	SuggestActions(ctx context.Context, incidentID int64) (ActionSuggestion, error)
	ApproveAction(ctx context.Context, input ApproveActionInput) (ApprovalReceipt, error)
}

type approvalService struct {
	querier db.Querier
	now     func() time.Time
}

func NewApprovalService(q db.Querier) ApprovalService {
	return &approvalService{
		querier: q,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SuggestActions picks the playbook matching the incident's most recent
// event type. Incidents without events fall through to the default playbook.
func (s *approvalService) SuggestActions(ctx context.Context, incidentID int64) (ActionSuggestion, error) {
	if _, err := s.querier.GetIncident(ctx, incidentID); err != nil {
		return ActionSuggestion{}, incidentLookupErr(err)
	}

	eventType := ""
	latest, err := s.querier.LatestEventByIncident(ctx, incidentID)
	switch {
	case err == nil:
		eventType = latest.EventType
	case !errors.Is(err, sql.ErrNoRows):
		return ActionSuggestion{}, fmt.Errorf("latest event: %w", err)
	}

	return ActionSuggestion{
		IncidentID: incidentID,
		Actions:    playbooks.SuggestActions(eventType),
	}, nil
}

func (s *approvalService) ApproveAction(ctx context.Context, input ApproveActionInput) (ApprovalReceipt, error) {
	if input.ActionName == "" {
		return ApprovalReceipt{}, fmt.Errorf("%w: action_name is required", ErrInvalidInput)
	}
	if _, err := s.querier.GetIncident(ctx, input.IncidentID); err != nil {
		return ApprovalReceipt{}, incidentLookupErr(err)
	}

	approvedBy := input.ApprovedBy
	if approvedBy == "" {
		approvedBy = db.DefaultApprover
	}
	approval, err := s.querier.CreateApproval(ctx, db.CreateApprovalParams{
		IncidentID: input.IncidentID,
		ActionName: input.ActionName,
		ApprovedBy: approvedBy,
		ApprovedAt: s.now(),
		Notes:      input.Notes,
	})
	if err != nil {
		return ApprovalReceipt{}, fmt.Errorf("create approval: %w", err)
	}
	return ApprovalReceipt{OK: true, ApprovalID: approval.ID}, nil
}
