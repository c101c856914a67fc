package db

import (
	"context"
	"time"
)

type CreateApprovalParams struct {
	IncidentID int64
	ActionName string
	ApprovedBy string
	ApprovedAt time.Time
	Notes      string
}

func (q *Queries) CreateApproval(ctx context.Context, arg CreateApprovalParams) (Approval, error) {
	query := q.db.Rebind(`INSERT INTO approvals (incident_id, action_name, approved_by, approved_at, notes)
VALUES (?, ?, ?, ?, ?)
RETURNING id`)
	ap := Approval{
		IncidentID: arg.IncidentID,
		ActionName: arg.ActionName,
		ApprovedBy: arg.ApprovedBy,
		ApprovedAt: arg.ApprovedAt,
		Notes:      arg.Notes,
	}
	err := q.db.GetContext(ctx, &ap.ID, query,
		arg.IncidentID, arg.ActionName, arg.ApprovedBy, arg.ApprovedAt, arg.Notes)
	return ap, err
}

func (q *Queries) ListApprovalsByIncident(ctx context.Context, incidentID int64) ([]Approval, error) {
	query := q.db.Rebind(`SELECT id, incident_id, action_name, approved_by, approved_at, notes
FROM approvals WHERE incident_id = ? ORDER BY id ASC`)
	approvals := []Approval{}
	err := q.db.SelectContext(ctx, &approvals, query, incidentID)
	return approvals, err
}
