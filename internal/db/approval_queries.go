/*-------------------------------------------------------------------------
 *
 * approval_queries.go
 *    Database queries for approval requests
 *
 * Status transitions and the monotonic reminder/escalation flags are
 * enforced with single-row guarded UPDATEs, so a concurrent decision
 * and scheduler sweep touching the same row cannot interleave.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/db/approval_queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

/* Approval request queries */
const (
	createApprovalRequestQuery = `
		INSERT INTO hr_support.approval_requests
		(id, tenant_id, employee_id, employee_name, request_type, request_details,
		 context, status, priority, assigned_role)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	getApprovalRequestQuery = `SELECT * FROM hr_support.approval_requests WHERE id = $1`

	updateDecisionQuery = `
		UPDATE hr_support.approval_requests
		SET status = $2, decided_by = $3, decision_note = $4, decided_at = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING *`

	listPendingApprovalsQuery = `
		SELECT * FROM hr_support.approval_requests
		WHERE tenant_id = $1 AND status = 'pending'
		AND assigned_role = ANY($2)
		ORDER BY created_at ASC`

	listAllPendingApprovalsQuery = `
		SELECT * FROM hr_support.approval_requests
		WHERE status = 'pending'
		ORDER BY created_at ASC`

	listEmployeeApprovalsQuery = `
		SELECT * FROM hr_support.approval_requests
		WHERE tenant_id = $1 AND LOWER(TRIM(employee_id)) = $2
		ORDER BY created_at DESC`

	markReminderSentQuery = `
		UPDATE hr_support.approval_requests
		SET reminder_sent = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND NOT reminder_sent`

	markEscalatedQuery = `
		UPDATE hr_support.approval_requests
		SET escalated = TRUE, status = 'escalated', updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND NOT escalated`
)

/* CreateApprovalRequest inserts a new pending approval request */
func (q *Queries) CreateApprovalRequest(ctx context.Context, req *ApprovalRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.Status == "" {
		req.Status = StatusPending
	}
	if req.Priority == "" {
		req.Priority = PriorityNormal
	}
	if req.AssignedRole == "" {
		req.AssignedRole = RoleManager
	}

	detailsValue, err := req.RequestDetails.Value()
	if err != nil {
		return fmt.Errorf("failed to convert request details: %w", err)
	}

	err = q.DB.QueryRowxContext(ctx, createApprovalRequestQuery,
		req.ID, req.TenantID, req.EmployeeID, req.EmployeeName, req.RequestType,
		detailsValue, req.Context, req.Status, req.Priority, req.AssignedRole,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("approval request creation failed: tenant='%s', employee='%s', type='%s', error=%w",
			req.TenantID, req.EmployeeID, req.RequestType, err)
	}
	return nil
}

/* GetApprovalRequest gets an approval request by ID */
func (q *Queries) GetApprovalRequest(ctx context.Context, id uuid.UUID) (*ApprovalRequest, error) {
	var req ApprovalRequest
	err := q.DB.GetContext(ctx, &req, getApprovalRequestQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("approval request %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get approval request: id='%s', error=%w", id, err)
	}
	return &req, nil
}

/* UpdateDecision records a decision on a request. Re-deciding an already
 * decided request overwrites the previous decision; only a missing id is
 * an error. */
func (q *Queries) UpdateDecision(ctx context.Context, id uuid.UUID, status, decidedBy, note string, decidedAt time.Time) (*ApprovalRequest, error) {
	var req ApprovalRequest
	var notePtr *string
	if note != "" {
		notePtr = &note
	}
	err := q.DB.GetContext(ctx, &req, updateDecisionQuery, id, status, decidedBy, notePtr, decidedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("approval request %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("decision update failed: id='%s', status='%s', error=%w", id, status, err)
	}
	return &req, nil
}

/* ListPendingApprovals lists pending requests assigned to any of the given roles */
func (q *Queries) ListPendingApprovals(ctx context.Context, tenantID string, roles []string) ([]ApprovalRequest, error) {
	reqs := []ApprovalRequest{}
	err := q.DB.SelectContext(ctx, &reqs, listPendingApprovalsQuery, tenantID, pq.Array(roles))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: tenant='%s', error=%w", tenantID, err)
	}
	return reqs, nil
}

/* ListAllPendingApprovals lists every pending request across tenants, oldest first */
func (q *Queries) ListAllPendingApprovals(ctx context.Context) ([]ApprovalRequest, error) {
	reqs := []ApprovalRequest{}
	err := q.DB.SelectContext(ctx, &reqs, listAllPendingApprovalsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	return reqs, nil
}

/* ListEmployeeApprovals lists all requests submitted by an employee */
func (q *Queries) ListEmployeeApprovals(ctx context.Context, tenantID, employeeID string) ([]ApprovalRequest, error) {
	reqs := []ApprovalRequest{}
	normalized := strings.ToLower(strings.TrimSpace(employeeID))
	err := q.DB.SelectContext(ctx, &reqs, listEmployeeApprovalsQuery, tenantID, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee approvals: tenant='%s', employee='%s', error=%w",
			tenantID, employeeID, err)
	}
	return reqs, nil
}

/* MarkReminderSent flips the reminder flag. Returns false when the row was
 * already flagged or is no longer pending. */
func (q *Queries) MarkReminderSent(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := q.DB.ExecContext(ctx, markReminderSentQuery, id)
	if err != nil {
		return false, fmt.Errorf("reminder flag update failed: id='%s', error=%w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}

/* MarkEscalated transitions a pending request to escalated. Returns false
 * when the row was already escalated or decided. */
func (q *Queries) MarkEscalated(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := q.DB.ExecContext(ctx, markEscalatedQuery, id)
	if err != nil {
		return false, fmt.Errorf("escalation update failed: id='%s', error=%w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}
