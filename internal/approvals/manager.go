/*-------------------------------------------------------------------------
 *
 * manager.go
 *    Approval request lifecycle manager
 *
 * Owns creation, decision, and listing of approval requests plus the
 * notification rows hung off each transition. Persistence goes through
 * the Store interface so the lifecycle rules can be exercised without a
 * live database.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/approvals/manager.go
 *
 *-------------------------------------------------------------------------
 */

package approvals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/metrics"
	"github.com/teamai-botivate/HR-Support/internal/records"
	"github.com/teamai-botivate/HR-Support/internal/utils"
)

/* Store is the persistence surface the manager needs. *db.Queries
 * implements it; tests use an in-memory fake. */
type Store interface {
	CreateApprovalRequest(ctx context.Context, req *db.ApprovalRequest) error
	GetApprovalRequest(ctx context.Context, id uuid.UUID) (*db.ApprovalRequest, error)
	UpdateDecision(ctx context.Context, id uuid.UUID, status, decidedBy, note string, decidedAt time.Time) (*db.ApprovalRequest, error)
	ListPendingApprovals(ctx context.Context, tenantID string, roles []string) ([]db.ApprovalRequest, error)
	ListAllPendingApprovals(ctx context.Context) ([]db.ApprovalRequest, error)
	ListEmployeeApprovals(ctx context.Context, tenantID, employeeID string) ([]db.ApprovalRequest, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) (bool, error)
	MarkEscalated(ctx context.Context, id uuid.UUID) (bool, error)
	CreateNotification(ctx context.Context, n *db.Notification) error
	ListNotifications(ctx context.Context, tenantID, employeeID string, includeAuthority bool) ([]db.Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) (bool, error)
}

/* Deliverer pushes a stored notification to an external channel.
 * Delivery is best-effort; failures are logged and never block the
 * lifecycle transition that produced the notification. */
type Deliverer interface {
	Name() string
	Deliver(ctx context.Context, n *db.Notification) error
}

/* Manager drives the approval request lifecycle */
type Manager struct {
	store         Store
	summarizer    *Summarizer
	deliverers    []Deliverer
	mirror        records.Adapter
	reminderAfter time.Duration
	escalateAfter time.Duration
	now           func() time.Time
}

/* ManagerConfig bundles the manager's dependencies */
type ManagerConfig struct {
	Store         Store
	Summarizer    *Summarizer
	Deliverers    []Deliverer
	Mirror        records.Adapter
	ReminderAfter time.Duration
	EscalateAfter time.Duration
}

/* NewManager creates a lifecycle manager */
func NewManager(cfg ManagerConfig) *Manager {
	reminderAfter := cfg.ReminderAfter
	if reminderAfter <= 0 {
		reminderAfter = 48 * time.Hour
	}
	escalateAfter := cfg.EscalateAfter
	if escalateAfter <= 0 {
		escalateAfter = 72 * time.Hour
	}
	return &Manager{
		store:         cfg.Store,
		summarizer:    cfg.Summarizer,
		deliverers:    cfg.Deliverers,
		mirror:        cfg.Mirror,
		reminderAfter: reminderAfter,
		escalateAfter: escalateAfter,
		now:           time.Now,
	}
}

/* CreateParams describes a new approval request. Context carries the
 * employee's original message; Record is the employee's current record
 * (already redacted) and feeds summary generation. */
type CreateParams struct {
	TenantID     string
	EmployeeID   string
	EmployeeName string
	RequestType  string
	Details      map[string]interface{}
	Context      string
	Priority     string
	AssignedRole string
	Record       records.Record
}

/* Create opens a new pending approval request, notifies the authority
 * channel, and mirrors the row to the record store when one is
 * configured. Summary generation and mirroring are best-effort; only
 * the insert itself can fail the call. */
func (m *Manager) Create(ctx context.Context, params CreateParams) (*db.ApprovalRequest, error) {
	if err := utils.ValidateRequiredWithError(params.TenantID, "tenant_id"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequiredWithError(params.EmployeeID, "employee_id"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequiredWithError(params.RequestType, "request_type"); err != nil {
		return nil, err
	}

	/* The generated summary is stored inside the details alongside the
	 * extracted fields; the context column keeps the original message. */
	summary := m.summarizer.Summarize(ctx, params.RequestType, params.Record, params.Details)
	details := make(map[string]interface{}, len(params.Details)+1)
	for k, v := range params.Details {
		details[k] = v
	}
	details["summary_report"] = summary

	req := &db.ApprovalRequest{
		TenantID:       params.TenantID,
		EmployeeID:     params.EmployeeID,
		RequestType:    params.RequestType,
		RequestDetails: db.FromMap(details),
		Priority:       params.Priority,
		AssignedRole:   params.AssignedRole,
	}
	if params.EmployeeName != "" {
		name := params.EmployeeName
		req.EmployeeName = &name
	}
	if params.Context != "" {
		msg := params.Context
		req.Context = &msg
	}

	if err := m.store.CreateApprovalRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create approval request: %w", err)
	}
	metrics.RecordApprovalCreated(req.RequestType)
	metrics.InfoWithContext(ctx, "approval request created", map[string]interface{}{
		"approval_id":  req.ID.String(),
		"request_type": req.RequestType,
		"employee_id":  req.EmployeeID,
	})

	m.notify(ctx, &db.Notification{
		TenantID:         req.TenantID,
		TargetEmployeeID: db.AuthorityTarget,
		Title:            fmt.Sprintf("New %s request", req.RequestType),
		Message:          summary,
		NotificationType: db.NotificationApprovalRequest,
		RelatedRequestID: &req.ID,
	})
	m.mirrorCreate(ctx, req)

	return req, nil
}

/* Decide records an approve/reject decision. Re-deciding an already
 * decided request overwrites the previous decision; only an unknown id
 * fails. The submitting employee gets a decision notification. */
func (m *Manager) Decide(ctx context.Context, id uuid.UUID, status, decidedBy, note string) (*db.ApprovalRequest, error) {
	if status != db.StatusApproved && status != db.StatusRejected {
		return nil, fmt.Errorf("invalid decision status: '%s' (must be '%s' or '%s')",
			status, db.StatusApproved, db.StatusRejected)
	}
	if err := utils.ValidateRequiredWithError(decidedBy, "decided_by"); err != nil {
		return nil, err
	}

	req, err := m.store.UpdateDecision(ctx, id, status, decidedBy, note, m.now().UTC())
	if err != nil {
		return nil, err
	}
	metrics.RecordApprovalDecided(status)
	metrics.InfoWithContext(ctx, "approval request decided", map[string]interface{}{
		"approval_id": req.ID.String(),
		"status":      status,
		"decided_by":  decidedBy,
	})

	message := fmt.Sprintf("Your %s request has been %s by %s.", req.RequestType, status, decidedBy)
	if note != "" {
		message += " Note: " + note
	}
	m.notify(ctx, &db.Notification{
		TenantID:         req.TenantID,
		TargetEmployeeID: req.EmployeeID,
		Title:            fmt.Sprintf("Request %s", status),
		Message:          message,
		NotificationType: db.NotificationDecisionUpdate,
		RelatedRequestID: &req.ID,
	})
	m.mirrorDecision(ctx, req)

	return req, nil
}

/* Get fetches one approval request */
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*db.ApprovalRequest, error) {
	return m.store.GetApprovalRequest(ctx, id)
}

/* visibleRoles maps an authority role to the assigned roles whose
 * pending queue it may see. Admin and CEO see everything; HR additionally
 * covers the manager queue. */
func visibleRoles(role string) []string {
	switch role {
	case db.RoleAdmin, db.RoleCEO:
		return db.AuthorityRoles
	case db.RoleHR:
		return []string{db.RoleManager, db.RoleHR}
	case db.RoleManager:
		return []string{db.RoleManager}
	default:
		return nil
	}
}

/* ListPending returns the pending queue visible to the given authority role */
func (m *Manager) ListPending(ctx context.Context, tenantID, role string) ([]db.ApprovalRequest, error) {
	roles := visibleRoles(role)
	if roles == nil {
		return nil, fmt.Errorf("role '%s' may not view the pending approval queue", role)
	}
	return m.store.ListPendingApprovals(ctx, tenantID, roles)
}

/* ListForEmployee returns all requests the employee has submitted, newest first */
func (m *Manager) ListForEmployee(ctx context.Context, tenantID, employeeID string) ([]db.ApprovalRequest, error) {
	return m.store.ListEmployeeApprovals(ctx, tenantID, employeeID)
}

/* Notifications returns notifications targeted at the employee.
 * Authority-channel notifications are included for authority roles. */
func (m *Manager) Notifications(ctx context.Context, tenantID, employeeID, role string) ([]db.Notification, error) {
	return m.store.ListNotifications(ctx, tenantID, employeeID, db.IsAuthorityRole(role))
}

/* MarkNotificationRead flips the read flag; returns false when already read */
func (m *Manager) MarkNotificationRead(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.store.MarkNotificationRead(ctx, id)
}

/* notify stores a notification and pushes it to external channels.
 * Failures are logged; the caller's transition has already committed. */
func (m *Manager) notify(ctx context.Context, n *db.Notification) {
	if err := m.store.CreateNotification(ctx, n); err != nil {
		metrics.ErrorWithContext(ctx, "failed to store notification", err, map[string]interface{}{
			"notification_type": n.NotificationType,
			"target":            n.TargetEmployeeID,
		})
		return
	}
	for _, d := range m.deliverers {
		if err := d.Deliver(ctx, n); err != nil {
			metrics.WarnWithContext(ctx, "notification delivery failed", map[string]interface{}{
				"channel":           d.Name(),
				"notification_type": n.NotificationType,
				"error":             err.Error(),
			})
		}
	}
}

func (m *Manager) mirrorCreate(ctx context.Context, req *db.ApprovalRequest) {
	if m.mirror == nil {
		return
	}
	row := map[string]interface{}{
		"request_id":   req.ID.String(),
		"tenant_id":    req.TenantID,
		"employee_id":  req.EmployeeID,
		"request_type": req.RequestType,
		"status":       req.Status,
		"priority":     req.Priority,
		"created_at":   req.CreatedAt.UTC().Format(time.RFC3339),
	}
	if s, ok := req.RequestDetails["summary_report"].(string); ok {
		row["summary"] = s
	}
	if req.Context != nil {
		row["context"] = *req.Context
	}
	if _, err := m.mirror.CreateRecord(ctx, row); err != nil {
		metrics.WarnWithContext(ctx, "approval mirror write failed", map[string]interface{}{
			"approval_id": req.ID.String(),
			"error":       err.Error(),
		})
	}
}

func (m *Manager) mirrorDecision(ctx context.Context, req *db.ApprovalRequest) {
	if m.mirror == nil {
		return
	}
	updates := map[string]interface{}{
		"status": req.Status,
	}
	if req.DecidedBy != nil {
		updates["decided_by"] = *req.DecidedBy
	}
	if req.DecidedAt != nil {
		updates["decided_at"] = req.DecidedAt.UTC().Format(time.RFC3339)
	}
	if req.DecisionNote != nil {
		updates["decision_note"] = *req.DecisionNote
	}
	if _, err := m.mirror.SetFields(ctx, "request_id", req.ID.String(), updates); err != nil {
		metrics.WarnWithContext(ctx, "approval mirror update failed", map[string]interface{}{
			"approval_id": req.ID.String(),
			"error":       err.Error(),
		})
	}
}
