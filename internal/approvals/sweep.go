/*-------------------------------------------------------------------------
 *
 * sweep.go
 *    Reminder and escalation sweep over pending approval requests
 *
 * A sweep walks every pending request and applies age-based transitions:
 * past the escalation threshold the request is escalated, past the
 * reminder threshold the assigned authority is nudged. Escalation wins
 * when a request qualifies for both. The flag updates are guarded at
 * the store, so a concurrent decision or a second sweep cannot double
 * fire; a failure on one row never stops the rest of the sweep.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/approvals/sweep.go
 *
 *-------------------------------------------------------------------------
 */

package approvals

import (
	"context"
	"fmt"
	"time"

	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/metrics"
)

/* SweepResult reports what one sweep pass did */
type SweepResult struct {
	Scanned       int
	RemindersSent int
	Escalations   int
	Failures      int
}

/* Sweep applies reminder and escalation transitions to all pending
 * requests as of the given instant. The instant is injected so the
 * age math is deterministic under test. */
func (m *Manager) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult

	pending, err := m.store.ListAllPendingApprovals(ctx)
	if err != nil {
		return result, fmt.Errorf("sweep failed to list pending requests: %w", err)
	}
	result.Scanned = len(pending)

	for i := range pending {
		req := &pending[i]
		age := now.Sub(req.CreatedAt)

		switch {
		case age >= m.escalateAfter && !req.Escalated:
			if err := m.escalate(ctx, req); err != nil {
				result.Failures++
				metrics.ErrorWithContext(ctx, "escalation failed", err, map[string]interface{}{
					"approval_id": req.ID.String(),
				})
				continue
			}
			result.Escalations++

		case age >= m.reminderAfter && !req.ReminderSent:
			if err := m.remind(ctx, req); err != nil {
				result.Failures++
				metrics.ErrorWithContext(ctx, "reminder failed", err, map[string]interface{}{
					"approval_id": req.ID.String(),
				})
				continue
			}
			result.RemindersSent++
		}
	}

	metrics.InfoWithContext(ctx, "sweep completed", map[string]interface{}{
		"scanned":    result.Scanned,
		"reminders":  result.RemindersSent,
		"escalated":  result.Escalations,
		"failures":   result.Failures,
		"swept_at":   now.UTC().Format(time.RFC3339),
	})
	return result, nil
}

func (m *Manager) remind(ctx context.Context, req *db.ApprovalRequest) error {
	flipped, err := m.store.MarkReminderSent(ctx, req.ID)
	if err != nil {
		return err
	}
	if !flipped {
		/* Lost the race to a decision or a concurrent sweep. */
		return nil
	}
	metrics.RecordSweepTransition("reminder")

	m.notify(ctx, &db.Notification{
		TenantID:         req.TenantID,
		TargetEmployeeID: db.AuthorityTarget,
		Title:            fmt.Sprintf("Reminder: %s request awaiting decision", req.RequestType),
		Message: fmt.Sprintf("The %s request from %s submitted on %s is still pending.",
			req.RequestType, req.EmployeeID, req.CreatedAt.UTC().Format("2006-01-02")),
		NotificationType: db.NotificationReminder,
		RelatedRequestID: &req.ID,
	})
	return nil
}

func (m *Manager) escalate(ctx context.Context, req *db.ApprovalRequest) error {
	flipped, err := m.store.MarkEscalated(ctx, req.ID)
	if err != nil {
		return err
	}
	if !flipped {
		return nil
	}
	metrics.RecordSweepTransition("escalation")

	m.notify(ctx, &db.Notification{
		TenantID:         req.TenantID,
		TargetEmployeeID: db.AuthorityTarget,
		Title:            fmt.Sprintf("Escalated: %s request overdue", req.RequestType),
		Message: fmt.Sprintf("The %s request from %s submitted on %s received no decision and has been escalated.",
			req.RequestType, req.EmployeeID, req.CreatedAt.UTC().Format("2006-01-02")),
		NotificationType: db.NotificationEscalation,
		RelatedRequestID: &req.ID,
	})
	m.notify(ctx, &db.Notification{
		TenantID:         req.TenantID,
		TargetEmployeeID: req.EmployeeID,
		Title:            "Your request has been escalated",
		Message: fmt.Sprintf("Your %s request was escalated to senior leadership after receiving no decision.",
			req.RequestType),
		NotificationType: db.NotificationEscalation,
		RelatedRequestID: &req.ID,
	})
	return nil
}
