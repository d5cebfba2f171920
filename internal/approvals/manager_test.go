/*-------------------------------------------------------------------------
 *
 * manager_test.go
 *    Tests for the approval lifecycle manager
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/approvals/manager_test.go
 *
 *-------------------------------------------------------------------------
 */

package approvals

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/records"
)

func newTestManager(store Store) *Manager {
	return NewManager(ManagerConfig{
		Store:         store,
		ReminderAfter: 48 * time.Hour,
		EscalateAfter: 72 * time.Hour,
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := newTestManager(store)

	req, err := manager.Create(ctx, CreateParams{
		TenantID:     "acme",
		EmployeeID:   "EMP-1",
		EmployeeName: "Asha",
		RequestType:  "leave_request",
		Details:      map[string]interface{}{"days": 3},
		Context:      "I need 3 days off next week",
		AssignedRole: db.RoleManager,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if req.ID == uuid.Nil {
		t.Error("Create did not assign an ID")
	}
	if req.Status != db.StatusPending {
		t.Errorf("new request status = %q, want pending", req.Status)
	}
	if got := req.RequestDetails["summary_report"]; got != SummaryFallback {
		t.Errorf("details summary = %v, want the fallback without a summarizer", got)
	}
	if req.RequestDetails["days"] != 3 {
		t.Error("extracted details were not preserved alongside the summary")
	}
	if req.Context == nil || *req.Context != "I need 3 days off next week" {
		t.Errorf("context = %v, want the original message", req.Context)
	}

	/* The authority channel must hear about the new request. */
	notifs := store.NotificationsByType(db.NotificationApprovalRequest)
	if len(notifs) != 1 {
		t.Fatalf("expected 1 approval_request notification, got %d", len(notifs))
	}
	if notifs[0].TargetEmployeeID != db.AuthorityTarget {
		t.Errorf("notification target = %q, want authority target", notifs[0].TargetEmployeeID)
	}
	if notifs[0].RelatedRequestID == nil || *notifs[0].RelatedRequestID != req.ID {
		t.Error("notification not linked to the created request")
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(NewMemoryStore())

	tests := []struct {
		name   string
		params CreateParams
	}{
		{
			name:   "missing tenant",
			params: CreateParams{EmployeeID: "EMP-1", RequestType: "leave_request"},
		},
		{
			name:   "missing employee",
			params: CreateParams{TenantID: "acme", RequestType: "leave_request"},
		},
		{
			name:   "missing request type",
			params: CreateParams{TenantID: "acme", EmployeeID: "EMP-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Create(ctx, tt.params); err == nil {
				t.Error("Create accepted an invalid request")
			}
		})
	}
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := newTestManager(store)

	req, err := manager.Create(ctx, CreateParams{
		TenantID:    "acme",
		EmployeeID:  "EMP-1",
		RequestType: "leave_request",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	decided, err := manager.Decide(ctx, req.ID, db.StatusApproved, "MGR-1", "enjoy")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if decided.Status != db.StatusApproved {
		t.Errorf("status = %q, want approved", decided.Status)
	}
	if decided.DecidedBy == nil || *decided.DecidedBy != "MGR-1" {
		t.Errorf("decided_by = %v, want MGR-1", decided.DecidedBy)
	}
	if decided.DecidedAt == nil {
		t.Error("decided_at not set")
	}

	/* The submitting employee must hear about the decision. */
	notifs := store.NotificationsByType(db.NotificationDecisionUpdate)
	if len(notifs) != 1 {
		t.Fatalf("expected 1 decision notification, got %d", len(notifs))
	}
	if notifs[0].TargetEmployeeID != "EMP-1" {
		t.Errorf("decision notification target = %q, want EMP-1", notifs[0].TargetEmployeeID)
	}

	/* Re-deciding overwrites rather than failing. */
	redecided, err := manager.Decide(ctx, req.ID, db.StatusRejected, "HR-9", "policy conflict")
	if err != nil {
		t.Fatalf("re-decide failed: %v", err)
	}
	if redecided.Status != db.StatusRejected {
		t.Errorf("re-decided status = %q, want rejected", redecided.Status)
	}
	if redecided.DecidedBy == nil || *redecided.DecidedBy != "HR-9" {
		t.Errorf("re-decided decided_by = %v, want HR-9", redecided.DecidedBy)
	}
}

func TestDecideErrors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := newTestManager(store)

	if _, err := manager.Decide(ctx, uuid.New(), db.StatusApproved, "MGR-1", ""); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("deciding a missing request: error = %v, want ErrNotFound", err)
	}
	if _, err := manager.Decide(ctx, uuid.New(), db.StatusEscalated, "MGR-1", ""); err == nil {
		t.Error("Decide accepted an invalid status")
	}
	if _, err := manager.Decide(ctx, uuid.New(), db.StatusApproved, "", ""); err == nil {
		t.Error("Decide accepted an empty decider")
	}

	/* A failed decision writes nothing to the notification log. */
	if notifs := store.NotificationsByType(db.NotificationDecisionUpdate); len(notifs) != 0 {
		t.Errorf("failed decisions produced %d notifications, want 0", len(notifs))
	}
}

/* recordingCompleter captures summary prompts */
type recordingCompleter struct {
	out     string
	prompts []string
}

func (c *recordingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	return c.out, nil
}

func TestCreateSummarizesAgainstRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	completer := &recordingCompleter{out: "Asha, a designer, wants 3 days off."}
	manager := NewManager(ManagerConfig{
		Store:      store,
		Summarizer: NewSummarizer(completer),
	})

	req, err := manager.Create(ctx, CreateParams{
		TenantID:    "acme",
		EmployeeID:  "EMP-1",
		RequestType: "leave_request",
		Details:     map[string]interface{}{"days": 3},
		Context:     "I need 3 days off",
		Record:      records.Record{"employee_id": "EMP-1", "name": "Asha", "department": "design"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if got := req.RequestDetails["summary_report"]; got != completer.out {
		t.Errorf("details summary = %v, want the generated text", got)
	}
	if req.Context == nil || *req.Context != "I need 3 days off" {
		t.Errorf("context = %v, want the original message", req.Context)
	}

	if len(completer.prompts) != 1 {
		t.Fatalf("summarizer made %d completion calls, want 1", len(completer.prompts))
	}
	prompt := completer.prompts[0]
	if !strings.Contains(prompt, "Asha") || !strings.Contains(prompt, "design") {
		t.Errorf("summary prompt %q does not include the employee record", prompt)
	}
	if !strings.Contains(prompt, "days=3") {
		t.Errorf("summary prompt %q does not include the request details", prompt)
	}
}

func TestListPendingVisibility(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := newTestManager(store)

	for _, role := range []string{db.RoleManager, db.RoleHR} {
		_, err := manager.Create(ctx, CreateParams{
			TenantID:     "acme",
			EmployeeID:   "EMP-1",
			RequestType:  "leave_request",
			AssignedRole: role,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tests := []struct {
		role      string
		wantCount int
		wantErr   bool
	}{
		{role: db.RoleManager, wantCount: 1},
		{role: db.RoleHR, wantCount: 2},
		{role: db.RoleAdmin, wantCount: 2},
		{role: db.RoleCEO, wantCount: 2},
		{role: db.RoleEmployee, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			pending, err := manager.ListPending(ctx, "acme", tt.role)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error for a non-authority role")
				}
				return
			}
			if err != nil {
				t.Fatalf("ListPending failed: %v", err)
			}
			if len(pending) != tt.wantCount {
				t.Errorf("ListPending(%s) returned %d requests, want %d", tt.role, len(pending), tt.wantCount)
			}
		})
	}
}

func TestNotificationsVisibility(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := newTestManager(store)

	req, err := manager.Create(ctx, CreateParams{
		TenantID:    "acme",
		EmployeeID:  "EMP-1",
		RequestType: "grievance",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := manager.Decide(ctx, req.ID, db.StatusApproved, "HR-9", ""); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	/* The employee sees only their own decision update. */
	own, err := manager.Notifications(ctx, "acme", "EMP-1", db.RoleEmployee)
	if err != nil {
		t.Fatalf("Notifications failed: %v", err)
	}
	if len(own) != 1 || own[0].NotificationType != db.NotificationDecisionUpdate {
		t.Errorf("employee notifications = %v, want one decision_update", own)
	}

	/* An authority role additionally sees the authority channel. */
	hr, err := manager.Notifications(ctx, "acme", "HR-9", db.RoleHR)
	if err != nil {
		t.Fatalf("Notifications failed: %v", err)
	}
	if len(hr) != 1 || hr[0].NotificationType != db.NotificationApprovalRequest {
		t.Errorf("authority notifications = %v, want one approval_request", hr)
	}
}
