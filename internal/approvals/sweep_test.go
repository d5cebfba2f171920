/*-------------------------------------------------------------------------
 *
 * sweep_test.go
 *    Tests for the reminder/escalation sweep
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/approvals/sweep_test.go
 *
 *-------------------------------------------------------------------------
 */

package approvals

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/teamai-botivate/HR-Support/internal/db"
)

func createAgedRequest(t *testing.T, store *MemoryStore, manager *Manager, age time.Duration, base time.Time) *db.ApprovalRequest {
	t.Helper()
	store.SetClock(func() time.Time { return base.Add(-age) })
	req, err := manager.Create(context.Background(), CreateParams{
		TenantID:    "acme",
		EmployeeID:  "EMP-1",
		RequestType: "leave_request",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	store.SetClock(time.Now)
	return req
}

func TestSweepReminder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	manager := newTestManager(store)

	req := createAgedRequest(t, store, manager, 50*time.Hour, now)

	result, err := manager.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if result.RemindersSent != 1 || result.Escalations != 0 {
		t.Errorf("sweep result = %+v, want 1 reminder and 0 escalations", result)
	}

	got, err := store.GetApprovalRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetApprovalRequest failed: %v", err)
	}
	if !got.ReminderSent {
		t.Error("reminder flag not set")
	}
	if got.Status != db.StatusPending {
		t.Errorf("status = %q, reminders must not change status", got.Status)
	}

	/* A second sweep must not remind again. */
	result, err = manager.Sweep(ctx, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second Sweep failed: %v", err)
	}
	if result.RemindersSent != 0 {
		t.Errorf("second sweep sent %d reminders, want 0", result.RemindersSent)
	}
	if notifs := store.NotificationsByType(db.NotificationReminder); len(notifs) != 1 {
		t.Errorf("expected exactly 1 reminder notification, got %d", len(notifs))
	}
}

func TestSweepEscalation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	manager := newTestManager(store)

	req := createAgedRequest(t, store, manager, 73*time.Hour, now)

	result, err := manager.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if result.Escalations != 1 {
		t.Errorf("sweep result = %+v, want 1 escalation", result)
	}
	/* Past both thresholds, escalation wins and no reminder fires. */
	if result.RemindersSent != 0 {
		t.Errorf("sweep sent %d reminders alongside escalation, want 0", result.RemindersSent)
	}

	got, err := store.GetApprovalRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetApprovalRequest failed: %v", err)
	}
	if !got.Escalated {
		t.Error("escalated flag not set")
	}
	if got.Status != db.StatusEscalated {
		t.Errorf("status = %q, want escalated", got.Status)
	}

	/* Both the authority channel and the employee hear about it. */
	notifs := store.NotificationsByType(db.NotificationEscalation)
	if len(notifs) != 2 {
		t.Fatalf("expected 2 escalation notifications, got %d", len(notifs))
	}

	/* Escalated requests leave the pending set, so a later sweep is a
	 * no-op. */
	result, err = manager.Sweep(ctx, now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("second Sweep failed: %v", err)
	}
	if result.Escalations != 0 || result.RemindersSent != 0 {
		t.Errorf("second sweep result = %+v, want no transitions", result)
	}
}

func TestSweepLeavesFreshAndDecidedAlone(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	manager := newTestManager(store)

	createAgedRequest(t, store, manager, 2*time.Hour, now)
	decided := createAgedRequest(t, store, manager, 50*time.Hour, now)
	if _, err := manager.Decide(ctx, decided.ID, db.StatusRejected, "MGR-1", ""); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	result, err := manager.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if result.RemindersSent != 0 || result.Escalations != 0 {
		t.Errorf("sweep result = %+v, want no transitions", result)
	}
}

func TestSweepReminderThenEscalation(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	manager := newTestManager(store)

	req := createAgedRequest(t, store, manager, 0, created)

	/* At 49 hours: reminder. */
	result, err := manager.Sweep(ctx, created.Add(49*time.Hour))
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if result.RemindersSent != 1 {
		t.Errorf("first sweep result = %+v, want 1 reminder", result)
	}

	/* At 73 hours: escalation on the already-reminded row. */
	result, err = manager.Sweep(ctx, created.Add(73*time.Hour))
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if result.Escalations != 1 {
		t.Errorf("second sweep result = %+v, want 1 escalation", result)
	}

	got, err := store.GetApprovalRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetApprovalRequest failed: %v", err)
	}
	if !got.ReminderSent || !got.Escalated {
		t.Errorf("flags = reminder:%v escalated:%v, want both set", got.ReminderSent, got.Escalated)
	}
}

/* failingStore injects an error for one request's reminder update */
type failingStore struct {
	*MemoryStore
	failID uuid.UUID
}

func (s *failingStore) MarkReminderSent(ctx context.Context, id uuid.UUID) (bool, error) {
	if id == s.failID {
		return false, fmt.Errorf("simulated store failure")
	}
	return s.MemoryStore.MarkReminderSent(ctx, id)
}

func TestSweepRowFailureIsolation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	memory := NewMemoryStore()
	seedManager := newTestManager(memory)

	bad := createAgedRequest(t, memory, seedManager, 50*time.Hour, now)
	good := createAgedRequest(t, memory, seedManager, 50*time.Hour, now)

	manager := newTestManager(&failingStore{MemoryStore: memory, failID: bad.ID})

	result, err := manager.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if result.Failures != 1 {
		t.Errorf("sweep failures = %d, want 1", result.Failures)
	}
	if result.RemindersSent != 1 {
		t.Errorf("sweep reminders = %d, want 1 despite the failing row", result.RemindersSent)
	}

	got, err := memory.GetApprovalRequest(ctx, good.ID)
	if err != nil {
		t.Fatalf("GetApprovalRequest failed: %v", err)
	}
	if !got.ReminderSent {
		t.Error("healthy row was not reminded after the failing row")
	}
}
