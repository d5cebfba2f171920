/*-------------------------------------------------------------------------
 *
 * runtime_test.go
 *    Tests for the message runtime pipeline
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/agent/runtime_test.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/teamai-botivate/HR-Support/internal/approvals"
	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/records"
)

type fakeClassifier struct {
	raw string
	err error
}

func (f *fakeClassifier) Classify(ctx context.Context, text, sessionSummary string) (string, error) {
	return f.raw, f.err
}

type fakeCompleter struct {
	out string
	err error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return f.out, f.err
}

func testSchema() records.SchemaMap {
	return records.SchemaMap{
		PrimaryKey:  "employee_id",
		DisplayName: "name",
		Role:        "role",
		Email:       "email",
		Password:    "password",
	}
}

func testAdapter() *records.MemoryAdapter {
	return records.NewMemoryAdapter(
		[]string{"employee_id", "name", "role", "email", "password"},
		[]records.Record{
			{"employee_id": "EMP-1", "name": "Asha", "role": "employee", "email": "asha@acme.test", "password": "secret"},
			{"employee_id": "MGR-1", "name": "Ravi", "role": "manager", "email": "ravi@acme.test", "password": "secret"},
		},
	)
}

func newTestRuntime(classifier *fakeClassifier, completer *fakeCompleter, store approvals.Store) *Runtime {
	manager := approvals.NewManager(approvals.ManagerConfig{
		Store:         store,
		ReminderAfter: 48 * time.Hour,
		EscalateAfter: 72 * time.Hour,
	})
	return NewRuntime(RuntimeConfig{
		Adapter:    testAdapter(),
		Schema:     testSchema(),
		Classifier: classifier,
		Completer:  completer,
		Approvals:  manager,
	})
}

func TestHandleMessageGreeting(t *testing.T) {
	runtime := newTestRuntime(
		&fakeClassifier{raw: "greeting"},
		&fakeCompleter{out: "canned"},
		approvals.NewMemoryStore(),
	)

	reply, err := runtime.HandleMessage(context.Background(), MessageInput{
		TenantID:   "acme",
		EmployeeID: "EMP-1",
		Message:    "hi there",
	})
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if reply.Primary != IntentGreeting {
		t.Errorf("primary = %q, want greeting", reply.Primary)
	}
	if !strings.Contains(reply.Reply, "Asha") {
		t.Errorf("greeting reply %q does not address the employee by name", reply.Reply)
	}
}

func TestHandleMessageRecordNotFound(t *testing.T) {
	runtime := newTestRuntime(
		&fakeClassifier{raw: "greeting"},
		&fakeCompleter{out: "canned"},
		approvals.NewMemoryStore(),
	)

	reply, err := runtime.HandleMessage(context.Background(), MessageInput{
		TenantID:   "acme",
		EmployeeID: "EMP-404",
		Message:    "hi",
	})
	if err != nil {
		t.Fatalf("HandleMessage must degrade gracefully, got error: %v", err)
	}
	if !strings.Contains(reply.Reply, "couldn't verify") {
		t.Errorf("reply %q does not explain the verification failure", reply.Reply)
	}
}

func TestHandleMessageClassifierFailure(t *testing.T) {
	runtime := newTestRuntime(
		&fakeClassifier{err: fmt.Errorf("backend down")},
		&fakeCompleter{err: fmt.Errorf("backend down")},
		approvals.NewMemoryStore(),
	)

	reply, err := runtime.HandleMessage(context.Background(), MessageInput{
		TenantID:   "acme",
		EmployeeID: "EMP-1",
		Message:    "what is my leave balance",
	})
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if reply.Primary != IntentGeneral {
		t.Errorf("primary = %q, classifier outage must route to general", reply.Primary)
	}
	if reply.Reply == "" {
		t.Error("reply is empty, a chat turn must always produce a reply")
	}
}

func TestHandleMessageMultiIntent(t *testing.T) {
	store := approvals.NewMemoryStore()
	runtime := newTestRuntime(
		&fakeClassifier{raw: "leave_request, policy_query"},
		&fakeCompleter{out: "You accrue 1.5 days per month."},
		store,
	)

	reply, err := runtime.HandleMessage(context.Background(), MessageInput{
		TenantID:   "acme",
		EmployeeID: "EMP-1",
		Message:    "I need 3 days off, also how does accrual work?",
	})
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	if reply.Primary != IntentLeaveRequest {
		t.Errorf("primary = %q, want leave_request", reply.Primary)
	}
	if len(reply.Intents) != 2 {
		t.Fatalf("intents = %v, want both handled", reply.Intents)
	}
	if !strings.Contains(reply.Reply, ReplyDivider) {
		t.Error("multi-intent reply is missing the fragment divider")
	}
	if !strings.Contains(reply.Reply, "accrue") {
		t.Error("policy fragment missing from combined reply")
	}
	if !reply.ApprovalNeeded || reply.ApprovalType != IntentLeaveRequest {
		t.Errorf("approval flags = (%v, %q), want (true, leave_request)",
			reply.ApprovalNeeded, reply.ApprovalType)
	}
	if reply.ApprovalID == nil {
		t.Fatal("leave request did not surface an approval id")
	}

	reqs, err := store.ListEmployeeApprovals(context.Background(), "acme", "EMP-1")
	if err != nil {
		t.Fatalf("ListEmployeeApprovals failed: %v", err)
	}
	if len(reqs) != 1 || reqs[0].RequestType != "leave_request" {
		t.Errorf("stored approvals = %v, want one leave_request", reqs)
	}
	if reqs[0].ID != *reply.ApprovalID {
		t.Error("surfaced approval id does not match the stored request")
	}
}

func TestHandleMessageFirstApprovalWins(t *testing.T) {
	store := approvals.NewMemoryStore()
	runtime := newTestRuntime(
		&fakeClassifier{raw: "leave_request, grievance"},
		&fakeCompleter{out: "canned"},
		store,
	)

	reply, err := runtime.HandleMessage(context.Background(), MessageInput{
		TenantID:   "acme",
		EmployeeID: "EMP-1",
		Message:    "time off please, and I want to report an issue",
	})
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	if reply.ApprovalID == nil {
		t.Fatal("no approval id surfaced")
	}
	if reply.ApprovalType != IntentLeaveRequest {
		t.Errorf("approval type = %q, want the primary's leave_request", reply.ApprovalType)
	}

	/* Both handlers flag approval-needed, but only the first flag in
	 * dispatch order is filed: one message, one request. */
	reqs, err := store.ListEmployeeApprovals(context.Background(), "acme", "EMP-1")
	if err != nil {
		t.Fatalf("ListEmployeeApprovals failed: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("one message created %d approval requests, want 1", len(reqs))
	}
	if reqs[0].RequestType != "leave_request" {
		t.Errorf("filed request type = %q, want leave_request", reqs[0].RequestType)
	}
	if reqs[0].ID != *reply.ApprovalID {
		t.Error("surfaced approval id does not match the filed request")
	}

	notifs := store.NotificationsByType(db.NotificationApprovalRequest)
	if len(notifs) != 1 {
		t.Errorf("authority channel got %d notifications, want 1", len(notifs))
	}
}

func TestHandleMessageDataUpdatePermissionDenied(t *testing.T) {
	store := approvals.NewMemoryStore()
	runtime := newTestRuntime(
		&fakeClassifier{raw: "data_update"},
		&fakeCompleter{out: "canned"},
		store,
	)

	/* EMP-1's record carries the employee role: no mutation, no
	 * approval fallback, just the fixed denial. */
	reply, err := runtime.HandleMessage(context.Background(), MessageInput{
		TenantID:   "acme",
		EmployeeID: "EMP-1",
		Message:    "change my email to new@acme.test",
		Updates:    map[string]interface{}{"email": "new@acme.test"},
	})
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if reply.Reply != permissionDeniedReply {
		t.Errorf("reply = %q, want the fixed permission-denied fragment", reply.Reply)
	}
	if reply.ApprovalNeeded {
		t.Error("denied mutation must not flag approval-needed")
	}

	reqs, err := store.ListEmployeeApprovals(context.Background(), "acme", "EMP-1")
	if err != nil {
		t.Fatalf("ListEmployeeApprovals failed: %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("denied mutation filed %d approval requests, want 0", len(reqs))
	}
}

func TestHandleMessageDataUpdateMutationRole(t *testing.T) {
	adapter := testAdapter()
	manager := approvals.NewManager(approvals.ManagerConfig{Store: approvals.NewMemoryStore()})
	runtime := NewRuntime(RuntimeConfig{
		Adapter:    adapter,
		Schema:     testSchema(),
		Classifier: &fakeClassifier{raw: "data_update"},
		Completer:  &fakeCompleter{out: "canned"},
		Approvals:  manager,
	})

	reply, err := runtime.HandleMessage(context.Background(), MessageInput{
		TenantID:   "acme",
		EmployeeID: "MGR-1",
		Message:    "update my email",
		Updates:    map[string]interface{}{"email": "ravi2@acme.test"},
	})
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if !strings.Contains(reply.Reply, "updated") {
		t.Errorf("reply = %q, want an update confirmation", reply.Reply)
	}

	record, err := adapter.GetByKey(context.Background(), "employee_id", "MGR-1")
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if got := record.GetString("email"); got != "ravi2@acme.test" {
		t.Errorf("record email = %q, mutation role update was not applied", got)
	}
}

/* erroringStore fails every approval insert */
type erroringStore struct {
	*approvals.MemoryStore
}

func (s *erroringStore) CreateApprovalRequest(ctx context.Context, req *db.ApprovalRequest) error {
	return fmt.Errorf("simulated store outage")
}

func TestHandleMessageHandlerFailureApology(t *testing.T) {
	runtime := newTestRuntime(
		&fakeClassifier{raw: "leave_request"},
		&fakeCompleter{out: "canned"},
		&erroringStore{MemoryStore: approvals.NewMemoryStore()},
	)

	reply, err := runtime.HandleMessage(context.Background(), MessageInput{
		TenantID:   "acme",
		EmployeeID: "EMP-1",
		Message:    "I need next week off",
	})
	if err != nil {
		t.Fatalf("handler failure must not surface as an error: %v", err)
	}
	if !strings.Contains(reply.Reply, "ran into a problem") {
		t.Errorf("reply %q is not the failure apology", reply.Reply)
	}
}

func TestHandleMessageRoleComesFromRecord(t *testing.T) {
	store := approvals.NewMemoryStore()
	runtime := newTestRuntime(
		&fakeClassifier{raw: "approval_action"},
		&fakeCompleter{out: "canned"},
		store,
	)

	/* EMP-1's record says employee; a claimed manager role must not
	 * unlock the approval queue. */
	reply, err := runtime.HandleMessage(context.Background(), MessageInput{
		TenantID:   "acme",
		EmployeeID: "EMP-1",
		Role:       "manager",
		Message:    "show me pending approvals",
	})
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if !strings.Contains(reply.Reply, "requires a manager") {
		t.Errorf("reply %q should deny queue access to a non-authority record", reply.Reply)
	}

	/* MGR-1's record carries the manager role. */
	reply, err = runtime.HandleMessage(context.Background(), MessageInput{
		TenantID:   "acme",
		EmployeeID: "MGR-1",
		Message:    "show me pending approvals",
	})
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if strings.Contains(reply.Reply, "requires a manager") {
		t.Errorf("reply %q should allow queue access for a manager record", reply.Reply)
	}
}
