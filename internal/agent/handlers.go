/*-------------------------------------------------------------------------
 *
 * handlers.go
 *    Per-intent handlers for the HR support runtime
 *
 * Each handler turns one intent into a reply fragment. Handlers only
 * see their own SessionContext (the primary gets the live one, the
 * rest get clones) and report side effects through the fragment.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/agent/handlers.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/teamai-botivate/HR-Support/internal/db"
)

/* Fragment is one handler's contribution to the combined reply.
 * Handlers never touch the approval store themselves; a handler that
 * wants a request filed sets Approval and the runtime files exactly one
 * request per message after dispatch. */
type Fragment struct {
	Intent     string
	Reply      string
	Actions    []string
	Approval   *ApprovalNeed
	ApprovalID *uuid.UUID
}

/* ApprovalNeed flags that a fragment's intent requires an approval
 * request. When several fragments carry one, the first in dispatch
 * order wins and the rest are dropped. */
type ApprovalNeed struct {
	RequestType  string
	Priority     string
	AssignedRole string
	Details      map[string]interface{}
}

/* HandlerFunc handles a single intent for one message */
type HandlerFunc func(ctx context.Context, sc *SessionContext) (*Fragment, error)

func (r *Runtime) handlerFor(intent string) HandlerFunc {
	switch intent {
	case IntentGreeting:
		return r.handleGreeting
	case IntentPolicyQuery:
		return r.handlePolicyQuery
	case IntentDataQuery:
		return r.handleDataQuery
	case IntentDataUpdate:
		return r.handleDataUpdate
	case IntentLeaveRequest:
		return r.handleLeaveRequest
	case IntentResignation:
		return r.handleResignation
	case IntentGrievance:
		return r.handleGrievance
	case IntentApprovalAction:
		return r.handleApprovalAction
	case IntentStatusCheck:
		return r.handleStatusCheck
	case IntentSupport:
		return r.handleSupport
	default:
		return r.handleGeneral
	}
}

func (r *Runtime) handleGreeting(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	name := sc.EmployeeName
	if name == "" {
		name = "there"
	}
	return &Fragment{
		Intent: IntentGreeting,
		Reply:  fmt.Sprintf("Hello %s! How can I help you today?", name),
	}, nil
}

func (r *Runtime) handlePolicyQuery(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	prompt := fmt.Sprintf(
		"You are an HR assistant for %s. Answer this policy question concisely and note that the employee should confirm with HR for binding guidance.\nQuestion: %s",
		sc.TenantID, sc.Message)
	answer, err := r.completer.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		return &Fragment{
			Intent: IntentPolicyQuery,
			Reply:  "I couldn't look that policy up right now. Please reach out to your HR team directly.",
		}, nil
	}
	return &Fragment{Intent: IntentPolicyQuery, Reply: strings.TrimSpace(answer)}, nil
}

/* handleDataQuery lists the employee's own record fields. The password
 * column never leaves the server. */
func (r *Runtime) handleDataQuery(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	if len(sc.Record) == 0 {
		return &Fragment{
			Intent: IntentDataQuery,
			Reply:  "I don't have your record details on hand right now.",
		}, nil
	}

	fields := make([]string, 0, len(sc.Record))
	for field := range sc.Record {
		if field == sc.Schema.Password {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("Here's what I have on file for you:\n")
	for _, field := range fields {
		fmt.Fprintf(&b, "- %s: %v\n", field, sc.Record[field])
	}
	return &Fragment{Intent: IntentDataQuery, Reply: strings.TrimRight(b.String(), "\n")}, nil
}

/* permissionDeniedReply is the fixed fragment for a caller whose role
 * may not execute a record mutation */
const permissionDeniedReply = "You don't have permission to update employee records. Please ask your manager or HR to make this change."

/* handleDataUpdate is the only mutation-capable handler. Non-mutation
 * roles get the fixed permission-denied fragment. Mutation roles with
 * structured updates write directly; a mutation role without them
 * falls back to the manager approval queue. */
func (r *Runtime) handleDataUpdate(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	if !db.IsMutationRole(sc.Role) {
		return &Fragment{Intent: IntentDataUpdate, Reply: permissionDeniedReply}, nil
	}

	if len(sc.Updates) == 0 {
		return needApproval(sc, IntentDataUpdate, db.RoleManager, db.PriorityNormal,
			"Your update request has been submitted for approval. You'll be notified once it's reviewed."), nil
	}

	updated, err := r.adapter.SetFields(ctx, r.schema.PrimaryKey, sc.EmployeeID, sc.Updates)
	if err != nil {
		return nil, fmt.Errorf("record update failed: employee='%s', error=%w", sc.EmployeeID, err)
	}
	if !updated {
		return &Fragment{
			Intent: IntentDataUpdate,
			Reply:  "I couldn't find the record to update. Please check the employee ID.",
		}, nil
	}
	return &Fragment{
		Intent:  IntentDataUpdate,
		Reply:   fmt.Sprintf("Done. I've updated %d field(s) on the record.", len(sc.Updates)),
		Actions: []string{"record_updated"},
	}, nil
}

func (r *Runtime) handleLeaveRequest(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	return needApproval(sc, IntentLeaveRequest, db.RoleManager, db.PriorityNormal,
		"Your leave request has been submitted to your manager for approval."), nil
}

func (r *Runtime) handleResignation(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	return needApproval(sc, IntentResignation, db.RoleHR, db.PriorityUrgent,
		"Your resignation notice has been forwarded to HR. Someone will contact you about the next steps."), nil
}

func (r *Runtime) handleGrievance(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	return needApproval(sc, IntentGrievance, db.RoleHR, db.PriorityUrgent,
		"I'm sorry you're dealing with this. Your grievance has been logged confidentially with HR and will be prioritized."), nil
}

/* needApproval builds a fragment that flags an approval request
 * without touching the store; the runtime files the winning flag after
 * dispatch */
func needApproval(sc *SessionContext, requestType, assignedRole, priority, confirmation string) *Fragment {
	details := make(map[string]interface{}, len(sc.Updates))
	for k, v := range sc.Updates {
		details[k] = v
	}
	return &Fragment{
		Intent: requestType,
		Reply:  confirmation,
		Approval: &ApprovalNeed{
			RequestType:  requestType,
			Priority:     priority,
			AssignedRole: assignedRole,
			Details:      details,
		},
	}
}

func (r *Runtime) handleApprovalAction(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	if !db.IsAuthorityRole(sc.Role) {
		return &Fragment{
			Intent: IntentApprovalAction,
			Reply:  "Approving or rejecting requests requires a manager, HR, or admin role.",
		}, nil
	}

	pending, err := r.approvals.ListPending(ctx, sc.TenantID, sc.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending queue: %w", err)
	}
	if len(pending) == 0 {
		return &Fragment{
			Intent: IntentApprovalAction,
			Reply:  "There are no requests waiting for your decision right now.",
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d request(s) waiting for a decision:\n", len(pending))
	for i := range pending {
		req := &pending[i]
		fmt.Fprintf(&b, "- [%s] %s from %s (submitted %s)\n",
			shortID(req.ID), req.RequestType, req.EmployeeID, req.CreatedAt.UTC().Format("2006-01-02"))
	}
	b.WriteString("Use the approvals dashboard or CLI to approve or reject by reference.")
	return &Fragment{Intent: IntentApprovalAction, Reply: b.String()}, nil
}

func (r *Runtime) handleStatusCheck(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	reqs, err := r.approvals.ListForEmployee(ctx, sc.TenantID, sc.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load request history: %w", err)
	}
	if len(reqs) == 0 {
		return &Fragment{
			Intent: IntentStatusCheck,
			Reply:  "You don't have any submitted requests on record.",
		}, nil
	}

	var b strings.Builder
	b.WriteString("Here's the status of your requests:\n")
	for i := range reqs {
		req := &reqs[i]
		fmt.Fprintf(&b, "- %s (%s): %s\n",
			req.RequestType, req.CreatedAt.UTC().Format("2006-01-02"), req.Status)
	}
	return &Fragment{Intent: IntentStatusCheck, Reply: strings.TrimRight(b.String(), "\n")}, nil
}

func (r *Runtime) handleSupport(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	return &Fragment{
		Intent: IntentSupport,
		Reply: "I've noted that you need help from the support team. You can also reach them directly at " +
			r.supportContact + ".",
		Actions: []string{"support_flagged"},
	}, nil
}

func (r *Runtime) handleGeneral(ctx context.Context, sc *SessionContext) (*Fragment, error) {
	prompt := fmt.Sprintf(
		"You are a friendly HR support assistant. Reply helpfully and briefly to this employee message:\n%s",
		sc.Message)
	answer, err := r.completer.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		return &Fragment{
			Intent: IntentGeneral,
			Reply:  "I'm here to help with HR questions, leave requests, and your employee record. What would you like to do?",
		}, nil
	}
	return &Fragment{Intent: IntentGeneral, Reply: strings.TrimSpace(answer)}, nil
}

func shortID(id uuid.UUID) string {
	return strings.Split(id.String(), "-")[0]
}
