/*-------------------------------------------------------------------------
 *
 * approval_handlers.go
 *    Approval lifecycle endpoints for the HR support API
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/approval_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/teamai-botivate/HR-Support/internal/approvals"
	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/records"
	"github.com/teamai-botivate/HR-Support/internal/utils"
)

/* CreateApproval submits an approval request outside the chat flow */
func (h *Handlers) CreateApproval(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	claims, err := MustGetClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	var req CreateApprovalRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body parsing error", err, requestID, nil))
		return
	}
	if err := ValidateCreateApprovalRequest(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, nil))
		return
	}

	/* The summary is computed against the caller's current record.
	 * Resolution failure degrades the summary, not the request. */
	var record records.Record
	if resolved, rerr := records.Resolve(r.Context(), h.adapter, h.schema.PrimaryKey, claims.EmployeeID); rerr == nil {
		record = resolved.Redacted(h.schema.Password)
	}

	created, err := h.manager.Create(r.Context(), approvals.CreateParams{
		TenantID:     claims.TenantID,
		EmployeeID:   claims.EmployeeID,
		EmployeeName: claims.EmployeeName,
		RequestType:  req.RequestType,
		Details:      req.Details,
		Context:      req.Context,
		Priority:     req.Priority,
		AssignedRole: req.AssignedRole,
		Record:       record,
	})
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to create approval request", err), requestID))
		return
	}
	respondJSON(w, http.StatusCreated, toApprovalResponse(created))
}

/* GetApproval fetches one approval request by ID */
func (h *Handlers) GetApproval(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	claims, err := MustGetClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := utils.ParseUUID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid approval request ID", err, requestID, nil))
		return
	}

	req, err := h.manager.Get(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to get approval request", err), requestID))
		return
	}

	/* An employee may only read their own requests; authority roles may
	 * read any request in the tenant. */
	if !db.IsAuthorityRole(claims.Role) &&
		utils.NormalizeKey(req.EmployeeID) != utils.NormalizeKey(claims.EmployeeID) {
		respondError(w, WrapError(ErrForbidden, requestID))
		return
	}

	respondJSON(w, http.StatusOK, toApprovalResponse(req))
}

/* DecideApproval records an approve/reject decision on a request */
func (h *Handlers) DecideApproval(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	claims, err := MustGetClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}
	if !db.IsAuthorityRole(claims.Role) {
		respondError(w, WrapError(ErrForbidden, requestID))
		return
	}

	id, err := utils.ParseUUID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid approval request ID", err, requestID, nil))
		return
	}

	var req DecisionRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body parsing error", err, requestID, nil))
		return
	}
	if err := ValidateDecisionRequest(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, nil))
		return
	}

	decided, err := h.manager.Decide(r.Context(), id, req.Status, claims.EmployeeID, req.Note)
	if errors.Is(err, db.ErrNotFound) {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to record decision", err), requestID))
		return
	}
	respondJSON(w, http.StatusOK, toApprovalResponse(decided))
}

/* ListPendingApprovals returns the pending queue visible to the caller */
func (h *Handlers) ListPendingApprovals(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	claims, err := MustGetClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}
	if !db.IsAuthorityRole(claims.Role) {
		respondError(w, WrapError(ErrForbidden, requestID))
		return
	}

	reqs, err := h.manager.ListPending(r.Context(), claims.TenantID, claims.Role)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list pending approvals", err), requestID))
		return
	}

	responses := make([]*ApprovalResponse, 0, len(reqs))
	for i := range reqs {
		responses = append(responses, toApprovalResponse(&reqs[i]))
	}
	respondJSON(w, http.StatusOK, responses)
}

/* ListMyApprovals returns the caller's own request history */
func (h *Handlers) ListMyApprovals(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	claims, err := MustGetClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	reqs, err := h.manager.ListForEmployee(r.Context(), claims.TenantID, claims.EmployeeID)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list approvals", err), requestID))
		return
	}

	responses := make([]*ApprovalResponse, 0, len(reqs))
	for i := range reqs {
		responses = append(responses, toApprovalResponse(&reqs[i]))
	}
	respondJSON(w, http.StatusOK, responses)
}

/* RunSweep triggers a reminder/escalation sweep immediately. Admin only;
 * the scheduler runs the same sweep on its interval. */
func (h *Handlers) RunSweep(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	claims, err := MustGetClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}
	if claims.Role != db.RoleAdmin {
		respondError(w, WrapError(ErrForbidden, requestID))
		return
	}

	result, err := h.manager.Sweep(r.Context(), time.Now().UTC())
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "sweep failed", err), requestID))
		return
	}
	respondJSON(w, http.StatusOK, SweepResponse{
		Scanned:       result.Scanned,
		RemindersSent: result.RemindersSent,
		Escalations:   result.Escalations,
		Failures:      result.Failures,
	})
}
