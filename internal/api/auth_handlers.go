/*-------------------------------------------------------------------------
 *
 * auth_handlers.go
 *    Login and credential endpoints for the HR support API
 *
 * Login authenticates against the verified employee record: the
 * employee ID must resolve through record verification and the
 * password must match the credential column before a session token is
 * issued.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/auth_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/teamai-botivate/HR-Support/internal/auth"
	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/metrics"
	"github.com/teamai-botivate/HR-Support/internal/records"
)

/* Login authenticates an employee and issues a session token */
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body parsing error", err, requestID, nil))
		return
	}
	if err := ValidateLoginRequest(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, nil))
		return
	}

	record, err := records.Resolve(r.Context(), h.adapter, h.schema.PrimaryKey, req.EmployeeID)
	if errors.Is(err, records.ErrRecordNotFound) {
		metrics.WarnWithContext(r.Context(), "login failed, record not found", map[string]interface{}{
			"employee_id": req.EmployeeID,
		})
		respondError(w, NewErrorWithContext(http.StatusUnauthorized, "invalid employee ID or password", nil, requestID, nil))
		return
	}
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadGateway, "record store unavailable", err), requestID))
		return
	}

	if h.schema.Password == "" ||
		!auth.VerifyPassword(record.GetString(h.schema.Password), req.Password) {
		metrics.WarnWithContext(r.Context(), "login failed, password mismatch", map[string]interface{}{
			"employee_id": req.EmployeeID,
		})
		respondError(w, NewErrorWithContext(http.StatusUnauthorized, "invalid employee ID or password", nil, requestID, nil))
		return
	}

	name := record.GetString(h.schema.DisplayName)
	role := strings.ToLower(strings.TrimSpace(record.GetString(h.schema.Role)))
	if role == "" {
		role = db.RoleEmployee
	}

	token, err := h.tokens.Generate(h.tenantID, req.EmployeeID, name, role)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to issue session token", err), requestID))
		return
	}

	metrics.InfoWithContext(r.Context(), "employee logged in", map[string]interface{}{
		"employee_id": req.EmployeeID,
		"role":        role,
	})
	respondJSON(w, http.StatusOK, LoginResponse{
		Token:        token,
		EmployeeID:   req.EmployeeID,
		EmployeeName: name,
		Role:         role,
		ExpiresIn:    int64(h.tokens.Expiration().Seconds()),
	})
}
