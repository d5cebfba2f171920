/*-------------------------------------------------------------------------
 *
 * employee_handlers.go
 *    Employee provisioning endpoint for the HR support API
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/employee_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"net/http"

	"github.com/teamai-botivate/HR-Support/internal/auth"
	"github.com/teamai-botivate/HR-Support/internal/db"
)

const generatedPasswordLength = 12

/* CreateEmployee provisions a new employee record in the record store.
 * Admin only. A random credential is generated, stored bcrypt-hashed
 * on the record, and returned exactly once in the response so the
 * admin can hand it to the employee. */
func (h *Handlers) CreateEmployee(w http.ResponseWriter, r *http.Request) {
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

	var req CreateEmployeeRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body parsing error", err, requestID, nil))
		return
	}
	if err := ValidateCreateEmployeeRequest(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, nil))
		return
	}

	existing, err := h.adapter.GetByKey(r.Context(), h.schema.PrimaryKey, req.EmployeeID)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadGateway, "record store unavailable", err), requestID))
		return
	}
	if existing != nil {
		respondError(w, NewErrorWithContext(http.StatusConflict, "employee already exists", nil, requestID, nil))
		return
	}

	password, err := auth.GeneratePassword(generatedPasswordLength)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "credential generation failed", err), requestID))
		return
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "credential generation failed", err), requestID))
		return
	}

	role := req.Role
	if role == "" {
		role = db.RoleEmployee
	}

	row := map[string]interface{}{
		h.schema.PrimaryKey:  req.EmployeeID,
		h.schema.DisplayName: req.Name,
	}
	if h.schema.Role != "" {
		row[h.schema.Role] = role
	}
	if h.schema.Email != "" {
		row[h.schema.Email] = req.Email
	}
	if h.schema.Password != "" {
		row[h.schema.Password] = hash
	}

	created, err := h.adapter.CreateRecord(r.Context(), row)
	if err != nil || !created {
		respondError(w, WrapError(NewError(http.StatusBadGateway, "failed to create employee record", err), requestID))
		return
	}

	respondJSON(w, http.StatusCreated, CreateEmployeeResponse{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Role:       role,
		Password:   password,
	})
}
