/*-------------------------------------------------------------------------
 *
 * chat_handlers.go
 *    Chat endpoint for the HR support API
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/chat_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"net/http"

	"github.com/teamai-botivate/HR-Support/internal/agent"
)

/* HandleChat processes one chat turn for the authenticated employee */
func (h *Handlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	claims, err := MustGetClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	var req ChatRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body parsing error", err, requestID, nil))
		return
	}
	if err := ValidateChatRequest(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, nil))
		return
	}

	reply, err := h.runtime.HandleMessage(r.Context(), agent.MessageInput{
		TenantID:       claims.TenantID,
		EmployeeID:     claims.EmployeeID,
		Role:           claims.Role,
		Message:        req.Message,
		SessionSummary: req.SessionSummary,
		Updates:        req.Updates,
	})
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadGateway, "message handling failed", err), requestID))
		return
	}

	resp := ChatResponse{
		Reply:          reply.Reply,
		Primary:        reply.Primary,
		Intents:        reply.Intents,
		Actions:        reply.Actions,
		ApprovalNeeded: reply.ApprovalNeeded,
		ApprovalType:   reply.ApprovalType,
	}
	if reply.ApprovalID != nil {
		id := reply.ApprovalID.String()
		resp.ApprovalID = &id
	}
	respondJSON(w, http.StatusOK, resp)
}
