/*-------------------------------------------------------------------------
 *
 * notification_handlers.go
 *    Notification endpoints for the HR support API
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/notification_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/teamai-botivate/HR-Support/internal/utils"
)

/* ListNotifications returns notifications for the caller. Authority
 * roles also see the shared authority channel. */
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	claims, err := MustGetClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	notifications, err := h.manager.Notifications(r.Context(), claims.TenantID, claims.EmployeeID, claims.Role)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list notifications", err), requestID))
		return
	}

	responses := make([]*NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, toNotificationResponse(&notifications[i]))
	}
	respondJSON(w, http.StatusOK, responses)
}

/* MarkNotificationRead flips a notification's read flag */
func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	if _, err := MustGetClaimsFromContext(r.Context()); err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := utils.ParseUUID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid notification ID", err, requestID, nil))
		return
	}

	updated, err := h.manager.MarkNotificationRead(r.Context(), id)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to mark notification read", err), requestID))
		return
	}
	/* updated is false when the row is missing or was already read;
	 * marking read is idempotent either way */
	respondJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}
