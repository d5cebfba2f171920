/*-------------------------------------------------------------------------
 *
 * notification_queries.go
 *    Database queries for notifications
 *
 * Notifications are append-only; only the read flag is ever mutated.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/db/notification_queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

/* Notification queries */
const (
	createNotificationQuery = `
		INSERT INTO hr_support.notifications
		(id, tenant_id, target_employee_id, title, message, notification_type, related_request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	listNotificationsQuery = `
		SELECT * FROM hr_support.notifications
		WHERE tenant_id = $1 AND target_employee_id = $2
		ORDER BY created_at DESC`

	listNotificationsWithAuthorityQuery = `
		SELECT * FROM hr_support.notifications
		WHERE tenant_id = $1 AND (target_employee_id = $2 OR target_employee_id = $3)
		ORDER BY created_at DESC`

	markNotificationReadQuery = `
		UPDATE hr_support.notifications
		SET is_read = TRUE
		WHERE id = $1 AND NOT is_read`
)

/* CreateNotification appends a notification */
func (q *Queries) CreateNotification(ctx context.Context, n *Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	err := q.DB.QueryRowxContext(ctx, createNotificationQuery,
		n.ID, n.TenantID, n.TargetEmployeeID, n.Title, n.Message,
		n.NotificationType, n.RelatedRequestID,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("notification creation failed: tenant='%s', target='%s', type='%s', error=%w",
			n.TenantID, n.TargetEmployeeID, n.NotificationType, err)
	}
	return nil
}

/* ListNotifications lists notifications visible to an employee. Authority
 * callers additionally see notifications addressed to the authority target. */
func (q *Queries) ListNotifications(ctx context.Context, tenantID, employeeID string, includeAuthority bool) ([]Notification, error) {
	notifs := []Notification{}
	var err error
	if includeAuthority {
		err = q.DB.SelectContext(ctx, &notifs, listNotificationsWithAuthorityQuery, tenantID, employeeID, AuthorityTarget)
	} else {
		err = q.DB.SelectContext(ctx, &notifs, listNotificationsQuery, tenantID, employeeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: tenant='%s', employee='%s', error=%w",
			tenantID, employeeID, err)
	}
	return notifs, nil
}

/* MarkNotificationRead sets the read flag. Returns false for unknown or
 * already-read notifications. */
func (q *Queries) MarkNotificationRead(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := q.DB.ExecContext(ctx, markNotificationReadQuery, id)
	if err != nil {
		return false, fmt.Errorf("notification read update failed: id='%s', error=%w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}
