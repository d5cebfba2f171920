/*-------------------------------------------------------------------------
 *
 * models.go
 *    Database models for HR-Support
 *
 * Defines data structures for approval requests and notifications,
 * plus the status/priority/role vocabularies used across the system.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/db/models.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"time"

	"github.com/google/uuid"
)

/* Approval request statuses */
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusEscalated = "escalated"
)

/* Approval request priorities */
const (
	PriorityNormal = "normal"
	PriorityUrgent = "urgent"
)

/* User roles */
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleCEO      = "ceo"
	RoleAdmin    = "admin"
)

/* Notification types */
const (
	NotificationApprovalRequest = "approval_request"
	NotificationDecisionUpdate  = "decision_update"
	NotificationReminder        = "reminder"
	NotificationEscalation      = "escalation"
)

/* AuthorityTarget is the reserved notification target resolved by role at read time */
const AuthorityTarget = "__authority__"

/* AuthorityRoles is the set of roles allowed to see authority notifications
 * and act on pending requests */
var AuthorityRoles = []string{RoleManager, RoleHR, RoleAdmin, RoleCEO}

/* MutationRoles is the set of roles allowed to invoke record mutations */
var MutationRoles = []string{RoleManager, RoleHR, RoleAdmin}

/* IsAuthorityRole reports whether a role belongs to the authority set */
func IsAuthorityRole(role string) bool {
	for _, r := range AuthorityRoles {
		if r == role {
			return true
		}
	}
	return false
}

/* IsMutationRole reports whether a role may invoke record mutations */
func IsMutationRole(role string) bool {
	for _, r := range MutationRoles {
		if r == role {
			return true
		}
	}
	return false
}

/* IsTerminalStatus reports whether a request status accepts no scheduler transition */
func IsTerminalStatus(status string) bool {
	return status == StatusApproved || status == StatusRejected || status == StatusEscalated
}

type ApprovalRequest struct {
	ID             uuid.UUID  `db:"id"`
	TenantID       string     `db:"tenant_id"`
	EmployeeID     string     `db:"employee_id"`
	EmployeeName   *string    `db:"employee_name"`
	RequestType    string     `db:"request_type"`
	RequestDetails JSONBMap   `db:"request_details"`
	Context        *string    `db:"context"`
	Status         string     `db:"status"`
	Priority       string     `db:"priority"`
	AssignedRole   string     `db:"assigned_role"`
	DecisionNote   *string    `db:"decision_note"`
	DecidedBy      *string    `db:"decided_by"`
	DecidedAt      *time.Time `db:"decided_at"`
	ReminderSent   bool       `db:"reminder_sent"`
	Escalated      bool       `db:"escalated"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

type Notification struct {
	ID               uuid.UUID  `db:"id"`
	TenantID         string     `db:"tenant_id"`
	TargetEmployeeID string     `db:"target_employee_id"`
	Title            string     `db:"title"`
	Message          string     `db:"message"`
	NotificationType string     `db:"notification_type"`
	RelatedRequestID *uuid.UUID `db:"related_request_id"`
	IsRead           bool       `db:"is_read"`
	CreatedAt        time.Time  `db:"created_at"`
}
