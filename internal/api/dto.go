/*-------------------------------------------------------------------------
 *
 * dto.go
 *    Request and response types for the HR support API
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/dto.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"time"

	"github.com/teamai-botivate/HR-Support/internal/db"
)

type LoginRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Role         string `json:"role"`
	ExpiresIn    int64  `json:"expires_in"`
}

type ChatRequest struct {
	Message        string                 `json:"message"`
	SessionSummary string                 `json:"session_summary,omitempty"`
	Updates        map[string]interface{} `json:"updates,omitempty"`
}

type ChatResponse struct {
	Reply          string   `json:"reply"`
	Primary        string   `json:"primary_intent"`
	Intents        []string `json:"intents"`
	Actions        []string `json:"actions,omitempty"`
	ApprovalNeeded bool     `json:"approval_needed"`
	ApprovalType   string   `json:"approval_type,omitempty"`
	ApprovalID     *string  `json:"approval_id,omitempty"`
}

type CreateApprovalRequest struct {
	RequestType  string                 `json:"request_type"`
	Details      map[string]interface{} `json:"details,omitempty"`
	Context      string                 `json:"context,omitempty"`
	Priority     string                 `json:"priority,omitempty"`
	AssignedRole string                 `json:"assigned_role,omitempty"`
}

type DecisionRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
}

/* CreateEmployeeResponse carries the generated credential exactly once */
type CreateEmployeeResponse struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Password   string `json:"password"`
}

type ApprovalResponse struct {
	ID           string                 `json:"id"`
	TenantID     string                 `json:"tenant_id"`
	EmployeeID   string                 `json:"employee_id"`
	EmployeeName *string                `json:"employee_name,omitempty"`
	RequestType  string                 `json:"request_type"`
	Details      map[string]interface{} `json:"details,omitempty"`
	Summary      *string                `json:"summary,omitempty"`
	Status       string                 `json:"status"`
	Priority     string                 `json:"priority"`
	AssignedRole string                 `json:"assigned_role"`
	DecisionNote *string                `json:"decision_note,omitempty"`
	DecidedBy    *string                `json:"decided_by,omitempty"`
	DecidedAt    *time.Time             `json:"decided_at,omitempty"`
	ReminderSent bool                   `json:"reminder_sent"`
	Escalated    bool                   `json:"escalated"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

type NotificationResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	NotificationType string     `json:"notification_type"`
	RelatedRequestID *string    `json:"related_request_id,omitempty"`
	IsRead           bool       `json:"is_read"`
	CreatedAt        time.Time  `json:"created_at"`
}

type SweepResponse struct {
	Scanned       int `json:"scanned"`
	RemindersSent int `json:"reminders_sent"`
	Escalations   int `json:"escalations"`
	Failures      int `json:"failures"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
}

func toApprovalResponse(req *db.ApprovalRequest) *ApprovalResponse {
	return &ApprovalResponse{
		ID:           req.ID.String(),
		TenantID:     req.TenantID,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		RequestType:  req.RequestType,
		Details:      req.RequestDetails.ToMap(),
		Summary:      req.Context,
		Status:       req.Status,
		Priority:     req.Priority,
		AssignedRole: req.AssignedRole,
		DecisionNote: req.DecisionNote,
		DecidedBy:    req.DecidedBy,
		DecidedAt:    req.DecidedAt,
		ReminderSent: req.ReminderSent,
		Escalated:    req.Escalated,
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
	}
}

func toNotificationResponse(n *db.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:               n.ID.String(),
		Title:            n.Title,
		Message:          n.Message,
		NotificationType: n.NotificationType,
		IsRead:           n.IsRead,
		CreatedAt:        n.CreatedAt,
	}
	if n.RelatedRequestID != nil {
		id := n.RelatedRequestID.String()
		resp.RelatedRequestID = &id
	}
	return resp
}
