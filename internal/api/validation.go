/*-------------------------------------------------------------------------
 *
 * validation.go
 *    Request validation for the HR support API
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/validation.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"fmt"

	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/utils"
)

const maxMessageLength = 8000

/* ValidateLoginRequest validates a login request */
func ValidateLoginRequest(req *LoginRequest) error {
	if err := utils.ValidateRequiredWithError(req.EmployeeID, "employee_id"); err != nil {
		return err
	}
	if !utils.ValidateLength(req.EmployeeID, 1, 100) {
		return fmt.Errorf("employee_id must be between 1 and 100 characters")
	}
	if err := utils.ValidateRequiredWithError(req.Password, "password"); err != nil {
		return err
	}
	return nil
}

/* ValidateChatRequest validates a chat request */
func ValidateChatRequest(req *ChatRequest) error {
	if err := utils.ValidateRequiredWithError(req.Message, "message"); err != nil {
		return err
	}
	if !utils.ValidateMaxLength(req.Message, maxMessageLength) {
		return fmt.Errorf("message must not exceed %d characters", maxMessageLength)
	}
	if !utils.ValidateMaxLength(req.SessionSummary, maxMessageLength) {
		return fmt.Errorf("session_summary must not exceed %d characters", maxMessageLength)
	}
	return nil
}

/* ValidateCreateApprovalRequest validates a direct approval submission */
func ValidateCreateApprovalRequest(req *CreateApprovalRequest) error {
	if err := utils.ValidateRequiredWithError(req.RequestType, "request_type"); err != nil {
		return err
	}
	if !utils.ValidateLength(req.RequestType, 1, 50) {
		return fmt.Errorf("request_type must be between 1 and 50 characters")
	}
	if req.Priority != "" && req.Priority != db.PriorityNormal && req.Priority != db.PriorityUrgent {
		return fmt.Errorf("priority must be '%s' or '%s'", db.PriorityNormal, db.PriorityUrgent)
	}
	if req.AssignedRole != "" && !db.IsAuthorityRole(req.AssignedRole) {
		return fmt.Errorf("assigned_role must be one of the authority roles")
	}
	return nil
}

/* ValidateCreateEmployeeRequest validates an employee provisioning request */
func ValidateCreateEmployeeRequest(req *CreateEmployeeRequest) error {
	if err := utils.ValidateRequiredWithError(req.EmployeeID, "employee_id"); err != nil {
		return err
	}
	if !utils.ValidateLength(req.EmployeeID, 1, 100) {
		return fmt.Errorf("employee_id must be between 1 and 100 characters")
	}
	if err := utils.ValidateRequiredWithError(req.Name, "name"); err != nil {
		return err
	}
	if req.Role != "" && req.Role != db.RoleEmployee && !db.IsAuthorityRole(req.Role) {
		return fmt.Errorf("role must be '%s' or one of the authority roles", db.RoleEmployee)
	}
	return nil
}

/* ValidateDecisionRequest validates an approve/reject request */
func ValidateDecisionRequest(req *DecisionRequest) error {
	if req.Status != db.StatusApproved && req.Status != db.StatusRejected {
		return fmt.Errorf("status must be '%s' or '%s'", db.StatusApproved, db.StatusRejected)
	}
	if !utils.ValidateMaxLength(req.Note, 2000) {
		return fmt.Errorf("note must not exceed 2000 characters")
	}
	return nil
}
