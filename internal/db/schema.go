/*-------------------------------------------------------------------------
 *
 * schema.go
 *    Schema bootstrap for HR-Support
 *
 * Creates the hr_support schema and tables when they do not exist yet.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/db/schema.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"fmt"
)

var bootstrapStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS hr_support`,

	`CREATE TABLE IF NOT EXISTS hr_support.approval_requests (
		id UUID PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		employee_name TEXT,
		request_type TEXT NOT NULL,
		request_details JSONB NOT NULL DEFAULT '{}'::jsonb,
		context TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		priority TEXT NOT NULL DEFAULT 'normal',
		assigned_role TEXT NOT NULL DEFAULT 'manager',
		decision_note TEXT,
		decided_by TEXT,
		decided_at TIMESTAMPTZ,
		reminder_sent BOOLEAN NOT NULL DEFAULT FALSE,
		escalated BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_approval_requests_pending
		ON hr_support.approval_requests (tenant_id, status)`,

	`CREATE INDEX IF NOT EXISTS idx_approval_requests_employee
		ON hr_support.approval_requests (tenant_id, LOWER(TRIM(employee_id)))`,

	`CREATE TABLE IF NOT EXISTS hr_support.notifications (
		id UUID PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		target_employee_id TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		notification_type TEXT NOT NULL,
		related_request_id UUID,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_target
		ON hr_support.notifications (tenant_id, target_employee_id)`,
}

/* Bootstrap creates the schema and tables if missing */
func (d *DB) Bootstrap(ctx context.Context) error {
	for _, stmt := range bootstrapStatements {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}
