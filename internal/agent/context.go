/*-------------------------------------------------------------------------
 *
 * context.go
 *    Per-message session context passed to intent handlers
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/agent/context.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"github.com/teamai-botivate/HR-Support/internal/records"
)

/* SessionContext carries everything a handler may read or mutate while
 * answering one message. The primary handler receives the live context;
 * each secondary handler receives an independent Clone, so concurrent
 * mutations never bleed between handlers. */
type SessionContext struct {
	TenantID       string
	EmployeeID     string
	EmployeeName   string
	Role           string
	Message        string
	SessionSummary string
	Record         records.Record
	Schema         records.SchemaMap
	Updates        map[string]interface{}
}

/* Clone returns a deep copy of the context. The record and updates
 * maps are copied; nested values in the record are assumed scalar,
 * which matches what the record gateway returns. */
func (s *SessionContext) Clone() *SessionContext {
	clone := *s
	if s.Record != nil {
		clone.Record = make(records.Record, len(s.Record))
		for k, v := range s.Record {
			clone.Record[k] = v
		}
	}
	if s.Updates != nil {
		clone.Updates = make(map[string]interface{}, len(s.Updates))
		for k, v := range s.Updates {
			clone.Updates[k] = v
		}
	}
	return &clone
}
