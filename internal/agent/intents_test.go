/*-------------------------------------------------------------------------
 *
 * intents_test.go
 *    Tests for intent routing and suppression
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/agent/intents_test.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"reflect"
	"testing"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name            string
		labels          []string
		wantPrimary     string
		wantSecondaries []string
	}{
		{
			name:        "empty routes to general",
			labels:      nil,
			wantPrimary: IntentGeneral,
		},
		{
			name:        "unknown labels route to general",
			labels:      []string{"gibberish", "other_things"},
			wantPrimary: IntentGeneral,
		},
		{
			name:        "single label",
			labels:      []string{"leave_request"},
			wantPrimary: IntentLeaveRequest,
		},
		{
			name:            "specific label wins over greeting",
			labels:          []string{"greeting", "leave_request"},
			wantPrimary:     IntentLeaveRequest,
			wantSecondaries: nil,
		},
		{
			name:            "greeting suppressed but policy kept",
			labels:          []string{"greeting", "leave_request", "policy_query"},
			wantPrimary:     IntentLeaveRequest,
			wantSecondaries: []string{IntentPolicyQuery},
		},
		{
			name:            "data_query suppressed next to status_check",
			labels:          []string{"status_check", "data_query"},
			wantPrimary:     IntentStatusCheck,
			wantSecondaries: nil,
		},
		{
			name:            "data_query suppressed next to data_update",
			labels:          []string{"data_update", "data_query"},
			wantPrimary:     IntentDataUpdate,
			wantSecondaries: nil,
		},
		{
			name:            "data_query kept next to policy_query",
			labels:          []string{"policy_query", "data_query"},
			wantPrimary:     IntentDataQuery,
			wantSecondaries: []string{IntentPolicyQuery},
		},
		{
			name:            "priority order picks most specific",
			labels:          []string{"general", "support", "resignation"},
			wantPrimary:     IntentResignation,
			wantSecondaries: []string{IntentSupport},
		},
		{
			name:        "greeting only",
			labels:      []string{"greeting"},
			wantPrimary: IntentGreeting,
		},
		{
			name:            "duplicates ignored",
			labels:          []string{"grievance", "grievance", "support"},
			wantPrimary:     IntentGrievance,
			wantSecondaries: []string{IntentSupport},
		},
		{
			name:            "unknown labels dropped from mix",
			labels:          []string{"nonsense", "leave_request", "support"},
			wantPrimary:     IntentLeaveRequest,
			wantSecondaries: []string{IntentSupport},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, secondaries := Route(tt.labels)
			if primary != tt.wantPrimary {
				t.Errorf("Route(%v) primary = %q, want %q", tt.labels, primary, tt.wantPrimary)
			}
			if !reflect.DeepEqual(secondaries, tt.wantSecondaries) {
				t.Errorf("Route(%v) secondaries = %v, want %v", tt.labels, secondaries, tt.wantSecondaries)
			}
		})
	}
}

func TestSessionContextClone(t *testing.T) {
	sc := &SessionContext{
		TenantID:   "acme",
		EmployeeID: "EMP-1",
		Record:     map[string]interface{}{"name": "Asha"},
		Updates:    map[string]interface{}{"phone": "123"},
	}

	clone := sc.Clone()
	clone.Record["name"] = "changed"
	clone.Updates["phone"] = "999"
	clone.EmployeeID = "EMP-2"

	if sc.Record["name"] != "Asha" {
		t.Errorf("clone mutation leaked into original record: %v", sc.Record["name"])
	}
	if sc.Updates["phone"] != "123" {
		t.Errorf("clone mutation leaked into original updates: %v", sc.Updates["phone"])
	}
	if sc.EmployeeID != "EMP-1" {
		t.Errorf("clone mutation leaked into original scalar field")
	}
}
