/*-------------------------------------------------------------------------
 *
 * classifier_test.go
 *    Tests for intent label parsing
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/classify/classifier_test.go
 *
 *-------------------------------------------------------------------------
 */

package classify

import (
	"reflect"
	"testing"
)

func TestParseLabels(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "clean single label",
			raw:  "leave_request",
			want: []string{"leave_request"},
		},
		{
			name: "multiple labels with spaces",
			raw:  "leave_request, status_check , greeting",
			want: []string{"leave_request", "status_check", "greeting"},
		},
		{
			name: "quoted and bracketed output",
			raw:  `["leave_request", 'greeting']`,
			want: []string{"leave_request", "greeting"},
		},
		{
			name: "mixed casing",
			raw:  "Leave_Request, GREETING",
			want: []string{"leave_request", "greeting"},
		},
		{
			name: "spaces inside a label",
			raw:  "leave request, data update",
			want: []string{"leave_request", "data_update"},
		},
		{
			name: "duplicates collapse",
			raw:  "greeting, greeting, Greeting",
			want: []string{"greeting"},
		},
		{
			name: "backticked output",
			raw:  "`policy_query`",
			want: []string{"policy_query"},
		},
		{
			name: "empty string",
			raw:  "",
			want: []string{},
		},
		{
			name: "whitespace only",
			raw:  "   \n\t  ",
			want: []string{},
		},
		{
			name: "model chatter dropped",
			raw:  "the employee is asking about their remaining leave balance for this year",
			want: []string{},
		},
		{
			name: "chatter mixed with a real label",
			raw:  "greeting, this message is a friendly greeting from the employee to the assistant",
			want: []string{"greeting"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLabels(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLabels(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
