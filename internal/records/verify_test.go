/*-------------------------------------------------------------------------
 *
 * verify_test.go
 *    Tests for record verification and resolution
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/records/verify_test.go
 *
 *-------------------------------------------------------------------------
 */

package records

import (
	"context"
	"errors"
	"testing"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name        string
		requestedID string
		record      Record
		wantErr     bool
	}{
		{
			name:        "exact match",
			requestedID: "EMP-1042",
			record:      Record{"employee_id": "EMP-1042"},
		},
		{
			name:        "match ignoring case and whitespace",
			requestedID: "  emp-1042 ",
			record:      Record{"employee_id": "EMP-1042"},
		},
		{
			name:        "wrong record returned by loose lookup",
			requestedID: "EMP-1042",
			record:      Record{"employee_id": "EMP-1043"},
			wantErr:     true,
		},
		{
			name:        "record missing the key field",
			requestedID: "EMP-1042",
			record:      Record{"name": "Asha"},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Verify(tt.requestedID, tt.record, "employee_id")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Verify(%q) expected error, got record %v", tt.requestedID, got)
				}
				var integrityErr *DataIntegrityError
				if !errors.As(err, &integrityErr) {
					t.Errorf("Verify(%q) error = %v, want DataIntegrityError", tt.requestedID, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify(%q) unexpected error: %v", tt.requestedID, err)
			}
			if got == nil {
				t.Fatalf("Verify(%q) returned nil record", tt.requestedID)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	headers := []string{"employee_id", "name", "role"}
	rows := []Record{
		{"employee_id": "EMP-1", "name": "Asha", "role": "employee"},
		{"employee_id": "EMP-2", "name": "Ravi", "role": "manager"},
	}

	t.Run("resolves an existing record", func(t *testing.T) {
		adapter := NewMemoryAdapter(headers, rows)
		record, err := Resolve(context.Background(), adapter, "employee_id", "EMP-2")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if record.GetString("name") != "Ravi" {
			t.Errorf("Resolve returned wrong record: %v", record)
		}
	})

	t.Run("missing record returns ErrRecordNotFound", func(t *testing.T) {
		adapter := NewMemoryAdapter(headers, rows)
		_, err := Resolve(context.Background(), adapter, "employee_id", "EMP-99")
		if !errors.Is(err, ErrRecordNotFound) {
			t.Errorf("Resolve error = %v, want ErrRecordNotFound", err)
		}
	})

	t.Run("falls back to a full scan on integrity mismatch", func(t *testing.T) {
		/* A lookup adapter that returns the wrong row for a key; the
		 * verifier must reject it and the full scan must find the
		 * right one. */
		adapter := &misbehavingAdapter{
			MemoryAdapter: NewMemoryAdapter(headers, rows),
			wrongRow:      rows[0],
		}
		record, err := Resolve(context.Background(), adapter, "employee_id", "EMP-2")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if record.GetString("employee_id") != "EMP-2" {
			t.Errorf("Resolve returned unverified record: %v", record)
		}
	})

	t.Run("mismatch with no scan match returns ErrRecordNotFound", func(t *testing.T) {
		adapter := &misbehavingAdapter{
			MemoryAdapter: NewMemoryAdapter(headers, rows),
			wrongRow:      rows[0],
		}
		_, err := Resolve(context.Background(), adapter, "employee_id", "EMP-77")
		if !errors.Is(err, ErrRecordNotFound) {
			t.Errorf("Resolve error = %v, want ErrRecordNotFound", err)
		}
	})
}

/* misbehavingAdapter simulates a record store whose keyed lookup
 * returns a row without checking the key */
type misbehavingAdapter struct {
	*MemoryAdapter
	wrongRow Record
}

func (a *misbehavingAdapter) GetByKey(ctx context.Context, keyField, keyValue string) (Record, error) {
	return cloneRecord(a.wrongRow), nil
}
