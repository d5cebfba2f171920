/*-------------------------------------------------------------------------
 *
 * employee_handlers_test.go
 *    Tests for the employee provisioning endpoint
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/employee_handlers_test.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/teamai-botivate/HR-Support/internal/auth"
	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/records"
)

func provisioningHandlers(adapter records.Adapter) *Handlers {
	schema := records.SchemaMap{
		PrimaryKey:  "employee_id",
		DisplayName: "name",
		Role:        "role",
		Email:       "email",
		Password:    "password",
	}
	return NewHandlers(nil, nil, nil, nil, adapter, schema, "acme")
}

func provisionRequest(t *testing.T, role string, body interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/v1/employees", bytes.NewReader(payload))
	ctx := context.WithValue(req.Context(), claimsContextKey, &auth.Claims{
		TenantID:   "acme",
		EmployeeID: "ADM-1",
		Role:       role,
	})
	return req.WithContext(ctx)
}

func TestCreateEmployee(t *testing.T) {
	adapter := records.NewMemoryAdapter([]string{"employee_id", "name", "role", "email", "password"}, nil)
	handlers := provisioningHandlers(adapter)

	rec := httptest.NewRecorder()
	handlers.CreateEmployee(rec, provisionRequest(t, db.RoleAdmin, CreateEmployeeRequest{
		EmployeeID: "EMP-7",
		Name:       "Nadia",
		Email:      "nadia@acme.test",
	}))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp CreateEmployeeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response decode failed: %v", err)
	}
	if resp.Password == "" {
		t.Fatal("response is missing the generated credential")
	}
	if resp.Role != db.RoleEmployee {
		t.Errorf("role = %q, want the employee default", resp.Role)
	}

	record, err := adapter.GetByKey(context.Background(), "employee_id", "EMP-7")
	if err != nil || record == nil {
		t.Fatalf("provisioned record not found: %v", err)
	}
	stored := record.GetString("password")
	if stored == resp.Password {
		t.Error("credential stored in plain text")
	}
	if !auth.VerifyPassword(stored, resp.Password) {
		t.Error("stored hash does not verify against the issued credential")
	}
}

func TestCreateEmployeeForbiddenForNonAdmin(t *testing.T) {
	adapter := records.NewMemoryAdapter([]string{"employee_id", "name"}, nil)
	handlers := provisioningHandlers(adapter)

	for _, role := range []string{db.RoleEmployee, db.RoleManager, db.RoleHR} {
		rec := httptest.NewRecorder()
		handlers.CreateEmployee(rec, provisionRequest(t, role, CreateEmployeeRequest{
			EmployeeID: "EMP-8",
			Name:       "Omar",
		}))
		if rec.Code != http.StatusForbidden {
			t.Errorf("role %s: status = %d, want 403", role, rec.Code)
		}
	}
}

func TestCreateEmployeeDuplicate(t *testing.T) {
	adapter := records.NewMemoryAdapter(
		[]string{"employee_id", "name"},
		[]records.Record{{"employee_id": "EMP-1", "name": "Asha"}},
	)
	handlers := provisioningHandlers(adapter)

	rec := httptest.NewRecorder()
	handlers.CreateEmployee(rec, provisionRequest(t, db.RoleAdmin, CreateEmployeeRequest{
		EmployeeID: "EMP-1",
		Name:       "Asha Again",
	}))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 for an existing employee id", rec.Code)
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateEmployeeRequest
	}{
		{name: "missing id", req: CreateEmployeeRequest{Name: "Nadia"}},
		{name: "missing name", req: CreateEmployeeRequest{EmployeeID: "EMP-9"}},
		{name: "bogus role", req: CreateEmployeeRequest{EmployeeID: "EMP-9", Name: "Nadia", Role: "superuser"}},
	}

	adapter := records.NewMemoryAdapter([]string{"employee_id", "name"}, nil)
	handlers := provisioningHandlers(adapter)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.CreateEmployee(rec, provisionRequest(t, db.RoleAdmin, tt.req))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
