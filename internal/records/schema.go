/*-------------------------------------------------------------------------
 *
 * schema.go
 *    Schema description of the external employee store
 *
 * The schema map is external configuration naming which record fields
 * carry the primary key, display name, and role. It is validated once
 * at startup; an incomplete map fails fast.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/records/schema.go
 *
 *-------------------------------------------------------------------------
 */

package records

import (
	"fmt"
	"strings"
)

/* SchemaValidationError marks an unusable schema description */
type SchemaValidationError struct {
	Field  string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("invalid schema map: field='%s', reason=%s", e.Field, e.Reason)
}

/* SchemaMap names the semantically tagged fields of the employee store */
type SchemaMap struct {
	PrimaryKey  string
	DisplayName string
	Role        string
	Email       string
	Password    string
}

/* NewSchemaMap builds a SchemaMap from a raw configuration mapping */
func NewSchemaMap(raw map[string]string) (*SchemaMap, error) {
	sm := &SchemaMap{
		PrimaryKey:  strings.TrimSpace(raw["primary_key"]),
		DisplayName: strings.TrimSpace(raw["employee_name"]),
		Role:        strings.TrimSpace(raw["role"]),
		Email:       strings.TrimSpace(raw["email"]),
		Password:    strings.TrimSpace(raw["password"]),
	}
	if err := sm.Validate(); err != nil {
		return nil, err
	}
	return sm, nil
}

/* Validate fails fast when the primary key or display name is blank */
func (s *SchemaMap) Validate() error {
	if s.PrimaryKey == "" {
		return &SchemaValidationError{Field: "primary_key", Reason: "blank"}
	}
	if s.DisplayName == "" {
		return &SchemaValidationError{Field: "employee_name", Reason: "blank"}
	}
	return nil
}
