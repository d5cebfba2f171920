/*-------------------------------------------------------------------------
 *
 * jwt_test.go
 *    Tests for JWT session tokens
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/auth/jwt_test.go
 *
 *-------------------------------------------------------------------------
 */

package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}

	signed, err := tokens.Generate("acme", "EMP-1", "Asha", "manager")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.TenantID != "acme" || claims.EmployeeID != "EMP-1" || claims.Role != "manager" {
		t.Errorf("claims = %+v, identity did not round-trip", claims)
	}
	if claims.EmployeeName != "Asha" {
		t.Errorf("employee name = %q, want Asha", claims.EmployeeName)
	}
}

func TestTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", time.Hour)
	verifier, _ := NewTokenManager("secret-b", time.Hour)

	signed, err := issuer.Generate("acme", "EMP-1", "", "employee")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := verifier.Validate(signed); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	tokens, _ := NewTokenManager("test-secret", time.Hour)
	tokens.expiration = -time.Minute

	signed, err := tokens.Generate("acme", "EMP-1", "", "employee")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := tokens.Validate(signed); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	tokens, _ := NewTokenManager("test-secret", time.Hour)
	if _, err := tokens.Validate("not.a.token"); err == nil {
		t.Error("malformed token was accepted")
	}
}
