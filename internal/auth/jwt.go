/*-------------------------------------------------------------------------
 *
 * jwt.go
 *    JWT session tokens for the HR support API
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/auth/jwt.go
 *
 *-------------------------------------------------------------------------
 */

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

/* Claims is the session payload embedded in every token */
type Claims struct {
	TenantID     string `json:"tenant_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

/* TokenManager issues and validates session tokens */
type TokenManager struct {
	secret     []byte
	expiration time.Duration
}

/* NewTokenManager creates a token manager. Expiration defaults to
 * eight hours when unset. */
func NewTokenManager(secret string, expiration time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	if expiration <= 0 {
		expiration = 8 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(secret),
		expiration: expiration,
	}, nil
}

/* Expiration returns the configured token lifetime */
func (t *TokenManager) Expiration() time.Duration {
	return t.expiration
}

/* Generate issues a signed token for an authenticated employee */
func (t *TokenManager) Generate(tenantID, employeeID, employeeName, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		TenantID:     tenantID,
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		Role:         role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("token signing failed: employee='%s', error=%w", employeeID, err)
	}
	return signed, nil
}

/* Validate parses a token and returns its claims */
func (t *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.EmployeeID == "" {
		return nil, fmt.Errorf("token missing employee identity")
	}
	return claims, nil
}
