/*-------------------------------------------------------------------------
 *
 * context.go
 *    Context helper functions for API handlers
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/context.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"fmt"

	"github.com/teamai-botivate/HR-Support/internal/auth"
)

/* GetClaimsFromContext gets the session claims from context */
func GetClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

/* MustGetClaimsFromContext gets the session claims or returns an error */
func MustGetClaimsFromContext(ctx context.Context) (*auth.Claims, error) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("session claims not found in context: authentication required")
	}
	return claims, nil
}
