/*-------------------------------------------------------------------------
 *
 * uuid.go
 *    UUID parsing helper
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/utils/uuid.go
 *
 *-------------------------------------------------------------------------
 */

package utils

import (
	"github.com/google/uuid"
)

/* ParseUUID parses a UUID from a request path or payload */
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
