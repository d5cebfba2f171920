/*-------------------------------------------------------------------------
 *
 * validate.go
 *    Shared validation helpers for HR-Support
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/utils/validate.go
 *
 *-------------------------------------------------------------------------
 */

package utils

import (
	"fmt"
	"strings"
)

/* ValidateRequiredWithError checks that a string field is non-blank */
func ValidateRequiredWithError(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

/* ValidateLength checks that a string length is within [min, max] */
func ValidateLength(value string, min, max int) bool {
	return len(value) >= min && len(value) <= max
}

/* ValidateMaxLength checks a maximum string length */
func ValidateMaxLength(value string, max int) bool {
	return len(value) <= max
}

/* FormatConnectionInfo formats database connection details for diagnostics */
func FormatConnectionInfo(host string, port int, database, user string) string {
	return fmt.Sprintf("%s:%d/%s (user=%s)", host, port, database, user)
}

/* NormalizeKey trims and case-folds a record-store key for comparison */
func NormalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
