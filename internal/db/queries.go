/*-------------------------------------------------------------------------
 *
 * queries.go
 *    Query access layer for HR-Support
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/db/queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"errors"

	"github.com/jmoiron/sqlx"
)

/* ErrNotFound marks a lookup that matched no row */
var ErrNotFound = errors.New("not found")

/* Queries provides database query functions */
type Queries struct {
	DB *sqlx.DB
}

/* NewQueries creates a new query access layer */
func NewQueries(db *sqlx.DB) *Queries {
	return &Queries{DB: db}
}
