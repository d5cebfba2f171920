/*-------------------------------------------------------------------------
 *
 * handlers.go
 *    Handler wiring and response helpers for the HR support API
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/api/handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/teamai-botivate/HR-Support/internal/agent"
	"github.com/teamai-botivate/HR-Support/internal/approvals"
	"github.com/teamai-botivate/HR-Support/internal/auth"
	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/records"
)

/* Version of the HR support server */
const Version = "1.0.0"

const maxBodyBytes = 1 << 20

/* Handlers holds the dependencies shared by all API handlers */
type Handlers struct {
	database *db.DB
	runtime  *agent.Runtime
	manager  *approvals.Manager
	tokens   *auth.TokenManager
	adapter  records.Adapter
	schema   records.SchemaMap
	tenantID string
}

/* NewHandlers creates the API handler set */
func NewHandlers(database *db.DB, runtime *agent.Runtime, manager *approvals.Manager,
	tokens *auth.TokenManager, adapter records.Adapter, schema records.SchemaMap, tenantID string) *Handlers {
	return &Handlers{
		database: database,
		runtime:  runtime,
		manager:  manager,
		tokens:   tokens,
		adapter:  adapter,
		schema:   schema,
		tenantID: tenantID,
	}
}

/* HealthCheck reports server and database health */
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok", Version: Version}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := h.database.HealthCheck(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, err *APIError) {
	respondJSON(w, err.Status, ErrorResponse{Error: err})
}
