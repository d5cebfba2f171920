/*-------------------------------------------------------------------------
 *
 * adapter.go
 *    External record-store capability contract
 *
 * Any backing store for employee records (spreadsheet gateway, SQL,
 * document store) implements this interface. Field names are
 * caller-supplied strings; writes against unknown fields create them.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/records/adapter.go
 *
 *-------------------------------------------------------------------------
 */

package records

import (
	"context"
	"fmt"
	"strings"
)

/* Record is a single row from the external employee store */
type Record map[string]interface{}

/* GetString returns a field value as a trimmed string */
func (r Record) GetString(field string) string {
	if r == nil {
		return ""
	}
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

/* Redacted returns a copy of the record with the named fields removed.
 * Used before a record is handed to anything outside the server, such
 * as a summary prompt. */
func (r Record) Redacted(fields ...string) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

/* Adapter is the uniform interface over the external record store */
type Adapter interface {
	/* GetHeaders returns the field names of the data source */
	GetHeaders(ctx context.Context) ([]string, error)

	/* GetAll fetches every record */
	GetAll(ctx context.Context) ([]Record, error)

	/* GetByKey fetches a single record by key field value, nil when absent */
	GetByKey(ctx context.Context, keyField, keyValue string) (Record, error)

	/* GetByFilter fetches records matching all filter pairs */
	GetByFilter(ctx context.Context, filters map[string]string) ([]Record, error)

	/* SetFields updates one record; unknown fields are created, not rejected */
	SetFields(ctx context.Context, keyField, keyValue string, updates map[string]interface{}) (bool, error)

	/* AddField adds a new field to the data source */
	AddField(ctx context.Context, name string, defaults []interface{}) (bool, error)

	/* CreateRecord appends a new record */
	CreateRecord(ctx context.Context, data map[string]interface{}) (bool, error)
}
