/*-------------------------------------------------------------------------
 *
 * memory.go
 *    In-memory record adapter
 *
 * Backs local development and tests. Mirrors the gateway's loose lookup
 * semantics: GetByKey matches case-insensitively, which is exactly the
 * behavior the verifier guards against.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/records/memory.go
 *
 *-------------------------------------------------------------------------
 */

package records

import (
	"context"
	"sync"

	"github.com/teamai-botivate/HR-Support/internal/utils"
)

/* MemoryAdapter implements Adapter over an in-memory record set */
type MemoryAdapter struct {
	mu      sync.RWMutex
	headers []string
	rows    []Record
}

/* NewMemoryAdapter creates an adapter over the given rows */
func NewMemoryAdapter(headers []string, rows []Record) *MemoryAdapter {
	copied := make([]Record, len(rows))
	for i, r := range rows {
		copied[i] = cloneRecord(r)
	}
	return &MemoryAdapter{headers: append([]string(nil), headers...), rows: copied}
}

func cloneRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (a *MemoryAdapter) GetHeaders(ctx context.Context) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.headers...), nil
}

func (a *MemoryAdapter) GetAll(ctx context.Context) ([]Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Record, len(a.rows))
	for i, r := range a.rows {
		out[i] = cloneRecord(r)
	}
	return out, nil
}

func (a *MemoryAdapter) GetByKey(ctx context.Context, keyField, keyValue string) (Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	want := utils.NormalizeKey(keyValue)
	for _, r := range a.rows {
		if utils.NormalizeKey(r.GetString(keyField)) == want {
			return cloneRecord(r), nil
		}
	}
	return nil, nil
}

func (a *MemoryAdapter) GetByFilter(ctx context.Context, filters map[string]string) ([]Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := []Record{}
	for _, r := range a.rows {
		match := true
		for fk, fv := range filters {
			if utils.NormalizeKey(r.GetString(fk)) != utils.NormalizeKey(fv) {
				match = false
				break
			}
		}
		if match {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

func (a *MemoryAdapter) SetFields(ctx context.Context, keyField, keyValue string, updates map[string]interface{}) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	want := utils.NormalizeKey(keyValue)
	for _, r := range a.rows {
		if utils.NormalizeKey(r.GetString(keyField)) == want {
			for k, v := range updates {
				r[k] = v
				a.ensureHeaderLocked(k)
			}
			return true, nil
		}
	}
	return false, nil
}

func (a *MemoryAdapter) AddField(ctx context.Context, name string, defaults []interface{}) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureHeaderLocked(name)
	for i, r := range a.rows {
		if _, ok := r[name]; !ok {
			if defaults != nil && i < len(defaults) {
				r[name] = defaults[i]
			} else {
				r[name] = ""
			}
		}
	}
	return true, nil
}

func (a *MemoryAdapter) CreateRecord(ctx context.Context, data map[string]interface{}) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	row := make(Record, len(data))
	for k, v := range data {
		row[k] = v
		a.ensureHeaderLocked(k)
	}
	a.rows = append(a.rows, row)
	return true, nil
}

func (a *MemoryAdapter) ensureHeaderLocked(name string) {
	for _, h := range a.headers {
		if h == name {
			return
		}
	}
	a.headers = append(a.headers, name)
}
