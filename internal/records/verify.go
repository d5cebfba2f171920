/*-------------------------------------------------------------------------
 *
 * verify.go
 *    Record verification guard
 *
 * The backing store may answer a keyed lookup with a different row than
 * requested (case-insensitive or partial matching in the store). Every
 * record must pass through Verify before any of its contents reach a
 * caller; a mismatch is a data-integrity error and the record must not
 * be used.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/records/verify.go
 *
 *-------------------------------------------------------------------------
 */

package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/teamai-botivate/HR-Support/internal/metrics"
	"github.com/teamai-botivate/HR-Support/internal/utils"
)

/* ErrRecordNotFound marks a key that matched no record even after a full scan */
var ErrRecordNotFound = errors.New("record not found")

/* DataIntegrityError marks a record whose key does not match the requested key */
type DataIntegrityError struct {
	KeyField    string
	RequestedID string
	FoundID     string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("record verification failed: key_field='%s', requested='%s', found='%s'",
		e.KeyField, e.RequestedID, e.FoundID)
}

/* Verify confirms that a fetched record's key equals the requested key.
 * Both sides are normalized (trim, case-fold) before comparison. On
 * success the record is returned unchanged. */
func Verify(requestedID string, record Record, keyField string) (Record, error) {
	if record == nil {
		return nil, ErrRecordNotFound
	}
	foundID := record.GetString(keyField)
	if utils.NormalizeKey(foundID) != utils.NormalizeKey(requestedID) {
		return nil, &DataIntegrityError{
			KeyField:    keyField,
			RequestedID: requestedID,
			FoundID:     foundID,
		}
	}
	return record, nil
}

/* Resolve fetches and verifies an employee's own record. A verification
 * mismatch triggers a fallback scan of the full record set for a
 * normalized key match before giving up with ErrRecordNotFound. Store
 * failures propagate to the caller. */
func Resolve(ctx context.Context, adapter Adapter, keyField, keyValue string) (Record, error) {
	record, err := adapter.GetByKey(ctx, keyField, keyValue)
	if err != nil {
		return nil, fmt.Errorf("record lookup failed: key='%s', error=%w", keyValue, err)
	}

	verified, err := Verify(keyValue, record, keyField)
	if err == nil {
		return verified, nil
	}

	var integrityErr *DataIntegrityError
	if errors.As(err, &integrityErr) {
		metrics.WarnWithContext(ctx, "Record verification mismatch, falling back to full scan", map[string]interface{}{
			"key_field": integrityErr.KeyField,
			"requested": integrityErr.RequestedID,
			"found":     integrityErr.FoundID,
		})
	}

	/* Fallback: scan all records for a normalized match */
	all, scanErr := adapter.GetAll(ctx)
	if scanErr != nil {
		return nil, fmt.Errorf("record fallback scan failed: key='%s', error=%w", keyValue, scanErr)
	}
	want := utils.NormalizeKey(keyValue)
	for _, rec := range all {
		if utils.NormalizeKey(rec.GetString(keyField)) == want {
			return rec, nil
		}
	}

	return nil, ErrRecordNotFound
}
