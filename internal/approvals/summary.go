/*-------------------------------------------------------------------------
 *
 * summary.go
 *    Best-effort request summaries for the authority channel
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/approvals/summary.go
 *
 *-------------------------------------------------------------------------
 */

package approvals

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teamai-botivate/HR-Support/internal/classify"
	"github.com/teamai-botivate/HR-Support/internal/metrics"
	"github.com/teamai-botivate/HR-Support/internal/records"
)

/* SummaryFallback is stored when no summary can be generated. Creation
 * never fails on a summarizer outage. */
const SummaryFallback = "Automated summary could not be generated at this time."

/* Summarizer condenses request details into one or two sentences for
 * the reviewing authority. A nil receiver or nil completer degrades to
 * the fallback text. */
type Summarizer struct {
	completer classify.Completer
	timeout   time.Duration
}

/* NewSummarizer creates a summarizer over a completion backend */
func NewSummarizer(completer classify.Completer) *Summarizer {
	return &Summarizer{completer: completer, timeout: 15 * time.Second}
}

/* Summarize returns a short human summary of the request against the
 * employee's current record, or the fallback text when generation
 * fails. The record must already be redacted by the caller. */
func (s *Summarizer) Summarize(ctx context.Context, requestType string, record records.Record, details map[string]interface{}) string {
	if s == nil || s.completer == nil {
		return SummaryFallback
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Summarize this HR %s request in one or two sentences for the approving manager.\nEmployee record: %s\nRequest details: %s",
		requestType, formatDetails(map[string]interface{}(record)), formatDetails(details))
	summary, err := s.completer.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(summary) == "" {
		metrics.WarnWithContext(ctx, "summary generation failed", map[string]interface{}{
			"request_type": requestType,
			"error":        errString(err),
		})
		return SummaryFallback
	}
	return strings.TrimSpace(summary)
}

func formatDetails(details map[string]interface{}) string {
	if len(details) == 0 {
		return "(none provided)"
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, details[k]))
	}
	return strings.Join(parts, ", ")
}

func errString(err error) string {
	if err == nil {
		return "empty summary"
	}
	return err.Error()
}
