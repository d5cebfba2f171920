/*-------------------------------------------------------------------------
 *
 * classifier.go
 *    Intent classifier capability contract and label parsing
 *
 * The classifier is an external, nondeterministic capability: free text
 * in, a comma-separated label string out. The raw response may carry
 * whitespace, quoting, and arbitrary casing; anything unparseable
 * degrades to "no labels detected".
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/classify/classifier.go
 *
 *-------------------------------------------------------------------------
 */

package classify

import (
	"context"
	"strings"
)

/* Classifier returns a raw comma-separated intent label string for a message */
type Classifier interface {
	Classify(ctx context.Context, text, sessionSummary string) (string, error)
}

/* Completer produces a free-text completion for a prompt */
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

/* ParseLabels normalizes a raw classifier response into clean labels.
 * Tolerates whitespace, single/double quotes, backticks, and casing.
 * Returns an empty slice for unparseable output. */
func ParseLabels(raw string) []string {
	cleaned := strings.NewReplacer("\"", "", "'", "", "`", "", "[", "", "]", "").Replace(raw)
	parts := strings.Split(cleaned, ",")

	labels := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		label := strings.ToLower(strings.TrimSpace(part))
		label = strings.ReplaceAll(label, " ", "_")
		if label == "" || seen[label] {
			continue
		}
		/* A label is a short snake_case tag; anything longer is chatter
		 * from the model, not a label. */
		if len(label) > 40 || strings.Count(label, "_") > 4 {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}
