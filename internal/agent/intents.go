/*-------------------------------------------------------------------------
 *
 * intents.go
 *    Intent labels, priority ranking, and multi-intent routing
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/agent/intents.go
 *
 *-------------------------------------------------------------------------
 */

package agent

/* Intent labels the classifier may emit */
const (
	IntentGreeting       = "greeting"
	IntentPolicyQuery    = "policy_query"
	IntentDataQuery      = "data_query"
	IntentDataUpdate     = "data_update"
	IntentLeaveRequest   = "leave_request"
	IntentResignation    = "resignation"
	IntentGrievance      = "grievance"
	IntentApprovalAction = "approval_action"
	IntentStatusCheck    = "status_check"
	IntentSupport        = "support"
	IntentGeneral        = "general"
)

/* intentRank orders labels most specific first. Lower is more specific.
 * The primary intent is the highest-ranked recognized label; unknown
 * labels are discarded. */
var intentRank = map[string]int{
	IntentDataUpdate:     0,
	IntentLeaveRequest:   1,
	IntentResignation:    2,
	IntentGrievance:      3,
	IntentApprovalAction: 4,
	IntentStatusCheck:    5,
	IntentDataQuery:      6,
	IntentPolicyQuery:    7,
	IntentSupport:        8,
	IntentGreeting:       9,
	IntentGeneral:        10,
}

/* IsKnownIntent reports whether the label belongs to the recognized set */
func IsKnownIntent(label string) bool {
	_, ok := intentRank[label]
	return ok
}

/* Route selects the primary intent and the secondary intents to run
 * alongside it. Unknown labels are dropped; an empty or fully-unknown
 * label set routes to general. Suppression keeps filler intents out of
 * the secondary set:
 *   - greeting and general are dropped when anything more specific ran
 *   - data_query is dropped when the primary already reads or mutates
 *     the employee's record */
func Route(labels []string) (primary string, secondaries []string) {
	recognized := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if !IsKnownIntent(label) || seen[label] {
			continue
		}
		seen[label] = true
		recognized = append(recognized, label)
	}
	if len(recognized) == 0 {
		return IntentGeneral, nil
	}

	primary = recognized[0]
	for _, label := range recognized[1:] {
		if intentRank[label] < intentRank[primary] {
			primary = label
		}
	}

	recordBound := primary == IntentStatusCheck || primary == IntentDataUpdate ||
		primary == IntentLeaveRequest || primary == IntentResignation

	for _, label := range recognized {
		if label == primary {
			continue
		}
		if label == IntentGreeting || label == IntentGeneral {
			continue
		}
		if label == IntentDataQuery && recordBound {
			continue
		}
		secondaries = append(secondaries, label)
	}
	return primary, secondaries
}
