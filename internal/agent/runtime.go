/*-------------------------------------------------------------------------
 *
 * runtime.go
 *    HR support message runtime: verify, classify, dispatch, combine
 *
 * HandleMessage is the single entry point for a chat turn. It resolves
 * and verifies the employee record, classifies the message into
 * intents, dispatches one handler per intent (primary on the live
 * session context, secondaries concurrently on clones), and combines
 * the fragments into one reply. A handler error or panic degrades to an
 * apologetic fragment; the caller always gets a reply.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/agent/runtime.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/teamai-botivate/HR-Support/internal/approvals"
	"github.com/teamai-botivate/HR-Support/internal/classify"
	"github.com/teamai-botivate/HR-Support/internal/metrics"
	"github.com/teamai-botivate/HR-Support/internal/records"
)

/* ReplyDivider separates fragments in a multi-intent reply */
const ReplyDivider = "\n\n---\n\n"

const failureApology = "I ran into a problem handling part of your message. Please try again, or contact HR directly if it keeps happening."

/* Runtime wires the per-message pipeline together */
type Runtime struct {
	adapter        records.Adapter
	schema         records.SchemaMap
	classifier     classify.Classifier
	completer      classify.Completer
	approvals      *approvals.Manager
	supportContact string
}

/* RuntimeConfig bundles the runtime's dependencies */
type RuntimeConfig struct {
	Adapter        records.Adapter
	Schema         records.SchemaMap
	Classifier     classify.Classifier
	Completer      classify.Completer
	Approvals      *approvals.Manager
	SupportContact string
}

/* NewRuntime creates a message runtime */
func NewRuntime(cfg RuntimeConfig) *Runtime {
	contact := cfg.SupportContact
	if contact == "" {
		contact = "support@botivate.in"
	}
	return &Runtime{
		adapter:        cfg.Adapter,
		schema:         cfg.Schema,
		classifier:     cfg.Classifier,
		completer:      cfg.Completer,
		approvals:      cfg.Approvals,
		supportContact: contact,
	}
}

/* MessageInput is one chat turn from an authenticated employee */
type MessageInput struct {
	TenantID       string
	EmployeeID     string
	Role           string
	Message        string
	SessionSummary string
	Updates        map[string]interface{}
}

/* MessageReply is the combined outcome of one chat turn */
type MessageReply struct {
	Reply          string
	Primary        string
	Intents        []string
	Actions        []string
	ApprovalNeeded bool
	ApprovalType   string
	ApprovalID     *uuid.UUID
}

/* HandleMessage processes one chat turn. It returns an error only for
 * infrastructure failures before dispatch (record store outage);
 * handler-level failures are absorbed into the reply. */
func (r *Runtime) HandleMessage(ctx context.Context, in MessageInput) (*MessageReply, error) {
	record, err := records.Resolve(ctx, r.adapter, r.schema.PrimaryKey, in.EmployeeID)
	if errors.Is(err, records.ErrRecordNotFound) {
		metrics.RecordMessageHandled("none", "record_not_found")
		return &MessageReply{
			Reply:   "I couldn't verify your employee record. Please check your employee ID or contact HR to get it corrected.",
			Primary: IntentGeneral,
			Intents: []string{IntentGeneral},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("record resolution failed: employee='%s', error=%w", in.EmployeeID, err)
	}

	labels := r.classifyMessage(ctx, in)
	primary, secondaries := Route(labels)
	ctx = metrics.WithLogContext(ctx,
		metrics.GetRequestIDFromContext(ctx), in.TenantID, in.EmployeeID, primary)
	metrics.DebugWithContext(ctx, "message routed", map[string]interface{}{
		"labels":      strings.Join(labels, ","),
		"primary":     primary,
		"secondaries": strings.Join(secondaries, ","),
	})

	sc := &SessionContext{
		TenantID:       in.TenantID,
		EmployeeID:     in.EmployeeID,
		EmployeeName:   record.GetString(r.schema.DisplayName),
		Role:           r.resolveRole(in.Role, record),
		Message:        in.Message,
		SessionSummary: in.SessionSummary,
		Record:         record,
		Schema:         r.schema,
		Updates:        in.Updates,
	}

	fragments := r.dispatch(ctx, sc, primary, secondaries)
	need := r.fileApproval(ctx, sc, fragments)

	reply := combine(primary, fragments)
	if need != nil {
		reply.ApprovalNeeded = true
		reply.ApprovalType = need.RequestType
	}
	return reply, nil
}

/* fileApproval creates at most one approval request per message. The
 * first fragment flagging approval-needed (dispatch order: primary,
 * then secondaries in router order) wins; flags on later fragments are
 * dropped. A create failure degrades the winning fragment to the
 * apology text. */
func (r *Runtime) fileApproval(ctx context.Context, sc *SessionContext, fragments []*Fragment) *ApprovalNeed {
	var winner *Fragment
	for _, frag := range fragments {
		if frag == nil || frag.Approval == nil {
			continue
		}
		if winner == nil {
			winner = frag
		} else {
			frag.Approval = nil
		}
	}
	if winner == nil {
		return nil
	}

	need := winner.Approval
	req, err := r.approvals.Create(ctx, approvals.CreateParams{
		TenantID:     sc.TenantID,
		EmployeeID:   sc.EmployeeID,
		EmployeeName: sc.EmployeeName,
		RequestType:  need.RequestType,
		Details:      need.Details,
		Context:      sc.Message,
		Priority:     need.Priority,
		AssignedRole: need.AssignedRole,
		Record:       sc.Record.Redacted(sc.Schema.Password),
	})
	if err != nil {
		metrics.ErrorWithContext(ctx, "failed to file approval request", err, map[string]interface{}{
			"request_type": need.RequestType,
		})
		metrics.RecordHandlerFailure(winner.Intent)
		winner.Reply = failureApology
		winner.Actions = nil
		return need
	}

	id := req.ID
	winner.Reply = fmt.Sprintf("%s (Reference: %s)", winner.Reply, shortID(id))
	winner.Actions = append(winner.Actions, "approval_opened:"+need.RequestType)
	winner.ApprovalID = &id
	return need
}

func (r *Runtime) classifyMessage(ctx context.Context, in MessageInput) []string {
	raw, err := r.classifier.Classify(ctx, in.Message, in.SessionSummary)
	if err != nil {
		metrics.WarnWithContext(ctx, "classification failed, routing to general", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return classify.ParseLabels(raw)
}

/* resolveRole prefers the role on the verified record over the caller's
 * claimed role. A caller cannot grant itself authority the record store
 * does not back. */
func (r *Runtime) resolveRole(claimed string, record records.Record) string {
	if r.schema.Role != "" {
		if role := strings.ToLower(strings.TrimSpace(record.GetString(r.schema.Role))); role != "" {
			return role
		}
	}
	return strings.ToLower(strings.TrimSpace(claimed))
}

/* dispatch runs the primary handler on the live context and each
 * secondary concurrently on its own clone. Fragment order follows
 * intent order, not completion order. */
func (r *Runtime) dispatch(ctx context.Context, sc *SessionContext, primary string, secondaries []string) []*Fragment {
	fragments := make([]*Fragment, 1+len(secondaries))

	var wg sync.WaitGroup
	for i, intent := range secondaries {
		wg.Add(1)
		go func(slot int, intent string, clone *SessionContext) {
			defer wg.Done()
			fragments[slot] = r.safeDispatch(ctx, intent, clone)
		}(1+i, intent, sc.Clone())
	}

	fragments[0] = r.safeDispatch(ctx, primary, sc)
	wg.Wait()

	return fragments
}

/* safeDispatch runs one handler and converts errors and panics into an
 * apologetic fragment. One misbehaving handler never takes down the
 * turn. */
func (r *Runtime) safeDispatch(ctx context.Context, intent string, sc *SessionContext) (frag *Fragment) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.ErrorWithContext(ctx, "handler panicked",
				fmt.Errorf("panic: %v", rec), map[string]interface{}{"intent": intent})
			metrics.RecordHandlerFailure(intent)
			metrics.RecordMessageHandled(intent, "panic")
			frag = &Fragment{Intent: intent, Reply: failureApology}
		}
	}()

	handler := r.handlerFor(intent)
	frag, err := handler(ctx, sc)
	if err != nil {
		metrics.ErrorWithContext(ctx, "handler failed", err, map[string]interface{}{"intent": intent})
		metrics.RecordHandlerFailure(intent)
		metrics.RecordMessageHandled(intent, "error")
		return &Fragment{Intent: intent, Reply: failureApology}
	}
	metrics.RecordMessageHandled(intent, "ok")
	return frag
}

/* combine merges fragments into the final reply. Replies join on the
 * divider, actions concatenate in fragment order, and the first
 * fragment carrying an approval id wins. */
func combine(primary string, fragments []*Fragment) *MessageReply {
	reply := &MessageReply{Primary: primary}

	parts := make([]string, 0, len(fragments))
	for _, frag := range fragments {
		if frag == nil {
			continue
		}
		reply.Intents = append(reply.Intents, frag.Intent)
		if text := strings.TrimSpace(frag.Reply); text != "" {
			parts = append(parts, text)
		}
		reply.Actions = append(reply.Actions, frag.Actions...)
		if reply.ApprovalID == nil && frag.ApprovalID != nil {
			reply.ApprovalID = frag.ApprovalID
		}
	}

	reply.Reply = strings.Join(parts, ReplyDivider)
	if reply.Reply == "" {
		reply.Reply = failureApology
	}
	return reply
}
