// Package router provides the conversational command router: the
// state machine that turns utterances into executed commands, with an
// approval handshake in front of anything mutating.
//
// The router is single-session and processes each utterance to
// completion before the next; it is not re-entrant. The only blocking
// step in a turn is the classifier call.
package router

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/caravel-ai/caravel/internal/approval"
	"github.com/caravel-ai/caravel/internal/classifier"
	"github.com/caravel-ai/caravel/internal/command"
	"github.com/caravel-ai/caravel/internal/conversation"
	"github.com/caravel-ai/caravel/internal/format"
	"github.com/caravel-ai/caravel/internal/handler"
)

// Approval reply token sets. Matched case-insensitively by substring
// over the whole utterance; reject wins when both classes appear.
var (
	approveTokens = []string{"approve", "yes", "proceed", "execute", "go", "confirm"}
	rejectTokens  = []string{"reject", "no", "cancel", "stop", "abort"}
)

// bareApprovalReplies are the replies recognized as an approval
// attempt while no proposal is pending. The set is narrower than the
// in-dialogue token sets so that words like "execute" or "go" still
// reach the classifier as commands.
var bareApprovalReplies = map[string]bool{
	"approve": true,
	"confirm": true,
	"yes":     true,
	"proceed": true,
	"no":      true,
	"reject":  true,
	"cancel":  true,
}

// Config configures the router.
type Config struct {
	Registry   *command.Registry
	Classifier *classifier.Classifier
	Handlers   *handler.Registry

	// ApprovalTTL bounds how long a proposal stays pending. Zero
	// disables expiry.
	ApprovalTTL time.Duration

	// RecentTurns is how many log turns a summary includes. Zero means
	// the default of 6.
	RecentTurns int

	Logger zerolog.Logger
}

// Router orchestrates classifier, registry, ledger, log, handlers and
// formatter. It exclusively owns the ledger and the log.
type Router struct {
	registry   *command.Registry
	classifier *classifier.Classifier
	handlers   *handler.Registry
	ledger     *approval.Ledger
	log        *conversation.Log
	formatter  *format.Formatter
	recent     int
	logger     zerolog.Logger

	// pendingID is the awaiting_approval state; empty means idle.
	pendingID string
}

// New creates a router in the idle state.
func New(cfg *Config) *Router {
	recent := cfg.RecentTurns
	if recent <= 0 {
		recent = 6
	}
	return &Router{
		registry:   cfg.Registry,
		classifier: cfg.Classifier,
		handlers:   cfg.Handlers,
		ledger:     approval.NewLedger(cfg.ApprovalTTL),
		log:        conversation.NewLog(),
		formatter:  format.New(),
		recent:     recent,
		logger:     cfg.Logger,
	}
}

// ProcessUtterance is the main entry: it consumes one utterance and
// emits exactly one response, appending exactly one user turn and one
// response turn to the log.
func (r *Router) ProcessUtterance(ctx context.Context, text string) *Response {
	r.log.Append(conversation.Turn{
		Role: conversation.RoleUserInput,
		Text: text,
	})

	var resp *Response
	switch {
	case r.pendingID != "":
		resp = r.resolvePending(ctx, text, r.pendingID)
	case bareApprovalReplies[normalizeReply(text)]:
		// Approval attempt with nothing pending.
		resp = r.noPending()
	default:
		resp = r.dispatch(ctx, text)
	}

	r.appendResponseTurn(resp)
	return resp
}

// HandleApprovalReply resolves the approval sub-dialogue explicitly.
// With an empty approvalID the most recent pending entry is used. The
// semantics match ProcessUtterance while awaiting approval.
func (r *Router) HandleApprovalReply(ctx context.Context, text, approvalID string) *Response {
	r.log.Append(conversation.Turn{
		Role: conversation.RoleUserInput,
		Text: text,
	})

	if approvalID == "" {
		approvalID, _ = r.ledger.MostRecent()
	}

	var resp *Response
	if approvalID == "" {
		resp = r.noPending()
	} else {
		resp = r.resolvePending(ctx, text, approvalID)
	}

	r.appendResponseTurn(resp)
	return resp
}

// ConversationSummary reports the session state.
func (r *Router) ConversationSummary() *Summary {
	recent := r.log.Recent(r.recent)
	turns := make([]SummaryTurn, 0, len(recent))
	for _, t := range recent {
		turns = append(turns, SummaryTurn{
			Role:   string(t.Role),
			Text:   t.Text,
			Status: t.Status,
		})
	}
	return &Summary{
		TotalTurns:   r.log.Len(),
		PendingCount: r.ledger.Len(),
		RecentTurns:  turns,
	}
}

// ============================================================
// Idle-state dispatch
// ============================================================

// dispatch classifies a fresh utterance and either executes it or
// gates it behind an approval.
func (r *Router) dispatch(ctx context.Context, text string) *Response {
	analysis := r.classifier.Classify(ctx, text)

	if analysis.PrimaryIntent == command.IntentApprove {
		// Meta intent with nothing pending in this state.
		return r.noPending()
	}

	cmd, ok := r.registry.Lookup(analysis.PrimaryIntent)
	if !ok {
		// The classifier reconciles against the registry, so this is
		// unreachable; guard anyway.
		return r.noPending()
	}

	if cmd.Mutating {
		return r.propose(text, analysis, cmd)
	}
	return r.answer(ctx, text, analysis, cmd)
}

// answer runs a read-only command immediately. Handler failures ride
// in the result block; the status stays answered.
func (r *Router) answer(ctx context.Context, text string, analysis *classifier.IntentAnalysis, cmd *command.Command) *Response {
	block := r.invokeHandler(ctx, cmd, &handler.Invocation{
		Command:   cmd.ID,
		Argument:  argumentOf(analysis.SuggestedCommand, cmd),
		Utterance: text,
	})

	return &Response{
		Message:           r.formatter.Answer(analysis, block, r.registry.ExamplesFor(cmd.ID)),
		SuggestedCommands: []string{analysis.SuggestedCommand},
		Confidence:        analysis.Confidence,
		Intent:            cmd.ID,
		Status:            StatusAnswered,
	}
}

// propose inserts a pending approval and asks for confirmation.
func (r *Router) propose(text string, analysis *classifier.IntentAnalysis, cmd *command.Command) *Response {
	id := r.ledger.Insert(&approval.Pending{
		Intent:            cmd.ID,
		Argument:          argumentOf(analysis.SuggestedCommand, cmd),
		OriginalUtterance: text,
		SuggestedCommand:  analysis.SuggestedCommand,
		TaskDescription:   analysis.TaskDescription,
		Urgency:           string(analysis.Urgency),
	})
	r.pendingID = id

	return &Response{
		Message:           r.formatter.Proposal(analysis, id, r.registry.ExamplesFor(cmd.ID)),
		SuggestedCommands: []string{analysis.SuggestedCommand},
		RequiresApproval:  true,
		ApprovalID:        id,
		Confidence:        analysis.Confidence,
		Intent:            cmd.ID,
		Status:            StatusAwaitingApproval,
	}
}

// ============================================================
// Approval resolution
// ============================================================

// resolvePending handles an utterance while a proposal is pending.
func (r *Router) resolvePending(ctx context.Context, text, id string) *Response {
	lower := strings.ToLower(text)

	// Reject tokens take precedence when both classes appear.
	if containsAny(lower, rejectTokens) {
		return r.reject(id)
	}
	if containsAny(lower, approveTokens) {
		return r.approve(ctx, id)
	}

	// Neither: keep the entry and restate. A new mutating intent
	// arriving here does not displace the pending one.
	p, ok := r.ledger.Get(id)
	if !ok {
		// Expired or explicitly resolved elsewhere.
		r.clearPending(id)
		return r.noPending()
	}

	return &Response{
		Message:           r.formatter.Clarification(p),
		SuggestedCommands: []string{p.SuggestedCommand},
		RequiresApproval:  true,
		ApprovalID:        p.ID,
		Confidence:        classifier.ConfidenceHigh,
		Intent:            p.Intent,
		Status:            StatusClarificationProvided,
	}
}

// approve resolves the entry and runs the mutating handler. The entry
// is removed before the handler runs and is not restored on failure.
func (r *Router) approve(ctx context.Context, id string) *Response {
	p, ok := r.ledger.Resolve(id)
	r.clearPending(id)
	if !ok {
		return r.noPending()
	}

	cmd, _ := r.registry.Lookup(p.Intent)
	result := r.rawInvoke(ctx, cmd, &handler.Invocation{
		Command:   p.Intent,
		Argument:  p.Argument,
		Utterance: p.OriginalUtterance,
	})

	output := result.Output
	if !result.Success {
		output = result.Error
		r.logger.Warn().Str("approval_id", id).Str("intent", p.Intent).
			Str("error", result.Error).Msg("approved handler failed")
	}

	return &Response{
		Message:           r.formatter.Executed(p, output, result.Success),
		SuggestedCommands: []string{p.SuggestedCommand},
		Confidence:        classifier.ConfidenceHigh,
		Intent:            p.Intent,
		Status:            StatusApprovedAndExecuted,
	}
}

// reject resolves and discards the entry without invoking anything.
func (r *Router) reject(id string) *Response {
	p, ok := r.ledger.Resolve(id)
	r.clearPending(id)
	if !ok {
		return r.noPending()
	}

	return &Response{
		Message:           r.formatter.Rejected(p),
		SuggestedCommands: []string{p.SuggestedCommand},
		Confidence:        classifier.ConfidenceHigh,
		Intent:            p.Intent,
		Status:            StatusRejected,
	}
}

func (r *Router) noPending() *Response {
	return &Response{
		Message:           r.formatter.NoPending(),
		SuggestedCommands: []string{},
		Confidence:        classifier.ConfidenceHigh,
		Intent:            command.IntentApprove,
		Status:            StatusNoPending,
	}
}

// ============================================================
// Helpers
// ============================================================

// invokeHandler runs a handler and renders its result block, turning
// failures into in-band text.
func (r *Router) invokeHandler(ctx context.Context, cmd *command.Command, inv *handler.Invocation) string {
	result := r.rawInvoke(ctx, cmd, inv)
	if result.Success {
		return result.Output
	}
	r.logger.Warn().Str("intent", cmd.ID).Str("error", result.Error).
		Msg("handler failed")
	return "The command could not be completed: " + result.Error
}

func (r *Router) rawInvoke(ctx context.Context, cmd *command.Command, inv *handler.Invocation) *handler.Result {
	h, ok := r.handlers.Get(cmd.Handler)
	if !ok {
		return &handler.Result{Error: "no handler registered for " + cmd.ID}
	}
	result := h.Execute(ctx, inv)
	if result == nil {
		return &handler.Result{Error: "handler returned no result"}
	}
	return result
}

func (r *Router) clearPending(id string) {
	if r.pendingID == id {
		r.pendingID = ""
	}
}

func (r *Router) appendResponseTurn(resp *Response) {
	r.log.Append(conversation.Turn{
		Role:              conversation.RoleRouterResponse,
		Text:              resp.Message,
		Intent:            resp.Intent,
		Confidence:        string(resp.Confidence),
		SuggestedCommands: resp.SuggestedCommands,
		ApprovalID:        resp.ApprovalID,
		Status:            string(resp.Status),
	})
}

// argumentOf extracts the argument from a suggested command literal by
// stripping the canonical prefix.
func argumentOf(suggested string, cmd *command.Command) string {
	if !cmd.HasArgument() {
		return ""
	}
	prefix := strings.TrimSpace(strings.SplitN(cmd.Canonical, "<", 2)[0])
	rest := strings.TrimPrefix(strings.TrimSpace(suggested), prefix)
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "<") {
		// Unfilled slot.
		return ""
	}
	return rest
}

func containsAny(lower string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func normalizeReply(text string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(text)), ".!? ")
}
