package router

import "github.com/caravel-ai/caravel/internal/classifier"

// Status tags the outcome of a routed turn.
type Status string

const (
	StatusAnswered              Status = "answered"
	StatusAwaitingApproval      Status = "awaiting_approval"
	StatusApprovedAndExecuted   Status = "approved_and_executed"
	StatusRejected              Status = "rejected"
	StatusClarificationProvided Status = "clarification_provided"
	StatusNoPending             Status = "no_pending"
)

// Response is the router's only wire-level contract. Its fields are
// stable.
type Response struct {
	Message           string                `json:"message"`
	SuggestedCommands []string              `json:"suggested_commands"`
	RequiresApproval  bool                  `json:"requires_approval"`
	ApprovalID        string                `json:"approval_id,omitempty"`
	Confidence        classifier.Confidence `json:"confidence"`
	Intent            string                `json:"intent"`
	Status            Status                `json:"status"`
}

// Summary reports the session's conversation state.
type Summary struct {
	TotalTurns   int           `json:"total_turns"`
	PendingCount int           `json:"pending_count"`
	RecentTurns  []SummaryTurn `json:"recent_turns"`
}

// SummaryTurn is a condensed logged turn.
type SummaryTurn struct {
	Role   string `json:"role"`
	Text   string `json:"text"`
	Status string `json:"status,omitempty"`
}
