// Package conversation provides the session's append-only turn log.
package conversation

import "time"

// Role tags a turn as user input or router output.
type Role string

const (
	RoleUserInput      Role = "user_input"
	RoleRouterResponse Role = "router_response"
)

// Turn is a single logged turn. Response turns carry the routing
// metadata alongside the text.
type Turn struct {
	Timestamp         time.Time `json:"timestamp"`
	Role              Role      `json:"role"`
	Text              string    `json:"text"`
	Intent            string    `json:"intent,omitempty"`
	Confidence        string    `json:"confidence,omitempty"`
	SuggestedCommands []string  `json:"suggested_commands,omitempty"`
	ApprovalID        string    `json:"approval_id,omitempty"`
	Status            string    `json:"status,omitempty"`
}

// Log is the ordered, append-only record of a session's turns. It is
// not a transactional store and does not survive process restarts.
type Log struct {
	turns []Turn
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a turn to the log, stamping it if unstamped.
func (l *Log) Append(t Turn) {
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	l.turns = append(l.turns, t)
}

// Recent returns the last n turns in arrival order.
func (l *Log) Recent(n int) []Turn {
	if n <= 0 || len(l.turns) == 0 {
		return nil
	}
	if n > len(l.turns) {
		n = len(l.turns)
	}
	out := make([]Turn, n)
	copy(out, l.turns[len(l.turns)-n:])
	return out
}

// Len returns the total number of turns.
func (l *Log) Len() int {
	return len(l.turns)
}
