// Package format renders router decisions into the single
// user-visible message. The formatter performs no I/O and never
// consults the ledger or the log; given the same inputs it produces
// the same string.
package format

import (
	"fmt"
	"strings"

	"github.com/caravel-ai/caravel/internal/approval"
	"github.com/caravel-ai/caravel/internal/classifier"
)

const maxExamples = 3

// Formatter builds response messages.
type Formatter struct{}

// New creates a formatter.
func New() *Formatter {
	return &Formatter{}
}

// Answer renders a completed read-only command: goal line, result
// block, and the teaching block.
func (f *Formatter) Answer(a *classifier.IntentAnalysis, resultBlock string, examples []string) string {
	var b strings.Builder
	f.writeGoal(&b, a.TaskDescription, a.SuggestedCommand)
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(resultBlock, "\n"))
	b.WriteString("\n")
	f.writeTeaching(&b, a.SuggestedCommand, examples)
	return b.String()
}

// Proposal renders an approval request for a mutating command.
func (f *Formatter) Proposal(a *classifier.IntentAnalysis, approvalID string, examples []string) string {
	var b strings.Builder
	f.writeGoal(&b, a.TaskDescription, a.SuggestedCommand)
	b.WriteString("\n")
	b.WriteString(impactLine(a.Urgency))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Reply \"approve\" to proceed or \"no\" to cancel. (ref: %s)\n", approvalID)
	f.writeTeaching(&b, a.SuggestedCommand, examples)
	return b.String()
}

// Executed renders the outcome of an approved command. Handler
// failures ride in the same message; the command was still consumed.
func (f *Formatter) Executed(p *approval.Pending, output string, success bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Approved and executed: `%s`\n", p.SuggestedCommand)
	b.WriteString("\n")
	if success {
		b.WriteString(strings.TrimRight(output, "\n"))
	} else {
		fmt.Fprintf(&b, "The command ran into a problem: %s", strings.TrimRight(output, "\n"))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Next time you can run `%s` directly.\n", p.SuggestedCommand)
	return b.String()
}

// Rejected renders a cancellation.
func (f *Formatter) Rejected(p *approval.Pending) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cancelled: `%s` will not run.\n", p.SuggestedCommand)
	b.WriteString("Nothing was changed. Ask again any time.\n")
	return b.String()
}

// Clarification restates a still-pending proposal.
func (f *Formatter) Clarification(p *approval.Pending) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Still waiting on your decision for `%s`.\n", p.SuggestedCommand)
	fmt.Fprintf(&b, "I understand you want to: %s\n", p.TaskDescription)
	b.WriteString("\n")
	b.WriteString("Reply \"approve\" to proceed or \"no\" to cancel.\n")
	return b.String()
}

// NoPending renders the empty-ledger reply.
func (f *Formatter) NoPending() string {
	return "There is nothing waiting for approval right now.\n"
}

func (f *Formatter) writeGoal(b *strings.Builder, goal, suggested string) {
	if goal == "" {
		goal = "that"
	}
	fmt.Fprintf(b, "I understand you want to: %s\n", goal)
	fmt.Fprintf(b, "Command: `%s`\n", suggested)
}

func (f *Formatter) writeTeaching(b *strings.Builder, suggested string, examples []string) {
	b.WriteString("\n")
	fmt.Fprintf(b, "Tip: you can run `%s` directly next time.\n", suggested)
	if len(examples) == 0 {
		return
	}
	if len(examples) > maxExamples {
		examples = examples[:maxExamples]
	}
	b.WriteString("Other ways to ask:\n")
	for _, ex := range examples {
		fmt.Fprintf(b, "- %q\n", ex)
	}
}

func impactLine(u classifier.Urgency) string {
	switch u {
	case classifier.UrgencyHigh:
		return "This has side effects and will start work immediately once approved."
	case classifier.UrgencyLow:
		return "This has side effects; it will be queued once approved."
	default:
		return "This has side effects and will run once approved."
	}
}
