// Package classifier provides the deterministic keyword fallback.
package classifier

import (
	"strings"

	"github.com/caravel-ai/caravel/internal/command"
)

// keywordRule maps trigger tokens to a fixed classification.
type keywordRule struct {
	intent      string
	tokens      []string
	confidence  Confidence
	urgency     Urgency
	description string
	// stripVerb derives the command argument by removing the matched
	// token from the utterance.
	stripVerb bool
}

// fallbackRules returns the rules in priority order.
func fallbackRules() []keywordRule {
	return []keywordRule{
		{
			intent:      command.IntentStatus,
			tokens:      []string{"status", "overview", "dashboard", "how are we", "update"},
			confidence:  ConfidenceMedium,
			urgency:     UrgencyMedium,
			description: "Platform status overview",
		},
		{
			intent:      command.IntentRevenue,
			tokens:      []string{"revenue", "money", "financial", "sales", "profit", "earnings"},
			confidence:  ConfidenceHigh,
			urgency:     UrgencyMedium,
			description: "Revenue report",
		},
		{
			intent:      command.IntentExecute,
			tokens:      []string{"launch", "start", "begin", "execute", "deploy", "run"},
			confidence:  ConfidenceHigh,
			urgency:     UrgencyHigh,
			description: "Task execution",
			stripVerb:   true,
		},
		{
			intent:      command.IntentDepartments,
			tokens:      []string{"department", "chief", "team", "agents"},
			confidence:  ConfidenceHigh,
			urgency:     UrgencyMedium,
			description: "Department breakdown",
		},
	}
}

// classifyWithRules applies the keyword rules. It is deterministic and
// total: every input, including empty or adversarial text, yields a
// well-formed analysis.
//
// Matching rules are ranked by confidence; listed order breaks ties.
// A generic token like "update" must not shadow a specific one like
// "revenue" in the same utterance.
func (c *Classifier) classifyWithRules(utterance string) *IntentAnalysis {
	lower := strings.ToLower(utterance)

	var best *keywordRule
	var bestToken string
	for _, rule := range fallbackRules() {
		token, ok := firstToken(lower, rule.tokens)
		if !ok {
			continue
		}
		if best == nil || confidenceRank(rule.confidence) > confidenceRank(best.confidence) {
			r := rule
			best = &r
			bestToken = token
		}
	}

	if best != nil {
		cmd, _ := c.registry.Lookup(best.intent)
		analysis := &IntentAnalysis{
			PrimaryIntent:    best.intent,
			Confidence:       best.confidence,
			SuggestedCommand: cmd.Canonical,
			TaskDescription:  best.description,
			Urgency:          best.urgency,
			RequiresApproval: cmd.Mutating,
		}

		if best.stripVerb {
			arg := stripMatchedVerb(utterance, bestToken)
			analysis.SuggestedCommand = cmd.Literal(arg)
			if arg != "" {
				analysis.TaskDescription = arg
			}
		}

		return analysis
	}

	cmd, _ := c.registry.Lookup(command.IntentStatus)
	return &IntentAnalysis{
		PrimaryIntent:     command.IntentStatus,
		Confidence:        ConfidenceLow,
		SuggestedCommand:  cmd.Canonical,
		TaskDescription:   "Platform status overview",
		Urgency:           UrgencyLow,
		AdditionalContext: "Intent unclear",
	}
}

func confidenceRank(c Confidence) int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	default:
		return 1
	}
}

// firstToken returns the first token found in the lowercased message.
func firstToken(lower string, tokens []string) (string, bool) {
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			return t, true
		}
	}
	return "", false
}

// stripMatchedVerb removes the first occurrence of the matched verb
// from the utterance and trims the remainder.
func stripMatchedVerb(utterance, token string) string {
	lower := strings.ToLower(utterance)
	idx := strings.Index(lower, token)
	if idx < 0 {
		return strings.TrimSpace(utterance)
	}
	rest := utterance[:idx] + utterance[idx+len(token):]
	return strings.Join(strings.Fields(rest), " ")
}
