// Package classifier provides intent classification for user
// utterances.
//
// Classification flow:
// 1. Cloud provider (when configured)
// 2. Keyword rules (deterministic, never fails)
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/caravel-ai/caravel/internal/command"
	"github.com/caravel-ai/caravel/internal/model"
)

// Confidence levels for a classification.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Urgency levels for a classified task.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// IntentAnalysis is the classifier's output. Created once per
// utterance; never mutated afterward.
type IntentAnalysis struct {
	PrimaryIntent     string     `json:"primary_intent"`
	Confidence        Confidence `json:"confidence"`
	SuggestedCommand  string     `json:"suggested_command"`
	TaskDescription   string     `json:"task_description"`
	Urgency           Urgency    `json:"urgency"`
	RequiresApproval  bool       `json:"requires_approval"`
	AdditionalContext string     `json:"additional_context"`
}

// Config for the classifier.
type Config struct {
	Registry *command.Registry
	Provider model.Provider
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// Classifier turns utterances into IntentAnalysis records. It never
// returns an error: any provider or parse failure falls through to the
// keyword rules.
type Classifier struct {
	registry *command.Registry
	provider model.Provider
	timeout  time.Duration
	log      zerolog.Logger
}

// New creates a new intent classifier.
func New(cfg *Config) *Classifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Classifier{
		registry: cfg.Registry,
		provider: cfg.Provider,
		timeout:  timeout,
		log:      cfg.Logger,
	}
}

// Classify determines the intent of an utterance.
func (c *Classifier) Classify(ctx context.Context, utterance string) *IntentAnalysis {
	if c.provider != nil && c.provider.IsAvailable() {
		analysis, err := c.classifyWithProvider(ctx, utterance)
		if err == nil {
			return c.reconcile(analysis)
		}
		c.log.Debug().Err(err).Msg("classifier provider failed, using keyword rules")
	}

	return c.reconcile(c.classifyWithRules(utterance))
}

// classifyWithProvider asks the cloud provider for a classification.
// The call is bounded by the classifier timeout; this is the only
// suspension point in a turn.
func (c *Classifier) classifyWithProvider(ctx context.Context, utterance string) (*IntentAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(classificationPrompt, c.registry.Catalog(), utterance)

	resp, err := c.provider.Generate(ctx, &model.Request{
		Prompt: prompt,
		JSON:   true,
	})
	if err != nil {
		return nil, err
	}

	return parseAnalysis(resp.Text)
}

// parseAnalysis decodes the provider's response into an
// IntentAnalysis, stripping any code-fence decoration first. Extra
// fields are rejected.
func parseAnalysis(text string) (*IntentAnalysis, error) {
	text = stripFences(text)

	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var analysis IntentAnalysis
	if err := dec.Decode(&analysis); err != nil {
		return nil, fmt.Errorf("malformed classification: %w", err)
	}

	if analysis.PrimaryIntent == "" {
		return nil, fmt.Errorf("classification missing primary_intent")
	}
	switch analysis.Confidence {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		return nil, fmt.Errorf("invalid confidence %q", analysis.Confidence)
	}
	switch analysis.Urgency {
	case UrgencyHigh, UrgencyMedium, UrgencyLow:
	case "":
		analysis.Urgency = UrgencyMedium
	default:
		return nil, fmt.Errorf("invalid urgency %q", analysis.Urgency)
	}

	return &analysis, nil
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// reconcile enforces the registry over the raw classification: an
// unregistered intent degrades to the documented default, and
// requires_approval always follows the registry's mutating tag.
func (c *Classifier) reconcile(analysis *IntentAnalysis) *IntentAnalysis {
	if _, ok := c.registry.Lookup(analysis.PrimaryIntent); !ok {
		note := fmt.Sprintf("Unrecognized intent %q", analysis.PrimaryIntent)
		if analysis.AdditionalContext != "" {
			note = analysis.AdditionalContext + "; " + note
		}
		cmd, _ := c.registry.Lookup(command.IntentStatus)
		return &IntentAnalysis{
			PrimaryIntent:     command.IntentStatus,
			Confidence:        ConfidenceLow,
			SuggestedCommand:  cmd.Canonical,
			TaskDescription:   analysis.TaskDescription,
			Urgency:           UrgencyLow,
			AdditionalContext: note,
		}
	}

	analysis.RequiresApproval = c.registry.IsMutating(analysis.PrimaryIntent)
	return analysis
}

const classificationPrompt = `You route free-text requests to system commands for an AI agent marketplace.

Available commands:
%s

Classify the user's request. Return ONLY a JSON object with this exact format:
{"primary_intent": "<command id or unknown>", "confidence": "high|medium|low", "suggested_command": "<literal command>", "task_description": "<short summary>", "urgency": "high|medium|low", "requires_approval": true|false, "additional_context": "<free text>"}

For commands with an argument slot, fill the slot from the request
(e.g. "/execute the holiday campaign").

User request: %s

Respond with ONLY the JSON object, no other text.`
