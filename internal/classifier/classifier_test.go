package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravel-ai/caravel/internal/command"
	"github.com/caravel-ai/caravel/internal/model"
)

// stubProvider returns a canned response or error.
type stubProvider struct {
	text  string
	err   error
	calls int
}

func (s *stubProvider) Generate(_ context.Context, _ *model.Request) (*model.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &model.Response{Text: s.text}, nil
}

func (s *stubProvider) IsAvailable() bool { return true }
func (s *stubProvider) Name() string      { return "stub" }

func newClassifier(t *testing.T, p model.Provider) *Classifier {
	t.Helper()
	return New(&Config{
		Registry: command.NewRegistry(),
		Provider: p,
		Logger:   zerolog.Nop(),
	})
}

func TestClassify_ProviderJSON(t *testing.T) {
	p := &stubProvider{text: `{"primary_intent": "revenue", "confidence": "high", "suggested_command": "/revenue", "task_description": "Revenue report", "urgency": "medium", "requires_approval": false, "additional_context": ""}`}
	c := newClassifier(t, p)

	a := c.Classify(context.Background(), "how much are we making?")
	require.NotNil(t, a)
	assert.Equal(t, "revenue", a.PrimaryIntent)
	assert.Equal(t, ConfidenceHigh, a.Confidence)
	assert.Equal(t, "/revenue", a.SuggestedCommand)
	assert.False(t, a.RequiresApproval)
	assert.Equal(t, 1, p.calls)
}

func TestClassify_StripsCodeFences(t *testing.T) {
	p := &stubProvider{text: "```json\n{\"primary_intent\": \"status\", \"confidence\": \"high\", \"suggested_command\": \"/status\", \"task_description\": \"Status\", \"urgency\": \"low\", \"requires_approval\": false, \"additional_context\": \"\"}\n```"}
	c := newClassifier(t, p)

	a := c.Classify(context.Background(), "status please")
	assert.Equal(t, "status", a.PrimaryIntent)
	assert.Equal(t, ConfidenceHigh, a.Confidence)
}

func TestClassify_RegistryOverridesApprovalFlag(t *testing.T) {
	// The provider claims execute needs no approval; the registry's
	// mutating tag wins.
	p := &stubProvider{text: `{"primary_intent": "execute", "confidence": "high", "suggested_command": "/execute the campaign", "task_description": "the campaign", "urgency": "high", "requires_approval": false, "additional_context": ""}`}
	c := newClassifier(t, p)

	a := c.Classify(context.Background(), "run the campaign")
	assert.Equal(t, "execute", a.PrimaryIntent)
	assert.True(t, a.RequiresApproval)
}

func TestClassify_UnknownIntentDegradesToStatus(t *testing.T) {
	p := &stubProvider{text: `{"primary_intent": "fire_everyone", "confidence": "high", "suggested_command": "/fire", "task_description": "layoffs", "urgency": "high", "requires_approval": true, "additional_context": ""}`}
	c := newClassifier(t, p)

	a := c.Classify(context.Background(), "fire everyone")
	assert.Equal(t, command.IntentStatus, a.PrimaryIntent)
	assert.Equal(t, ConfidenceLow, a.Confidence)
	assert.Equal(t, "/status", a.SuggestedCommand)
	assert.False(t, a.RequiresApproval)
	assert.Contains(t, a.AdditionalContext, "fire_everyone")
}

func TestClassify_ProviderErrorFallsBack(t *testing.T) {
	p := &stubProvider{err: errors.New("boom")}
	c := newClassifier(t, p)

	a := c.Classify(context.Background(), "revenue update please")
	require.NotNil(t, a)
	assert.Equal(t, "revenue", a.PrimaryIntent)
	assert.Equal(t, ConfidenceHigh, a.Confidence)
	assert.Equal(t, 1, p.calls)
}

func TestClassify_MalformedJSONFallsBack(t *testing.T) {
	for _, text := range []string{
		"not json at all",
		`{"primary_intent": "status"`,
		`{"primary_intent": "status", "confidence": "certain", "suggested_command": "/status", "task_description": "", "urgency": "low", "requires_approval": false, "additional_context": ""}`,
		`{"primary_intent": "status", "confidence": "high", "suggested_command": "/status", "task_description": "", "urgency": "low", "requires_approval": false, "additional_context": "", "extra_field": 1}`,
	} {
		p := &stubProvider{text: text}
		c := newClassifier(t, p)

		a := c.Classify(context.Background(), "show me the dashboard")
		require.NotNil(t, a, "input %q", text)
		assert.Equal(t, "status", a.PrimaryIntent, "input %q", text)
	}
}

func TestFallback_RulePriority(t *testing.T) {
	c := newClassifier(t, nil)

	tests := []struct {
		utterance  string
		intent     string
		confidence Confidence
		approval   bool
	}{
		{"How are we doing overall?", "status", ConfidenceMedium, false},
		{"show me the dashboard", "status", ConfidenceMedium, false},
		{"revenue update please", "revenue", ConfidenceHigh, false},
		{"how much money did we make", "revenue", ConfidenceHigh, false},
		{"Launch the customer acquisition program", "execute", ConfidenceHigh, true},
		{"deploy the onboarding flow", "execute", ConfidenceHigh, true},
		{"how is the marketing team", "departments", ConfidenceHigh, false},
		{"tell me a joke", "status", ConfidenceLow, false},
	}

	for _, tt := range tests {
		a := c.Classify(context.Background(), tt.utterance)
		require.NotNil(t, a, tt.utterance)
		assert.Equal(t, tt.intent, a.PrimaryIntent, tt.utterance)
		assert.Equal(t, tt.confidence, a.Confidence, tt.utterance)
		assert.Equal(t, tt.approval, a.RequiresApproval, tt.utterance)
	}
}

func TestFallback_ExecuteStripsVerb(t *testing.T) {
	c := newClassifier(t, nil)

	a := c.Classify(context.Background(), "Launch the customer acquisition program")
	assert.Equal(t, "/execute the customer acquisition program", a.SuggestedCommand)
	assert.Equal(t, "the customer acquisition program", a.TaskDescription)
	assert.Equal(t, UrgencyHigh, a.Urgency)
}

func TestFallback_DefaultMarksIntentUnclear(t *testing.T) {
	c := newClassifier(t, nil)

	a := c.Classify(context.Background(), "tell me a joke")
	assert.Equal(t, "status", a.PrimaryIntent)
	assert.Equal(t, "/status", a.SuggestedCommand)
	assert.Equal(t, "Intent unclear", a.AdditionalContext)
}

func TestFallback_NeverPanicsAndIsDeterministic(t *testing.T) {
	c := newClassifier(t, nil)

	inputs := []string{
		"",
		"    ",
		"日本語のステータスを教えて",
		"\x00\x01\x02",
		`{"primary_intent": "execute"}`,
		"'; DROP TABLE agents; --",
	}

	for _, in := range inputs {
		first := c.Classify(context.Background(), in)
		require.NotNil(t, first, "input %q", in)
		second := c.Classify(context.Background(), in)
		assert.Equal(t, first, second, "classification of %q should be deterministic", in)
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}
