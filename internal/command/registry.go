package command

import (
	"fmt"
	"strings"
)

// Intent identifiers. The set is fixed; there is no runtime
// registration.
const (
	IntentStatus      = "status"
	IntentRevenue     = "revenue"
	IntentDepartments = "departments"
	IntentGaps        = "gaps"
	IntentPerformance = "performance"
	IntentCoordinate  = "coordinate"
	IntentExecute     = "execute"
	IntentApprove     = "approve"
	IntentUnknown     = "unknown"
)

// Registry owns the closed set of recognized commands.
type Registry struct {
	order    []string
	commands map[string]*Command
}

// NewRegistry creates the registry with the full command set seeded.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
	}
	for _, c := range seedCommands() {
		r.order = append(r.order, c.ID)
		r.commands[c.ID] = c
	}
	return r
}

// Lookup retrieves a command by intent identifier.
func (r *Registry) Lookup(id string) (*Command, bool) {
	c, ok := r.commands[id]
	return c, ok
}

// ExamplesFor returns the example phrasings for an intent, or nil if
// the intent is not registered.
func (r *Registry) ExamplesFor(id string) []string {
	c, ok := r.commands[id]
	if !ok {
		return nil
	}
	return c.Examples
}

// IsMutating reports whether the intent's command has side effects.
// Unregistered intents are not mutating.
func (r *Registry) IsMutating(id string) bool {
	c, ok := r.commands[id]
	return ok && c.Mutating
}

// IDs returns all command identifiers in seed order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Catalog renders the command surface as an enumerated list for the
// classifier prompt.
func (r *Registry) Catalog() string {
	var b strings.Builder
	for i, id := range r.order {
		c := r.commands[id]
		tag := "read-only"
		if c.Mutating {
			tag = "requires approval"
		}
		if c.Meta {
			tag = "meta"
		}
		fmt.Fprintf(&b, "%d. %s — %s (%s)\n", i+1, c.ID, c.Canonical, tag)
	}
	return b.String()
}

// seedCommands returns the full command set. The example phrasings are
// part of the design, not runtime-configurable.
func seedCommands() []*Command {
	return []*Command{
		{
			ID:        IntentStatus,
			Canonical: "/status",
			Handler:   IntentStatus,
			Examples: []string{
				"How is the platform doing?",
				"What's our current status?",
				"Give me an overview",
				"How are we doing overall?",
			},
		},
		{
			ID:        IntentRevenue,
			Canonical: "/revenue",
			Handler:   IntentRevenue,
			Examples: []string{
				"How much money are we making?",
				"Show me the revenue numbers",
				"What's our financial picture?",
			},
		},
		{
			ID:        IntentDepartments,
			Canonical: "/departments",
			Handler:   IntentDepartments,
			Examples: []string{
				"How are the departments doing?",
				"Show me the team breakdown",
				"Which chiefs are active?",
			},
		},
		{
			ID:        IntentGaps,
			Canonical: "/gaps",
			Handler:   IntentGaps,
			Examples: []string{
				"Where are we missing coverage?",
				"What gaps do we have?",
				"Which capabilities are we lacking?",
			},
		},
		{
			ID:        IntentPerformance,
			Canonical: "/performance",
			Handler:   IntentPerformance,
			Examples: []string{
				"How are we performing?",
				"Show me the performance report",
				"What do the metrics look like?",
			},
		},
		{
			ID:        IntentCoordinate,
			Canonical: "/coordinate <type>",
			Handler:   IntentCoordinate,
			Examples: []string{
				"Coordinate a product launch",
				"Line up the teams for the campaign",
				"Get everyone aligned on onboarding",
			},
		},
		{
			ID:        IntentExecute,
			Canonical: "/execute <task>",
			Mutating:  true,
			Handler:   IntentExecute,
			Examples: []string{
				"Launch the customer acquisition program",
				"Start the Q3 marketing push",
				"Deploy the onboarding flow",
				"Run the win-back campaign",
			},
		},
		{
			ID:        IntentApprove,
			Canonical: "/approve",
			Meta:      true,
		},
	}
}
