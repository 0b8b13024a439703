// Package command provides the closed set of commands the router can
// route to, with the metadata the classifier and formatter need.
package command

import "strings"

// Command is an immutable command definition.
type Command struct {
	// ID is the machine identifier, e.g. "status", "execute".
	ID string

	// Canonical is the literal form shown to the user, with an
	// optional argument slot, e.g. "/execute <task>".
	Canonical string

	// Mutating marks commands whose handler has externally visible
	// side effects. Mutating commands require approval.
	Mutating bool

	// Meta marks commands that act on the router itself rather than
	// dispatching to an effect handler ("approve").
	Meta bool

	// Handler is the effect handler identifier. Empty for meta
	// commands.
	Handler string

	// Examples are phrasings shown to teach the command surface.
	Examples []string
}

// HasArgument reports whether the canonical form carries an argument
// slot.
func (c *Command) HasArgument() bool {
	return strings.Contains(c.Canonical, "<")
}

// Literal renders the canonical form with the argument slot filled.
// Commands without a slot ignore the argument.
func (c *Command) Literal(arg string) string {
	idx := strings.Index(c.Canonical, "<")
	if idx < 0 {
		return c.Canonical
	}
	if arg == "" {
		return c.Canonical
	}
	return strings.TrimSpace(c.Canonical[:idx]) + " " + arg
}
