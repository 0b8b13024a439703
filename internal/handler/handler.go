// Package handler provides the effect handler interface and registry.
//
// Handlers are dispatched by command identifier through the registry;
// there is no runtime introspection. The router treats every handler
// as a black box and tolerates any result.
package handler

import (
	"context"
)

// Invocation is the parsed command passed to a handler.
type Invocation struct {
	Command   string `json:"command"`
	Argument  string `json:"argument,omitempty"`
	Utterance string `json:"utterance"`
}

// Result is what a handler returns: a rendered text block plus a
// success indicator.
type Result struct {
	Success    bool   `json:"success"`
	Output     string `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Handler executes the effect behind a single command identifier.
// Read-only handlers must have no observable external effect.
type Handler interface {
	// Name returns the command identifier this handler serves.
	Name() string

	// Execute runs the command and returns a result. Implementations
	// report failure through the result, not a panic.
	Execute(ctx context.Context, inv *Invocation) *Result
}

// Registry manages available handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) {
	r.handlers[h.Name()] = h
}

// Get retrieves a handler by command identifier.
func (r *Registry) Get(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// List returns all registered handler names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}
