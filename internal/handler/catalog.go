package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caravel-ai/caravel/internal/catalog"
	"github.com/caravel-ai/caravel/internal/command"
)

// RegisterCatalogHandlers wires the reference handlers, all backed by
// the marketplace catalog, into the registry.
func RegisterCatalogHandlers(r *Registry, store *catalog.Store) {
	r.Register(&StatusHandler{store: store})
	r.Register(&RevenueHandler{store: store})
	r.Register(&DepartmentsHandler{store: store})
	r.Register(&GapsHandler{store: store})
	r.Register(&PerformanceHandler{store: store})
	r.Register(&CoordinateHandler{store: store})
	r.Register(&ExecuteHandler{store: store})
}

func fail(start time.Time, err error) *Result {
	return &Result{
		Error:      err.Error(),
		DurationMs: time.Since(start).Milliseconds(),
	}
}

func ok(start time.Time, output string) *Result {
	return &Result{
		Success:    true,
		Output:     output,
		DurationMs: time.Since(start).Milliseconds(),
	}
}

// ============================================================
// Read-only handlers
// ============================================================

// StatusHandler reports the overall platform picture.
type StatusHandler struct {
	store *catalog.Store
}

func (h *StatusHandler) Name() string { return command.IntentStatus }

func (h *StatusHandler) Execute(ctx context.Context, inv *Invocation) *Result {
	start := time.Now()

	total, active, err := h.store.Counts(ctx)
	if err != nil {
		return fail(start, err)
	}
	revenue, err := h.store.MonthlyRevenue(ctx)
	if err != nil {
		return fail(start, err)
	}

	var b strings.Builder
	b.WriteString("Platform Status\n")
	fmt.Fprintf(&b, "- Agents: %d total, %d active\n", total, active)
	fmt.Fprintf(&b, "- Projected monthly revenue: $%.2f\n", revenue)
	return ok(start, b.String())
}

// RevenueHandler reports the revenue projection.
type RevenueHandler struct {
	store *catalog.Store
}

func (h *RevenueHandler) Name() string { return command.IntentRevenue }

func (h *RevenueHandler) Execute(ctx context.Context, inv *Invocation) *Result {
	start := time.Now()

	revenue, err := h.store.MonthlyRevenue(ctx)
	if err != nil {
		return fail(start, err)
	}
	_, active, err := h.store.Counts(ctx)
	if err != nil {
		return fail(start, err)
	}

	var b strings.Builder
	b.WriteString("Revenue Report\n")
	fmt.Fprintf(&b, "- Monthly projection: $%.2f across %d active agents\n", revenue, active)
	fmt.Fprintf(&b, "- Annualized: $%.2f\n", revenue*12)
	return ok(start, b.String())
}

// DepartmentsHandler reports the per-department breakdown.
type DepartmentsHandler struct {
	store *catalog.Store
}

func (h *DepartmentsHandler) Name() string { return command.IntentDepartments }

func (h *DepartmentsHandler) Execute(ctx context.Context, inv *Invocation) *Result {
	start := time.Now()

	breakdown, err := h.store.DepartmentBreakdown(ctx)
	if err != nil {
		return fail(start, err)
	}

	var b strings.Builder
	b.WriteString("Departments\n")
	for _, dc := range breakdown {
		fmt.Fprintf(&b, "- %s: %d agents (%d active)\n", dc.Department, dc.Count, dc.Active)
	}
	if len(breakdown) == 0 {
		b.WriteString("- No agents in the catalog yet\n")
	}
	return ok(start, b.String())
}

// GapsHandler reports target departments with no coverage.
type GapsHandler struct {
	store *catalog.Store
}

func (h *GapsHandler) Name() string { return command.IntentGaps }

func (h *GapsHandler) Execute(ctx context.Context, inv *Invocation) *Result {
	start := time.Now()

	missing, err := h.store.MissingDepartments(ctx)
	if err != nil {
		return fail(start, err)
	}

	var b strings.Builder
	b.WriteString("Coverage Gaps\n")
	if len(missing) == 0 {
		b.WriteString("- All target departments are covered\n")
	}
	for _, dept := range missing {
		fmt.Fprintf(&b, "- %s: no agents\n", dept)
	}
	return ok(start, b.String())
}

// PerformanceHandler reports catalog health plus recent activity.
type PerformanceHandler struct {
	store *catalog.Store
}

func (h *PerformanceHandler) Name() string { return command.IntentPerformance }

func (h *PerformanceHandler) Execute(ctx context.Context, inv *Invocation) *Result {
	start := time.Now()

	total, active, err := h.store.Counts(ctx)
	if err != nil {
		return fail(start, err)
	}
	execs, err := h.store.RecentExecutions(ctx, 5)
	if err != nil {
		return fail(start, err)
	}

	var b strings.Builder
	b.WriteString("Performance\n")
	fmt.Fprintf(&b, "- Catalog: %d/%d agents active\n", active, total)
	fmt.Fprintf(&b, "- Recent executions: %d\n", len(execs))
	for _, e := range execs {
		fmt.Fprintf(&b, "  - %s (%s)\n", e.Task, e.ID)
	}
	return ok(start, b.String())
}

// CoordinateHandler sketches a cross-department coordination plan. It
// reads the catalog but changes nothing.
type CoordinateHandler struct {
	store *catalog.Store
}

func (h *CoordinateHandler) Name() string { return command.IntentCoordinate }

func (h *CoordinateHandler) Execute(ctx context.Context, inv *Invocation) *Result {
	start := time.Now()

	breakdown, err := h.store.DepartmentBreakdown(ctx)
	if err != nil {
		return fail(start, err)
	}

	kind := inv.Argument
	if kind == "" {
		kind = "general"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Coordination plan: %s\n", kind)
	for _, dc := range breakdown {
		if dc.Active == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s: brief %d active agents\n", dc.Department, dc.Active)
	}
	return ok(start, b.String())
}

// ============================================================
// Mutating handlers
// ============================================================

// ExecuteHandler dispatches an approved task and records it. The
// record is written before the result returns; there is no
// fire-and-forget path.
type ExecuteHandler struct {
	store *catalog.Store
}

func (h *ExecuteHandler) Name() string { return command.IntentExecute }

func (h *ExecuteHandler) Execute(ctx context.Context, inv *Invocation) *Result {
	start := time.Now()

	task := strings.TrimSpace(inv.Argument)
	if task == "" {
		task = strings.TrimSpace(inv.Utterance)
	}
	if task == "" {
		return fail(start, fmt.Errorf("nothing to execute"))
	}

	id, err := h.store.RecordExecution(ctx, task, inv.Command)
	if err != nil {
		return fail(start, err)
	}

	var b strings.Builder
	b.WriteString("Execution dispatched\n")
	fmt.Fprintf(&b, "- Task: %s\n", task)
	fmt.Fprintf(&b, "- Reference: %s\n", id)
	return ok(start, b.String())
}
