// Package catalog provides the sqlite-backed store of marketplace
// agent records the reference handlers report on.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Agent is a marketplace agent record.
type Agent struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Department   string  `json:"department"`
	Description  string  `json:"description"`
	MonthlyPrice float64 `json:"monthly_price"`
	Capabilities string  `json:"capabilities"`
	Status       string  `json:"status"` // active, draft
}

// DepartmentCount is a per-department aggregate.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
	Active     int    `json:"active"`
}

// Execution is a recorded task dispatch.
type Execution struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Command   string    `json:"command"`
	CreatedAt time.Time `json:"created_at"`
}

// Store wraps the catalog database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database at path and
// ensures the schema exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS agents (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL UNIQUE,
			department    TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			monthly_price REAL NOT NULL DEFAULT 0,
			capabilities  TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL DEFAULT 'active',
			created_at    INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS executions (
			id         TEXT PRIMARY KEY,
			task       TEXT NOT NULL,
			command    TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_agents_department ON agents(department);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Counts returns the total and active agent counts.
func (s *Store) Counts(ctx context.Context) (total, active int, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0)
		FROM agents
	`)
	if err := row.Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("count agents: %w", err)
	}
	return total, active, nil
}

// MonthlyRevenue returns the projected monthly revenue across active
// agents.
func (s *Store) MonthlyRevenue(ctx context.Context) (float64, error) {
	var sum float64
	row := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(monthly_price), 0) FROM agents WHERE status = 'active'
	`)
	if err := row.Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum revenue: %w", err)
	}
	return sum, nil
}

// DepartmentBreakdown returns per-department agent counts, ordered by
// department name.
func (s *Store) DepartmentBreakdown(ctx context.Context) ([]DepartmentCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT department,
		       COUNT(*),
		       SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END)
		FROM agents
		GROUP BY department
		ORDER BY department
	`)
	if err != nil {
		return nil, fmt.Errorf("department breakdown: %w", err)
	}
	defer rows.Close()

	var out []DepartmentCount
	for rows.Next() {
		var dc DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count, &dc.Active); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

// targetDepartments is the taxonomy coverage is measured against.
var targetDepartments = []string{
	"Customer Success",
	"Engineering",
	"Finance",
	"Human Resources",
	"Legal",
	"Marketing",
	"Operations",
	"Sales",
}

// MissingDepartments returns target departments with no agents.
func (s *Store) MissingDepartments(ctx context.Context) ([]string, error) {
	breakdown, err := s.DepartmentBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(breakdown))
	for _, dc := range breakdown {
		present[dc.Department] = true
	}

	var missing []string
	for _, dept := range targetDepartments {
		if !present[dept] {
			missing = append(missing, dept)
		}
	}
	return missing, nil
}

// RecordExecution stores a dispatched task and returns its id.
func (s *Store) RecordExecution(ctx context.Context, task, cmd string) (string, error) {
	id := "exec-" + uuid.NewString()[:8]
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO executions (id, task, command, created_at) VALUES (?, ?, ?, ?)
	`, id, task, cmd, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("record execution: %w", err)
	}
	return id, nil
}

// RecentExecutions returns the last n executions, newest first.
func (s *Store) RecentExecutions(ctx context.Context, n int) ([]Execution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task, command, created_at
		FROM executions
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("recent executions: %w", err)
	}
	defer rows.Close()

	var out []Execution
	for rows.Next() {
		var e Execution
		var ts int64
		if err := rows.Scan(&e.ID, &e.Task, &e.Command, &ts); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(ts, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}
