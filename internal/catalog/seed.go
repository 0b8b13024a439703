package catalog

import (
	"context"
	"fmt"
	"time"
)

// Seed inserts the built-in marketplace records, skipping any already
// present. It returns the number of newly inserted agents.
func (s *Store) Seed(ctx context.Context) (int, error) {
	stmt, err := s.db.PrepareContext(ctx, `
		INSERT OR IGNORE INTO agents
			(id, name, department, description, monthly_price, capabilities, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	inserted := 0
	for _, a := range seedAgents() {
		res, err := stmt.ExecContext(ctx, a.ID, a.Name, a.Department,
			a.Description, a.MonthlyPrice, a.Capabilities, a.Status, now)
		if err != nil {
			return inserted, fmt.Errorf("seed %s: %w", a.Name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	return inserted, nil
}

func seedAgents() []Agent {
	return []Agent{
		{
			ID:           "agt-eng-pipeline",
			Name:         "Pipeline Keeper",
			Department:   "Engineering",
			Description:  "Watches CI pipelines and files triage reports for broken builds.",
			MonthlyPrice: 249,
			Capabilities: "ci monitoring,build triage,flake detection",
			Status:       "active",
		},
		{
			ID:           "agt-eng-review",
			Name:         "Review Companion",
			Department:   "Engineering",
			Description:  "Pre-reviews pull requests and drafts comments for maintainers.",
			MonthlyPrice: 199,
			Capabilities: "code review,diff summaries,style checks",
			Status:       "active",
		},
		{
			ID:           "agt-mkt-copy",
			Name:         "Copy Forge",
			Department:   "Marketing",
			Description:  "Drafts campaign copy, subject lines, and landing page variants.",
			MonthlyPrice: 149,
			Capabilities: "copywriting,a/b variants,tone matching",
			Status:       "active",
		},
		{
			ID:           "agt-mkt-social",
			Name:         "Social Cadence",
			Department:   "Marketing",
			Description:  "Plans and schedules the weekly social posting calendar.",
			MonthlyPrice: 99,
			Capabilities: "scheduling,calendar planning,engagement recap",
			Status:       "active",
		},
		{
			ID:           "agt-sales-lead",
			Name:         "Lead Ranger",
			Department:   "Sales",
			Description:  "Scores inbound leads and routes them to the right rep.",
			MonthlyPrice: 299,
			Capabilities: "lead scoring,routing,crm hygiene",
			Status:       "active",
		},
		{
			ID:           "agt-sales-follow",
			Name:         "Follow-Up Fox",
			Department:   "Sales",
			Description:  "Drafts personalized follow-up emails after every call.",
			MonthlyPrice: 129,
			Capabilities: "email drafting,call summaries,next steps",
			Status:       "active",
		},
		{
			ID:           "agt-fin-close",
			Name:         "Ledger Minder",
			Department:   "Finance",
			Description:  "Runs the monthly close checklist and flags anomalies.",
			MonthlyPrice: 349,
			Capabilities: "reconciliation,anomaly flags,close checklist",
			Status:       "active",
		},
		{
			ID:           "agt-ops-vendor",
			Name:         "Vendor Scout",
			Department:   "Operations",
			Description:  "Tracks vendor renewals and surfaces cheaper alternatives.",
			MonthlyPrice: 119,
			Capabilities: "renewal tracking,price comparison,contract recap",
			Status:       "active",
		},
		{
			ID:           "agt-cs-onboard",
			Name:         "Onboard Pilot",
			Department:   "Customer Success",
			Description:  "Guides new customers through setup and flags stalled accounts.",
			MonthlyPrice: 179,
			Capabilities: "onboarding,health scoring,stall alerts",
			Status:       "active",
		},
		{
			ID:           "agt-cs-renewal",
			Name:         "Renewal Radar",
			Department:   "Customer Success",
			Description:  "Forecasts churn risk ahead of each renewal window.",
			MonthlyPrice: 209,
			Capabilities: "churn forecasting,renewal prep,usage digest",
			Status:       "draft",
		},
	}
}
