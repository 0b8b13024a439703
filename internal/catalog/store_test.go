package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeed_InsertsOnceOnly(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, first)

	second, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second, "seeding must be idempotent")

	total, active, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, 9, active, "one seeded agent is a draft")
}

func TestCounts_EmptyStore(t *testing.T) {
	s := newStore(t)

	total, active, err := s.Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, active)
}

func TestMonthlyRevenue_SumsActiveOnly(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Seed(ctx)
	require.NoError(t, err)

	sum, err := s.MonthlyRevenue(ctx)
	require.NoError(t, err)
	// The draft agent's price is excluded from the projection.
	assert.InDelta(t, 1771, sum, 0.001)
}

func TestDepartmentBreakdown_OrderedByName(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Seed(ctx)
	require.NoError(t, err)

	breakdown, err := s.DepartmentBreakdown(ctx)
	require.NoError(t, err)
	require.Len(t, breakdown, 6)

	want := []DepartmentCount{
		{Department: "Customer Success", Count: 2, Active: 1},
		{Department: "Engineering", Count: 2, Active: 2},
		{Department: "Finance", Count: 1, Active: 1},
		{Department: "Marketing", Count: 2, Active: 2},
		{Department: "Operations", Count: 1, Active: 1},
		{Department: "Sales", Count: 2, Active: 2},
	}
	assert.Equal(t, want, breakdown)
}

func TestMissingDepartments_AgainstTargetTaxonomy(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	missing, err := s.MissingDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, targetDepartments, missing, "empty store misses everything")

	_, err = s.Seed(ctx)
	require.NoError(t, err)

	missing, err = s.MissingDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Human Resources", "Legal"}, missing)
}

func TestRecordExecution_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	id, err := s.RecordExecution(ctx, "the winter campaign", "/execute the winter campaign")
	require.NoError(t, err)
	assert.Regexp(t, `^exec-[0-9a-f-]{8}$`, id)

	recent, err := s.RecentExecutions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, id, recent[0].ID)
	assert.Equal(t, "the winter campaign", recent[0].Task)
	assert.Equal(t, "/execute the winter campaign", recent[0].Command)
	assert.False(t, recent[0].CreatedAt.IsZero())
}

func TestRecentExecutions_HonorsLimit(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ids := make(map[string]bool)
	for i := 0; i < 5; i++ {
		id, err := s.RecordExecution(ctx, "task", "/execute task")
		require.NoError(t, err)
		ids[id] = true
	}
	require.Len(t, ids, 5, "execution ids must be unique")

	recent, err := s.RecentExecutions(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
	for _, e := range recent {
		assert.True(t, ids[e.ID])
	}
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/catalog.db"
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Seed(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	total, _, err := s2.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, total)
}
