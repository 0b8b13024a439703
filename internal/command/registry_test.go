package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SeededCommands(t *testing.T) {
	r := NewRegistry()

	for _, id := range []string{
		IntentStatus, IntentRevenue, IntentDepartments, IntentGaps,
		IntentPerformance, IntentCoordinate, IntentExecute, IntentApprove,
	} {
		c, ok := r.Lookup(id)
		require.True(t, ok, "command %s should be seeded", id)
		assert.Equal(t, id, c.ID)
	}

	_, ok := r.Lookup("shutdown")
	assert.False(t, ok)
}

func TestRegistry_MutatingTags(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.IsMutating(IntentExecute))
	for _, id := range []string{IntentStatus, IntentRevenue, IntentDepartments, IntentGaps, IntentPerformance, IntentCoordinate} {
		assert.False(t, r.IsMutating(id), "%s should be read-only", id)
	}
	assert.False(t, r.IsMutating("nonsense"))
}

func TestRegistry_Examples(t *testing.T) {
	r := NewRegistry()

	examples := r.ExamplesFor(IntentStatus)
	require.NotEmpty(t, examples)
	assert.GreaterOrEqual(t, len(examples), 3)
	assert.LessOrEqual(t, len(examples), 5)

	assert.Nil(t, r.ExamplesFor("nonsense"))
}

func TestRegistry_Catalog(t *testing.T) {
	r := NewRegistry()

	catalog := r.Catalog()
	assert.Contains(t, catalog, "/status")
	assert.Contains(t, catalog, "/execute <task>")
	assert.Contains(t, catalog, "requires approval")
	assert.Contains(t, catalog, "read-only")
}

func TestCommand_Literal(t *testing.T) {
	r := NewRegistry()

	execute, _ := r.Lookup(IntentExecute)
	assert.Equal(t, "/execute the holiday campaign", execute.Literal("the holiday campaign"))
	assert.Equal(t, "/execute <task>", execute.Literal(""))
	assert.True(t, execute.HasArgument())

	status, _ := r.Lookup(IntentStatus)
	assert.Equal(t, "/status", status.Literal("ignored"))
	assert.False(t, status.HasArgument())
}
