package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/database/dbtest"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

func TestMemoryEnforcer_DefaultPolicies(t *testing.T) {
	e, err := NewMemoryEnforcer(logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, SeedDefaultPolicies(e))

	for _, p := range DefaultPolicies() {
		ok, err := e.Enforce(p[0], p[1], p[2])
		require.NoError(t, err)
		assert.True(t, ok, "%v", p)

		ok, err = e.Enforce("user", p[1], p[2])
		require.NoError(t, err)
		assert.False(t, ok, "user must not have %s", p[2])
	}

	ok, err := e.Enforce("", ResourceTicket, ActionListAll)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnforcer_PersistsThroughGormAdapter(t *testing.T) {
	gdb := dbtest.Open(t)

	e, err := NewEnforcer(gdb, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, SeedDefaultPolicies(e))
	// seeding twice must not fail on existing rows
	require.NoError(t, SeedDefaultPolicies(e))

	reloaded, err := NewEnforcer(gdb, logger.NewNopLogger())
	require.NoError(t, err)

	ok, err := reloaded.Enforce("admin", ResourceTicket, ActionChangeStatus)
	require.NoError(t, err)
	assert.True(t, ok)
}
