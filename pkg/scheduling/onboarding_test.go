package scheduling

import (
	"context"
	"testing"

	"shift-planner-backend/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestJoinCreatesPendingRecord(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "joiner", "Jane", "Joiner")
	org := env.seedOrg(t, "owner")

	require.NoError(t, env.onboarding.RequestJoin(context.Background(), org.ID, "joiner"))

	pending, err := env.store.GetPendingEmployee(org.ID, "joiner")
	require.NoError(t, err)
	assert.Equal(t, "joiner@example.com", pending.Email)
	assert.Equal(t, "Jane", pending.FirstName)
	assert.Equal(t, "Joiner", pending.LastName)
	assert.Equal(t, models.PendingStatusPending, pending.Status)
}

func TestRequestJoinDuplicateYieldsAlreadyRequested(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "joiner", "Jane", "Joiner")
	org := env.seedOrg(t, "owner")
	ctx := context.Background()

	require.NoError(t, env.onboarding.RequestJoin(ctx, org.ID, "joiner"))
	err := env.onboarding.RequestJoin(ctx, org.ID, "joiner")
	assert.ErrorIs(t, err, models.ErrAlreadyRequested)
	assert.ErrorIs(t, err, models.ErrConflict)

	pending, listErr := env.store.ListPendingEmployees(org.ID)
	require.NoError(t, listErr)
	assert.Len(t, pending, 1)
}

func TestRequestJoinRejectsExistingEmployee(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "worker", "Walter", "Worker")
	org := env.seedOrg(t, "owner")
	env.seedEmployee(t, org.ID, "worker", models.OrgRoleEmployee)

	err := env.onboarding.RequestJoin(context.Background(), org.ID, "worker")
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.NotErrorIs(t, err, models.ErrAlreadyRequested)
}

func TestRequestJoinRequiresExistingOrgAndUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")

	err := env.onboarding.RequestJoin(context.Background(), "no-such-org", "owner")
	assert.ErrorIs(t, err, models.ErrNotFound)
	err = env.onboarding.RequestJoin(context.Background(), org.ID, "no-such-user")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestApproveConvertsPendingToEmployee(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "joiner", "Jane", "Joiner")
	org := env.seedOrg(t, "owner")
	ctx := context.Background()

	require.NoError(t, env.onboarding.RequestJoin(ctx, org.ID, "joiner"))
	require.NoError(t, env.onboarding.Approve(ctx, "owner", org.ID, "joiner"))

	employee, err := env.store.GetEmployee(org.ID, "joiner")
	require.NoError(t, err)
	assert.Equal(t, "Jane Joiner", employee.DisplayName)
	assert.Equal(t, models.OrgRoleEmployee, employee.OrgRole)
	assert.Equal(t, []string{models.DefaultEmployeeRole}, employee.Roles)

	user, err := env.store.GetUserByID("joiner")
	require.NoError(t, err)
	assert.True(t, user.MemberOf(org.ID))

	_, err = env.store.GetPendingEmployee(org.ID, "joiner")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestApproveIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "joiner", "Jane", "Joiner")
	org := env.seedOrg(t, "owner")
	ctx := context.Background()

	require.NoError(t, env.onboarding.RequestJoin(ctx, org.ID, "joiner"))
	require.NoError(t, env.onboarding.Approve(ctx, "owner", org.ID, "joiner"))
	require.NoError(t, env.onboarding.Approve(ctx, "owner", org.ID, "joiner"))

	employees, err := env.store.ListEmployees(org.ID)
	require.NoError(t, err)
	assert.Len(t, employees, 2) // owner + joiner, no duplicate

	user, err := env.store.GetUserByID("joiner")
	require.NoError(t, err)
	count := 0
	for _, id := range user.OrganizationIDs {
		if id == org.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)

	pending, err := env.store.ListPendingEmployees(org.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApproveRecoversFromPartialRun(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "joiner", "Jane", "Joiner")
	org := env.seedOrg(t, "owner")
	ctx := context.Background()

	// Simulate a run that created the employee but crashed before deleting
	// the pending record.
	require.NoError(t, env.onboarding.RequestJoin(ctx, org.ID, "joiner"))
	env.seedEmployee(t, org.ID, "joiner", models.OrgRoleEmployee)

	require.NoError(t, env.onboarding.Approve(ctx, "owner", org.ID, "joiner"))

	pending, err := env.store.ListPendingEmployees(org.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
	_, err = env.store.GetEmployee(org.ID, "joiner")
	assert.NoError(t, err)
}

func TestApproveWithoutPendingIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "joiner", "Jane", "Joiner")
	org := env.seedOrg(t, "owner")

	err := env.onboarding.Approve(context.Background(), "owner", org.ID, "joiner")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestApproveRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "worker", "Walter", "Worker")
	env.seedUser(t, "joiner", "Jane", "Joiner")
	org := env.seedOrg(t, "owner")
	env.seedEmployee(t, org.ID, "worker", models.OrgRoleEmployee)
	ctx := context.Background()

	require.NoError(t, env.onboarding.RequestJoin(ctx, org.ID, "joiner"))
	err := env.onboarding.Approve(ctx, "worker", org.ID, "joiner")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	err = env.onboarding.Deny(ctx, "worker", org.ID, "joiner")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestDenyDeletesPendingAndIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "joiner", "Jane", "Joiner")
	org := env.seedOrg(t, "owner")
	ctx := context.Background()

	require.NoError(t, env.onboarding.RequestJoin(ctx, org.ID, "joiner"))
	require.NoError(t, env.onboarding.Deny(ctx, "owner", org.ID, "joiner"))

	_, err := env.store.GetPendingEmployee(org.ID, "joiner")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = env.store.GetEmployee(org.ID, "joiner")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Denying again is a no-op, not an error.
	require.NoError(t, env.onboarding.Deny(ctx, "owner", org.ID, "joiner"))

	// A denied user may request again.
	require.NoError(t, env.onboarding.RequestJoin(ctx, org.ID, "joiner"))
}
