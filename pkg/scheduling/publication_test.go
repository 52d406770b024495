package scheduling

import (
	"context"
	"testing"

	"shift-planner-backend/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSetsFlagAndTimestampOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")
	ctx := context.Background()

	sched, err := env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", 7, false)
	require.NoError(t, err)

	published, err := env.schedules.Publish(ctx, "owner", org.ID, sched.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.PublishedAt)
	firstPublishedAt := *published.PublishedAt

	// Re-publishing keeps the original timestamp.
	again, err := env.schedules.Publish(ctx, "owner", org.ID, sched.ID)
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.Equal(t, firstPublishedAt, *again.PublishedAt)
}

func TestPublishRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "worker", "Walter", "Worker")
	org := env.seedOrg(t, "owner")
	env.seedEmployee(t, org.ID, "worker", models.OrgRoleEmployee)
	ctx := context.Background()

	sched, err := env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", 7, false)
	require.NoError(t, err)

	_, err = env.schedules.Publish(ctx, "worker", org.ID, sched.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestGetScheduleHidesDraftsFromMembers(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "worker", "Walter", "Worker")
	env.seedUser(t, "stranger", "Sam", "Stranger")
	org := env.seedOrg(t, "owner")
	env.seedEmployee(t, org.ID, "worker", models.OrgRoleEmployee)
	ctx := context.Background()

	sched, err := env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", 7, false)
	require.NoError(t, err)

	// Admin sees the draft; the member gets NotFound; non-members are
	// rejected outright.
	_, err = env.schedules.GetSchedule(ctx, "owner", org.ID, sched.ID)
	assert.NoError(t, err)
	_, err = env.schedules.GetSchedule(ctx, "worker", org.ID, sched.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = env.schedules.GetSchedule(ctx, "stranger", org.ID, sched.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = env.schedules.Publish(ctx, "owner", org.ID, sched.ID)
	require.NoError(t, err)

	got, err := env.schedules.GetSchedule(ctx, "worker", org.ID, sched.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
}

func TestListSchedulesFiltersForMembers(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "worker", "Walter", "Worker")
	org := env.seedOrg(t, "owner")
	env.seedEmployee(t, org.ID, "worker", models.OrgRoleEmployee)
	ctx := context.Background()

	draft, err := env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", 7, false)
	require.NoError(t, err)
	_, err = env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-09", 7, false)
	require.NoError(t, err)
	_, err = env.schedules.Publish(ctx, "owner", org.ID, draft.ID)
	require.NoError(t, err)

	all, err := env.schedules.ListSchedules(ctx, "owner", org.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := env.schedules.ListSchedules(ctx, "worker", org.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, draft.ID, visible[0].ID)
}

func TestDeleteSchedule(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "worker", "Walter", "Worker")
	org := env.seedOrg(t, "owner")
	env.seedEmployee(t, org.ID, "worker", models.OrgRoleEmployee)
	ctx := context.Background()

	sched, err := env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", 7, false)
	require.NoError(t, err)

	err = env.schedules.DeleteSchedule(ctx, "worker", org.ID, sched.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	require.NoError(t, env.schedules.DeleteSchedule(ctx, "owner", org.ID, sched.ID))
	_, err = env.store.GetWeekSchedule(org.ID, sched.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = env.schedules.DeleteSchedule(ctx, "owner", org.ID, sched.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
