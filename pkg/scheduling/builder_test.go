package scheduling

import (
	"context"
	"sort"
	"testing"

	"shift-planner-backend/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWeekBuildsContiguousDays(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")

	sched, err := env.schedules.GenerateWeek(context.Background(), "owner", org.ID, "2025-06-02", 7, false)
	require.NoError(t, err)

	assert.Equal(t, org.ID+"_2025-06-02", sched.ID)
	assert.Equal(t, "2025-06-02", sched.WeekStart)
	assert.Equal(t, "2025-05-31", sched.AvailabilityDeadline)
	assert.False(t, sched.IsPublished)
	assert.Nil(t, sched.PublishedAt)

	require.Len(t, sched.Days, 7)
	want := []string{
		"2025-06-02", "2025-06-03", "2025-06-04", "2025-06-05",
		"2025-06-06", "2025-06-07", "2025-06-08",
	}
	var got []string
	for key, record := range sched.Days {
		got = append(got, key)
		require.NotNil(t, record)
		assert.Empty(t, record.Roles)
	}
	sort.Strings(got)
	assert.Equal(t, want, got)
	assert.Equal(t, want, sched.DayKeys())
}

func TestGenerateWeekCrossesMonthBoundary(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")

	sched, err := env.schedules.GenerateWeek(context.Background(), "owner", org.ID, "2025-01-30", 4, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"}, sched.DayKeys())
}

func TestGenerateWeekValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")
	ctx := context.Background()

	_, err := env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", 0, false)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", MaxScheduleDays+1, false)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = env.schedules.GenerateWeek(ctx, "owner", org.ID, "06/02/2025", 7, false)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGenerateWeekConflictAndOverwrite(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")
	ctx := context.Background()

	first, err := env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", 7, false)
	require.NoError(t, err)
	require.NoError(t, AddRole(first, "2025-06-02", "Bartender"))
	_, err = env.schedules.UpdateDays(ctx, "owner", org.ID, first.ID, first.Days)
	require.NoError(t, err)

	// Regenerating without overwrite must not touch the stored document.
	_, err = env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", 7, false)
	assert.ErrorIs(t, err, models.ErrConflict)
	kept, err := env.store.GetWeekSchedule(org.ID, first.ID)
	require.NoError(t, err)
	assert.Len(t, kept.Days["2025-06-02"].Roles, 1)

	// With overwrite the document is replaced by a fresh skeleton.
	regenerated, err := env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", 7, true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, regenerated.ID)
	stored, err := env.store.GetWeekSchedule(org.ID, first.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Days["2025-06-02"].Roles)
}

func TestGenerateWeekRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "worker", "Walter", "Worker")
	env.seedUser(t, "stranger", "Sam", "Stranger")
	org := env.seedOrg(t, "owner")
	env.seedEmployee(t, org.ID, "worker", models.OrgRoleEmployee)
	ctx := context.Background()

	_, err := env.schedules.GenerateWeek(ctx, "worker", org.ID, "2025-06-02", 7, false)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = env.schedules.GenerateWeek(ctx, "stranger", org.ID, "2025-06-02", 7, false)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestUpdateDaysRejectsForeignDayKeys(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")
	ctx := context.Background()

	sched, err := env.schedules.GenerateWeek(ctx, "owner", org.ID, "2025-06-02", 2, false)
	require.NoError(t, err)

	// Same size but one key outside the generated window.
	days := map[string]*models.DayRecord{
		"2025-06-02": {Roles: []models.RoleBlock{}},
		"2025-06-09": {Roles: []models.RoleBlock{}},
	}
	_, err = env.schedules.UpdateDays(ctx, "owner", org.ID, sched.ID, days)
	assert.ErrorIs(t, err, models.ErrValidation)

	// Shrinking the day set is rejected too.
	days = map[string]*models.DayRecord{
		"2025-06-02": {Roles: []models.RoleBlock{}},
	}
	_, err = env.schedules.UpdateDays(ctx, "owner", org.ID, sched.ID, days)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAvailableEmployeesFiltersByDeclaredAvailability(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "yes", "Yana", "Yes")
	env.seedUser(t, "no", "Nora", "No")
	env.seedUser(t, "silent", "Sana", "Silent")
	org := env.seedOrg(t, "owner")
	env.seedEmployee(t, org.ID, "yes", models.OrgRoleEmployee)
	env.seedEmployee(t, org.ID, "no", models.OrgRoleEmployee)
	env.seedEmployee(t, org.ID, "silent", models.OrgRoleEmployee)

	// 2025-06-02 is a Monday.
	require.NoError(t, env.store.SaveAvailability(&models.WeekAvailability{
		UserID: "yes",
		Entries: []models.AvailabilityEntry{
			{DayOfWeek: "Monday", Status: models.AvailabilityPreferred, StartTime: "09:00", EndTime: "17:00"},
		},
	}))
	require.NoError(t, env.store.SaveAvailability(&models.WeekAvailability{
		UserID: "no",
		Entries: []models.AvailabilityEntry{
			{DayOfWeek: "Monday", Status: models.AvailabilityUnavailable},
		},
	}))

	available, err := env.schedules.AvailableEmployees(context.Background(), "owner", org.ID, "2025-06-02", "17:00", "22:00")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "yes", available[0].UserID)

	_, err = env.schedules.AvailableEmployees(context.Background(), "owner", org.ID, "bad-date", "17:00", "22:00")
	assert.ErrorIs(t, err, models.ErrValidation)
}
