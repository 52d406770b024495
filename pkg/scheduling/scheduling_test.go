package scheduling

import (
	"testing"
	"time"

	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv bundles a throwaway local store with the three services under
// test. Each test gets its own data directory.
type testEnv struct {
	store      *database.LocalStore
	invites    *InviteService
	onboarding *OnboardingService
	schedules  *ScheduleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := database.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	log := zap.NewNop()
	notifier := &LogNotifier{Log: log}
	return &testEnv{
		store:      store,
		invites:    NewInviteService(store, time.Hour, log),
		onboarding: NewOnboardingService(store, notifier, log),
		schedules:  NewScheduleService(store, notifier, 2, log),
	}
}

func (e *testEnv) seedUser(t *testing.T, id, first, last string) *models.User {
	t.Helper()
	u := &models.User{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: first,
		LastName:  last,
	}
	require.NoError(t, e.store.CreateUser(u))
	return u
}

// seedOrg creates an organization whose owner is already seeded as a user,
// plus the owner's employee record.
func (e *testEnv) seedOrg(t *testing.T, ownerID string) *models.Organization {
	t.Helper()
	org := &models.Organization{
		Name:    "Test Venue",
		OwnerID: ownerID,
		Roles:   []string{models.DefaultEmployeeRole, "Bartender"},
	}
	require.NoError(t, e.store.CreateOrganization(org))
	require.NoError(t, e.store.CreateEmployee(&models.Employee{
		UserID:         ownerID,
		OrganizationID: org.ID,
		DisplayName:    "Owner",
		OrgRole:        models.OrgRoleOwner,
		Roles:          []string{models.DefaultEmployeeRole},
	}))
	return org
}

func (e *testEnv) seedEmployee(t *testing.T, orgID, userID string, role models.OrgRole) {
	t.Helper()
	require.NoError(t, e.store.CreateEmployee(&models.Employee{
		UserID:         userID,
		OrganizationID: orgID,
		DisplayName:    userID,
		OrgRole:        role,
		Roles:          []string{models.DefaultEmployeeRole},
	}))
}
