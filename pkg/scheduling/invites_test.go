package scheduling

import (
	"context"
	"testing"
	"time"

	"shift-planner-backend/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIssueInviteAppendsLink(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")

	link, err := env.invites.Issue(context.Background(), org.ID, "owner")
	require.NoError(t, err)
	assert.NotEmpty(t, link.Token)
	assert.True(t, link.ExpiresAt.After(link.CreatedAt))

	stored, err := env.store.GetOrganization(org.ID)
	require.NoError(t, err)
	require.Len(t, stored.InviteLinks, 1)
	assert.Equal(t, link.Token, stored.InviteLinks[0].Token)

	// Issuing again keeps both: neither link has expired.
	second, err := env.invites.Issue(context.Background(), org.ID, "owner")
	require.NoError(t, err)
	assert.NotEqual(t, link.Token, second.Token)
	stored, err = env.store.GetOrganization(org.ID)
	require.NoError(t, err)
	assert.Len(t, stored.InviteLinks, 2)
}

func TestIssueInvitePrunesExpiredLinks(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")

	org.InviteLinks = []models.InviteLink{{
		Token:     "stale-token",
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	}}
	require.NoError(t, env.store.UpdateOrganization(org))

	link, err := env.invites.Issue(context.Background(), org.ID, "owner")
	require.NoError(t, err)

	stored, err := env.store.GetOrganization(org.ID)
	require.NoError(t, err)
	require.Len(t, stored.InviteLinks, 1)
	assert.Equal(t, link.Token, stored.InviteLinks[0].Token)
}

func TestIssueInviteRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	env.seedUser(t, "worker", "Walter", "Worker")
	org := env.seedOrg(t, "owner")
	env.seedEmployee(t, org.ID, "worker", models.OrgRoleEmployee)

	_, err := env.invites.Issue(context.Background(), org.ID, "worker")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestValidateInvite(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")
	ctx := context.Background()

	link, err := env.invites.Issue(ctx, org.ID, "owner")
	require.NoError(t, err)

	t.Run("missing params", func(t *testing.T) {
		_, err := env.invites.Validate(ctx, "", link.Token)
		assert.ErrorIs(t, err, models.ErrValidation)
		_, err = env.invites.Validate(ctx, org.ID, "")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("unknown organization", func(t *testing.T) {
		_, err := env.invites.Validate(ctx, "no-such-org", link.Token)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("wrong token", func(t *testing.T) {
		_, err := env.invites.Validate(ctx, org.ID, "not-a-real-token")
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})

	t.Run("valid token", func(t *testing.T) {
		validated, err := env.invites.Validate(ctx, org.ID, link.Token)
		require.NoError(t, err)
		assert.Equal(t, org.ID, validated.ID)
	})

	t.Run("valid twice, links are multi-use", func(t *testing.T) {
		_, err := env.invites.Validate(ctx, org.ID, link.Token)
		require.NoError(t, err)
		stored, err := env.store.GetOrganization(org.ID)
		require.NoError(t, err)
		assert.Len(t, stored.InviteLinks, 1)
	})
}

func TestValidateExpiredInvite(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Olivia", "Owner")
	org := env.seedOrg(t, "owner")

	// A zero-TTL service issues links that are already expired.
	expiredIssuer := NewInviteService(env.store, -time.Minute, zap.NewNop())
	link, err := expiredIssuer.Issue(context.Background(), org.ID, "owner")
	require.NoError(t, err)

	_, err = env.invites.Validate(context.Background(), org.ID, link.Token)
	assert.ErrorIs(t, err, models.ErrExpired)
}
