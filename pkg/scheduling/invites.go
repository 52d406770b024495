package scheduling

import (
	"context"
	"fmt"
	"time"

	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/models"
	"shift-planner-backend/pkg/utils"

	"go.uber.org/zap"
)

// InviteService issues and validates time-bounded invite links for an
// organization. Links are multi-use until expiry; validation has no side
// effects on the link set.
type InviteService struct {
	store database.Store
	ttl   time.Duration
	log   *zap.Logger
}

func NewInviteService(store database.Store, ttl time.Duration, log *zap.Logger) *InviteService {
	return &InviteService{store: store, ttl: ttl, log: log}
}

// Issue appends a fresh link to the organization's invite-link set.
// Expired links are pruned on the same write.
func (s *InviteService) Issue(ctx context.Context, orgID, actorID string) (*models.InviteLink, error) {
	if _, err := requireAdmin(s.store, orgID, actorID); err != nil {
		return nil, err
	}
	org, err := s.store.GetOrganization(orgID)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateURLToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate invite token: %w", err)
	}
	now := time.Now()
	link := models.InviteLink{
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	kept := org.InviteLinks[:0]
	for _, l := range org.InviteLinks {
		if !l.Expired(now) {
			kept = append(kept, l)
		}
	}
	org.InviteLinks = append(kept, link)

	if err := s.store.UpdateOrganization(org); err != nil {
		return nil, err
	}
	s.log.Info("invite link issued",
		zap.String("org_id", orgID),
		zap.Time("expires_at", link.ExpiresAt))
	return &link, nil
}

// Validate checks the presented token against the organization's link set.
// NotFound when the organization does not exist, InvalidToken when no entry
// is string-equal to the token, Expired when the matching entry's TTL has
// passed. The validated organization is returned on success.
func (s *InviteService) Validate(ctx context.Context, orgID, token string) (*models.Organization, error) {
	if orgID == "" || token == "" {
		return nil, fmt.Errorf("orgId and token are required: %w", models.ErrValidation)
	}
	org, err := s.store.GetOrganization(orgID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, link := range org.InviteLinks {
		if link.Token != token {
			continue
		}
		if link.Expired(now) {
			return nil, fmt.Errorf("invite link for %s: %w", orgID, models.ErrExpired)
		}
		return org, nil
	}
	return nil, fmt.Errorf("invite link for %s: %w", orgID, models.ErrInvalidToken)
}
