package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/models"

	"go.uber.org/zap"
)

// OnboardingService moves a join request through
// NotRequested -> Pending -> {Employee | Denied}.
//
// The store has per-document atomicity only, so Approve is an idempotent
// saga: every step checks current state before writing and the least
// reversible write (deleting the pending record) happens last. Re-running
// a partially failed Approve converges to one Employee and zero
// PendingEmployee records.
type OnboardingService struct {
	store    database.Store
	notifier Notifier
	log      *zap.Logger
}

func NewOnboardingService(store database.Store, notifier Notifier, log *zap.Logger) *OnboardingService {
	return &OnboardingService{store: store, notifier: notifier, log: log}
}

// RequestJoin records a validated join request as a PendingEmployee.
// The caller must have validated the invite token first.
func (s *OnboardingService) RequestJoin(ctx context.Context, orgID, userID string) error {
	if _, err := s.store.GetOrganization(orgID); err != nil {
		return err
	}
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return err
	}

	if _, err := s.store.GetEmployee(orgID, userID); err == nil {
		return fmt.Errorf("user %s already employed by %s: %w", userID, orgID, models.ErrConflict)
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}
	if _, err := s.store.GetPendingEmployee(orgID, userID); err == nil {
		return models.ErrAlreadyRequested
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	pending := &models.PendingEmployee{
		UserID:         userID,
		OrganizationID: orgID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Status:         models.PendingStatusPending,
		RequestedAt:    time.Now(),
	}
	if err := s.store.CreatePendingEmployee(pending); err != nil {
		// Lost race against a concurrent request; same outcome.
		if errors.Is(err, models.ErrConflict) {
			return models.ErrAlreadyRequested
		}
		return err
	}
	s.log.Info("join requested", zap.String("org_id", orgID), zap.String("user_id", userID))
	return nil
}

// Approve converts a pending record into an Employee. Saga order:
//  1. create the Employee (skip if it exists, the double-approval guard)
//  2. record the membership on the user profile
//  3. delete the PendingEmployee
func (s *OnboardingService) Approve(ctx context.Context, actorID, orgID, userID string) error {
	if _, err := requireAdmin(s.store, orgID, actorID); err != nil {
		return err
	}

	_, err := s.store.GetEmployee(orgID, userID)
	switch {
	case err == nil:
		// Already approved. Clean up a pending record a previous partial
		// run may have left behind, then stop.
		if err := s.store.DeletePendingEmployee(orgID, userID); err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}
		return nil
	case !errors.Is(err, models.ErrNotFound):
		return err
	}

	pending, err := s.store.GetPendingEmployee(orgID, userID)
	if err != nil {
		return err
	}

	displayName := pending.FirstName
	if pending.LastName != "" {
		displayName = pending.FirstName + " " + pending.LastName
	}
	newEmployee := &models.Employee{
		UserID:         userID,
		OrganizationID: orgID,
		DisplayName:    displayName,
		Email:          pending.Email,
		OrgRole:        models.OrgRoleEmployee,
		Roles:          []string{models.DefaultEmployeeRole},
	}
	if err := s.store.CreateEmployee(newEmployee); err != nil && !errors.Is(err, models.ErrConflict) {
		return err
	}

	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !user.MemberOf(orgID) {
		user.OrganizationIDs = append(user.OrganizationIDs, orgID)
		if err := s.store.UpdateUser(user); err != nil {
			return err
		}
	}

	if err := s.store.DeletePendingEmployee(orgID, userID); err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}

	s.log.Info("join approved",
		zap.String("org_id", orgID),
		zap.String("user_id", userID),
		zap.String("actor_id", actorID))
	s.notifier.Notify(ctx, userID, EventJoinApproved, "Your request to join has been approved")
	return nil
}

// Deny deletes the pending record unconditionally. Idempotent: denying a
// request that no longer exists is a no-op.
func (s *OnboardingService) Deny(ctx context.Context, actorID, orgID, userID string) error {
	if _, err := requireAdmin(s.store, orgID, actorID); err != nil {
		return err
	}
	if err := s.store.DeletePendingEmployee(orgID, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
	s.log.Info("join denied",
		zap.String("org_id", orgID),
		zap.String("user_id", userID),
		zap.String("actor_id", actorID))
	s.notifier.Notify(ctx, userID, EventJoinDenied, "Your request to join has been denied")
	return nil
}
