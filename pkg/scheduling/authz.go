package scheduling

import (
	"errors"
	"fmt"

	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/models"
)

// requireAdmin loads the actor's employee record in orgID and checks the
// Owner/admin gate. A missing record is Unauthorized, not NotFound: the
// caller is simply not allowed to learn more.
func requireAdmin(store database.Store, orgID, actorID string) (*models.Employee, error) {
	actor, err := store.GetEmployee(orgID, actorID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("user %s is not a member of %s: %w", actorID, orgID, models.ErrUnauthorized)
		}
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("user %s lacks admin privileges in %s: %w", actorID, orgID, models.ErrUnauthorized)
	}
	return actor, nil
}

// requireMember loads the actor's employee record, failing Unauthorized for
// non-members.
func requireMember(store database.Store, orgID, actorID string) (*models.Employee, error) {
	actor, err := store.GetEmployee(orgID, actorID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("user %s is not a member of %s: %w", actorID, orgID, models.ErrUnauthorized)
		}
		return nil, err
	}
	return actor, nil
}
