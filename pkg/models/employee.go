package models

import "time"

type OrgRole string

const (
	OrgRoleOwner    OrgRole = "Owner"
	OrgRoleAdmin    OrgRole = "admin"
	OrgRoleEmployee OrgRole = "Employee"
)

// Employee is a user's membership in one organization, keyed by
// (organization_id, user_id).
type Employee struct {
	UserID         string    `json:"user_id" db:"user_id"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	DisplayName    string    `json:"display_name" db:"display_name"`
	Email          string    `json:"email" db:"email"`
	OrgRole        OrgRole   `json:"org_role" db:"org_role"`
	Roles          []string  `json:"roles" db:"roles"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the employee may perform admin-only operations
// (approve/deny joins, generate and publish schedules, delete the org).
func (e *Employee) IsAdmin() bool {
	return e.OrgRole == OrgRoleOwner || e.OrgRole == OrgRoleAdmin
}

type PendingStatus string

const PendingStatusPending PendingStatus = "pending"

// PendingEmployee is a join request awaiting admin approval. At most one
// exists per (organization, user); approval or denial deletes it.
type PendingEmployee struct {
	UserID         string        `json:"user_id" db:"user_id"`
	OrganizationID string        `json:"organization_id" db:"organization_id"`
	Email          string        `json:"email" db:"email"`
	FirstName      string        `json:"first_name" db:"first_name"`
	LastName       string        `json:"last_name" db:"last_name"`
	Status         PendingStatus `json:"status" db:"status"`
	RequestedAt    time.Time     `json:"requested_at" db:"requested_at"`
}
