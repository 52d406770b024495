package models

import "time"

// Organization is a venue tenant owning employees, roles and schedules
type Organization struct {
	ID          string       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	OwnerID     string       `json:"owner_id" db:"owner_id"`
	Description string       `json:"description,omitempty" db:"description"`
	Roles       []string     `json:"roles" db:"roles"`
	InviteLinks []InviteLink `json:"invite_links" db:"invite_links"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// DefaultEmployeeRole is assigned to every approved employee and is always
// present in an organization's role set.
const DefaultEmployeeRole = "Employee"

// HasRole reports whether name is in the organization's role set.
func (o *Organization) HasRole(name string) bool {
	for _, r := range o.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// InviteLink is a token-bearing, time-bounded join grant. Links are
// multi-use until expiry; validation never consumes them.
type InviteLink struct {
	Token     string    `json:"token" db:"token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the link is past its TTL at the given instant.
func (l InviteLink) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
