package models

import "time"

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "AVAILABLE"
	AvailabilityPreferred   AvailabilityStatus = "PREFERRED"
	AvailabilityUnavailable AvailabilityStatus = "UNAVAILABLE"
)

// AvailabilityEntry is an employee's self-declared willingness to work a
// given day of the week. DayOfWeek is a full English day name ("Monday").
type AvailabilityEntry struct {
	DayOfWeek string             `json:"day_of_week" db:"day_of_week"`
	Status    AvailabilityStatus `json:"status" db:"status"`
	StartTime string             `json:"start_time,omitempty" db:"start_time"`
	EndTime   string             `json:"end_time,omitempty" db:"end_time"`
}

// WeekAvailability is a user's full set of per-day entries, maintained by
// the employee independently of any schedule.
type WeekAvailability struct {
	UserID    string              `json:"user_id" db:"user_id"`
	Entries   []AvailabilityEntry `json:"entries" db:"entries"`
	UpdatedAt time.Time           `json:"updated_at" db:"updated_at"`
}
