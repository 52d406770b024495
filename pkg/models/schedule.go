package models

import "time"

// DayKeyFormat is the layout for week-start dates and per-day keys.
// Dates carry local-calendar semantics, not UTC instants.
const DayKeyFormat = "2006-01-02"

// Shift is a time-bounded, optionally assigned work slot. Times are
// free-text times of day ("17:00"), not validated against a calendar type.
type Shift struct {
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

// RoleBlock groups the shifts of one role within a day. Shift order is
// insertion order and must survive (de)serialization.
type RoleBlock struct {
	Role   string  `json:"role"`
	Shifts []Shift `json:"shifts"`
}

// DayRecord is one day's ordered role blocks.
type DayRecord struct {
	Roles []RoleBlock `json:"roles"`
}

// WeekSchedule is the per-week container of day/role/shift data for one
// organization. Its ID is {orgID}_{weekStart}, so at most one schedule
// document exists per organization per week start.
type WeekSchedule struct {
	ID                   string                `json:"id" db:"id"`
	OrganizationID       string                `json:"organization_id" db:"organization_id"`
	WeekStart            string                `json:"week_start" db:"week_start"`
	AvailabilityDeadline string                `json:"availability_deadline" db:"availability_deadline"`
	Days                 map[string]*DayRecord `json:"days" db:"days"`
	GeneratedAt          time.Time             `json:"generated_at" db:"generated_at"`
	IsPublished          bool                  `json:"is_published" db:"is_published"`
	PublishedAt          *time.Time            `json:"published_at,omitempty" db:"published_at"`
}

// ScheduleDocID builds the deterministic document key for a week schedule.
func ScheduleDocID(orgID, weekStart string) string {
	return orgID + "_" + weekStart
}

// DayKeys returns the schedule's day keys in calendar order.
func (s *WeekSchedule) DayKeys() []string {
	start, err := time.Parse(DayKeyFormat, s.WeekStart)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(s.Days))
	for d := start; len(keys) < len(s.Days); d = d.AddDate(0, 0, 1) {
		key := d.Format(DayKeyFormat)
		if _, ok := s.Days[key]; !ok {
			break
		}
		keys = append(keys, key)
	}
	return keys
}
