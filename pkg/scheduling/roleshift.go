package scheduling

import (
	"fmt"

	"shift-planner-backend/pkg/models"
)

// Pure transformations over a schedule's day/role/shift data. No I/O:
// persistence is the caller's responsibility (read-modify-write against the
// week-schedule document). Shift order within a role is insertion order and
// is significant for display.

// AddRole appends an empty role block to the given day.
// Duplicate role names within a day are a Conflict.
func AddRole(sched *models.WeekSchedule, day, roleName string) error {
	record, err := dayRecord(sched, day)
	if err != nil {
		return err
	}
	for _, block := range record.Roles {
		if block.Role == roleName {
			return fmt.Errorf("role %q already present on %s: %w", roleName, day, models.ErrConflict)
		}
	}
	record.Roles = append(record.Roles, models.RoleBlock{Role: roleName, Shifts: []models.Shift{}})
	return nil
}

// AddShift appends an unassigned shift to a role block.
func AddShift(sched *models.WeekSchedule, day, roleName, startTime, endTime string) error {
	block, err := roleBlock(sched, day, roleName)
	if err != nil {
		return err
	}
	block.Shifts = append(block.Shifts, models.Shift{StartTime: startTime, EndTime: endTime})
	return nil
}

// AssignShift sets the employee on the shift at shiftIndex.
func AssignShift(sched *models.WeekSchedule, day, roleName string, shiftIndex int, employeeID string) error {
	shift, err := shiftAt(sched, day, roleName, shiftIndex)
	if err != nil {
		return err
	}
	shift.EmployeeID = &employeeID
	return nil
}

// Unassign clears the employee on the shift at shiftIndex.
func Unassign(sched *models.WeekSchedule, day, roleName string, shiftIndex int) error {
	shift, err := shiftAt(sched, day, roleName, shiftIndex)
	if err != nil {
		return err
	}
	shift.EmployeeID = nil
	return nil
}

func dayRecord(sched *models.WeekSchedule, day string) (*models.DayRecord, error) {
	record, ok := sched.Days[day]
	if !ok {
		return nil, fmt.Errorf("day %s not in schedule: %w", day, models.ErrNotFound)
	}
	return record, nil
}

func roleBlock(sched *models.WeekSchedule, day, roleName string) (*models.RoleBlock, error) {
	record, err := dayRecord(sched, day)
	if err != nil {
		return nil, err
	}
	for i := range record.Roles {
		if record.Roles[i].Role == roleName {
			return &record.Roles[i], nil
		}
	}
	return nil, fmt.Errorf("role %q not on %s: %w", roleName, day, models.ErrNotFound)
}

func shiftAt(sched *models.WeekSchedule, day, roleName string, shiftIndex int) (*models.Shift, error) {
	block, err := roleBlock(sched, day, roleName)
	if err != nil {
		return nil, err
	}
	if shiftIndex < 0 || shiftIndex >= len(block.Shifts) {
		return nil, fmt.Errorf("shift index %d out of range for role %q on %s: %w", shiftIndex, roleName, day, models.ErrNotFound)
	}
	return &block.Shifts[shiftIndex], nil
}
