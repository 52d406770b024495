package scheduling

import (
	"context"
	"fmt"
	"time"

	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/models"

	"go.uber.org/zap"
)

// MaxScheduleDays bounds a single generation; schedules are per-week
// containers, a month is the ceiling.
const MaxScheduleDays = 31

// ScheduleService generates, edits, publishes and deletes week schedules.
// DeadlineOffsetDays is the fixed gap between the availability deadline and
// the week start (the deadline is always strictly before the week start).
type ScheduleService struct {
	store              database.Store
	notifier           Notifier
	deadlineOffsetDays int
	log                *zap.Logger
}

func NewScheduleService(store database.Store, notifier Notifier, deadlineOffsetDays int, log *zap.Logger) *ScheduleService {
	if deadlineOffsetDays < 1 {
		deadlineOffsetDays = 2
	}
	return &ScheduleService{store: store, notifier: notifier, deadlineOffsetDays: deadlineOffsetDays, log: log}
}

// GenerateWeek persists the skeleton of a week: numDays contiguous day
// records starting at startDate, each with an empty role list, unpublished.
// The document key is deterministic ({orgID}_{startDate}); when overwrite
// is false an existing week yields Conflict and stays untouched.
func (s *ScheduleService) GenerateWeek(ctx context.Context, actorID, orgID, startDate string, numDays int, overwrite bool) (*models.WeekSchedule, error) {
	if _, err := requireAdmin(s.store, orgID, actorID); err != nil {
		return nil, err
	}
	if numDays < 1 {
		return nil, fmt.Errorf("number of days must be at least 1: %w", models.ErrValidation)
	}
	if numDays > MaxScheduleDays {
		return nil, fmt.Errorf("number of days must be at most %d: %w", MaxScheduleDays, models.ErrValidation)
	}
	start, err := time.Parse(models.DayKeyFormat, startDate)
	if err != nil {
		return nil, fmt.Errorf("start date must be YYYY-MM-DD: %w", models.ErrValidation)
	}

	days := make(map[string]*models.DayRecord, numDays)
	for i := 0; i < numDays; i++ {
		key := start.AddDate(0, 0, i).Format(models.DayKeyFormat)
		days[key] = &models.DayRecord{Roles: []models.RoleBlock{}}
	}

	weekStart := start.Format(models.DayKeyFormat)
	sched := &models.WeekSchedule{
		ID:                   models.ScheduleDocID(orgID, weekStart),
		OrganizationID:       orgID,
		WeekStart:            weekStart,
		AvailabilityDeadline: start.AddDate(0, 0, -s.deadlineOffsetDays).Format(models.DayKeyFormat),
		Days:                 days,
		GeneratedAt:          time.Now(),
		IsPublished:          false,
	}
	if err := s.store.CreateWeekSchedule(sched, overwrite); err != nil {
		return nil, err
	}
	s.log.Info("week schedule generated",
		zap.String("org_id", orgID),
		zap.String("week_start", weekStart),
		zap.Int("num_days", numDays),
		zap.Bool("overwrite", overwrite))
	return sched, nil
}

// UpdateDays replaces the day/role/shift content of a draft or published
// schedule via read-modify-write. Admin only. The day-key set is fixed at
// generation time; edits may not add or remove days.
func (s *ScheduleService) UpdateDays(ctx context.Context, actorID, orgID, scheduleID string, days map[string]*models.DayRecord) (*models.WeekSchedule, error) {
	if _, err := requireAdmin(s.store, orgID, actorID); err != nil {
		return nil, err
	}
	sched, err := s.store.GetWeekSchedule(orgID, scheduleID)
	if err != nil {
		return nil, err
	}
	if len(days) != len(sched.Days) {
		return nil, fmt.Errorf("day set must match the generated week: %w", models.ErrValidation)
	}
	for key := range days {
		if _, ok := sched.Days[key]; !ok {
			return nil, fmt.Errorf("day %s is outside the generated week: %w", key, models.ErrValidation)
		}
	}
	sched.Days = days
	if err := s.store.UpdateWeekSchedule(sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// AvailableEmployees lists the organization's employees whose declared
// availability permits a shift on the given date. Assignment stays manual;
// this is an aid for builders and reviewers.
func (s *ScheduleService) AvailableEmployees(ctx context.Context, actorID, orgID, date, startTime, endTime string) ([]models.Employee, error) {
	if _, err := requireAdmin(s.store, orgID, actorID); err != nil {
		return nil, err
	}
	day, err := time.Parse(models.DayKeyFormat, date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", models.ErrValidation)
	}
	dayName := day.Weekday().String()

	employees, err := s.store.ListEmployees(orgID)
	if err != nil {
		return nil, err
	}
	var available []models.Employee
	for _, e := range employees {
		avail, err := s.store.GetAvailability(e.UserID)
		if err != nil {
			// No declared availability means unavailable.
			continue
		}
		if IsAvailable(avail.Entries, dayName, startTime, endTime) {
			available = append(available, e)
		}
	}
	return available, nil
}
