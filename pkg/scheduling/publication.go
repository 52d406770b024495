package scheduling

import (
	"context"
	"time"

	"shift-planner-backend/pkg/models"

	"go.uber.org/zap"
)

// Publish moves a schedule Draft -> Published. One-way: there is no
// unpublish. Re-publishing an already published schedule is a no-op that
// keeps the original publishedAt.
func (s *ScheduleService) Publish(ctx context.Context, actorID, orgID, scheduleID string) (*models.WeekSchedule, error) {
	if _, err := requireAdmin(s.store, orgID, actorID); err != nil {
		return nil, err
	}
	sched, err := s.store.GetWeekSchedule(orgID, scheduleID)
	if err != nil {
		return nil, err
	}
	if sched.IsPublished {
		return sched, nil
	}

	now := time.Now()
	sched.IsPublished = true
	sched.PublishedAt = &now
	if err := s.store.UpdateWeekSchedule(sched); err != nil {
		return nil, err
	}
	s.log.Info("schedule published",
		zap.String("org_id", orgID),
		zap.String("schedule_id", scheduleID),
		zap.String("actor_id", actorID))

	employees, err := s.store.ListEmployees(orgID)
	if err == nil {
		for _, e := range employees {
			s.notifier.Notify(ctx, e.UserID, EventSchedulePublished,
				"The schedule for the week of "+sched.WeekStart+" is out")
		}
	}
	return sched, nil
}

// DeleteSchedule is an admin-only hard delete; irreversible.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, actorID, orgID, scheduleID string) error {
	if _, err := requireAdmin(s.store, orgID, actorID); err != nil {
		return err
	}
	if err := s.store.DeleteWeekSchedule(orgID, scheduleID); err != nil {
		return err
	}
	s.log.Info("schedule deleted",
		zap.String("org_id", orgID),
		zap.String("schedule_id", scheduleID),
		zap.String("actor_id", actorID))
	return nil
}

// GetSchedule fetches one schedule. Members only ever see published
// schedules; an unpublished schedule is NotFound for them so its fields
// never leak.
func (s *ScheduleService) GetSchedule(ctx context.Context, actorID, orgID, scheduleID string) (*models.WeekSchedule, error) {
	actor, err := requireMember(s.store, orgID, actorID)
	if err != nil {
		return nil, err
	}
	sched, err := s.store.GetWeekSchedule(orgID, scheduleID)
	if err != nil {
		return nil, err
	}
	if !sched.IsPublished && !actor.IsAdmin() {
		return nil, models.ErrNotFound
	}
	return sched, nil
}

// ListSchedules lists the organization's schedules, filtered to published
// ones for non-admin members.
func (s *ScheduleService) ListSchedules(ctx context.Context, actorID, orgID string) ([]models.WeekSchedule, error) {
	actor, err := requireMember(s.store, orgID, actorID)
	if err != nil {
		return nil, err
	}
	schedules, err := s.store.ListWeekSchedules(orgID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return schedules, nil
	}
	published := make([]models.WeekSchedule, 0, len(schedules))
	for _, sched := range schedules {
		if sched.IsPublished {
			published = append(published, sched)
		}
	}
	return published, nil
}
