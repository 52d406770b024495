package scheduling

import (
	"context"

	"go.uber.org/zap"
)

// Notifier is the fire-and-forget notification dispatcher. Delivery
// mechanics (push, email) live outside this core; failures are never
// surfaced to the calling workflow.
type Notifier interface {
	Notify(ctx context.Context, userID, event, message string)
}

// LogNotifier records notifications in the log instead of delivering them.
// It is the default dispatcher in development and tests.
type LogNotifier struct {
	Log *zap.Logger
}

func (n *LogNotifier) Notify(_ context.Context, userID, event, message string) {
	n.Log.Info("notification dispatched",
		zap.String("user_id", userID),
		zap.String("event", event),
		zap.String("message", message))
}

// Notification event names.
const (
	EventJoinApproved      = "join_approved"
	EventJoinDenied        = "join_denied"
	EventSchedulePublished = "schedule_published"
)
