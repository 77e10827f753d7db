package reminders

import (
	"context"
	"time"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/internal/service/notifications"
)

// BookingRepository is the storage surface the sweeper needs
type BookingRepository interface {
	ListDueReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	ClaimReminder(ctx context.Context, id string) (bool, error)
}

// NotificationDispatcher delivers the reminder emails
type NotificationDispatcher interface {
	DispatchSync(ctx context.Context, msg notifications.Message) error
}

// MetricsCollector counts sweep outcomes
type MetricsCollector interface {
	IncReminder(outcome string)
}

// Logger is the logging surface the sweeper needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider abstracts the clock for tests
type TimeProvider interface {
	Now() time.Time
}
