package reschedule_booking

import (
	"context"
	"time"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/internal/service/notifications"
	"github.com/villidata/newfork/pkg/types"
)

// BookingRepository is the storage surface the usecase needs
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time, excludeID *string) ([]*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id string, date time.Time, startTime types.TimeString, status *domain.BookingStatus) error
}

// StaffRepository fetches staff members with their working hours
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
}

// BreakRepository fetches staff breaks
type BreakRepository interface {
	ListByStaff(ctx context.Context, staffID string) ([]*domain.StaffBreak, error)
}

// TransactionManager runs the conflict re-check and update atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotificationDispatcher delivers the changed/confirmed email off the request path
type NotificationDispatcher interface {
	Dispatch(msg notifications.Message)
}

// TimeProvider abstracts the clock for tests
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the usecase needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
