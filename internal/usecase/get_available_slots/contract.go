package get_available_slots

import (
	"context"
	"time"

	"github.com/villidata/newfork/internal/domain"
)

// StaffRepository fetches staff members with their working hours
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
}

// BreakRepository fetches staff breaks
type BreakRepository interface {
	ListByStaff(ctx context.Context, staffID string) ([]*domain.StaffBreak, error)
}

// BookingRepository fetches active bookings for the conflict check
type BookingRepository interface {
	GetActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time, excludeID *string) ([]*domain.Booking, error)
}

// Logger is the logging surface the usecase needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
