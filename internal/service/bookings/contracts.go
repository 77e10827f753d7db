package bookings

import (
	"context"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/internal/service/notifications"
)

// BookingRepository is the storage surface the service needs
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, allowedFrom ...domain.BookingStatus) error
}

// NotificationDispatcher delivers booking emails off the request path
type NotificationDispatcher interface {
	Dispatch(msg notifications.Message)
}

// Logger is the logging surface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
