package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/villidata/newfork/internal/domain"
	bookingRepo "github.com/villidata/newfork/internal/infra/storage/booking"
	"github.com/villidata/newfork/internal/service/bookings/models"
	"github.com/villidata/newfork/internal/service/notifications"
)

// Service handles the booking lifecycle after creation: lookup, listing
// and the status transitions an admin performs.
type Service struct {
	bookingRepo BookingRepository
	dispatcher  NotificationDispatcher
	logger      Logger
}

// NewService creates a booking lifecycle service
func NewService(
	bookingRepo BookingRepository,
	dispatcher NotificationDispatcher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// GetByID fetches one booking
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.fetch(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List returns bookings matching the admin filter
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings staff=%v date=%v status=%v", req.StaffID, req.Date, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d bookings", len(bookings))
	return models.FromDomainBookings(bookings), nil
}

// Confirm moves a pending booking to confirmed and notifies the customer
func (s *Service) Confirm(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%s", id)

	booking, err := s.fetch(ctx, "Confirm", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%s in status=%s cannot be confirmed", id, booking.Status)
		return nil, ErrCannotConfirm
	}

	if err := s.transition(ctx, "Confirm", booking, domain.StatusConfirmed, ErrCannotConfirm, domain.StatusPending); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(notifications.Message{
		Event:         notifications.EventConfirmed,
		RecipientName: booking.CustomerName,
		Recipient:     booking.CustomerEmail,
		Vars:          bookingVars(booking),
	})

	s.logger.Info("Confirm: booking id=%s confirmed", id)
	return models.FromDomainBooking(booking), nil
}

// Cancel cancels a pending or confirmed booking
func (s *Service) Cancel(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	booking, err := s.fetch(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s in status=%s cannot be cancelled", id, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.transition(ctx, "Cancel", booking, domain.StatusCancelled, ErrCannotCancel, domain.StatusPending, domain.StatusConfirmed); err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%s cancelled", id)
	return models.FromDomainBooking(booking), nil
}

// Complete marks a confirmed booking as completed
func (s *Service) Complete(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Complete: completing booking id=%s", id)

	booking, err := s.fetch(ctx, "Complete", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking id=%s in status=%s cannot be completed", id, booking.Status)
		return nil, ErrCannotComplete
	}

	if err := s.transition(ctx, "Complete", booking, domain.StatusCompleted, ErrCannotComplete, domain.StatusConfirmed); err != nil {
		return nil, err
	}

	s.logger.Info("Complete: booking id=%s completed", id)
	return models.FromDomainBooking(booking), nil
}

func (s *Service) fetch(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// transition performs a guarded status update. The allowedFrom guard runs
// in SQL, so a transition the in-memory check approved can still lose to a
// concurrent one; that race surfaces as conflictErr.
func (s *Service) transition(ctx context.Context, op string, booking *domain.Booking, to domain.BookingStatus, conflictErr error, allowedFrom ...domain.BookingStatus) error {
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, to, allowedFrom...); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			s.logger.Warn("%s: booking id=%s changed status concurrently", op, booking.ID)
			return conflictErr
		}
		s.logger.Error("%s: failed to update booking id=%s: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - update status: %v", ErrInternal, op, err)
	}
	booking.Status = to
	return nil
}

func bookingVars(b *domain.Booking) map[string]string {
	return map[string]string{
		"booking_id":   b.ID,
		"booking_date": b.BookingDate.Format(domain.DateFormat),
		"start_time":   b.StartTime.String(),
	}
}
