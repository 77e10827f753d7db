package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/villidata/newfork/internal/domain"
	bookingRepo "github.com/villidata/newfork/internal/infra/storage/booking"
	staffRepo "github.com/villidata/newfork/internal/infra/storage/staff"
	"github.com/villidata/newfork/internal/scheduling"
	"github.com/villidata/newfork/internal/service/notifications"
)

// UseCase moves an active booking to a new date and time. The target slot
// goes through the same window, break and conflict checks as creation,
// with the booking excluded from its own conflict check, and the check
// plus update run in one serializable transaction. A rejected move leaves
// the booking exactly where it was.
type UseCase struct {
	bookingRepo BookingRepository
	staffRepo   StaffRepository
	breakRepo   BreakRepository
	calendar    *scheduling.Calendar
	txManager   TransactionManager
	dispatcher  NotificationDispatcher

	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the reschedule usecase
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	breakRepo BreakRepository,
	calendar *scheduling.Calendar,
	txManager TransactionManager,
	dispatcher NotificationDispatcher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		breakRepo:    breakRepo,
		calendar:     calendar,
		txManager:    txManager,
		dispatcher:   dispatcher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute moves the booking
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%s, date=%s, time=%s",
		req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Reject dates in the past
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("RescheduleBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	var (
		moved        *domain.Booking
		slotChanged  bool
		confirmedNow bool
	)

	// 3. Re-check and update atomically
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Fetch the booking
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%s in status=%s cannot be rescheduled", booking.ID, booking.Status)
			return ErrNotReschedulable
		}

		// 3.2. Fetch the staff member
		staff, err := uc.staffRepo.GetByID(txCtx, booking.StaffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("RescheduleBooking: staff id=%s not found", booking.StaffID)
				return ErrStaffNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get staff id=%s: %v", booking.StaffID, err)
			return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}

		// 3.3. The frozen duration must fit the target day's window
		window, open := uc.calendar.ResolveWindow(staff, req.Date)
		if !open {
			uc.logger.Warn("RescheduleBooking: staff id=%s does not work on %s", staff.ID, req.Date.Format(domain.DateFormat))
			return ErrStaffClosed
		}

		endTime, err := req.StartTime.AddMinutes(booking.TotalDurationMinutes)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: booking runs past midnight: %v", err)
			return ErrStaffClosed
		}
		if req.StartTime.IsBefore(window.Start) || window.End.IsBefore(endTime) {
			uc.logger.Warn("RescheduleBooking: interval %s-%s outside working window %s-%s",
				req.StartTime, endTime, window.Start, window.End)
			return ErrStaffClosed
		}

		// 3.4. Check the breaks on the target date
		allBreaks, err := uc.breakRepo.ListByStaff(txCtx, booking.StaffID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get breaks: %v", err)
			return fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
		}
		dayBreaks := scheduling.BreaksFor(allBreaks, req.Date)
		if blocking, blocked, err := scheduling.BlockingInterval(req.StartTime, booking.TotalDurationMinutes, dayBreaks); err != nil {
			uc.logger.Error("RescheduleBooking: break check failed: %v", err)
			return fmt.Errorf("%w: break check failed: %v", ErrInternal, err)
		} else if blocked {
			uc.logger.Warn("RescheduleBooking: interval blocked by %s break at %s", blocking.Type, blocking.Start)
			return &SlotConflictError{ConflictingStartTime: blocking.Start}
		}

		// 3.5. Lock and read the target day's bookings, excluding this one
		others, err := uc.bookingRepo.GetActiveByStaffAndDate(txCtx, booking.StaffID, req.Date, &booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		conflicting, err := scheduling.ConflictingBooking(req.StartTime, booking.TotalDurationMinutes, others)
		if err != nil {
			uc.logger.Error("RescheduleBooking: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflicting != nil {
			uc.logger.Warn("RescheduleBooking: slot taken by booking id=%s starting %s", conflicting.ID, conflicting.StartTime)
			return &SlotConflictError{ConflictingStartTime: conflicting.StartTime}
		}

		// 3.6. Commit the move, confirming in the same statement if asked.
		// Moving a booking to its own current slot is a valid no-op.
		slotChanged = !booking.BookingDate.Equal(req.Date) || booking.StartTime != req.StartTime

		var newStatus *domain.BookingStatus
		if req.Confirm && booking.CanBeConfirmed() {
			confirmed := domain.StatusConfirmed
			newStatus = &confirmed
		}
		confirmedNow = newStatus != nil

		if err := uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, req.Date, req.StartTime, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
				uc.logger.Warn("RescheduleBooking: duplicate slot for staff=%s %s %s", booking.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)
				return &SlotConflictError{ConflictingStartTime: req.StartTime}
			}
			uc.logger.Error("RescheduleBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.BookingDate = req.Date
		booking.StartTime = req.StartTime
		if newStatus != nil {
			booking.Status = *newStatus
		}
		moved = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%s moved to %s %s", moved.ID, moved.BookingDate.Format(domain.DateFormat), moved.StartTime)

	// 4. Notify after commit. A move that also confirms sends the
	// confirmation email, not the change email; a move to the booking's
	// current slot that confirms nothing sends no email at all.
	if confirmedNow || slotChanged {
		event := notifications.EventChanged
		if confirmedNow {
			event = notifications.EventConfirmed
		}
		uc.dispatcher.Dispatch(notifications.Message{
			Event:         event,
			RecipientName: moved.CustomerName,
			Recipient:     moved.CustomerEmail,
			Vars: map[string]string{
				"booking_id":   moved.ID,
				"booking_date": moved.BookingDate.Format(domain.DateFormat),
				"start_time":   moved.StartTime.String(),
			},
		})
	}

	endTime, _ := moved.EndTime()
	return &Response{
		ID:                   moved.ID,
		StaffID:              moved.StaffID,
		BookingDate:          moved.BookingDate.Format(domain.DateFormat),
		StartTime:            moved.StartTime,
		EndTime:              endTime,
		TotalDurationMinutes: moved.TotalDurationMinutes,
		Status:               string(moved.Status),
	}, nil
}

func validateRequest(req *Request) error {
	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateDate(bookingDate, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}
