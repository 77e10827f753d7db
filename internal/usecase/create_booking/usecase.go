package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/villidata/newfork/internal/domain"
	bookingRepo "github.com/villidata/newfork/internal/infra/storage/booking"
	staffRepo "github.com/villidata/newfork/internal/infra/storage/staff"
	"github.com/villidata/newfork/internal/scheduling"
	"github.com/villidata/newfork/internal/service/notifications"
)

// UseCase creates a booking. The conflict check and the insert run in one
// serializable transaction with the day's bookings locked, so two requests
// for the same slot cannot both succeed.
type UseCase struct {
	bookingRepo BookingRepository
	staffRepo   StaffRepository
	breakRepo   BreakRepository
	catalogRepo CatalogRepository
	calendar    *scheduling.Calendar
	txManager   TransactionManager
	dispatcher  NotificationDispatcher

	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the booking creation usecase
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	breakRepo BreakRepository,
	catalogRepo CatalogRepository,
	calendar *scheduling.Calendar,
	txManager TransactionManager,
	dispatcher NotificationDispatcher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		breakRepo:    breakRepo,
		catalogRepo:  catalogRepo,
		calendar:     calendar,
		txManager:    txManager,
		dispatcher:   dispatcher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute creates the booking
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: staff=%s, services=%d, date=%s, time=%s",
		req.StaffID, len(req.ServiceIDs), req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Reject dates in the past
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Fetch the staff member
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("CreateBooking: staff id=%s is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 4. Snapshot duration and price from the catalog
	services, err := uc.catalogRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	totalDuration, totalPrice, err := snapshotTotals(req.ServiceIDs, services)
	if err != nil {
		uc.logger.Warn("CreateBooking: snapshot failed: %v", err)
		return nil, err
	}
	if req.IsHomeService {
		totalPrice += req.TravelFee
	}

	// 5. Resolve the working window for the date
	window, open := uc.calendar.ResolveWindow(staff, req.Date)
	if !open {
		uc.logger.Warn("CreateBooking: staff id=%s does not work on %s", req.StaffID, req.Date.Format(domain.DateFormat))
		return nil, ErrStaffClosed
	}

	// 6. The whole booking must fit inside the window
	endTime, err := req.StartTime.AddMinutes(totalDuration)
	if err != nil {
		uc.logger.Warn("CreateBooking: booking runs past midnight: %v", err)
		return nil, ErrStaffClosed
	}
	if req.StartTime.IsBefore(window.Start) || window.End.IsBefore(endTime) {
		uc.logger.Warn("CreateBooking: interval %s-%s outside working window %s-%s",
			req.StartTime, endTime, window.Start, window.End)
		return nil, ErrStaffClosed
	}

	// 7. Check the breaks that apply on this date
	allBreaks, err := uc.breakRepo.ListByStaff(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get breaks for staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
	}
	dayBreaks := scheduling.BreaksFor(allBreaks, req.Date)
	if blocking, blocked, err := scheduling.BlockingInterval(req.StartTime, totalDuration, dayBreaks); err != nil {
		uc.logger.Error("CreateBooking: break check failed: %v", err)
		return nil, fmt.Errorf("%w: break check failed: %v", ErrInternal, err)
	} else if blocked {
		uc.logger.Warn("CreateBooking: interval blocked by %s break at %s", blocking.Type, blocking.Start)
		return nil, &SlotConflictError{ConflictingStartTime: blocking.Start}
	}

	var result *domain.Booking

	// 8. Conflict check and insert atomically
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Lock and read the day's active bookings (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetActiveByStaffAndDate(txCtx, req.StaffID, req.Date, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.2. Reject on overlap with any active booking
		conflicting, err := scheduling.ConflictingBooking(req.StartTime, totalDuration, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflicting != nil {
			uc.logger.Warn("CreateBooking: slot taken by booking id=%s starting %s", conflicting.ID, conflicting.StartTime)
			return &SlotConflictError{ConflictingStartTime: conflicting.StartTime}
		}

		// 8.3. Insert as pending
		booking := &domain.Booking{
			CustomerID:           req.CustomerID,
			CustomerName:         req.CustomerName,
			CustomerEmail:        req.CustomerEmail,
			CustomerPhone:        req.CustomerPhone,
			StaffID:              req.StaffID,
			ServiceIDs:           req.ServiceIDs,
			BookingDate:          req.Date,
			StartTime:            req.StartTime,
			TotalDurationMinutes: totalDuration,
			TotalPrice:           totalPrice,
			Status:               domain.StatusPending,
			PaymentMethod:        req.PaymentMethod,
			PaymentStatus:        domain.PaymentPending,
			Notes:                req.Notes,
			IsHomeService:        req.IsHomeService,
			ServiceAddress:       req.ServiceAddress,
			TravelFee:            req.TravelFee,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
				// the unique index caught a racing insert the read missed
				uc.logger.Warn("CreateBooking: duplicate slot for staff=%s %s %s", req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)
				return &SlotConflictError{ConflictingStartTime: req.StartTime}
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 9. Notify the customer after commit
	uc.dispatcher.Dispatch(notifications.Message{
		Event:         notifications.EventCreated,
		RecipientName: result.CustomerName,
		Recipient:     result.CustomerEmail,
		Vars: map[string]string{
			"booking_id":   result.ID,
			"booking_date": result.BookingDate.Format(domain.DateFormat),
			"start_time":   result.StartTime.String(),
		},
	})

	return &Response{
		ID:                   result.ID,
		CustomerName:         result.CustomerName,
		StaffID:              result.StaffID,
		ServiceIDs:           result.ServiceIDs,
		BookingDate:          result.BookingDate,
		StartTime:            result.StartTime,
		EndTime:              endTime,
		TotalDurationMinutes: result.TotalDurationMinutes,
		TotalPrice:           result.TotalPrice,
		Status:               string(result.Status),
		PaymentStatus:        string(result.PaymentStatus),
		CreatedAt:            result.CreatedAt,
		UpdatedAt:            result.UpdatedAt,
	}, nil
}
