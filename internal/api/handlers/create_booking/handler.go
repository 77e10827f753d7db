package create_booking

import (
	"errors"
	"net/http"

	"github.com/villidata/newfork/internal/api/handlers"
	createBooking "github.com/villidata/newfork/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid booking date or time, expected YYYY-MM-DD and HH:MM"
	msgStaffNotFound      = "staff member not found"
	msgServiceNotFound    = "service not found"
	msgStaffClosed        = "staff member is not available on this date"
	msgSlotConflict       = "time slot is not available"
	msgDateInPast         = "booking date must not be in the past"
)

// conflictResponse is the 409 body for a taken slot
type conflictResponse struct {
	Error                string `json:"error"`
	ConflictingStartTime string `json:"conflictingStartTime,omitempty"`
}

// closedResponse is the 409 body for a day the staff member does not work
type closedResponse struct {
	Error  string `json:"error"`
	Closed bool   `json:"closed"`
}

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *createBooking.SlotConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /bookings - Slot conflict: staff_id=%s, conflicting=%s", req.StaffID, conflict.ConflictingStartTime)
			handlers.RespondJSON(w, http.StatusConflict, conflictResponse{
				Error:                msgSlotConflict,
				ConflictingStartTime: conflict.ConflictingStartTime.String(),
			})

		case errors.Is(err, createBooking.ErrStaffClosed):
			h.logger.Warn("POST /bookings - Staff closed: staff_id=%s, date=%s", req.StaffID, req.BookingDate)
			handlers.RespondJSON(w, http.StatusConflict, closedResponse{
				Error:  msgStaffClosed,
				Closed: true,
			})

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in past: staff_id=%s, date=%s", req.StaffID, req.BookingDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: staff_id=%s, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, staff_id=%s, date=%s %s",
		result.ID, req.StaffID, req.BookingDate, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
