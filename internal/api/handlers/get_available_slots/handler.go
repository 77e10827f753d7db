package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/villidata/newfork/internal/api/handlers"
	"github.com/villidata/newfork/internal/domain"
	getAvailableSlots "github.com/villidata/newfork/internal/usecase/get_available_slots"
)

const (
	msgMissingDate   = "query parameter 'date' is required"
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgStaffNotFound = "staff member not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID := mux.Vars(r)["staffId"]

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /staff/%s/available-slots - Missing date", staffID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /staff/%s/available-slots - Invalid date %q: %v", staffID, rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		StaffID: staffID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /staff/%s/available-slots - Staff not found", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /staff/%s/available-slots - Invalid input: %v", staffID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /staff/%s/available-slots - Failed: %v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/%s/available-slots - %d slots for %s", staffID, len(result.Slots), result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
