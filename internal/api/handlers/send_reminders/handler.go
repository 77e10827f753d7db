package send_reminders

import (
	"net/http"

	"github.com/villidata/newfork/internal/api/handlers"
)

type Handler struct {
	sweeper ReminderSweeper
	logger  Logger
}

func NewHandler(sweeper ReminderSweeper, logger Logger) *Handler {
	return &Handler{
		sweeper: sweeper,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/send-reminders
//
// Manually triggers the same sweep the timer loop runs. The reminder claim
// keeps a manual trigger and the loop from double-sending.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.sweeper.Sweep(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/send-reminders - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/send-reminders - date=%s sent=%d skipped=%d failed=%d",
		result.Date, result.Sent, result.Skipped, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
