package send_reminders

import (
	"context"

	"github.com/villidata/newfork/internal/service/reminders"
)

type ReminderSweeper interface {
	Sweep(ctx context.Context) (*reminders.SweepResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
