package notifications

import (
	"context"

	"github.com/villidata/newfork/internal/integrations/mailer"
)

// MailerClient sends transactional email
type MailerClient interface {
	Send(ctx context.Context, email mailer.EmailRequest) (*mailer.EmailResponse, error)
}

// MetricsCollector counts notification outcomes
type MetricsCollector interface {
	IncNotification(event, outcome string)
}

// Logger is the logging surface the dispatcher needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
