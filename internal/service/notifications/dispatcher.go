package notifications

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/villidata/newfork/internal/integrations/mailer"
)

const sendTimeout = 10 * time.Second

// Dispatcher delivers booking emails without blocking the request path.
// Sends run in their own goroutine with their own timeout; failures are
// logged and counted but never surface to the caller, so a mailer outage
// cannot fail a booking.
type Dispatcher struct {
	mailer  MailerClient
	limiter *rate.Limiter
	metrics MetricsCollector
	log     Logger
}

// NewDispatcher creates a dispatcher sending at most ratePerSecond emails
// per second with the given burst.
func NewDispatcher(mailerClient MailerClient, ratePerSecond float64, burst int, metricsCollector MetricsCollector, log Logger) *Dispatcher {
	if ratePerSecond <= 0 {
		ratePerSecond = 5
	}
	if burst <= 0 {
		burst = 10
	}

	return &Dispatcher{
		mailer:  mailerClient,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		metrics: metricsCollector,
		log:     log,
	}
}

// Dispatch queues the message for delivery and returns immediately
func (d *Dispatcher) Dispatch(msg Message) {
	go d.send(msg)
}

// DispatchSync delivers the message on the calling goroutine. The reminder
// sweep uses it so a sweep run finishes its sends before the next tick.
func (d *Dispatcher) DispatchSync(ctx context.Context, msg Message) error {
	return d.deliver(ctx, msg)
}

func (d *Dispatcher) send(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.deliver(ctx, msg); err != nil {
		d.log.Error("Notification %s to %s failed: %v", msg.Event, msg.Recipient, err)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) error {
	tpl, ok := templateByEvent[msg.Event]
	if !ok {
		d.metrics.IncNotification(string(msg.Event), outcomeDropped)
		return fmt.Errorf("unknown notification event %q", msg.Event)
	}

	if msg.Recipient == "" {
		d.metrics.IncNotification(string(msg.Event), outcomeDropped)
		d.log.Warn("Notification %s dropped: empty recipient", msg.Event)
		return nil
	}

	if err := d.limiter.Wait(ctx); err != nil {
		d.metrics.IncNotification(string(msg.Event), outcomeFailed)
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	vars := msg.Vars
	if vars == nil {
		vars = map[string]string{}
	}
	if msg.RecipientName != "" {
		vars["customer_name"] = msg.RecipientName
	}

	_, err := d.mailer.Send(ctx, mailer.EmailRequest{
		To:       msg.Recipient,
		Template: tpl.template,
		Subject:  tpl.subject,
		Vars:     vars,
	})
	if err != nil {
		d.metrics.IncNotification(string(msg.Event), outcomeFailed)
		return err
	}

	d.metrics.IncNotification(string(msg.Event), outcomeSent)
	return nil
}
