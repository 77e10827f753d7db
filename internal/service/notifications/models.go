package notifications

// Event names the booking lifecycle moments that produce an email
type Event string

const (
	EventCreated   Event = "created"
	EventConfirmed Event = "confirmed"
	EventChanged   Event = "changed"
	EventReminder  Event = "reminder"
)

const (
	outcomeSent    = "sent"
	outcomeFailed  = "failed"
	outcomeDropped = "dropped"
)

// Message is one notification to deliver
type Message struct {
	Event         Event
	RecipientName string
	Recipient     string
	Vars          map[string]string
}

var templateByEvent = map[Event]struct {
	template string
	subject  string
}{
	EventCreated:   {"booking_created", "We received your booking"},
	EventConfirmed: {"booking_confirmed", "Your booking is confirmed"},
	EventChanged:   {"booking_changed", "Your booking was updated"},
	EventReminder:  {"booking_reminder", "Reminder: your appointment tomorrow"},
}
