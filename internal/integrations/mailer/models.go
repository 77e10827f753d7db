package mailer

// EmailRequest is the payload sent to the mailer service
type EmailRequest struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Subject  string            `json:"subject"`
	Vars     map[string]string `json:"vars"`
}

// EmailResponse is the mailer service acknowledgement
type EmailResponse struct {
	MessageID string `json:"message_id"`
	Accepted  bool   `json:"accepted"`
}
