package mailer

import "errors"

var (
	ErrInternal        = errors.New("mailer client internal error")
	ErrInvalidResponse = errors.New("mailer returned invalid response")
)
