package contact

import "errors"

var (
	// ErrInvalidConfig indicates missing or malformed relay configuration.
	ErrInvalidConfig = errors.New("invalid contact relay configuration")

	// ErrInvalidMessage indicates a message failed validation before sending.
	ErrInvalidMessage = errors.New("invalid contact message")

	// ErrSendFailed indicates the provider rejected or failed the send.
	ErrSendFailed = errors.New("failed to send contact message")
)
