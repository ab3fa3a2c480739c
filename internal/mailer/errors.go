package mailer

import "errors"

var (
	// ErrNoRecipient indicates there was nothing to deliver.
	ErrNoRecipient = errors.New("no recipients to deliver to")

	// ErrSessionFailed indicates the transport session could not be opened
	// or authenticated. No message is attempted after it.
	ErrSessionFailed = errors.New("mail session could not be opened")
)
