package domain

import "errors"

// Sentinel errors for the chatbot core. Services return these (possibly
// wrapped); the HTTP layer translates them into response envelopes.
var (
	// ErrInvalidPrefix signals an unrecognized ticket type prefix.
	ErrInvalidPrefix = errors.New("invalid ticket prefix")

	// ErrInvalidStatus signals a status outside the recognized set.
	ErrInvalidStatus = errors.New("invalid ticket status")

	// ErrNotFound signals a lookup for a ticket that does not exist.
	ErrNotFound = errors.New("ticket not found")

	// ErrClassificationUnavailable signals that the external model call
	// failed or returned an unparseable label. Routing falls back instead
	// of surfacing this to the customer.
	ErrClassificationUnavailable = errors.New("classification unavailable")

	// ErrTicketCreationFailed signals that a negative-feedback ticket
	// could not be created. This is a hard failure: the audit guarantee
	// is lost, so it propagates to the caller.
	ErrTicketCreationFailed = errors.New("ticket creation failed")

	// ErrNoTicketIDFound signals a status query without a recognizable
	// ticket identifier in the message text.
	ErrNoTicketIDFound = errors.New("no ticket id found in message")
)
