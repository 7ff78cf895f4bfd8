package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingStartEvent = errors.New("missing start event")
	ErrMissingEndEvent   = errors.New("missing end event")
	ErrEventsOutOfOrder  = errors.New("events out of chronological order")
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrUnknownStroke     = errors.New("unknown stroke")
	ErrBadRaceDetails    = errors.New("invalid race details")
)
