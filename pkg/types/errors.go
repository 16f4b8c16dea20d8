package types

import "errors"

// Specific error values enable precise handling at composition
// boundaries without string matching.
var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrEmptyRoom        = errors.New("room cannot be empty")
	ErrNotConnected     = errors.New("session is not connected")
	ErrEmptyMessage     = errors.New("message text is empty")
	ErrTransportClosed  = errors.New("transport is closed")
	ErrUnknownEvent     = errors.New("unknown event name")
	ErrMalformedPayload = errors.New("event payload is missing required fields")
)
