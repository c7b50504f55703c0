package services

import "errors"

// Sentinel errors returned by the service layer. Controllers match them with
// errors.Is and translate them to HTTP status codes; none of them is retried.
var (
	ErrInvalidInput      = errors.New("invalid_input")
	ErrNotFound          = errors.New("not_found")
	ErrRoomUnavailable   = errors.New("room_unavailable")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
)
