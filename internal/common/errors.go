package common

import "errors"

// Domain errors raised at the point of detection and mapped to HTTP
// statuses by the handlers. Wrap with fmt.Errorf("...: %w", err) so
// callers can match with errors.Is.
var (
	ErrDuplicateEmail       = errors.New("a user with this email already exists")
	ErrAuthFailure          = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid token")
	ErrNotFound             = errors.New("brand not found")
	ErrDuplicateBrandName   = errors.New("brand name already exists for this user")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
