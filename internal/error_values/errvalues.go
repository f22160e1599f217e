package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exist")
	ErrWrongCredentials = errors.New("wrong email or password")

	ErrTodoNotFound = errors.New("todo doesn't exist")
	ErrWrongOwner   = errors.New("resource has different owner")
	ErrEmptyTitle   = errors.New("title is empty")

	ErrDayMarked     = errors.New("day already marked")
	ErrDayNotMarked  = errors.New("day is not marked")
	ErrDayNotAllowed = errors.New("future days cannot be marked")

	ErrDeliveryFailed = errors.New("reminder delivery failed")

	ErrInvalidToken      = errors.New("invalid token")
	ErrNoToken           = errors.New("no token provided")
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)
