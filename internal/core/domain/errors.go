package domain

import "errors"

var (
	ErrValidation         = errors.New("invalid input")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	ErrEventNotFound      = errors.New("event not found")
	ErrEventFull          = errors.New("event is full")
	ErrMentorshipNotFound = errors.New("mentorship not found")
	ErrMentorshipFull     = errors.New("mentorship has no free places")
	ErrRequestNotFound    = errors.New("mentorship request not found")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrFileNotFound       = errors.New("file not found")
)
