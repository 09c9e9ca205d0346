package service

import "errors"

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPassword    = errors.New("password is required")
	ErrInvalidBaseURL     = errors.New("invalid frontend base url")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidCode        = errors.New("invalid code")
	ErrAccountNotFound    = errors.New("account not found")
	ErrNotificationFailed = errors.New("notification failed")
)
