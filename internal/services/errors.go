package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
