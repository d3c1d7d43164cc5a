package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username is already taken")

	// Game errors
	ErrGameNotFound    = errors.New("no game matches the query")
	ErrGameNotModified = errors.New("game was not modified")
)
