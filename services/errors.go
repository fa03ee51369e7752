package services

import "errors"

// Shared service errors, mapped to HTTP statuses in handlers.
var (
	// Validation rejections: the operation aborts, prior state unchanged.
	ErrValidationFailed    = errors.New("validation failed")
	ErrPlayerNameRequired  = errors.New("player name is required")
	ErrMadeExceedsAttempts = errors.New("shots made cannot exceed shots attempted")
	ErrUnknownPlayer       = errors.New("player is not registered in the roster")
	ErrNoPlayersSelected   = errors.New("at least one player must be selected")

	// Duplicate registration is a no-op, surfaced as a conflict.
	ErrPlayerAlreadyRegistered = errors.New("player is already registered")

	ErrPlayerNotFound = errors.New("player not found")
	ErrPhotoNotFound  = errors.New("no photo uploaded for this player")
)
